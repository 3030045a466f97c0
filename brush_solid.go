package paint

// SolidColorBrush paints with a single uniform color.
type SolidColorBrush struct {
	brush
	color RGBA
}

// CreateSolidColorBrush creates a solid color brush.
// A nil props means full opacity and the identity transform.
func (f *Factory) CreateSolidColorBrush(c RGBA, props *BrushProperties) *SolidColorBrush {
	b := &SolidColorBrush{color: c}
	b.init(f, BrushTypeSolid, props)
	f.logger().Debug("paint: created solid color brush", "color", c)
	return b
}

// Release drops a reference and returns the new count.
func (b *SolidColorBrush) Release() int32 {
	return b.release(nil)
}

// Color returns the brush color, exactly as set.
func (b *SolidColorBrush) Color() RGBA {
	return b.color
}

// SetColor replaces the brush color.
func (b *SolidColorBrush) SetColor(c RGBA) {
	b.color = c
}
