package paint

// LinearGradientBrushProperties holds the gradient axis in brush space.
type LinearGradientBrushProperties struct {
	StartPoint Point
	EndPoint   Point
}

// LinearGradientBrush interpolates a gradient stop collection along the
// line from its start point to its end point.
//
// The brush can be created and queried, and evaluated on the CPU with
// [LinearGradientBrush.ColorAt], but it has no GPU representation yet:
// the binder reports [ErrNotImplemented] for it.
type LinearGradientBrush struct {
	brush
	start, end Point
	stops      *GradientStopCollection
}

// CreateLinearGradientBrush creates a linear gradient brush.
//
// The brush holds its own reference on stops until it is destroyed. A nil
// brushProps means full opacity and the identity transform.
func (f *Factory) CreateLinearGradientBrush(props LinearGradientBrushProperties, brushProps *BrushProperties, stops *GradientStopCollection) *LinearGradientBrush {
	b := &LinearGradientBrush{
		start: props.StartPoint,
		end:   props.EndPoint,
		stops: stops,
	}
	if stops != nil {
		stops.AddRef()
	}
	b.init(f, BrushTypeLinearGradient, brushProps)
	f.logger().Debug("paint: created linear gradient brush",
		"start", props.StartPoint, "end", props.EndPoint)
	return b
}

// Release drops a reference and returns the new count.
func (b *LinearGradientBrush) Release() int32 {
	return b.release(b.destroy)
}

func (b *LinearGradientBrush) destroy() {
	if b.stops != nil {
		b.stops.Release()
		b.stops = nil
	}
}

// StartPoint returns the gradient start point in brush space.
func (b *LinearGradientBrush) StartPoint() Point { return b.start }

// EndPoint returns the gradient end point in brush space.
func (b *LinearGradientBrush) EndPoint() Point { return b.end }

// SetStartPoint moves the gradient start point.
func (b *LinearGradientBrush) SetStartPoint(p Point) { b.start = p }

// SetEndPoint moves the gradient end point.
func (b *LinearGradientBrush) SetEndPoint(p Point) { b.end = p }

// GradientStopCollection returns the brush's stop collection with a new
// reference added. The caller must release it. It returns nil when the
// brush was created without stops.
func (b *LinearGradientBrush) GradientStopCollection() *GradientStopCollection {
	if b.stops == nil {
		return nil
	}
	b.stops.AddRef()
	return b.stops
}

// ColorAt evaluates the brush at (x, y) in user space.
//
// The point is mapped into brush space through the inverse brush
// transform and projected onto the gradient axis. The result is a
// straight-alpha color with its alpha scaled by the brush opacity. A
// degenerate transform or a brush without stops yields Transparent.
func (b *LinearGradientBrush) ColorAt(x, y float64) RGBA {
	if b.stops == nil {
		return Transparent
	}
	inv, ok := b.transform.Inverse()
	if !ok {
		return Transparent
	}

	p := inv.TransformPoint(Pt(x, y))
	axis := b.end.Sub(b.start)

	var t float64
	if l2 := axis.LengthSquared(); l2 > 0 {
		t = p.Sub(b.start).Dot(axis) / l2
	}
	return b.stops.ColorAt(t).WithOpacity(b.opacity)
}
