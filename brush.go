package paint

import "fmt"

// BrushType identifies the concrete variant behind a [Brush].
// The zero value is not a valid brush type.
type BrushType uint8

const (
	// BrushTypeSolid is a single uniform color.
	BrushTypeSolid BrushType = iota + 1
	// BrushTypeLinearGradient interpolates stops along a line.
	BrushTypeLinearGradient
	// BrushTypeBitmap samples a bitmap.
	BrushTypeBitmap
)

// String returns the brush type name.
func (t BrushType) String() string {
	switch t {
	case BrushTypeSolid:
		return "Solid"
	case BrushTypeLinearGradient:
		return "LinearGradient"
	case BrushTypeBitmap:
		return "Bitmap"
	default:
		return fmt.Sprintf("BrushType(%d)", uint8(t))
	}
}

// BrushProperties holds the properties shared by every brush.
type BrushProperties struct {
	Opacity   float64
	Transform Matrix
}

// DefaultBrushProperties returns full opacity and the identity transform.
// These are the properties a brush gets when created with nil properties.
func DefaultBrushProperties() BrushProperties {
	return BrushProperties{Opacity: 1, Transform: Identity()}
}

// Brush is the capability shared by every brush variant.
//
// Brush is a sealed interface: only *SolidColorBrush, *LinearGradientBrush
// and *BitmapBrush created by a [Factory] implement it. Use
// [AsSolidColorBrush], [AsLinearGradientBrush] and [AsBitmapBrush] to reach
// the variant-specific operations.
//
// Opacity and transform are stored exactly as set: opacity is not clamped
// and the transform is not validated.
type Brush interface {
	// AddRef adds a reference and returns the new count.
	AddRef() int32
	// Release drops a reference and returns the new count. The brush is
	// destroyed when the count reaches zero.
	Release() int32
	// Factory returns the factory that created the brush with a new
	// reference added. The caller must release it.
	Factory() *Factory
	// Opacity returns the brush opacity.
	Opacity() float64
	// SetOpacity sets the brush opacity.
	SetOpacity(opacity float64)
	// Transform returns the brush transform.
	Transform() Matrix
	// SetTransform sets the brush transform.
	SetTransform(m Matrix)
	// Type returns the brush variant.
	Type() BrushType

	// base returns the shared state. Unexported to seal the interface.
	base() *brush
}

// brush is the state shared by every variant.
type brush struct {
	refs      refCount
	factory   *Factory
	typ       BrushType
	opacity   float64
	transform Matrix
}

func (b *brush) init(f *Factory, typ BrushType, props *BrushProperties) {
	p := DefaultBrushProperties()
	if props != nil {
		p = *props
	}

	b.refs.init()
	b.factory = f
	b.typ = typ
	b.opacity = p.Opacity
	b.transform = p.Transform
	f.acquire()
}

// release drops a reference. At zero it runs destroy for the variant's own
// resources, then drops the brush's reference on its factory.
func (b *brush) release(destroy func()) int32 {
	n := b.refs.release()
	b.factory.logger().Debug("paint: brush release", "type", b.typ, "refs", n)
	if n == 0 {
		if destroy != nil {
			destroy()
		}
		b.factory.relinquish()
	}
	return n
}

func (b *brush) base() *brush { return b }

func (b *brush) AddRef() int32 {
	n := b.refs.addRef()
	b.factory.logger().Debug("paint: brush addref", "type", b.typ, "refs", n)
	return n
}

func (b *brush) Factory() *Factory {
	b.factory.AddRef()
	return b.factory
}

func (b *brush) Opacity() float64 { return b.opacity }

func (b *brush) SetOpacity(opacity float64) { b.opacity = opacity }

func (b *brush) Transform() Matrix { return b.transform }

func (b *brush) SetTransform(m Matrix) { b.transform = m }

func (b *brush) Type() BrushType { return b.typ }

// brushOf returns the shared state of b after checking that b is one of
// the variants created by a Factory. A nil brush yields nil. Any other
// implementation is a contract violation and panics with ErrInvalidUsage.
func brushOf(b Brush) *brush {
	var (
		base *brush
		want BrushType
	)

	switch v := b.(type) {
	case nil:
		return nil
	case *SolidColorBrush:
		if v == nil {
			return nil
		}
		base, want = &v.brush, BrushTypeSolid
	case *LinearGradientBrush:
		if v == nil {
			return nil
		}
		base, want = &v.brush, BrushTypeLinearGradient
	case *BitmapBrush:
		if v == nil {
			return nil
		}
		base, want = &v.brush, BrushTypeBitmap
	default:
		panic(fmt.Errorf("%w: brush %T was not created by a paint.Factory", ErrInvalidUsage, b))
	}

	if base.typ != want || base.factory == nil {
		panic(fmt.Errorf("%w: %T is not an initialized %v brush", ErrInvalidUsage, b, want))
	}
	return base
}

// AsSolidColorBrush narrows b to a solid color brush.
// It returns nil when b is nil or another variant.
func AsSolidColorBrush(b Brush) *SolidColorBrush {
	if brushOf(b) == nil {
		return nil
	}
	s, _ := b.(*SolidColorBrush)
	return s
}

// AsLinearGradientBrush narrows b to a linear gradient brush.
// It returns nil when b is nil or another variant.
func AsLinearGradientBrush(b Brush) *LinearGradientBrush {
	if brushOf(b) == nil {
		return nil
	}
	l, _ := b.(*LinearGradientBrush)
	return l
}

// AsBitmapBrush narrows b to a bitmap brush.
// It returns nil when b is nil or another variant.
func AsBitmapBrush(b Brush) *BitmapBrush {
	if brushOf(b) == nil {
		return nil
	}
	bb, _ := b.(*BitmapBrush)
	return bb
}
