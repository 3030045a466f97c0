package paint

import (
	"fmt"
	"reflect"

	"github.com/gogpu/paint/gpucore"
)

// InterpolationMode selects how a bitmap is filtered when sampled.
type InterpolationMode uint8

const (
	// InterpolationNearestNeighbor samples the nearest texel.
	InterpolationNearestNeighbor InterpolationMode = iota
	// InterpolationLinear blends neighbouring texels.
	InterpolationLinear
)

// String returns the interpolation mode name.
func (m InterpolationMode) String() string {
	switch m {
	case InterpolationNearestNeighbor:
		return "NearestNeighbor"
	case InterpolationLinear:
		return "Linear"
	default:
		return fmt.Sprintf("InterpolationMode(%d)", uint8(m))
	}
}

// BitmapBrushProperties holds the sampling properties of a bitmap brush.
type BitmapBrushProperties struct {
	ExtendModeX       ExtendMode
	ExtendModeY       ExtendMode
	InterpolationMode InterpolationMode
}

// DefaultBitmapBrushProperties returns clamp addressing on both axes and
// linear filtering.
func DefaultBitmapBrushProperties() BitmapBrushProperties {
	return BitmapBrushProperties{
		ExtendModeX:       ExtendClamp,
		ExtendModeY:       ExtendClamp,
		InterpolationMode: InterpolationLinear,
	}
}

// BitmapBrush paints with a bitmap.
//
// The brush lazily creates a device sampler the first time it is bound and
// caches it. Changing the extend modes or interpolation mode drops the
// cached sampler so the next bind builds a new one.
type BitmapBrush struct {
	brush
	bitmap *Bitmap
	props  BitmapBrushProperties

	sampler       gpucore.SamplerID
	samplerDevice gpucore.Device
}

// CreateBitmapBrush creates a bitmap brush.
//
// bitmap may be nil; the brush then holds no bitmap until SetBitmap. A
// non-nil bitmap gains a reference held by the brush. A nil props means
// clamp/clamp/linear; a nil brushProps means full opacity and the identity
// transform.
func (f *Factory) CreateBitmapBrush(bitmap *Bitmap, props *BitmapBrushProperties, brushProps *BrushProperties) *BitmapBrush {
	p := DefaultBitmapBrushProperties()
	if props != nil {
		p = *props
	}

	b := &BitmapBrush{bitmap: bitmap, props: p}
	if bitmap != nil {
		bitmap.AddRef()
	}
	b.init(f, BrushTypeBitmap, brushProps)
	f.logger().Debug("paint: created bitmap brush",
		"extend_x", p.ExtendModeX, "extend_y", p.ExtendModeY, "interpolation", p.InterpolationMode)
	return b
}

// Release drops a reference and returns the new count.
func (b *BitmapBrush) Release() int32 {
	return b.release(b.destroy)
}

// destroy releases the cached sampler, then the bitmap.
func (b *BitmapBrush) destroy() {
	b.invalidateSampler()
	if b.bitmap != nil {
		b.bitmap.Release()
		b.bitmap = nil
	}
}

// Bitmap returns the brush's bitmap with a new reference added, or nil.
// The caller must release a non-nil result.
func (b *BitmapBrush) Bitmap() *Bitmap {
	if b.bitmap == nil {
		return nil
	}
	b.bitmap.AddRef()
	return b.bitmap
}

// SetBitmap replaces the brush's bitmap. The new bitmap gains a reference
// before the old one loses its reference, so setting the current bitmap
// again is safe. nil clears the bitmap.
func (b *BitmapBrush) SetBitmap(bitmap *Bitmap) {
	if bitmap != nil {
		bitmap.AddRef()
	}
	if b.bitmap != nil {
		b.bitmap.Release()
	}
	b.bitmap = bitmap
}

// ExtendModeX returns the horizontal extend mode.
func (b *BitmapBrush) ExtendModeX() ExtendMode { return b.props.ExtendModeX }

// ExtendModeY returns the vertical extend mode.
func (b *BitmapBrush) ExtendModeY() ExtendMode { return b.props.ExtendModeY }

// InterpolationMode returns the filtering mode.
func (b *BitmapBrush) InterpolationMode() InterpolationMode { return b.props.InterpolationMode }

// SetExtendModeX sets the horizontal extend mode and drops the cached sampler.
func (b *BitmapBrush) SetExtendModeX(mode ExtendMode) {
	b.props.ExtendModeX = mode
	b.invalidateSampler()
}

// SetExtendModeY sets the vertical extend mode and drops the cached sampler.
func (b *BitmapBrush) SetExtendModeY(mode ExtendMode) {
	b.props.ExtendModeY = mode
	b.invalidateSampler()
}

// SetInterpolationMode sets the filtering mode and drops the cached sampler.
func (b *BitmapBrush) SetInterpolationMode(mode InterpolationMode) {
	b.props.InterpolationMode = mode
	b.invalidateSampler()
}

func (b *BitmapBrush) invalidateSampler() {
	if b.sampler == gpucore.InvalidID {
		return
	}
	b.samplerDevice.DestroySampler(b.sampler)
	b.factory.logger().Debug("paint: dropped cached sampler", "sampler", b.sampler)
	b.sampler = gpucore.InvalidID
	b.samplerDevice = nil
}

// samplerFor returns the cached sampler for dev, creating it on first use.
// A sampler cached for another device is dropped first.
func (b *BitmapBrush) samplerFor(dev gpucore.Device) (gpucore.SamplerID, error) {
	if b.sampler != gpucore.InvalidID && sameDevice(b.samplerDevice, dev) {
		return b.sampler, nil
	}
	b.invalidateSampler()

	desc := samplerDescriptor(b.props, b.factory.logger())
	id, err := dev.CreateSampler(desc)
	if err != nil {
		b.factory.logger().Error("paint: failed to create sampler", "err", err)
		return gpucore.InvalidID, fmt.Errorf("paint: create sampler: %w", err)
	}
	b.sampler = id
	b.samplerDevice = dev
	b.factory.logger().Debug("paint: created sampler", "sampler", id,
		"address_u", desc.AddressModeU, "address_v", desc.AddressModeV, "filter", desc.MagFilter)
	return id, nil
}

// sameDevice reports whether a and b are the same device. Devices of a
// non-comparable dynamic type never match, so their samplers are rebuilt
// on every bind.
func sameDevice(a, b gpucore.Device) bool {
	if a == nil || b == nil {
		return false
	}
	va := reflect.ValueOf(a)
	if va.Type() != reflect.TypeOf(b) || !va.Comparable() {
		return false
	}
	return a == b
}
