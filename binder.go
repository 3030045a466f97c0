package paint

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"honnef.co/go/safeish"

	"github.com/gogpu/paint/gpucore"
)

// solidConstants is the pixel constant buffer for solid color brushes:
// one premultiplied color.
type solidConstants struct {
	color [4]float32
}

// bitmapConstants is the pixel constant buffer for bitmap brushes. It
// carries the inverse of the combined brush-to-device transform in two
// std140 rows, the brush opacity and the ignore-alpha flag.
type bitmapConstants struct {
	row0        [4]float32 // _11, _21, _31, pad
	row1        [3]float32 // _12, _22, _32
	opacity     float32
	ignoreAlpha uint32
	_           [3]uint32
}

// PixelConstants computes the pixel constant buffer payload for b when
// drawn on rt. It does not touch the device.
//
// Solid brushes produce the color with alpha scaled by opacity and RGB
// premultiplied by that alpha. Bitmap brushes produce the inverse of the
// combined DPI-scaled world transform and bitmap-scaled brush transform;
// when that transform is degenerate the matrix fields stay zero. A bitmap
// brush without a bitmap fails with ErrNoBitmap. Every other brush type
// fails with ErrNotImplemented.
func PixelConstants(b Brush, rt RenderTarget) ([]byte, error) {
	base := brushOf(b)
	if base == nil {
		return nil, fmt.Errorf("%w: nil brush", ErrInvalidUsage)
	}
	log := base.factory.logger()

	switch v := b.(type) {
	case *SolidColorBrush:
		c := v.color
		a := c.A * base.opacity
		cb := solidConstants{color: [4]float32{
			float32(c.R * a),
			float32(c.G * a),
			float32(c.B * a),
			float32(a),
		}}
		return safeish.AsBytes(&cb), nil

	case *BitmapBrush:
		cb, err := v.constants(rt, log)
		if err != nil {
			return nil, err
		}
		return safeish.AsBytes(&cb), nil

	default:
		log.Warn("paint: brush type has no constant buffer", "type", base.typ)
		return nil, fmt.Errorf("%w: constant buffer for %v brush", ErrNotImplemented, base.typ)
	}
}

func (b *BitmapBrush) constants(rt RenderTarget, log *slog.Logger) (bitmapConstants, error) {
	bm := b.bitmap
	if bm == nil {
		return bitmapConstants{}, ErrNoBitmap
	}

	dpiX, dpiY := rt.DPI()
	world := rt.Transform().ScaleRows(dpiX/DefaultDPI, dpiY/DefaultDPI)
	local := b.transform.ScaleLinear(
		float64(bm.width)*DefaultDPI/bm.dpiX,
		float64(bm.height)*DefaultDPI/bm.dpiY,
	)
	combined := world.Multiply(local)

	var cb bitmapConstants
	if inv, ok := combined.Inverse(); ok {
		cb.row0 = [4]float32{float32(inv.A), float32(inv.B), float32(inv.C), 0}
		cb.row1 = [3]float32{float32(inv.D), float32(inv.E), float32(inv.F)}
	} else {
		log.Debug("paint: degenerate bitmap brush transform", "transform", combined)
	}
	cb.opacity = float32(b.opacity)
	if bm.format.AlphaMode == AlphaModeIgnore {
		cb.ignoreAlpha = 1
	}
	return cb, nil
}

// CreatePixelConstantBuffer uploads the PixelConstants payload for b into
// a new immutable uniform buffer on rt's device. The caller owns the
// buffer and must destroy it after the draw.
func CreatePixelConstantBuffer(b Brush, rt RenderTarget) (gpucore.BufferID, error) {
	data, err := PixelConstants(b, rt)
	if err != nil {
		return gpucore.InvalidID, err
	}

	desc := &gpucore.BufferDescriptor{
		Label: "paint_brush_constants",
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageUniform,
	}
	id, err := rt.Device().CreateBuffer(desc, data)
	if err != nil {
		b.base().factory.logger().Error("paint: failed to create constant buffer", "size", len(data), "err", err)
		return gpucore.InvalidID, fmt.Errorf("paint: create constant buffer: %w", err)
	}
	return id, nil
}

// BindResources binds the pixel-stage state needed to draw shape with b.
//
// The target's blend state is bound with a blend factor of one and all
// samples enabled, then the pixel shader for (shape, brush type). A
// missing shader is logged and unbinds the pixel shader. Bitmap brushes
// additionally bind their bitmap's view at texture slot 0 and their
// cached sampler at sampler slot 0, creating the sampler on first use.
// Solid brushes need nothing further.
func BindResources(b Brush, rt RenderTarget, shape ShapeType) {
	base := brushOf(b)
	if base == nil {
		return
	}
	log := base.factory.logger()
	dev := rt.Device()

	blend := rt.BlendState()
	dev.SetBlendState(&blend, gputypes.Color{R: 1, G: 1, B: 1, A: 1}, gpucore.DefaultSampleMask)

	ps := rt.PixelShader(shape, base.typ)
	if ps == gpucore.InvalidID {
		log.Warn("paint: no pixel shader", "shape", shape, "brush", base.typ)
	}
	dev.SetPixelShader(ps)

	if bb, ok := b.(*BitmapBrush); ok {
		bb.bindResources(dev, log)
	}
}

func (b *BitmapBrush) bindResources(dev gpucore.Device, log *slog.Logger) {
	var view gpucore.TextureViewID
	if b.bitmap != nil {
		view = b.bitmap.view
	}
	dev.SetPixelTextures(0, view)

	sampler, err := b.samplerFor(dev)
	if err != nil {
		log.Error("paint: binding without a sampler", "err", err)
	}
	dev.SetPixelSamplers(0, sampler)
}

// Bind performs the full per-draw binding for b: it creates the pixel
// constant buffer, binds it at constant buffer slot 0 and then calls
// BindResources. The returned buffer belongs to the caller.
func Bind(b Brush, rt RenderTarget, shape ShapeType) (gpucore.BufferID, error) {
	buf, err := CreatePixelConstantBuffer(b, rt)
	if err != nil {
		return gpucore.InvalidID, err
	}
	rt.Device().SetPixelConstantBuffers(0, buf)
	BindResources(b, rt, shape)
	return buf, nil
}

// samplerDescriptor builds the sampler for a bitmap brush's sampling
// properties.
func samplerDescriptor(p BitmapBrushProperties, log *slog.Logger) *gpucore.SamplerDescriptor {
	filter := gputypes.FilterModeLinear
	if p.InterpolationMode == InterpolationNearestNeighbor {
		filter = gputypes.FilterModeNearest
	}
	return &gpucore.SamplerDescriptor{
		Label:        "paint_bitmap_brush_sampler",
		AddressModeU: addressMode(p.ExtendModeX, log),
		AddressModeV: addressMode(p.ExtendModeY, log),
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filter,
		MinFilter:    filter,
		MipmapFilter: filter,
		LodMinClamp:  0,
		LodMaxClamp:  0,
		Compare:      gputypes.CompareFunctionNever,
		Anisotropy:   0,
	}
}

// addressMode maps an extend mode to a sampler address mode. Unknown
// modes fall back to clamping.
func addressMode(mode ExtendMode, log *slog.Logger) gputypes.AddressMode {
	switch mode {
	case ExtendClamp:
		return gputypes.AddressModeClampToEdge
	case ExtendWrap:
		return gputypes.AddressModeRepeat
	case ExtendMirror:
		return gputypes.AddressModeMirrorRepeat
	default:
		log.Warn("paint: unsupported extend mode, clamping", "mode", mode)
		return gputypes.AddressModeClampToEdge
	}
}
