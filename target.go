package paint

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/paint/gpucore"
)

// ShapeType is the category of geometry being rasterized. Each shape type
// has its own vertex layout, so pixel shaders are keyed by shape type and
// brush type together.
type ShapeType uint8

const (
	// ShapeTriangle is plain triangulated geometry.
	ShapeTriangle ShapeType = iota
	// ShapeBezier is curved geometry evaluated per pixel.
	ShapeBezier
)

// String returns the shape type name.
func (s ShapeType) String() string {
	switch s {
	case ShapeTriangle:
		return "Triangle"
	case ShapeBezier:
		return "Bezier"
	default:
		return fmt.Sprintf("ShapeType(%d)", uint8(s))
	}
}

// ShaderKey selects a pixel shader from a render target's shader table.
type ShaderKey struct {
	Shape ShapeType
	Brush BrushType
}

// PixelShaderTable maps (shape, brush) combinations to pixel shaders.
type PixelShaderTable map[ShaderKey]gpucore.ShaderID

// RenderTarget is the render-target state the binder consumes.
type RenderTarget interface {
	// Device returns the device brushes are bound on.
	Device() gpucore.Device
	// Transform returns the current world transform in DIPs.
	Transform() Matrix
	// DPI returns the horizontal and vertical DPI.
	DPI() (x, y float64)
	// PixelShader returns the pixel shader for a shape and brush type, or
	// gpucore.InvalidID when the table has no entry.
	PixelShader(shape ShapeType, brush BrushType) gpucore.ShaderID
	// BlendState returns the blend state bound for every brush.
	BlendState() gputypes.BlendState
}

// Target is a concrete RenderTarget over a gpucore.Device.
//
// Target is not safe for concurrent use.
type Target struct {
	device     gpucore.Device
	transform  Matrix
	dpiX, dpiY float64
	blend      gputypes.BlendState
	shaders    PixelShaderTable
}

// NewTarget creates a render target on dev with identity transform,
// 96 DPI and premultiplied-alpha blending. The package logger is passed
// to dev when it accepts one.
func NewTarget(dev gpucore.Device, opts ...TargetOption) (*Target, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}

	t := &Target{
		device:    dev,
		transform: Identity(),
		dpiX:      DefaultDPI,
		dpiY:      DefaultDPI,
		blend:     gputypes.BlendStatePremultiplied(),
		shaders:   make(PixelShaderTable),
	}
	for _, opt := range opts {
		opt(t)
	}

	propagateLogger(dev, Logger())
	return t, nil
}

// Device returns the target's device.
func (t *Target) Device() gpucore.Device { return t.device }

// Transform returns the world transform.
func (t *Target) Transform() Matrix { return t.transform }

// SetTransform replaces the world transform.
func (t *Target) SetTransform(m Matrix) { t.transform = m }

// DPI returns the horizontal and vertical DPI.
func (t *Target) DPI() (x, y float64) { return t.dpiX, t.dpiY }

// SetDPI sets the DPI. Non-positive values are replaced by DefaultDPI.
func (t *Target) SetDPI(x, y float64) {
	if x <= 0 {
		x = DefaultDPI
	}
	if y <= 0 {
		y = DefaultDPI
	}
	t.dpiX, t.dpiY = x, y
}

// BlendState returns the blend state bound for every brush.
func (t *Target) BlendState() gputypes.BlendState { return t.blend }

// PixelShader returns the shader for (shape, brush) or gpucore.InvalidID.
func (t *Target) PixelShader(shape ShapeType, brush BrushType) gpucore.ShaderID {
	return t.shaders[ShaderKey{Shape: shape, Brush: brush}]
}

// SetPixelShader installs a shader table entry. InvalidID removes it.
func (t *Target) SetPixelShader(shape ShapeType, brush BrushType, id gpucore.ShaderID) {
	key := ShaderKey{Shape: shape, Brush: brush}
	if id == gpucore.InvalidID {
		delete(t.shaders, key)
		return
	}
	t.shaders[key] = id
}
