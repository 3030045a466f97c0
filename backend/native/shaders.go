//go:build !nogpu

package native

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/gpucore"
	"github.com/gogpu/paint/internal/spirv"
)

//go:embed shaders/solid_triangle.wgsl
var solidTriangleWGSL string

//go:embed shaders/solid_bezier.wgsl
var solidBezierWGSL string

//go:embed shaders/bitmap_triangle.wgsl
var bitmapTriangleWGSL string

//go:embed shaders/bitmap_bezier.wgsl
var bitmapBezierWGSL string

// pixelShader is one entry of the built-in pixel shader set.
type pixelShader struct {
	key    paint.ShaderKey
	label  string
	source string
}

// pixelShaders lists the shaders the brush binder selects from. Linear
// gradient brushes have no entry: their constant buffer is not built yet.
var pixelShaders = []pixelShader{
	{paint.ShaderKey{Shape: paint.ShapeTriangle, Brush: paint.BrushTypeSolid}, "paint_solid_triangle", solidTriangleWGSL},
	{paint.ShaderKey{Shape: paint.ShapeBezier, Brush: paint.BrushTypeSolid}, "paint_solid_bezier", solidBezierWGSL},
	{paint.ShaderKey{Shape: paint.ShapeTriangle, Brush: paint.BrushTypeBitmap}, "paint_bitmap_triangle", bitmapTriangleWGSL},
	{paint.ShaderKey{Shape: paint.ShapeBezier, Brush: paint.BrushTypeBitmap}, "paint_bitmap_bezier", bitmapBezierWGSL},
}

// LoadPixelShaders compiles the built-in pixel shaders and creates them on
// dev. The result plugs into paint.WithPixelShaders. Compiled SPIR-V is
// shared across devices through spirv.Default. On error every shader
// created so far is destroyed.
func LoadPixelShaders(dev gpucore.Device) (paint.PixelShaderTable, error) {
	table := make(paint.PixelShaderTable, len(pixelShaders))
	for _, ps := range pixelShaders {
		code, err := spirv.Default.Compile(ps.source)
		if err != nil {
			ReleasePixelShaders(dev, table)
			return nil, fmt.Errorf("native: %s: %w", ps.label, err)
		}
		id, err := dev.CreatePixelShader(ps.label, code)
		if err != nil {
			ReleasePixelShaders(dev, table)
			return nil, err
		}
		table[ps.key] = id
	}

	slogger().Debug("native: pixel shaders loaded", "count", len(table))
	return table, nil
}

// ReleasePixelShaders destroys every shader in table and empties it.
func ReleasePixelShaders(dev gpucore.Device, table paint.PixelShaderTable) {
	for k, id := range table {
		dev.DestroyPixelShader(id)
		delete(table, k)
	}
}
