// Package color provides the color space math used to evaluate gradient
// ramps on the CPU.
package color

// ColorSpace is the space in which two colors are interpolated.
type ColorSpace uint8

const (
	// ColorSpaceSRGB interpolates gamma-encoded components directly.
	ColorSpaceSRGB ColorSpace = iota
	// ColorSpaceLinear decodes to linear light, interpolates, then re-encodes.
	ColorSpaceLinear
)

// String returns the color space name.
func (s ColorSpace) String() string {
	switch s {
	case ColorSpaceSRGB:
		return "sRGB"
	case ColorSpaceLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// ColorF32 represents a straight-alpha color with float32 components in [0,1].
// RGB components are in the color space indicated by context.
// Alpha is always linear (never gamma-encoded).
type ColorF32 struct {
	R, G, B, A float32
}

// Premultiply returns the color with RGB scaled by alpha.
func (c ColorF32) Premultiply() ColorF32 {
	return ColorF32{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}
