package color

import "math"

// SRGBToLinear converts an sRGB component to linear (EOTF - Electro-Optical Transfer Function).
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
// Input and output are in range [0,1].
func SRGBToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return float32(math.Pow(float64((s+0.055)/1.055), 2.4))
}

// LinearToSRGB converts a linear component to sRGB (OETF - Opto-Electronic Transfer Function).
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
// Input and output are in range [0,1].
func LinearToSRGB(l float32) float32 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*float32(math.Pow(float64(l), 1.0/2.4)) - 0.055
}

// SRGBToLinearColor converts a full color from sRGB to linear space.
// Only RGB components are converted; alpha remains linear.
func SRGBToLinearColor(c ColorF32) ColorF32 {
	return ColorF32{
		R: SRGBToLinear(c.R),
		G: SRGBToLinear(c.G),
		B: SRGBToLinear(c.B),
		A: c.A,
	}
}

// LinearToSRGBColor converts a full color from linear to sRGB space.
// Only RGB components are converted; alpha remains linear.
func LinearToSRGBColor(c ColorF32) ColorF32 {
	return ColorF32{
		R: LinearToSRGB(c.R),
		G: LinearToSRGB(c.G),
		B: LinearToSRGB(c.B),
		A: c.A,
	}
}

// Lerp interpolates between two sRGB-encoded colors at t in [0,1].
//
// Interpolation happens on premultiplied components so a transparent
// endpoint does not bleed its color into the ramp. With ColorSpaceLinear
// the endpoints are decoded to linear light first and the result is
// encoded back to sRGB. The returned color is straight alpha.
func Lerp(a, b ColorF32, t float32, space ColorSpace) ColorF32 {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}

	if space == ColorSpaceLinear {
		a = SRGBToLinearColor(a)
		b = SRGBToLinearColor(b)
	}

	pa, pb := a.Premultiply(), b.Premultiply()
	p := ColorF32{
		R: pa.R + (pb.R-pa.R)*t,
		G: pa.G + (pb.G-pa.G)*t,
		B: pa.B + (pb.B-pa.B)*t,
		A: pa.A + (pb.A-pa.A)*t,
	}

	var out ColorF32
	if p.A > 0 {
		out = ColorF32{R: p.R / p.A, G: p.G / p.A, B: p.B / p.A, A: p.A}
	}

	if space == ColorSpaceLinear {
		out = LinearToSRGBColor(out)
	}
	return out
}
