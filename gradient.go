package paint

import (
	"fmt"
	"slices"

	"github.com/gogpu/paint/internal/color"
)

// Gamma is the color space in which gradient stops are interpolated.
type Gamma uint8

const (
	// Gamma22 interpolates in gamma 2.2 (sRGB) space.
	Gamma22 Gamma = iota
	// Gamma10 interpolates in linear (gamma 1.0) space.
	Gamma10
)

// String returns the gamma name.
func (g Gamma) String() string {
	switch g {
	case Gamma22:
		return "Gamma22"
	case Gamma10:
		return "Gamma10"
	default:
		return fmt.Sprintf("Gamma(%d)", uint8(g))
	}
}

func (g Gamma) colorSpace() color.ColorSpace {
	if g == Gamma10 {
		return color.ColorSpaceLinear
	}
	return color.ColorSpaceSRGB
}

// ExtendMode defines how content is sampled outside its natural bounds.
type ExtendMode uint8

const (
	// ExtendClamp repeats the edge value.
	ExtendClamp ExtendMode = iota
	// ExtendWrap tiles the content.
	ExtendWrap
	// ExtendMirror tiles the content, flipping every other tile.
	ExtendMirror
)

// String returns the extend mode name.
func (e ExtendMode) String() string {
	switch e {
	case ExtendClamp:
		return "Clamp"
	case ExtendWrap:
		return "Wrap"
	case ExtendMirror:
		return "Mirror"
	default:
		return fmt.Sprintf("ExtendMode(%d)", uint8(e))
	}
}

// GradientStop is a color at a position along a gradient.
type GradientStop struct {
	Offset float64 // Position in [0, 1]
	Color  RGBA    // Straight alpha
}

// GradientStopCollection is an immutable, reference-counted list of
// gradient stops.
//
// Stops are kept in the order they were supplied. The gamma and extend
// mode passed at creation are recorded as declared metadata, but the
// accessors report fixed values; see [GradientStopCollection.ColorInterpolationGamma].
type GradientStopCollection struct {
	refs    refCount
	factory *Factory

	stops  []GradientStop
	ramp   []GradientStop // stops sorted by offset, for evaluation
	gamma  Gamma
	extend ExtendMode
}

// CreateGradientStopCollection copies stops into a new collection.
//
// The returned collection starts with one reference owned by the caller.
// It fails with [ErrOutOfMemory] when the stop array exceeds the factory's
// configured limit.
func (f *Factory) CreateGradientStopCollection(stops []GradientStop, gamma Gamma, extend ExtendMode) (*GradientStopCollection, error) {
	if len(stops) > f.opts.maxGradientStops {
		return nil, fmt.Errorf("%w: %d gradient stops exceeds limit of %d",
			ErrOutOfMemory, len(stops), f.opts.maxGradientStops)
	}

	if gamma != Gamma22 || extend != ExtendClamp {
		f.logger().Warn("paint: gradient gamma and extend mode are not implemented",
			"gamma", gamma, "extend", extend)
	}

	c := &GradientStopCollection{
		factory: f,
		stops:   slices.Clone(stops),
		gamma:   gamma,
		extend:  extend,
	}
	c.ramp = slices.Clone(c.stops)
	slices.SortStableFunc(c.ramp, func(a, b GradientStop) int {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}
		return 0
	})

	c.refs.init()
	f.acquire()
	f.logger().Debug("paint: created gradient stop collection", "stops", len(stops))
	return c, nil
}

// AddRef adds a reference and returns the new count.
func (c *GradientStopCollection) AddRef() int32 {
	return c.refs.addRef()
}

// Release drops a reference and returns the new count. The collection is
// destroyed when the count reaches zero.
func (c *GradientStopCollection) Release() int32 {
	n := c.refs.release()
	if n == 0 {
		c.factory.logger().Debug("paint: destroyed gradient stop collection")
		c.stops = nil
		c.ramp = nil
		c.factory.relinquish()
	}
	return n
}

// Factory returns the factory that created the collection with a new
// reference added. The caller must release it.
func (c *GradientStopCollection) Factory() *Factory {
	c.factory.AddRef()
	return c.factory
}

// StopCount returns the number of stops in the collection.
func (c *GradientStopCollection) StopCount() int {
	return len(c.stops)
}

// Stops copies the stops into dst and returns the number copied.
//
// At most min(len(dst), StopCount()) stops are copied in their original
// order. Any remaining elements of dst are reset to the zero stop.
func (c *GradientStopCollection) Stops(dst []GradientStop) int {
	n := copy(dst, c.stops)
	clear(dst[n:])
	return n
}

// ColorInterpolationGamma always reports Gamma10.
// The gamma declared at creation is not surfaced.
func (c *GradientStopCollection) ColorInterpolationGamma() Gamma {
	c.factory.logger().Warn("paint: ColorInterpolationGamma is not implemented", "declared", c.gamma)
	return Gamma10
}

// ExtendMode always reports ExtendClamp.
// The extend mode declared at creation is not surfaced.
func (c *GradientStopCollection) ExtendMode() ExtendMode {
	c.factory.logger().Warn("paint: ExtendMode is not implemented", "declared", c.extend)
	return ExtendClamp
}

// ColorAt evaluates the gradient ramp at t.
//
// t is clamped to [0, 1]. Adjacent stops are interpolated in the declared
// gamma's color space. An empty collection evaluates to Transparent.
func (c *GradientStopCollection) ColorAt(t float64) RGBA {
	ramp := c.ramp
	if len(ramp) == 0 {
		return Transparent
	}
	t = clamp01(t)

	if t <= ramp[0].Offset {
		return ramp[0].Color
	}
	last := ramp[len(ramp)-1]
	if t >= last.Offset {
		return last.Color
	}

	for i := 1; i < len(ramp); i++ {
		s0, s1 := ramp[i-1], ramp[i]
		if t > s1.Offset {
			continue
		}
		span := s1.Offset - s0.Offset
		if span <= 0 {
			return s1.Color
		}
		u := float32((t - s0.Offset) / span)
		return fromColorF32(color.Lerp(s0.Color.colorF32(), s1.Color.colorF32(), u, c.gamma.colorSpace()))
	}
	return last.Color
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func (c RGBA) colorF32() color.ColorF32 {
	return color.ColorF32{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: float32(c.A)}
}

func fromColorF32(c color.ColorF32) RGBA {
	return RGBA{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
}
