package paint

import (
	"log/slog"

	"github.com/gogpu/gputypes"
)

// FactoryOption configures a Factory during creation.
// Use functional options to customize Factory behavior.
//
// Example:
//
//	// Default factory, logs through the package logger
//	f := paint.NewFactory()
//
//	// Factory with its own logger and a tighter stop limit
//	f := paint.NewFactory(
//	    paint.WithLogger(logger),
//	    paint.WithMaxGradientStops(256),
//	)
type FactoryOption func(*factoryOptions)

// factoryOptions holds optional configuration for Factory creation.
type factoryOptions struct {
	logger           *slog.Logger
	maxGradientStops int
}

// DefaultMaxGradientStops is the largest stop array a gradient stop
// collection accepts unless configured otherwise.
const DefaultMaxGradientStops = 1 << 16

// defaultFactoryOptions returns the default factory options.
func defaultFactoryOptions() factoryOptions {
	return factoryOptions{
		logger:           nil, // Falls back to the package logger
		maxGradientStops: DefaultMaxGradientStops,
	}
}

// WithLogger sets a logger for every object created by the Factory.
// A nil logger restores the package logger from [Logger].
func WithLogger(l *slog.Logger) FactoryOption {
	return func(o *factoryOptions) {
		o.logger = l
	}
}

// WithMaxGradientStops limits the number of stops a gradient stop
// collection may hold. Larger requests fail with [ErrOutOfMemory].
// Values <= 0 keep [DefaultMaxGradientStops].
func WithMaxGradientStops(n int) FactoryOption {
	return func(o *factoryOptions) {
		if n > 0 {
			o.maxGradientStops = n
		}
	}
}

// TargetOption configures a Target during creation.
type TargetOption func(*Target)

// WithDPI sets the target's horizontal and vertical DPI.
// Non-positive values are replaced by [DefaultDPI].
func WithDPI(x, y float64) TargetOption {
	return func(t *Target) {
		t.SetDPI(x, y)
	}
}

// WithTransform sets the target's initial world transform.
func WithTransform(m Matrix) TargetOption {
	return func(t *Target) {
		t.transform = m
	}
}

// WithBlendState overrides the blend state bound for every brush.
// The default is premultiplied-alpha source-over.
func WithBlendState(state gputypes.BlendState) TargetOption {
	return func(t *Target) {
		t.blend = state
	}
}

// WithPixelShaders seeds the target's pixel shader table.
func WithPixelShaders(shaders PixelShaderTable) TargetOption {
	return func(t *Target) {
		for k, id := range shaders {
			t.SetPixelShader(k.Shape, k.Brush, id)
		}
	}
}
