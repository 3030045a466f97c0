// Package paint implements brushes for a GPU 2D renderer and the binder
// that turns them into pixel-stage GPU state.
//
// # Overview
//
// A [Factory] creates three brush variants plus the objects they refer to:
//
//   - [SolidColorBrush] paints a single straight-alpha color.
//   - [LinearGradientBrush] interpolates a [GradientStopCollection] along a
//     line. It can be evaluated on the CPU but has no GPU path yet.
//   - [BitmapBrush] samples a [Bitmap] with per-axis extend modes and an
//     interpolation mode.
//
// All of them share the [Brush] interface (opacity, transform, reference
// counting). Narrow a Brush to its variant with [AsSolidColorBrush],
// [AsLinearGradientBrush] or [AsBitmapBrush].
//
// # Binding
//
// Per draw call a renderer asks the binder for two things:
//
//	buf, err := paint.CreatePixelConstantBuffer(brush, target)
//	paint.BindResources(brush, target, paint.ShapeTriangle)
//
// or both at once with [Bind]. The constant buffer holds the premultiplied
// color for solid brushes, or the inverse sampling transform, opacity and
// ignore-alpha flag for bitmap brushes. Resource binding sets the blend
// state, the pixel shader for the (shape, brush type) pair and, for
// bitmap brushes, the bitmap view and a lazily created sampler.
//
// The device is reached through [gpucore.Device]. The recording package
// provides an in-memory implementation for tests and tooling; the
// backend/native package binds to a wgpu HAL device.
//
// # Lifetime
//
// Every object starts with one reference. AddRef and Release adjust the
// count atomically; at zero the object releases what it owns (sampler,
// bitmap, stop collection, GPU textures) and then its reference on the
// factory. [Factory.LiveObjects] reports how many objects are still alive.
//
// Mutating a single brush and binding are not synchronized; callers
// serialize them per render target.
package paint
