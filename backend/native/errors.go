//go:build !nogpu

package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNoGPU is returned when no GPU adapter is available.
	ErrNoGPU = errors.New("native: no GPU adapter available")

	// ErrNotHALProvider is returned when a device provider does not expose
	// HAL device and queue handles.
	ErrNotHALProvider = errors.New("native: provider does not expose HAL types")

	// ErrInvalidSize is returned when a buffer or texture has a zero size.
	ErrInvalidSize = errors.New("native: invalid resource size")

	// ErrUnknownTexture is returned when a view is requested for a texture
	// this device did not create.
	ErrUnknownTexture = errors.New("native: unknown texture")

	// ErrEmptyShader is returned when a pixel shader has no SPIR-V code.
	ErrEmptyShader = errors.New("native: empty SPIR-V bytecode")
)
