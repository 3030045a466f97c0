package paint

import "errors"

// Package errors.
var (
	// ErrOutOfMemory is returned when a gradient stop array cannot be
	// allocated. Construction is aborted and nothing partially built is left
	// behind. GPU resource failures wrap the device's own error instead.
	ErrOutOfMemory = errors.New("paint: out of memory")

	// ErrNotImplemented is returned when a brush type reaches a code path
	// that has no implementation for it, such as the constant-buffer path
	// for linear gradients.
	ErrNotImplemented = errors.New("paint: not implemented")

	// ErrInvalidUsage is the panic value for contract violations: narrowing
	// a brush that was not created by a Factory, or releasing an object
	// more times than it was referenced.
	ErrInvalidUsage = errors.New("paint: invalid usage")

	// ErrNoBitmap is returned when a bitmap brush without a bitmap is
	// asked for its constant buffer.
	ErrNoBitmap = errors.New("paint: bitmap brush has no bitmap")

	// ErrNilDevice is returned when a device-backed operation is given a
	// nil device.
	ErrNilDevice = errors.New("paint: nil device")

	// ErrInvalidDimensions is returned when a bitmap has a zero or negative
	// size or DPI.
	ErrInvalidDimensions = errors.New("paint: invalid dimensions")
)
