package backend

import (
	"errors"

	"github.com/gogpu/paint/gpucore"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// DeviceBackend is the interface for device backends.
// It abstracts where paint's GPU resources live, allowing render targets
// to be created on a real GPU or on an in-memory recorder.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type DeviceBackend interface {
	// Name returns the backend identifier (e.g., "native", "recording").
	Name() string

	// Init initializes the backend.
	// This should be called before Device.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// Device returns the device render targets are created on, or nil
	// before Init.
	Device() gpucore.Device
}
