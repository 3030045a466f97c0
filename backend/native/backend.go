//go:build !nogpu

package native

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/paint/backend"
	"github.com/gogpu/paint/gpucore"
)

// Backend adapts Open to the backend registry.
type Backend struct {
	device *Device
}

// init registers the native backend on package import.
func init() {
	backend.Register(backend.BackendNative, func() backend.DeviceBackend {
		return &Backend{}
	})
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendNative
}

// Init opens a GPU device rendering to BGRA8.
func (b *Backend) Init() error {
	if b.device != nil {
		return nil
	}
	d, err := Open(gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		return err
	}
	b.device = d
	return nil
}

// Close destroys the device and every resource left on it.
func (b *Backend) Close() {
	if b.device != nil {
		b.device.Close()
		b.device = nil
	}
}

// Device returns the opened device, or nil before Init.
func (b *Backend) Device() gpucore.Device {
	if b.device == nil {
		return nil
	}
	return b.device
}

// Native returns the concrete device.
func (b *Backend) Native() *Device {
	return b.device
}
