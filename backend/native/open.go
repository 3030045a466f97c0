//go:build !nogpu

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Open creates a HAL instance on the Vulkan backend, opens the first
// discrete or integrated GPU it finds (falling back to the first adapter)
// and returns a Device that owns both. Close tears them down.
func Open(format gputypes.TextureFormat) (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not available", ErrNoGPU)
	}
	return OpenBackend(backend, format)
}

// InstanceCreator is the part of a HAL backend Open needs.
type InstanceCreator interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// OpenBackend is Open for an explicit HAL backend.
func OpenBackend(backend InstanceCreator, format gputypes.TextureFormat) (*Device, error) {
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("native: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoGPU
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("native: open device: %w", err)
	}

	d := NewDevice(openDev.Device, openDev.Queue, format)
	d.release = func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}

	slogger().Info("native: device opened", "adapter", selected.Info.Name)
	return d, nil
}
