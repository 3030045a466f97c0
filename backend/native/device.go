//go:build !nogpu

// Package native implements gpucore.Device on top of gogpu/wgpu/hal.
package native

import (
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/paint/gpucore"
)

// texture pairs a HAL texture with the descriptor it was created from.
type texture struct {
	raw  hal.Texture
	desc gpucore.TextureDescriptor
}

// PixelState is the pixel-stage binding state resolved to HAL objects.
// A renderer turns it into a bind group when it records a draw.
type PixelState struct {
	BlendState      *gputypes.BlendState
	BlendFactor     gputypes.Color
	SampleMask      uint32
	Shader          hal.ShaderModule
	Textures        map[uint32]hal.TextureView
	Samplers        map[uint32]hal.Sampler
	ConstantBuffers map[uint32]hal.Buffer
}

// Device implements gpucore.Device using a HAL device and queue directly.
//
// Thread Safety: Device is safe for concurrent use from multiple goroutines.
// All resource operations are protected by a mutex.
type Device struct {
	mu     sync.RWMutex
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	// ID generation
	nextID atomic.Uint64

	// Resource tracking maps gpucore IDs to hal resources
	buffers  map[gpucore.BufferID]hal.Buffer
	textures map[gpucore.TextureID]*texture
	views    map[gpucore.TextureViewID]hal.TextureView
	samplers map[gpucore.SamplerID]hal.Sampler
	shaders  map[gpucore.ShaderID]hal.ShaderModule

	state PixelState

	// release tears down the instance and device when Device owns them.
	release func()
}

// NewDevice wraps a HAL device and queue. The caller keeps ownership of
// both; Close destroys only the resources created through the Device.
func NewDevice(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) *Device {
	d := &Device{
		device:   device,
		queue:    queue,
		format:   format,
		buffers:  make(map[gpucore.BufferID]hal.Buffer),
		textures: make(map[gpucore.TextureID]*texture),
		views:    make(map[gpucore.TextureViewID]hal.TextureView),
		samplers: make(map[gpucore.SamplerID]hal.Sampler),
		shaders:  make(map[gpucore.ShaderID]hal.ShaderModule),
		state:    newPixelState(),
	}

	// Start ID generation at 1 (0 is invalid)
	d.nextID.Store(1)

	return d
}

func newPixelState() PixelState {
	return PixelState{
		SampleMask:      gpucore.DefaultSampleMask,
		Textures:        make(map[uint32]hal.TextureView),
		Samplers:        make(map[uint32]hal.Sampler),
		ConstantBuffers: make(map[uint32]hal.Buffer),
	}
}

// newID generates a unique resource ID.
func (d *Device) newID() uint64 {
	return d.nextID.Add(1) - 1
}

// SetLogger routes backend diagnostics to l.
// paint.NewTarget calls it with the paint package logger.
func (d *Device) SetLogger(l *slog.Logger) {
	setLogger(l)
}

// TargetFormat returns the color format of the surface this device renders to.
func (d *Device) TargetFormat() gputypes.TextureFormat {
	return d.format
}

// HalDevice returns the underlying HAL device.
func (d *Device) HalDevice() hal.Device { return d.device }

// HalQueue returns the underlying HAL queue.
func (d *Device) HalQueue() hal.Queue { return d.queue }

// === Buffers ===

// CreateBuffer creates a buffer and uploads data when it is non-nil.
// CopyDst is added to the HAL usage so the initial upload can go through
// the queue.
func (d *Device) CreateBuffer(desc *gpucore.BufferDescriptor, data []byte) (gpucore.BufferID, error) {
	if desc == nil || desc.Size == 0 {
		return gpucore.InvalidID, ErrInvalidSize
	}
	if uint64(len(data)) > desc.Size {
		return gpucore.InvalidID, fmt.Errorf("native: %d bytes of data for a %d byte buffer: %w",
			len(data), desc.Size, ErrInvalidSize)
	}

	usage := desc.Usage
	if data != nil {
		usage |= gputypes.BufferUsageCopyDst
	}

	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label,
		Size:  desc.Size,
		Usage: usage,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create buffer %q: %w", desc.Label, err)
	}
	if len(data) > 0 {
		d.queue.WriteBuffer(buf, 0, data)
	}

	id := gpucore.BufferID(d.newID())

	d.mu.Lock()
	d.buffers[id] = buf
	d.mu.Unlock()

	return id, nil
}

// DestroyBuffer releases a buffer.
func (d *Device) DestroyBuffer(id gpucore.BufferID) {
	d.mu.Lock()
	buf, ok := d.buffers[id]
	if ok {
		delete(d.buffers, id)
	}
	d.mu.Unlock()

	if ok {
		d.device.DestroyBuffer(buf)
	}
}

// === Textures ===

// CreateTexture creates a single-mip 2D texture and uploads tightly packed
// rows when data is non-nil.
func (d *Device) CreateTexture(desc *gpucore.TextureDescriptor, data []byte) (gpucore.TextureID, error) {
	if desc == nil || desc.Width == 0 || desc.Height == 0 {
		return gpucore.InvalidID, ErrInvalidSize
	}

	usage := desc.Usage
	if usage == 0 {
		usage = gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst
	}
	if data != nil {
		usage |= gputypes.TextureUsageCopyDst
	}

	size := hal.Extent3D{
		Width:              desc.Width,
		Height:             desc.Height,
		DepthOrArrayLayers: 1,
	}

	raw, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         desc.Label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         usage,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create texture %q: %w", desc.Label, err)
	}

	if len(data) > 0 {
		d.queue.WriteTexture(
			&hal.ImageCopyTexture{
				Texture:  raw,
				MipLevel: 0,
			},
			data,
			&hal.ImageDataLayout{
				Offset:       0,
				BytesPerRow:  desc.BytesPerRow(),
				RowsPerImage: desc.Height,
			},
			&size,
		)
	}

	id := gpucore.TextureID(d.newID())

	d.mu.Lock()
	d.textures[id] = &texture{raw: raw, desc: *desc}
	d.mu.Unlock()

	return id, nil
}

// DestroyTexture releases a texture.
func (d *Device) DestroyTexture(id gpucore.TextureID) {
	d.mu.Lock()
	tex, ok := d.textures[id]
	if ok {
		delete(d.textures, id)
	}
	d.mu.Unlock()

	if ok {
		d.device.DestroyTexture(tex.raw)
	}
}

// CreateTextureView creates a 2D view covering the whole texture.
func (d *Device) CreateTextureView(id gpucore.TextureID) (gpucore.TextureViewID, error) {
	d.mu.RLock()
	tex, ok := d.textures[id]
	d.mu.RUnlock()

	if !ok {
		return gpucore.InvalidID, fmt.Errorf("%w: %d", ErrUnknownTexture, id)
	}

	label := tex.desc.Label
	if label != "" {
		label += "_view"
	}

	view, err := d.device.CreateTextureView(tex.raw, &hal.TextureViewDescriptor{
		Label:         label,
		Format:        tex.desc.Format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create texture view: %w", err)
	}

	vid := gpucore.TextureViewID(d.newID())

	d.mu.Lock()
	d.views[vid] = view
	d.mu.Unlock()

	return vid, nil
}

// DestroyTextureView releases a texture view.
func (d *Device) DestroyTextureView(id gpucore.TextureViewID) {
	d.mu.Lock()
	view, ok := d.views[id]
	if ok {
		delete(d.views, id)
	}
	d.mu.Unlock()

	if ok {
		d.device.DestroyTextureView(view)
	}
}

// === Samplers ===

// CreateSampler creates a sampler. Only addressing and filtering are
// forwarded: bitmaps carry a single mip level and the brush subsystem
// never samples with comparison.
func (d *Device) CreateSampler(desc *gpucore.SamplerDescriptor) (gpucore.SamplerID, error) {
	if desc == nil {
		return gpucore.InvalidID, fmt.Errorf("native: nil sampler descriptor")
	}

	sampler, err := d.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        desc.Label,
		AddressModeU: desc.AddressModeU,
		AddressModeV: desc.AddressModeV,
		AddressModeW: desc.AddressModeW,
		MagFilter:    desc.MagFilter,
		MinFilter:    desc.MinFilter,
		MipmapFilter: desc.MipmapFilter,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create sampler %q: %w", desc.Label, err)
	}

	id := gpucore.SamplerID(d.newID())

	d.mu.Lock()
	d.samplers[id] = sampler
	d.mu.Unlock()

	slogger().Debug("native: sampler created", "id", id,
		"u", desc.AddressModeU, "v", desc.AddressModeV, "filter", desc.MinFilter)

	return id, nil
}

// DestroySampler releases a sampler.
func (d *Device) DestroySampler(id gpucore.SamplerID) {
	d.mu.Lock()
	sampler, ok := d.samplers[id]
	if ok {
		delete(d.samplers, id)
	}
	d.mu.Unlock()

	if ok {
		d.device.DestroySampler(sampler)
	}
}

// === Shaders ===

// CreatePixelShader creates a shader module from SPIR-V bytecode.
func (d *Device) CreatePixelShader(label string, spirv []uint32) (gpucore.ShaderID, error) {
	if len(spirv) == 0 {
		return gpucore.InvalidID, ErrEmptyShader
	}

	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: spirv,
		},
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create shader module %q: %w", label, err)
	}

	id := gpucore.ShaderID(d.newID())

	d.mu.Lock()
	d.shaders[id] = module
	d.mu.Unlock()

	return id, nil
}

// DestroyPixelShader releases a shader module.
func (d *Device) DestroyPixelShader(id gpucore.ShaderID) {
	d.mu.Lock()
	module, ok := d.shaders[id]
	if ok {
		delete(d.shaders, id)
	}
	d.mu.Unlock()

	if ok {
		d.device.DestroyShaderModule(module)
	}
}

// === Pixel-stage binding ===

// SetBlendState records the blend state for the next pipeline.
func (d *Device) SetBlendState(state *gputypes.BlendState, factor gputypes.Color, sampleMask uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if state != nil {
		s := *state
		state = &s
	}
	d.state.BlendState = state
	d.state.BlendFactor = factor
	d.state.SampleMask = sampleMask
}

// SetPixelShader binds a shader module. Unknown IDs unbind.
func (d *Device) SetPixelShader(id gpucore.ShaderID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state.Shader = d.shaders[id]
}

// SetPixelTextures binds texture views starting at slot start.
// InvalidID or an unknown ID clears the slot.
func (d *Device) SetPixelTextures(start uint32, views ...gpucore.TextureViewID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, id := range views {
		slot := start + uint32(i)
		if v, ok := d.views[id]; ok {
			d.state.Textures[slot] = v
		} else {
			delete(d.state.Textures, slot)
		}
	}
}

// SetPixelSamplers binds samplers starting at slot start.
func (d *Device) SetPixelSamplers(start uint32, samplers ...gpucore.SamplerID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, id := range samplers {
		slot := start + uint32(i)
		if s, ok := d.samplers[id]; ok {
			d.state.Samplers[slot] = s
		} else {
			delete(d.state.Samplers, slot)
		}
	}
}

// SetPixelConstantBuffers binds uniform buffers starting at slot start.
func (d *Device) SetPixelConstantBuffers(start uint32, buffers ...gpucore.BufferID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, id := range buffers {
		slot := start + uint32(i)
		if b, ok := d.buffers[id]; ok {
			d.state.ConstantBuffers[slot] = b
		} else {
			delete(d.state.ConstantBuffers, slot)
		}
	}
}

// PixelState returns a snapshot of the current binding state.
func (d *Device) PixelState() PixelState {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s := d.state
	s.Textures = maps.Clone(d.state.Textures)
	s.Samplers = maps.Clone(d.state.Samplers)
	s.ConstantBuffers = maps.Clone(d.state.ConstantBuffers)
	return s
}

// Live returns the number of resources created and not yet destroyed.
func (d *Device) Live() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.buffers) + len(d.textures) + len(d.views) + len(d.samplers) + len(d.shaders)
}

// Close destroys every resource still owned by the device. Leftovers are
// reported at Warn level since they indicate a missing Release.
// If the Device opened its own HAL device, that is destroyed too.
func (d *Device) Close() {
	d.mu.Lock()
	buffers, textures, views, samplers, shaders := d.buffers, d.textures, d.views, d.samplers, d.shaders
	d.buffers = make(map[gpucore.BufferID]hal.Buffer)
	d.textures = make(map[gpucore.TextureID]*texture)
	d.views = make(map[gpucore.TextureViewID]hal.TextureView)
	d.samplers = make(map[gpucore.SamplerID]hal.Sampler)
	d.shaders = make(map[gpucore.ShaderID]hal.ShaderModule)
	d.state = newPixelState()
	release := d.release
	d.release = nil
	d.mu.Unlock()

	if n := len(buffers) + len(textures) + len(views) + len(samplers) + len(shaders); n > 0 {
		slogger().Warn("native: destroying leaked resources",
			"buffers", len(buffers), "textures", len(textures), "views", len(views),
			"samplers", len(samplers), "shaders", len(shaders))
	}

	for _, v := range views {
		d.device.DestroyTextureView(v)
	}
	for _, t := range textures {
		d.device.DestroyTexture(t.raw)
	}
	for _, b := range buffers {
		d.device.DestroyBuffer(b)
	}
	for _, s := range samplers {
		d.device.DestroySampler(s)
	}
	for _, m := range shaders {
		d.device.DestroyShaderModule(m)
	}

	if release != nil {
		release()
	}
}

var _ gpucore.Device = (*Device)(nil)
