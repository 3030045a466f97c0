package recording

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/paint/gpucore"
)

// Errors returned by the recording device.
var (
	// ErrEmptyBuffer is returned when a buffer of size zero is requested.
	ErrEmptyBuffer = errors.New("recording: buffer size must be positive")

	// ErrDataTooLarge is returned when initial data exceeds the buffer size.
	ErrDataTooLarge = errors.New("recording: initial data larger than buffer")

	// ErrUnknownTexture is returned when a view is requested for a texture
	// that does not exist.
	ErrUnknownTexture = errors.New("recording: unknown texture")
)

// Buffer is a recorded buffer.
type Buffer struct {
	Desc gpucore.BufferDescriptor
	Data []byte
}

// Texture is a recorded texture.
type Texture struct {
	Desc gpucore.TextureDescriptor
	Data []byte
}

// State is the pixel-stage binding state of the device.
type State struct {
	BlendState      *gputypes.BlendState
	BlendFactor     gputypes.Color
	SampleMask      uint32
	PixelShader     gpucore.ShaderID
	Textures        map[uint32]gpucore.TextureViewID
	Samplers        map[uint32]gpucore.SamplerID
	ConstantBuffers map[uint32]gpucore.BufferID
}

// Live counts resources that have been created and not yet destroyed.
type Live struct {
	Buffers      int
	Textures     int
	TextureViews int
	Samplers     int
	Shaders      int
}

// Total returns the number of live resources of all kinds.
func (l Live) Total() int {
	return l.Buffers + l.Textures + l.TextureViews + l.Samplers + l.Shaders
}

// String returns a human-readable summary.
func (l Live) String() string {
	return fmt.Sprintf("Live[buffers=%d textures=%d views=%d samplers=%d shaders=%d]",
		l.Buffers, l.Textures, l.TextureViews, l.Samplers, l.Shaders)
}

// Device is an in-memory gpucore.Device.
//
// Device is safe for concurrent use.
type Device struct {
	mu sync.Mutex

	nextID uint64

	buffers  map[gpucore.BufferID]*Buffer
	textures map[gpucore.TextureID]*Texture
	views    map[gpucore.TextureViewID]gpucore.TextureID
	samplers map[gpucore.SamplerID]gpucore.SamplerDescriptor
	shaders  map[gpucore.ShaderID]string

	state    State
	commands []Command

	// failures holds injected errors keyed by creation command type.
	failures map[CommandType]error
}

var _ gpucore.Device = (*Device)(nil)

// NewDevice creates an empty recording device.
func NewDevice() *Device {
	return &Device{
		nextID:   1,
		buffers:  make(map[gpucore.BufferID]*Buffer),
		textures: make(map[gpucore.TextureID]*Texture),
		views:    make(map[gpucore.TextureViewID]gpucore.TextureID),
		samplers: make(map[gpucore.SamplerID]gpucore.SamplerDescriptor),
		shaders:  make(map[gpucore.ShaderID]string),
		state:    newState(),
		failures: make(map[CommandType]error),
	}
}

func newState() State {
	return State{
		Textures:        make(map[uint32]gpucore.TextureViewID),
		Samplers:        make(map[uint32]gpucore.SamplerID),
		ConstantBuffers: make(map[uint32]gpucore.BufferID),
	}
}

// FailNext makes the next creation command of type cmd fail with err.
func (d *Device) FailNext(cmd CommandType, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[cmd] = err
}

// takeFailure returns and clears an injected failure.
// Must be called with mu held.
func (d *Device) takeFailure(cmd CommandType) error {
	err, ok := d.failures[cmd]
	if !ok {
		return nil
	}
	delete(d.failures, cmd)
	return err
}

// newID generates a unique resource ID. Must be called with mu held.
func (d *Device) newID() uint64 {
	id := d.nextID
	d.nextID++
	return id
}

func (d *Device) record(c Command) {
	d.commands = append(d.commands, c)
}

// CreateBuffer implements gpucore.Device.
func (d *Device) CreateBuffer(desc *gpucore.BufferDescriptor, data []byte) (gpucore.BufferID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.takeFailure(CmdCreateBuffer); err != nil {
		return gpucore.InvalidID, err
	}
	if desc.Size == 0 {
		return gpucore.InvalidID, ErrEmptyBuffer
	}
	if uint64(len(data)) > desc.Size {
		return gpucore.InvalidID, fmt.Errorf("%w: %d > %d", ErrDataTooLarge, len(data), desc.Size)
	}

	id := gpucore.BufferID(d.newID())
	d.buffers[id] = &Buffer{Desc: *desc, Data: slices.Clone(data)}
	d.record(Command{Type: CmdCreateBuffer, ID: uint64(id)})
	return id, nil
}

// DestroyBuffer implements gpucore.Device.
func (d *Device) DestroyBuffer(id gpucore.BufferID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.buffers[id]; !ok {
		return
	}
	delete(d.buffers, id)
	d.record(Command{Type: CmdDestroyBuffer, ID: uint64(id)})
}

// CreateTexture implements gpucore.Device.
func (d *Device) CreateTexture(desc *gpucore.TextureDescriptor, data []byte) (gpucore.TextureID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.takeFailure(CmdCreateTexture); err != nil {
		return gpucore.InvalidID, err
	}

	id := gpucore.TextureID(d.newID())
	d.textures[id] = &Texture{Desc: *desc, Data: slices.Clone(data)}
	d.record(Command{Type: CmdCreateTexture, ID: uint64(id)})
	return id, nil
}

// DestroyTexture implements gpucore.Device.
func (d *Device) DestroyTexture(id gpucore.TextureID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.textures[id]; !ok {
		return
	}
	delete(d.textures, id)
	d.record(Command{Type: CmdDestroyTexture, ID: uint64(id)})
}

// CreateTextureView implements gpucore.Device.
func (d *Device) CreateTextureView(texture gpucore.TextureID) (gpucore.TextureViewID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.takeFailure(CmdCreateTextureView); err != nil {
		return gpucore.InvalidID, err
	}
	if _, ok := d.textures[texture]; !ok {
		return gpucore.InvalidID, fmt.Errorf("%w: %d", ErrUnknownTexture, texture)
	}

	id := gpucore.TextureViewID(d.newID())
	d.views[id] = texture
	d.record(Command{Type: CmdCreateTextureView, ID: uint64(id)})
	return id, nil
}

// DestroyTextureView implements gpucore.Device.
func (d *Device) DestroyTextureView(id gpucore.TextureViewID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.views[id]; !ok {
		return
	}
	delete(d.views, id)
	d.record(Command{Type: CmdDestroyTextureView, ID: uint64(id)})
}

// CreateSampler implements gpucore.Device.
func (d *Device) CreateSampler(desc *gpucore.SamplerDescriptor) (gpucore.SamplerID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.takeFailure(CmdCreateSampler); err != nil {
		return gpucore.InvalidID, err
	}

	id := gpucore.SamplerID(d.newID())
	d.samplers[id] = *desc
	d.record(Command{Type: CmdCreateSampler, ID: uint64(id)})
	return id, nil
}

// DestroySampler implements gpucore.Device.
func (d *Device) DestroySampler(id gpucore.SamplerID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.samplers[id]; !ok {
		return
	}
	delete(d.samplers, id)
	d.record(Command{Type: CmdDestroySampler, ID: uint64(id)})
}

// CreatePixelShader implements gpucore.Device.
// The SPIR-V code is not validated; only the label is kept.
func (d *Device) CreatePixelShader(label string, _ []uint32) (gpucore.ShaderID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.takeFailure(CmdCreatePixelShader); err != nil {
		return gpucore.InvalidID, err
	}

	id := gpucore.ShaderID(d.newID())
	d.shaders[id] = label
	d.record(Command{Type: CmdCreatePixelShader, ID: uint64(id)})
	return id, nil
}

// DestroyPixelShader implements gpucore.Device.
func (d *Device) DestroyPixelShader(id gpucore.ShaderID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.shaders[id]; !ok {
		return
	}
	delete(d.shaders, id)
	d.record(Command{Type: CmdDestroyPixelShader, ID: uint64(id)})
}

// SetBlendState implements gpucore.Device.
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
	d.record(Command{Type: CmdSetBlendState})
}

// SetPixelShader implements gpucore.Device.
func (d *Device) SetPixelShader(id gpucore.ShaderID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state.PixelShader = id
	d.record(Command{Type: CmdSetPixelShader, ID: uint64(id)})
}

// SetPixelTextures implements gpucore.Device.
func (d *Device) SetPixelTextures(start uint32, views ...gpucore.TextureViewID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := make([]uint64, len(views))
	for i, v := range views {
		d.state.Textures[start+uint32(i)] = v //nolint:gosec // slot count is tiny
		ids[i] = uint64(v)
	}
	d.record(Command{Type: CmdSetPixelTextures, Slot: start, IDs: ids})
}

// SetPixelSamplers implements gpucore.Device.
func (d *Device) SetPixelSamplers(start uint32, samplers ...gpucore.SamplerID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := make([]uint64, len(samplers))
	for i, s := range samplers {
		d.state.Samplers[start+uint32(i)] = s //nolint:gosec // slot count is tiny
		ids[i] = uint64(s)
	}
	d.record(Command{Type: CmdSetPixelSamplers, Slot: start, IDs: ids})
}

// SetPixelConstantBuffers implements gpucore.Device.
func (d *Device) SetPixelConstantBuffers(start uint32, buffers ...gpucore.BufferID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := make([]uint64, len(buffers))
	for i, b := range buffers {
		d.state.ConstantBuffers[start+uint32(i)] = b //nolint:gosec // slot count is tiny
		ids[i] = uint64(b)
	}
	d.record(Command{Type: CmdSetPixelConstantBuffers, Slot: start, IDs: ids})
}

// Buffer returns a copy of a live buffer.
func (d *Device) Buffer(id gpucore.BufferID) (Buffer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buffers[id]
	if !ok {
		return Buffer{}, false
	}
	return Buffer{Desc: b.Desc, Data: slices.Clone(b.Data)}, true
}

// Texture returns a copy of a live texture.
func (d *Device) Texture(id gpucore.TextureID) (Texture, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.textures[id]
	if !ok {
		return Texture{}, false
	}
	return Texture{Desc: t.Desc, Data: slices.Clone(t.Data)}, true
}

// Sampler returns the descriptor of a live sampler.
func (d *Device) Sampler(id gpucore.SamplerID) (gpucore.SamplerDescriptor, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	desc, ok := d.samplers[id]
	return desc, ok
}

// ShaderLabel returns the label of a live pixel shader.
func (d *Device) ShaderLabel(id gpucore.ShaderID) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	label, ok := d.shaders[id]
	return label, ok
}

// State returns a snapshot of the current binding state.
func (d *Device) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.state
	s.Textures = maps.Clone(d.state.Textures)
	s.Samplers = maps.Clone(d.state.Samplers)
	s.ConstantBuffers = maps.Clone(d.state.ConstantBuffers)
	return s
}

// Commands returns a copy of the command log.
func (d *Device) Commands() []Command {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.commands)
}

// Count returns how many commands of type cmd have been recorded.
func (d *Device) Count(cmd CommandType) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, c := range d.commands {
		if c.Type == cmd {
			n++
		}
	}
	return n
}

// Reset clears the command log and the binding state. Live resources are
// kept.
func (d *Device) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.commands = nil
	d.state = newState()
}

// Live reports the resources that are still alive.
func (d *Device) Live() Live {
	d.mu.Lock()
	defer d.mu.Unlock()

	return Live{
		Buffers:      len(d.buffers),
		Textures:     len(d.textures),
		TextureViews: len(d.views),
		Samplers:     len(d.samplers),
		Shaders:      len(d.shaders),
	}
}
