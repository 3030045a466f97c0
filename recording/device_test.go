package recording

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/paint/gpucore"
)

func TestDevice_BufferLifecycle(t *testing.T) {
	d := NewDevice()

	data := []byte{1, 2, 3, 4}
	id, err := d.CreateBuffer(&gpucore.BufferDescriptor{
		Label: "cb",
		Size:  16,
		Usage: gputypes.BufferUsageUniform,
	}, data)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	if id == gpucore.InvalidID {
		t.Fatal("CreateBuffer returned InvalidID")
	}

	// Mutating the caller's slice must not reach the recorded buffer.
	data[0] = 99

	buf, ok := d.Buffer(id)
	if !ok {
		t.Fatal("Buffer not found")
	}
	if diff := cmp.Diff([]byte{1, 2, 3, 4}, buf.Data); diff != "" {
		t.Errorf("buffer data mismatch (-want +got):\n%s", diff)
	}
	if buf.Desc.Size != 16 || buf.Desc.Label != "cb" {
		t.Errorf("buffer desc = %+v", buf.Desc)
	}

	if got := d.Live().Buffers; got != 1 {
		t.Errorf("Live().Buffers = %d, want 1", got)
	}

	d.DestroyBuffer(id)
	d.DestroyBuffer(id) // unknown IDs are ignored

	if got := d.Live().Total(); got != 0 {
		t.Errorf("Live().Total() = %d, want 0", got)
	}
	if got := d.Count(CmdDestroyBuffer); got != 1 {
		t.Errorf("Count(DestroyBuffer) = %d, want 1", got)
	}
}

func TestDevice_CreateBufferErrors(t *testing.T) {
	d := NewDevice()

	if _, err := d.CreateBuffer(&gpucore.BufferDescriptor{Size: 0}, nil); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("size 0: err = %v, want ErrEmptyBuffer", err)
	}
	if _, err := d.CreateBuffer(&gpucore.BufferDescriptor{Size: 2}, []byte{1, 2, 3}); !errors.Is(err, ErrDataTooLarge) {
		t.Errorf("oversized data: err = %v, want ErrDataTooLarge", err)
	}
	if got := d.Live().Buffers; got != 0 {
		t.Errorf("Live().Buffers = %d after failures, want 0", got)
	}
}

func TestDevice_FailNext(t *testing.T) {
	d := NewDevice()
	boom := errors.New("boom")

	d.FailNext(CmdCreateSampler, boom)

	if _, err := d.CreateSampler(&gpucore.SamplerDescriptor{}); !errors.Is(err, boom) {
		t.Fatalf("first CreateSampler err = %v, want boom", err)
	}
	// The failure is consumed by the first call.
	if _, err := d.CreateSampler(&gpucore.SamplerDescriptor{}); err != nil {
		t.Fatalf("second CreateSampler err = %v, want nil", err)
	}
	if got := d.Live().Samplers; got != 1 {
		t.Errorf("Live().Samplers = %d, want 1", got)
	}
}

func TestDevice_TextureViews(t *testing.T) {
	d := NewDevice()

	if _, err := d.CreateTextureView(42); !errors.Is(err, ErrUnknownTexture) {
		t.Errorf("view of unknown texture: err = %v, want ErrUnknownTexture", err)
	}

	tex, err := d.CreateTexture(&gpucore.TextureDescriptor{
		Width:  2,
		Height: 1,
		Format: gputypes.TextureFormatRGBA8Unorm,
	}, make([]byte, 8))
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	view, err := d.CreateTextureView(tex)
	if err != nil {
		t.Fatalf("CreateTextureView: %v", err)
	}

	want := Live{Textures: 1, TextureViews: 1}
	if diff := cmp.Diff(want, d.Live()); diff != "" {
		t.Errorf("Live mismatch (-want +got):\n%s", diff)
	}

	d.DestroyTextureView(view)
	d.DestroyTexture(tex)
	if got := d.Live(); got.Total() != 0 {
		t.Errorf("Live() = %v, want empty", got)
	}
}

func TestDevice_BindingState(t *testing.T) {
	d := NewDevice()

	blend := gputypes.BlendStatePremultiplied()
	factor := gputypes.Color{R: 1, G: 1, B: 1, A: 1}
	d.SetBlendState(&blend, factor, gpucore.DefaultSampleMask)
	d.SetPixelShader(5)
	d.SetPixelTextures(0, 6)
	d.SetPixelSamplers(0, 7, 8)
	d.SetPixelConstantBuffers(1, 9)

	s := d.State()
	if s.BlendState == nil || *s.BlendState != blend {
		t.Errorf("BlendState = %v, want %v", s.BlendState, blend)
	}
	if s.BlendFactor != factor {
		t.Errorf("BlendFactor = %v, want %v", s.BlendFactor, factor)
	}
	if s.SampleMask != gpucore.DefaultSampleMask {
		t.Errorf("SampleMask = %#x, want %#x", s.SampleMask, gpucore.DefaultSampleMask)
	}
	if s.PixelShader != 5 {
		t.Errorf("PixelShader = %d, want 5", s.PixelShader)
	}

	wantSamplers := map[uint32]gpucore.SamplerID{0: 7, 1: 8}
	if diff := cmp.Diff(wantSamplers, s.Samplers); diff != "" {
		t.Errorf("Samplers mismatch (-want +got):\n%s", diff)
	}
	if got := s.Textures[0]; got != 6 {
		t.Errorf("Textures[0] = %d, want 6", got)
	}
	if got := s.ConstantBuffers[1]; got != 9 {
		t.Errorf("ConstantBuffers[1] = %d, want 9", got)
	}

	// The snapshot is detached from the device.
	s.Samplers[0] = 100
	if got := d.State().Samplers[0]; got != 7 {
		t.Errorf("State snapshot aliases device state: Samplers[0] = %d", got)
	}

	wantCmds := []Command{
		{Type: CmdSetBlendState},
		{Type: CmdSetPixelShader, ID: 5},
		{Type: CmdSetPixelTextures, Slot: 0, IDs: []uint64{6}},
		{Type: CmdSetPixelSamplers, Slot: 0, IDs: []uint64{7, 8}},
		{Type: CmdSetPixelConstantBuffers, Slot: 1, IDs: []uint64{9}},
	}
	if diff := cmp.Diff(wantCmds, d.Commands()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}

	d.Reset()
	if got := len(d.Commands()); got != 0 {
		t.Errorf("len(Commands()) after Reset = %d, want 0", got)
	}
	if got := d.State().PixelShader; got != gpucore.InvalidID {
		t.Errorf("PixelShader after Reset = %d, want InvalidID", got)
	}
}

func TestDevice_Shaders(t *testing.T) {
	d := NewDevice()

	id, err := d.CreatePixelShader("ps_solid", []uint32{0x07230203})
	if err != nil {
		t.Fatalf("CreatePixelShader: %v", err)
	}
	if label, ok := d.ShaderLabel(id); !ok || label != "ps_solid" {
		t.Errorf("ShaderLabel = %q, %v; want ps_solid, true", label, ok)
	}

	d.DestroyPixelShader(id)
	if _, ok := d.ShaderLabel(id); ok {
		t.Error("shader still alive after DestroyPixelShader")
	}
}
