package gpucore

import "github.com/gogpu/gputypes"

// Device is the render-device handle a render target exposes to the brush
// subsystem. It offers buffer, texture, sampler and shader creation plus
// the pixel-stage binding entry points.
//
// Create* methods are synchronous: they either return a usable resource or
// fail immediately. Binding methods are expected to be called from the
// goroutine that owns the render target.
//
// Devices are compared by identity to decide whether cached per-device
// state can be reused, so implementations should be pointer types.
type Device interface {
	// CreateBuffer creates a buffer and, when data is non-nil, fills it with
	// data at creation time. A buffer created without CopyDst usage is
	// immutable afterwards.
	CreateBuffer(desc *BufferDescriptor, data []byte) (BufferID, error)

	// DestroyBuffer releases a buffer.
	DestroyBuffer(id BufferID)

	// CreateTexture creates a 2D texture and, when data is non-nil, uploads
	// tightly packed pixel rows.
	CreateTexture(desc *TextureDescriptor, data []byte) (TextureID, error)

	// DestroyTexture releases a texture. Views must be destroyed first.
	DestroyTexture(id TextureID)

	// CreateTextureView creates a bindable view covering the whole texture.
	CreateTextureView(texture TextureID) (TextureViewID, error)

	// DestroyTextureView releases a texture view.
	DestroyTextureView(id TextureViewID)

	// CreateSampler creates a sampler state object.
	CreateSampler(desc *SamplerDescriptor) (SamplerID, error)

	// DestroySampler releases a sampler state object.
	DestroySampler(id SamplerID)

	// CreatePixelShader compiles a pixel (fragment) shader.
	CreatePixelShader(label string, spirv []uint32) (ShaderID, error)

	// DestroyPixelShader releases a pixel shader.
	DestroyPixelShader(id ShaderID)

	// SetBlendState binds the output-merger blend state.
	SetBlendState(state *gputypes.BlendState, factor gputypes.Color, sampleMask uint32)

	// SetPixelShader binds the pixel shader. InvalidID unbinds it.
	SetPixelShader(id ShaderID)

	// SetPixelTextures binds texture views starting at slot start.
	SetPixelTextures(start uint32, views ...TextureViewID)

	// SetPixelSamplers binds samplers starting at slot start.
	SetPixelSamplers(start uint32, samplers ...SamplerID)

	// SetPixelConstantBuffers binds uniform buffers starting at slot start.
	SetPixelConstantBuffers(start uint32, buffers ...BufferID)
}
