package gpucore

import "github.com/gogpu/gputypes"

// Resource IDs
//
// These opaque IDs represent GPU resources. Each device implementation
// maintains a mapping between IDs and actual backend resources.
// IDs are uint64 to accommodate various backend handle sizes.

// BufferID is an opaque handle to a GPU buffer.
type BufferID uint64

// TextureID is an opaque handle to a GPU texture.
type TextureID uint64

// TextureViewID is an opaque handle to a bindable view of a texture.
type TextureViewID uint64

// SamplerID is an opaque handle to a sampler state object.
type SamplerID uint64

// ShaderID is an opaque handle to a compiled pixel (fragment) shader.
type ShaderID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// DefaultSampleMask enables every sample of a multisampled target.
const DefaultSampleMask uint32 = 0xffffffff

// BufferDescriptor describes a buffer to create.
type BufferDescriptor struct {
	// Label is an optional debug name.
	Label string

	// Size is the buffer size in bytes. When initial data is supplied it
	// must not exceed Size.
	Size uint64

	// Usage specifies how the buffer will be used.
	Usage gputypes.BufferUsage
}

// TextureDescriptor describes a 2D texture to create.
type TextureDescriptor struct {
	// Label is an optional debug name.
	Label string

	// Width and Height are the texture dimensions in pixels.
	Width, Height uint32

	// Format is the pixel format.
	Format gputypes.TextureFormat

	// Usage flags. Zero means TextureBinding | CopyDst.
	Usage gputypes.TextureUsage
}

// BytesPerRow returns the tightly packed row pitch for the descriptor,
// assuming a 4-byte-per-pixel format.
func (d *TextureDescriptor) BytesPerRow() uint32 {
	return d.Width * 4
}

// SamplerDescriptor describes a sampler state object.
type SamplerDescriptor struct {
	// Label is an optional debug name.
	Label string

	AddressModeU gputypes.AddressMode
	AddressModeV gputypes.AddressMode
	AddressModeW gputypes.AddressMode

	MagFilter    gputypes.FilterMode
	MinFilter    gputypes.FilterMode
	MipmapFilter gputypes.FilterMode

	LodMinClamp float32
	LodMaxClamp float32

	// Compare is the comparison function for comparison samplers.
	Compare gputypes.CompareFunction

	// Anisotropy is the maximum anisotropy; 0 and 1 both disable it.
	Anisotropy uint16

	// BorderColor is used by clamp-to-border addressing.
	BorderColor [4]float32
}
