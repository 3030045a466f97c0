// Package gpucore defines the narrow render-device contract used by the
// paint brush binder.
//
// The brush subsystem never talks to a graphics API directly. It creates
// constant buffers, textures and samplers, and binds pixel-stage state,
// through the [Device] interface. Resources are referred to by opaque IDs
// ([BufferID], [TextureID], [SamplerID], ...); each implementation keeps
// the mapping between IDs and its own backend objects.
//
//	+----------------+        +-------------------+
//	|  paint binder  | -----> |  gpucore.Device   |
//	+----------------+        +---------+---------+
//	                                    |
//	               +--------------------+--------------------+
//	               |                                         |
//	     +---------v---------+                     +---------v---------+
//	     | backend/native    |                     | recording.Device  |
//	     | (gogpu/wgpu HAL)  |                     | (in-memory log)   |
//	     +-------------------+                     +-------------------+
//
// # Resource Management
//
//   - Resources are created via Create* methods and start out owned by
//     the caller.
//   - Resources must be explicitly destroyed via the matching Destroy*
//     method. Destroying an unknown or already destroyed ID is a no-op.
//   - [InvalidID] is never returned for a successfully created resource.
//     Binding [InvalidID] unbinds the slot.
//
// # Binding Model
//
// Pixel-stage bindings follow an immediate model: the most recent call to
// SetPixelShader, SetPixelTextures, SetPixelSamplers,
// SetPixelConstantBuffers and SetBlendState wins, and the next draw uses
// whatever is currently bound.
package gpucore
