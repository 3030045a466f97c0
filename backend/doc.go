// Package backend provides a pluggable device backend abstraction.
//
// A device backend supplies the gpucore.Device that paint render targets,
// bitmaps and brush samplers are created on. Two backends exist: the
// recording backend keeps every call in memory and is always available,
// and the native backend drives a GPU through gogpu/wgpu.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The recording backend is registered on import of this package; the
// native backend registers itself when its package is imported:
//
//	import _ "github.com/gogpu/paint/backend/native"
//
// # Backend Selection
//
// Use InitDefault() to start the best backend that works on this machine,
// or Get() to request a specific backend by name:
//
//	b, err := backend.InitDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	rt, err := paint.NewTarget(b.Device())
//
// # Available Backends
//
//   - "native": GPU via gogpu/wgpu HAL (Vulkan)
//   - "recording": in-memory command recorder (always available)
package backend
