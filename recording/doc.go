// Package recording provides an in-memory render device that records the
// resource and binding traffic produced by the paint brush binder.
//
// The recording [Device] implements [gpucore.Device] without touching a GPU.
// Every call is appended to a command log as a typed [Command], resources
// are kept in maps keyed by their IDs, and the currently bound pixel-stage
// state is tracked so that it can be inspected after a bind.
//
// The device doubles as a leak detector: [Device.Live] reports how many
// buffers, textures, views, samplers and shaders are still alive, which
// lets tests assert that releasing the last reference to a brush freed
// everything it owned.
//
// # Example
//
//	dev := recording.NewDevice()
//	rt, _ := paint.NewTarget(dev)
//	cb, err := paint.Bind(brush, rt, paint.ShapeTriangle)
//	...
//	state := dev.State()
//	fmt.Println(state.Samplers[0], dev.Live())
//
// # Failure Injection
//
// [Device.FailNext] makes the next creation of a given kind fail with the
// supplied error, which exercises the error paths of callers.
package recording
