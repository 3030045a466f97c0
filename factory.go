package paint

import (
	"log/slog"
	"sync/atomic"
)

// Factory creates brushes, gradient stop collections and bitmaps.
//
// Every object created by a Factory holds a reference to it for its whole
// lifetime and drops that reference only when it is destroyed, so a
// Factory outlives everything it made. The Factory also counts the objects
// that are still alive, which makes leaks observable through
// [Factory.LiveObjects].
//
// A Factory is safe for concurrent use. The objects it creates are not:
// mutation of a single brush must be serialized by the caller.
type Factory struct {
	refs refCount
	opts factoryOptions

	// live counts objects created by this factory and not yet destroyed.
	live atomic.Int64
}

// NewFactory creates a Factory with a reference count of one.
func NewFactory(opts ...FactoryOption) *Factory {
	o := defaultFactoryOptions()
	for _, opt := range opts {
		opt(&o)
	}

	f := &Factory{opts: o}
	f.refs.init()
	return f
}

// AddRef adds a reference and returns the new count.
func (f *Factory) AddRef() int32 {
	n := f.refs.addRef()
	f.logger().Debug("paint: factory addref", "refs", n)
	return n
}

// Release drops a reference and returns the new count.
func (f *Factory) Release() int32 {
	n := f.refs.release()
	f.logger().Debug("paint: factory release", "refs", n)
	return n
}

// LiveObjects returns the number of objects created by the factory that
// have not been destroyed yet.
func (f *Factory) LiveObjects() int {
	return int(f.live.Load())
}

// logger returns the factory logger, or the package logger when none was
// configured.
func (f *Factory) logger() *slog.Logger {
	if f.opts.logger != nil {
		return f.opts.logger
	}
	return Logger()
}

// acquire is called when an object owned by the factory is created.
func (f *Factory) acquire() {
	f.refs.addRef()
	f.live.Add(1)
}

// relinquish is called as the last step of destroying an object.
func (f *Factory) relinquish() {
	f.live.Add(-1)
	f.refs.release()
}
