package paint

import (
	"fmt"
	"sync/atomic"
)

// refCount is an atomic reference count. Objects start with one reference
// held by their creator.
type refCount struct {
	n atomic.Int32
}

func (r *refCount) init() {
	r.n.Store(1)
}

func (r *refCount) addRef() int32 {
	return r.n.Add(1)
}

// release drops one reference and returns the remaining count. Releasing
// an object that has no references left is a contract violation.
func (r *refCount) release() int32 {
	n := r.n.Add(-1)
	if n < 0 {
		panic(fmt.Errorf("%w: release of a destroyed object", ErrInvalidUsage))
	}
	return n
}

func (r *refCount) count() int32 {
	return r.n.Load()
}
