// Package weakref provides weak observation of an owned object.
//
// A Factory sits on the owning side; any number of Refs observe the object
// without owning it. Both sides share one control block, so invalidation by
// the owner is immediately visible to every observer, and observers can never
// dangle: after invalidation Get reports the object as gone and the control
// block drops its pointer, leaving the referent collectible regardless of how
// many Refs are still around.
//
// Example:
//
//	type Controller struct {
//		weak weakref.Factory[Controller]
//	}
//
//	c := &Controller{}
//	c.weak = weakref.NewFactory(c)
//
//	ref := c.weak.Ref()
//	if target, ok := ref.Get(); ok {
//		target.DoWork()
//	}
//
//	c.weak.InvalidateAll() // every outstanding Ref now reports !ok
package weakref

import "sync"

// control is the shared liveness block. The pointer doubles as the validity
// flag: nil means invalidated.
type control[T any] struct {
	mu  sync.RWMutex
	ptr *T
}

// Ref is a non-owning observer of an object. The zero Ref is valid and always
// reports the object as gone. Refs may be copied freely; copies share the
// same control block.
type Ref[T any] struct {
	c *control[T]
}

// Get returns the observed object, or (nil, false) once the owner has
// invalidated it. Callers must re-query for every access rather than caching
// the returned pointer across invalidation boundaries.
func (r Ref[T]) Get() (*T, bool) {
	if r.c == nil {
		return nil, false
	}
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	return r.c.ptr, r.c.ptr != nil
}

// Factory produces Refs for one owned object and invalidates them when the
// owner goes away. Keep the Factory as the last field of the owning struct so
// sibling fields remain usable while Refs can still resolve.
type Factory[T any] struct {
	c *control[T]
}

// NewFactory creates a factory observing ptr. A nil ptr is a caller bug and
// panics.
func NewFactory[T any](ptr *T) Factory[T] {
	if ptr == nil {
		panic("weakref: nil pointer")
	}
	return Factory[T]{c: &control[T]{ptr: ptr}}
}

// Ref returns a new observer sharing this factory's control block.
func (f *Factory[T]) Ref() Ref[T] {
	if f.c == nil {
		panic("weakref: use of zero Factory")
	}
	return Ref[T]{c: f.c}
}

// InvalidateAll cuts every outstanding Ref loose. Safe to call multiple
// times. Refs created afterwards also report the object as gone.
func (f *Factory[T]) InvalidateAll() {
	if f.c == nil {
		return
	}
	f.c.mu.Lock()
	f.c.ptr = nil
	f.c.mu.Unlock()
}
