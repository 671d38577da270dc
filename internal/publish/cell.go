// Package publish provides a generic one-time-settable cell used to
// publish the process-wide immutable FS index to request handlers
// without any reference counting beyond what the cell itself provides
// (spec §9 "Cyclic graphs / shared ownership").
package publish

import (
	"sync"
	"sync/atomic"
)

// Cell holds a value that is set exactly once and read many times
// concurrently. Reads before Set block until a value is published.
type Cell[T any] struct {
	once  sync.Once
	ready chan struct{}
	init  sync.Once
	v     atomic.Pointer[T]
}

func (c *Cell[T]) lazyInit() {
	c.init.Do(func() {
		c.ready = make(chan struct{})
	})
}

// Set publishes value. Only the first call has any effect; subsequent
// calls are no-ops, matching "build once, publish once".
func (c *Cell[T]) Set(value T) {
	c.lazyInit()
	c.once.Do(func() {
		c.v.Store(&value)
		close(c.ready)
	})
}

// Get blocks until a value has been published, then returns it.
func (c *Cell[T]) Get() T {
	c.lazyInit()
	<-c.ready
	return *c.v.Load()
}

// TryGet returns the published value and true, or the zero value and
// false if Set has not yet been called.
func (c *Cell[T]) TryGet() (T, bool) {
	p := c.v.Load()
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
