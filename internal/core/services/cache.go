package services

import (
	"sort"
	"sync"
)

// entityCache is the in-memory mirror one controller keeps of one remote
// resource. Mutations happen under the lock; reads hand out copies so callers
// never alias the mirror. The loaded flag and the single-flight group together
// implement the load-once policy: a warm cache answers without a network call,
// concurrent cold loads collapse into one request.
type entityCache[T any] struct {
	mu     sync.RWMutex
	items  []T
	loaded bool
}

func (c *entityCache[T]) snapshot() ([]T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.loaded {
		return nil, false
	}

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out, true
}

func (c *entityCache[T]) replace(items []T) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = items
	c.loaded = true

	out := make([]T, len(items))
	copy(out, items)
	return out
}

func (c *entityCache[T]) insert(item T, prepend bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prepend {
		c.items = append([]T{item}, c.items...)
	} else {
		c.items = append(c.items, item)
	}
}

// update replaces the first entry matching the predicate. A missing match is
// a silent no-op; a stale mirror must not fail the write that just succeeded
// remotely.
func (c *entityCache[T]) update(match func(T) bool, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if match(c.items[i]) {
			c.items[i] = item
			return
		}
	}
}

func (c *entityCache[T]) remove(match func(T) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, item := range c.items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

func (c *entityCache[T]) sortWith(less func(a, b T) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sortSlice(c.items, less)
}

func (c *entityCache[T]) isLoaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *entityCache[T]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.loaded = false
}

func sortSlice[T any](items []T, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}
