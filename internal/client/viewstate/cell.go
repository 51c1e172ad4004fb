package viewstate

import "sync"

// Cell is an observable value. Every Set or Update notifies subscribers
// synchronously with the new value, in the order the changes were made.
// Subscribers may read the cell but must not write to it.
type Cell[T any] struct {
	notifyMu sync.Mutex
	mu       sync.Mutex
	value    T
	subs     map[uint64]func(T)
	nextID   uint64
}

// NewCell returns a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial, subs: make(map[uint64]func(T))}
}

func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

func (c *Cell[T]) Set(v T) {
	c.Update(func(T) T { return v })
}

// Update replaces the value with fn(current) and returns the new value.
func (c *Cell[T]) Update(fn func(T) T) T {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	c.value = fn(c.value)
	v := c.value
	subs := make([]func(T), 0, len(c.subs))
	for _, s := range c.subs {
		subs = append(subs, s)
	}
	c.mu.Unlock()

	for _, s := range subs {
		s(v)
	}
	return v
}

// Subscribe registers fn and returns a function that unregisters it.
func (c *Cell[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}
