// Package taskx bridges listener-style asynchronous operations into plain
// blocking calls.
//
// A Task completes exactly once, with a value or an error, and reports the
// outcome to every listener registered on it. Await turns a Task into a single
// result for one caller: it resumes the caller at most once, removes its
// listener after the first resolution, and detaches (and cancels the task)
// when the caller's context is done first. A completion that arrives after the
// caller detached is dropped.
//
// No timeouts are applied here; a task that never completes blocks Await until
// the caller's context ends.
package taskx

import (
	"context"
	"sync"
)

// Listener receives the outcome of a Task.
type Listener[T any] func(value T, err error)

// Task is a pending asynchronous operation.
type Task[T any] struct {
	mu        sync.Mutex
	done      bool
	value     T
	err       error
	listeners map[uint64]Listener[T]
	nextID    uint64
	cancel    context.CancelFunc
	finished  chan struct{}
}

func newTask[T any](cancel context.CancelFunc) *Task[T] {
	return &Task[T]{
		listeners: make(map[uint64]Listener[T]),
		cancel:    cancel,
		finished:  make(chan struct{}),
	}
}

// Go starts fn on its own goroutine and returns the Task tracking it. The
// context passed to fn is derived from ctx and is cancelled by Task.Cancel.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Task[T] {
	opCtx, cancel := context.WithCancel(ctx)
	t := newTask[T](cancel)
	go func() {
		v, err := fn(opCtx)
		t.complete(v, err)
	}()
	return t
}

// newPending returns a Task completed by the returned resolve function. Only
// the first call to resolve has any effect.
func newPending[T any]() (*Task[T], func(T, error)) {
	t := newTask[T](nil)
	return t, t.complete
}

func (t *Task[T]) complete(v T, err error) {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return
	}
	t.done = true
	t.value, t.err = v, err
	listeners := make([]Listener[T], 0, len(t.listeners))
	for _, l := range t.listeners {
		listeners = append(listeners, l)
	}
	clear(t.listeners)
	close(t.finished)
	cancel := t.cancel
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	for _, l := range listeners {
		l(v, err)
	}
}

// AddListener registers l and returns a function that removes it. If the task
// has already completed, l is invoked immediately and the returned remover is
// a no-op.
func (t *Task[T]) AddListener(l Listener[T]) (remove func()) {
	t.mu.Lock()
	if t.done {
		v, err := t.value, t.err
		t.mu.Unlock()
		l(v, err)
		return func() {}
	}
	id := t.nextID
	t.nextID++
	t.listeners[id] = l
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.listeners, id)
		t.mu.Unlock()
	}
}

// Cancel asks the running operation to stop. It does not complete the task;
// the operation reports its own outcome (usually a context error).
func (t *Task[T]) Cancel() {
	if t.cancel != nil {
		t.cancel()
	}
}

func (t *Task[T]) listenerCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners)
}

type result[T any] struct {
	value T
	err   error
}

// Await blocks until t completes or ctx is done, whichever happens first.
func Await[T any](ctx context.Context, t *Task[T]) (T, error) {
	ch := make(chan result[T], 1)
	var once sync.Once
	remove := t.AddListener(func(v T, err error) {
		once.Do(func() { ch <- result[T]{value: v, err: err} })
	})
	defer remove()

	select {
	case r := <-ch:
		return r.value, r.err
	default:
	}

	select {
	case r := <-ch:
		return r.value, r.err
	case <-ctx.Done():
		remove()
		t.Cancel()
		var zero T
		return zero, ctx.Err()
	}
}

// Run is Go followed by Await.
func Run[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	return Await(ctx, Go(ctx, fn))
}
