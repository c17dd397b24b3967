// Package flow tracks asynchronous calls as Idle, Loading, Success or Error.
package flow

import (
	"context"
	"sync"
	"time"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State is a snapshot of a flow. Value is set only on success and Error only on error.
type State[T any] struct {
	Status    Status    `json:"status"`
	Value     *T        `json:"value,omitempty"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Flow runs one kind of work at a time from the caller's point of view.
// Each Start bumps a generation; a result is published only if it belongs
// to the latest generation, so a slow earlier call never overwrites a newer one.
type Flow[T any] struct {
	mu    sync.Mutex
	gen   uint64
	state State[T]
	now   func() time.Time
}

func New[T any]() *Flow[T] {
	f := &Flow[T]{now: time.Now}
	f.state = State[T]{Status: StatusIdle, UpdatedAt: f.now()}
	return f
}

// State returns the current snapshot.
func (f *Flow[T]) State() State[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Start moves the flow to loading and runs fn in a goroutine. The work
// outlives the caller's cancellation but keeps its values. The returned
// channel is closed once fn has returned and its result was published or discarded.
func (f *Flow[T]) Start(ctx context.Context, fn func(ctx context.Context) (T, error)) <-chan struct{} {
	return f.StartWith(ctx, fn, nil)
}

// StartWith is Start with a commit hook. onSuccess runs under the flow's lock
// only when the result is published, so a superseded call never commits.
func (f *Flow[T]) StartWith(ctx context.Context, fn func(ctx context.Context) (T, error), onSuccess func(T)) <-chan struct{} {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.state = State[T]{Status: StatusLoading, UpdatedAt: f.now()}
	f.mu.Unlock()

	done := make(chan struct{})
	workCtx := context.WithoutCancel(ctx)

	go func() {
		defer close(done)
		value, err := fn(workCtx)
		f.publish(gen, value, err, onSuccess)
	}()

	return done
}

// Fail publishes an error without running any work, superseding in-flight calls.
func (f *Flow[T]) Fail(err error) {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.mu.Unlock()

	var zero T
	f.publish(gen, zero, err, nil)
}

// Succeed publishes a value without running any work, superseding in-flight calls.
func (f *Flow[T]) Succeed(value T) {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.mu.Unlock()

	f.publish(gen, value, nil, nil)
}

// Reset returns the flow to idle and discards any in-flight result.
func (f *Flow[T]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.state = State[T]{Status: StatusIdle, UpdatedAt: f.now()}
}

func (f *Flow[T]) publish(gen uint64, value T, err error, onSuccess func(T)) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen {
		return
	}

	if err != nil {
		f.state = State[T]{Status: StatusError, Error: err.Error(), UpdatedAt: f.now()}
		return
	}
	if onSuccess != nil {
		onSuccess(value)
	}
	f.state = State[T]{Status: StatusSuccess, Value: &value, UpdatedAt: f.now()}
}
