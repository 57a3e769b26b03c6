// Package loader drives a single asynchronous fetch through a repository
// port and exposes its progress as a small state machine: Loading, then
// exactly one of Ready or Failed.
//
// A Controller commits a result only while the scope it was started with is
// live and no newer fetch has been started. Closing the controller (the
// owning view going away) cancels the scope, so a fetch that settles late is
// discarded without a transition.
package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Status is the phase of a Controller.
type Status int

const (
	Loading Status = iota
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// State is what a view observes: the phase plus the data once Ready or the
// message once Failed.
type State[T any] struct {
	Status Status
	Data   T
	Err    string
}

// Terminal reports whether s ends an invocation.
func (s State[T]) Terminal() bool { return s.Status != Loading }

// Fetch is a single call through a repository port.
type Fetch[T any] func(ctx context.Context) (T, error)

// DefaultMessage is shown when a failure carries no message of its own.
const DefaultMessage = "Failed to load content"

// Controller runs one fetch at a time and publishes its state transitions.
// The zero value is not usable; call New.
type Controller[T any] struct {
	mu       sync.Mutex
	state    State[T]
	gen      uint64
	cancel   context.CancelFunc
	done     chan struct{}
	closed   bool
	subs     map[int]func(State[T])
	nextSub  int
	fallback string
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	fallback string
}

// WithFallback sets the message used when a failure has none of its own.
func WithFallback(msg string) Option {
	return func(o *options) { o.fallback = msg }
}

// New returns a Controller in the Loading state.
func New[T any](opts ...Option) *Controller[T] {
	o := options{fallback: DefaultMessage}
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller[T]{
		done:     make(chan struct{}),
		subs:     make(map[int]func(State[T])),
		fallback: o.fallback,
	}
}

// Subscribe registers fn to observe every state the controller publishes,
// starting with the current one. fn runs with the controller locked and must
// not call back into it. The returned func removes the subscription.
func (c *Controller[T]) Subscribe(fn func(State[T])) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	fn(c.state)
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// State returns the current state.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start begins a fetch bound to scope. A fetch already in flight is
// abandoned: its result will be discarded, and the controller restarts from
// Loading. Start on a closed controller does nothing.
func (c *Controller[T]) Start(scope context.Context, fetch Fetch[T]) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(scope)
	c.gen++
	gen := c.gen
	c.cancel = cancel
	if c.state.Terminal() {
		c.done = make(chan struct{})
		c.state = State[T]{Status: Loading}
		c.publish()
	}
	c.mu.Unlock()

	go c.run(ctx, gen, fetch)
}

func (c *Controller[T]) run(ctx context.Context, gen uint64, fetch Fetch[T]) {
	data, err := c.call(ctx, fetch)

	c.mu.Lock()
	defer c.mu.Unlock()
	// The scope check and the commit happen under the same lock as Close,
	// so a closed or superseded invocation can never publish.
	if c.closed || gen != c.gen || ctx.Err() != nil {
		return
	}
	if err != nil {
		c.state = State[T]{Status: Failed, Err: c.message(err)}
	} else {
		c.state = State[T]{Status: Ready, Data: data}
	}
	c.cancel()
	c.cancel = nil
	close(c.done)
	c.publish()
}

// errOpaque marks a failure that carried no error value, such as a panic
// with a string. Its message is replaced by the controller's fallback.
var errOpaque = errors.New("")

// call invokes fetch, turning a panic into an error.
func (c *Controller[T]) call(ctx context.Context, fetch Fetch[T]) (data T, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = errOpaque
		}
	}()
	return fetch(ctx)
}

func (c *Controller[T]) message(err error) string {
	if msg := err.Error(); msg != "" && !errors.Is(err, errOpaque) {
		return msg
	}
	return c.fallback
}

func (c *Controller[T]) publish() {
	for _, fn := range c.subs {
		fn(c.state)
	}
}

// Wait blocks until the current invocation reaches a terminal state, the
// controller is closed or ctx is done, then returns the state at that moment.
func (c *Controller[T]) Wait(ctx context.Context) State[T] {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	select {
	case <-done:
	case <-ctx.Done():
	}
	return c.State()
}

// Close cancels the current scope and releases any Wait callers. No
// transition is applied after Close returns, whatever the fetch in flight
// does.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if !c.state.Terminal() {
		close(c.done)
	}
}
