// Package store holds the process-wide remote-state containers.
//
// A container keeps the latest snapshot fetched from the backend together
// with its fetch lifecycle. Every operation moves the container to Loading
// and then resolves it exactly once to Succeeded or Failed.
package store

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Status is the fetch lifecycle of a container
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ResolutionPolicy decides what happens when requests on the same
// container overlap
type ResolutionPolicy int

const (
	// LatestIssuedWins discards any response older than the newest request
	LatestIssuedWins ResolutionPolicy = iota
	// LastResolvedWins applies every response in arrival order
	LastResolvedWins
)

func (p ResolutionPolicy) String() string {
	if p == LastResolvedWins {
		return "last-resolved-wins"
	}
	return "latest-issued-wins"
}

// State is a point-in-time copy of a container
type State[T any] struct {
	Status Status
	Data   T
	Err    error  // set only when Status is StatusFailed
	Seq    uint64 // sequence of the request that produced this state
}

// ErrMessage returns the failure reason, or "" when not failed
func (s State[T]) ErrMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

type options struct {
	policy ResolutionPolicy
	logger *zap.Logger
}

// Option configures a container
type Option func(*options)

// WithResolutionPolicy selects how overlapping requests resolve
func WithResolutionPolicy(p ResolutionPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithLogger sets the container logger
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

type listener[T any] struct {
	id int
	fn func(State[T])
}

// Container is a named, concurrency-safe snapshot of remote state
type Container[T any] struct {
	name   string
	policy ResolutionPolicy
	logger *zap.Logger

	mu        sync.Mutex
	state     State[T]
	issued    uint64
	resetAt   uint64 // requests issued at or before this are dropped
	listeners []listener[T]
	nextID    int
}

// NewContainer creates an idle container holding initial
func NewContainer[T any](name string, initial T, opts ...Option) *Container[T] {
	o := options{policy: LatestIssuedWins, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Container[T]{
		name:   name,
		policy: o.policy,
		logger: o.logger.With(zap.String("store", name)),
		state:  State[T]{Status: StatusIdle, Data: initial},
	}
}

// Name returns the container name
func (c *Container[T]) Name() string {
	return c.name
}

// Policy returns the container's resolution policy
func (c *Container[T]) Policy() ResolutionPolicy {
	return c.policy
}

// Snapshot returns a copy of the current state
func (c *Container[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to be called after every transition.
// The returned func removes the subscription.
func (c *Container[T]) Subscribe(fn func(State[T])) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, listener[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, l := range c.listeners {
				if l.id == id {
					c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// Reset replaces the snapshot with data and returns to Idle.
// Requests still in flight are discarded when they resolve.
func (c *Container[T]) Reset(data T) {
	c.mu.Lock()
	c.issued++
	c.resetAt = c.issued
	c.state = State[T]{Status: StatusIdle, Data: data, Seq: c.issued}
	next, fns := c.state, c.subscribers()
	c.mu.Unlock()

	notify(fns, next)
}

// Run executes op and replaces the snapshot with its result
func (c *Container[T]) Run(ctx context.Context, op func(ctx context.Context) (T, error)) (T, error) {
	return Dispatch(ctx, c, op, func(_ T, data T) T { return data })
}

// Dispatch executes fetch on c and folds a successful result into the
// snapshot with reduce. The fetch result is returned to the caller even
// when the container discards it as stale.
func Dispatch[T, R any](ctx context.Context, c *Container[T], fetch func(ctx context.Context) (R, error), reduce func(prev T, result R) T) (R, error) {
	seq := c.begin()

	result, err := fetch(ctx)

	c.resolve(seq, func(prev T) T { return reduce(prev, result) }, err)
	return result, err
}

func (c *Container[T]) begin() uint64 {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.state.Status = StatusLoading
	c.state.Err = nil
	c.state.Seq = seq
	next, fns := c.state, c.subscribers()
	c.mu.Unlock()

	notify(fns, next)
	return seq
}

func (c *Container[T]) resolve(seq uint64, apply func(prev T) T, err error) {
	c.mu.Lock()
	if c.stale(seq) {
		issued := c.issued
		c.mu.Unlock()
		c.logger.Debug("Discarding stale response",
			zap.Uint64("seq", seq),
			zap.Uint64("issued", issued),
			zap.Bool("failed", err != nil),
		)
		return
	}

	if err != nil {
		c.state = State[T]{Status: StatusFailed, Data: c.state.Data, Err: err, Seq: seq}
		c.logger.Debug("Request failed", zap.Uint64("seq", seq), zap.Error(err))
	} else {
		c.state = State[T]{Status: StatusSucceeded, Data: apply(c.state.Data), Seq: seq}
	}
	next, fns := c.state, c.subscribers()
	c.mu.Unlock()

	notify(fns, next)
}

// stale must be called with mu held
func (c *Container[T]) stale(seq uint64) bool {
	if seq <= c.resetAt {
		return true
	}
	return c.policy == LatestIssuedWins && seq < c.issued
}

// subscribers must be called with mu held
func (c *Container[T]) subscribers() []func(State[T]) {
	fns := make([]func(State[T]), len(c.listeners))
	for i, l := range c.listeners {
		fns[i] = l.fn
	}
	return fns
}

func notify[T any](fns []func(State[T]), s State[T]) {
	for _, fn := range fns {
		fn(s)
	}
}
