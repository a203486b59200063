package client

import (
	"context"
	"errors"
	"sync"
)

// ErrMutationInFlight is returned by Mutation.Run while a previous run has
// not finished.
var ErrMutationInFlight = errors.New("client: mutation already in flight")

type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// MutationState is a snapshot of a Mutation.
type MutationState[Out any] struct {
	Status Status
	Data   Out
	Err    error
}

// Mutation tracks a single-flight write such as Client.CreateBooking so a
// form can disable itself while the request is outstanding.
type Mutation[In, Out any] struct {
	fn    func(context.Context, In) (Out, error)
	mu    sync.Mutex
	state MutationState[Out]
}

func NewMutation[In, Out any](fn func(context.Context, In) (Out, error)) *Mutation[In, Out] {
	return &Mutation[In, Out]{fn: fn}
}

// Run executes the mutation. Only one run may be pending at a time.
func (m *Mutation[In, Out]) Run(ctx context.Context, in In) (Out, error) {
	m.mu.Lock()
	if m.state.Status == StatusPending {
		m.mu.Unlock()
		var zero Out
		return zero, ErrMutationInFlight
	}
	m.state = MutationState[Out]{Status: StatusPending}
	m.mu.Unlock()

	out, err := m.fn(ctx, in)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = MutationState[Out]{Status: StatusError, Err: err}
	} else {
		m.state = MutationState[Out]{Status: StatusSuccess, Data: out}
	}
	return out, err
}

func (m *Mutation[In, Out]) State() MutationState[Out] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mutation[In, Out]) Pending() bool {
	return m.State().Status == StatusPending
}

// Reset returns an idle mutation to StatusIdle. It has no effect while a run
// is pending.
func (m *Mutation[In, Out]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Status != StatusPending {
		m.state = MutationState[Out]{}
	}
}
