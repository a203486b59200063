package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/programari/backend/pkg/contract"
)

// Submitter sends a booking, e.g. (*client.Client).CreateBooking.
type Submitter func(ctx context.Context, in contract.InsertBooking) (contract.Created, error)

// Wizard runs the state machine for one user session. Entering Submitting
// starts the submitter in the background; its outcome is fed back as
// SubmitSucceeded or SubmitFailed. After Close no result changes the state.
type Wizard struct {
	submit Submitter

	mu       sync.Mutex
	state    State
	attempt  int
	closed   bool
	onChange func(State)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(submit Submitter, today time.Time, preselected int) *Wizard {
	ctx, cancel := context.WithCancel(context.Background())
	return &Wizard{
		submit: submit,
		state:  Init(today, preselected),
		ctx:    ctx,
		cancel: cancel,
	}
}

// OnChange registers fn to be called with every new state, in order. fn runs
// with the wizard locked and must not call back into it.
func (w *Wizard) OnChange(fn func(State)) {
	w.mu.Lock()
	w.onChange = fn
	w.mu.Unlock()
}

func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Dispatch applies e and returns the resulting state. ctx bounds the
// submission started by this event, if any.
func (w *Wizard) Dispatch(ctx context.Context, e Event) State {
	w.mu.Lock()
	if w.closed {
		s := w.state
		w.mu.Unlock()
		return s
	}
	prev := w.state
	w.state = Transition(prev, e)
	if prev.Step != Submitting && w.state.Step == Submitting {
		w.startSubmission(ctx)
	}
	w.notify()
	s := w.state
	w.mu.Unlock()
	return s
}

// notify must be called with w.mu held.
func (w *Wizard) notify() {
	if w.onChange != nil {
		w.onChange(w.state)
	}
}

// startSubmission must be called with w.mu held.
func (w *Wizard) startSubmission(ctx context.Context) {
	w.attempt++
	attempt := w.attempt

	in, err := BuildSubmission(w.state)
	if err != nil {
		w.state = Transition(w.state, SubmitFailed{Err: err})
		return
	}

	sctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(w.ctx, cancel)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer stop()
		defer cancel()

		out, err := w.submit(sctx, in)
		var e Event = SubmitSucceeded{Result: out}
		if err != nil {
			e = SubmitFailed{Err: err}
		}
		w.deliver(attempt, e)
	}()
}

func (w *Wizard) deliver(attempt int, e Event) {
	w.mu.Lock()
	if w.closed || attempt != w.attempt || w.state.Step != Submitting {
		w.mu.Unlock()
		return
	}
	w.state = Transition(w.state, e)
	w.notify()
	w.mu.Unlock()
}

// Wait blocks until the background submission, if any, has returned.
func (w *Wizard) Wait() {
	w.wg.Wait()
}

// Close cancels any in-flight submission and freezes the state.
func (w *Wizard) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.cancel()
}
