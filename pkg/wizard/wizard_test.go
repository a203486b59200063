package wizard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/programari/backend/pkg/contract"
)

func drive(ctx context.Context, w *Wizard) State {
	w.Dispatch(ctx, SelectDate{Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)})
	w.Dispatch(ctx, SelectTime{Slot: "10:00"})
	w.Dispatch(ctx, Next{})
	w.Dispatch(ctx, EditDetails{Details: validDetails})
	return w.Dispatch(ctx, Next{})
}

func TestWizard_SubmitsOnEntryToSubmitting(t *testing.T) {
	var got contract.InsertBooking
	var calls int32
	w := New(func(ctx context.Context, in contract.InsertBooking) (contract.Created, error) {
		atomic.AddInt32(&calls, 1)
		got = in
		return contract.Created{ID: 5, Message: "Booking created successfully"}, nil
	}, today, 2)
	defer w.Close()

	var steps []Step
	w.OnChange(func(s State) { steps = append(steps, s.Step) })

	s := drive(context.Background(), w)
	if s.Step != Submitting {
		t.Fatalf("expected Submitting, got %v", s.Step)
	}
	w.Wait()

	final := w.State()
	if final.Step != Completed || final.Result.ID != 5 {
		t.Fatalf("expected Completed, got %+v", final)
	}
	if calls != 1 {
		t.Errorf("expected one submission, got %d", calls)
	}
	if !got.Date.Equal(time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected submitted date %v", got.Date)
	}
	if steps[len(steps)-1] != Completed {
		t.Errorf("OnChange did not see completion: %v", steps)
	}
}

func TestWizard_FailureReturnsToDetails(t *testing.T) {
	boom := errors.New("server unavailable")
	w := New(func(ctx context.Context, in contract.InsertBooking) (contract.Created, error) {
		return contract.Created{}, boom
	}, today, 2)
	defer w.Close()

	drive(context.Background(), w)
	w.Wait()

	s := w.State()
	if s.Step != EnteringDetails || !errors.Is(s.Err, boom) {
		t.Errorf("expected EnteringDetails with error, got %+v", s)
	}
}

func TestWizard_BypassedGatingNeverSubmits(t *testing.T) {
	var calls int32
	w := New(func(ctx context.Context, in contract.InsertBooking) (contract.Created, error) {
		atomic.AddInt32(&calls, 1)
		return contract.Created{ID: 1, Message: "ok"}, nil
	}, today, 2)
	defer w.Close()

	// Jump straight to details with no date or time selected.
	w.state = State{Step: EnteringDetails, Today: w.state.Today, ServiceID: 2, Details: validDetails}

	s := w.Dispatch(context.Background(), Next{})
	w.Wait()

	if calls != 0 {
		t.Errorf("expected no submission, got %d", calls)
	}
	if s.Step != EnteringDetails || !errors.Is(s.Err, ErrIncompleteSelection) {
		t.Errorf("expected EnteringDetails with ErrIncompleteSelection, got %+v", s)
	}
}

func TestWizard_CloseDropsLateResult(t *testing.T) {
	started := make(chan struct{})
	var sawCancel atomic.Bool
	w := New(func(ctx context.Context, in contract.InsertBooking) (contract.Created, error) {
		close(started)
		<-ctx.Done()
		sawCancel.Store(true)
		return contract.Created{ID: 1, Message: "late"}, nil
	}, today, 2)

	drive(context.Background(), w)
	<-started
	w.Close()
	w.Wait()

	if !sawCancel.Load() {
		t.Error("expected submission context to be cancelled")
	}
	if s := w.State(); s.Step != Submitting {
		t.Errorf("late result must not change state, got %v", s.Step)
	}
	if s := w.Dispatch(context.Background(), Prev{}); s.Step != Submitting {
		t.Errorf("closed wizard must ignore events, got %v", s.Step)
	}
}
