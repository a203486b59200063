package wizard

import (
	"errors"
	"testing"
	"time"

	"github.com/programari/backend/pkg/contract"
)

// 2025-04-30 is a Wednesday.
var today = time.Date(2025, 4, 30, 15, 30, 0, 0, time.UTC)

var validDetails = Details{Name: "Ana Pop", Email: "ana@example.com", Phone: "0722000000"}

func apply(s State, events ...Event) State {
	for _, e := range events {
		s = Transition(s, e)
	}
	return s
}

func atDetails(t *testing.T) State {
	t.Helper()
	s := apply(Init(today, 2),
		SelectDate{Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		SelectTime{Slot: "14:00"},
		Next{},
	)
	if s.Step != EnteringDetails {
		t.Fatalf("expected EnteringDetails, got %v", s.Step)
	}
	return s
}

func TestInit(t *testing.T) {
	s := Init(today, 0)
	if s.Step != SelectingService || s.ServiceID != 0 {
		t.Errorf("unexpected initial state %+v", s)
	}
	if !s.Today.Equal(time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected today truncated to midnight, got %v", s.Today)
	}

	s = Init(today, 3)
	if s.Step != SelectingDateTime || s.ServiceID != 3 {
		t.Errorf("expected preselected service to skip ahead, got %+v", s)
	}
}

func TestSelectingService_RequiresSelection(t *testing.T) {
	s := Transition(Init(today, 0), Next{})
	if s.Step != SelectingService {
		t.Fatalf("expected to stay without a service, got %v", s.Step)
	}
	s = apply(s, SelectService{ID: 2}, Next{})
	if s.Step != SelectingDateTime || s.ServiceID != 2 {
		t.Errorf("unexpected state %+v", s)
	}
}

func TestSelectingDateTime_TimeWithoutDateIsNoop(t *testing.T) {
	s := apply(Init(today, 2), SelectTime{Slot: "09:00"}, Next{})
	if s.Time != "" || s.Step != SelectingDateTime {
		t.Errorf("time must not be selectable before a date, got %+v", s)
	}
}

func TestSelectingDateTime_DateWithoutTimeIsNoop(t *testing.T) {
	s := apply(Init(today, 2), SelectDate{Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)})
	if !s.HasDate() {
		t.Fatal("expected date to be selected")
	}
	after := Transition(s, Next{})
	if after.Step != SelectingDateTime {
		t.Errorf("expected to stay in SelectingDateTime, got %v", after.Step)
	}
}

func TestSelectDate_Policy(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		ok   bool
	}{
		{"yesterday", time.Date(2025, 4, 29, 0, 0, 0, 0, time.UTC), false},
		{"today", time.Date(2025, 4, 30, 8, 0, 0, 0, time.UTC), true},
		{"friday", time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), true},
		{"saturday", time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC), false},
		{"sunday", time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Transition(Init(today, 2), SelectDate{Date: tt.date})
			if s.HasDate() != tt.ok {
				t.Errorf("expected selectable=%v, got state %+v", tt.ok, s)
			}
		})
	}
}

func TestSelectTime_OnlyKnownSlots(t *testing.T) {
	s := apply(Init(today, 2),
		SelectDate{Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		SelectTime{Slot: "12:00"},
	)
	if s.Time != "" {
		t.Errorf("12:00 is not a slot, got %q", s.Time)
	}
	s = Transition(s, SelectTime{Slot: "13:00"})
	if s.Time != "13:00" {
		t.Errorf("expected 13:00, got %q", s.Time)
	}
}

func TestEnteringDetails_ChecksOnlyCustomerFields(t *testing.T) {
	s := atDetails(t)
	s = apply(s,
		EditDetails{Details: Details{Name: "Ana Pop", Email: "not-an-email", Phone: "07"}},
		Next{},
	)
	if s.Step != EnteringDetails {
		t.Fatalf("expected to stay in EnteringDetails, got %v", s.Step)
	}
	want := map[string]string{
		"customerEmail": "Email invalid",
		"customerPhone": "Phone number invalid",
	}
	if len(s.FieldErrors) != len(want) {
		t.Fatalf("expected %v, got %v", want, s.FieldErrors)
	}
	for k, v := range want {
		if s.FieldErrors[k] != v {
			t.Errorf("%s: expected %q, got %q", k, v, s.FieldErrors[k])
		}
	}

	s = apply(s, EditDetails{Details: validDetails}, Next{})
	if s.Step != Submitting {
		t.Errorf("expected Submitting, got %v", s.Step)
	}
	if s.FieldErrors != nil {
		t.Errorf("expected errors cleared, got %v", s.FieldErrors)
	}
}

func TestPrev(t *testing.T) {
	if s := Transition(Init(today, 0), Prev{}); s.Step != SelectingService {
		t.Errorf("Prev from initial step must be a no-op, got %v", s.Step)
	}
	s := atDetails(t)
	s = Transition(s, Prev{})
	if s.Step != SelectingDateTime || s.Time != "14:00" {
		t.Errorf("expected back to SelectingDateTime keeping the slot, got %+v", s)
	}
	s = Transition(s, Prev{})
	if s.Step != SelectingService || s.ServiceID != 2 {
		t.Errorf("expected back to SelectingService keeping the service, got %+v", s)
	}
}

func TestSubmitting_Outcomes(t *testing.T) {
	submitting := apply(atDetails(t), EditDetails{Details: validDetails}, Next{})

	if s := Transition(submitting, Prev{}); s.Step != Submitting {
		t.Errorf("Prev must be disabled while submitting, got %v", s.Step)
	}
	if s := Transition(submitting, EditDetails{Details: Details{}}); s.Details != validDetails {
		t.Error("details must not change while submitting")
	}

	boom := errors.New("network down")
	failed := Transition(submitting, SubmitFailed{Err: boom})
	if failed.Step != EnteringDetails || !errors.Is(failed.Err, boom) {
		t.Errorf("expected EnteringDetails with error, got %+v", failed)
	}

	done := Transition(submitting, SubmitSucceeded{Result: contract.Created{ID: 9, Message: "Booking created successfully"}})
	if done.Step != Completed || done.Result == nil || done.Result.ID != 9 {
		t.Fatalf("expected Completed with result, got %+v", done)
	}
	if s := Transition(done, Prev{}); s.Step != Completed {
		t.Errorf("Prev from Completed must be a no-op, got %v", s.Step)
	}

	reset := Transition(done, Reset{})
	if reset.Step != SelectingService || reset.ServiceID != 0 || reset.HasDate() || reset.Result != nil {
		t.Errorf("expected a fresh state, got %+v", reset)
	}
	if !reset.Today.Equal(done.Today) {
		t.Error("reset must keep today")
	}
}

func TestReset_OnlyFromCompleted(t *testing.T) {
	s := atDetails(t)
	if got := Transition(s, Reset{}); got.Step != EnteringDetails {
		t.Errorf("Reset outside Completed must be a no-op, got %v", got.Step)
	}
}

func TestTransition_DoesNotMutateInput(t *testing.T) {
	s := apply(atDetails(t), EditDetails{Details: Details{Name: "A"}}, Next{})
	before := s.FieldErrors["customerName"]
	_ = Transition(s, EditDetails{Details: validDetails})
	if s.FieldErrors["customerName"] != before {
		t.Error("Transition mutated its input state")
	}
}
