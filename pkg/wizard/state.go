// Package wizard is the booking flow as a finite-state machine:
// service, then date and time, then customer details, then submission.
// Transition is pure; Wizard adds the submission side effect.
package wizard

import (
	"slices"
	"time"

	"github.com/programari/backend/pkg/contract"
)

type Step int

const (
	SelectingService Step = iota
	SelectingDateTime
	EnteringDetails
	Submitting
	Completed
)

func (s Step) String() string {
	switch s {
	case SelectingService:
		return "selecting-service"
	case SelectingDateTime:
		return "selecting-date-time"
	case EnteringDetails:
		return "entering-details"
	case Submitting:
		return "submitting"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// TimeSlots are the bookable start times, 24-hour HH:MM.
var TimeSlots = []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"}

// Details are the customer identity fields.
type Details struct {
	Name  string
	Email string
	Phone string
}

// State is one snapshot of the wizard. Treat it as a value: Transition never
// mutates its input.
type State struct {
	Step Step
	// Today bounds date selection; dates before it are refused.
	Today time.Time

	ServiceID int // 0 means none selected
	Date      time.Time
	Time      string
	Details   Details

	// FieldErrors holds the first error per customer field from the last
	// attempt to leave EnteringDetails.
	FieldErrors map[string]string
	// Err is the last submission failure.
	Err error
	// Result is set once Completed.
	Result *contract.Created
}

// HasDate reports whether a calendar date is selected.
func (s State) HasDate() bool { return !s.Date.IsZero() }

// CanGoBack reports whether Prev would change the step.
func (s State) CanGoBack() bool {
	return s.Step == SelectingDateTime || s.Step == EnteringDetails
}

// Init returns the starting state. A positive preselected service id skips
// the service step.
func Init(today time.Time, preselected int) State {
	s := State{Step: SelectingService, Today: dayOf(today, today.Location())}
	if preselected > 0 {
		s.ServiceID = preselected
		s.Step = SelectingDateTime
	}
	return s
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Selectable reports whether date may be picked: not before today and not on
// a weekend.
func (s State) Selectable(date time.Time) bool {
	d := dayOf(date, s.Today.Location())
	if d.Before(s.Today) {
		return false
	}
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func validSlot(slot string) bool {
	return slices.Contains(TimeSlots, slot)
}
