package wizard

import (
	"errors"
	"time"

	"github.com/programari/backend/pkg/contract"
)

// Event is an input to Transition.
type Event interface {
	event()
}

type (
	// SelectService picks a service; ID <= 0 clears the selection.
	SelectService struct{ ID int }
	SelectDate    struct{ Date time.Time }
	// SelectTime picks one of TimeSlots.
	SelectTime  struct{ Slot string }
	EditDetails struct{ Details Details }
	Next        struct{}
	Prev        struct{}
	// SubmitSucceeded and SubmitFailed report the outcome of a submission.
	SubmitSucceeded struct{ Result contract.Created }
	SubmitFailed    struct{ Err error }
	// Reset starts over after a completed booking.
	Reset struct{}
)

func (SelectService) event()   {}
func (SelectDate) event()      {}
func (SelectTime) event()      {}
func (EditDetails) event()     {}
func (Next) event()            {}
func (Prev) event()            {}
func (SubmitSucceeded) event() {}
func (SubmitFailed) event()    {}
func (Reset) event()           {}

// customerFields are the fields checked when leaving EnteringDetails.
var customerFields = []string{"customerName", "customerEmail", "customerPhone"}

// Transition returns the state after e. Events that are not allowed in the
// current step return s unchanged.
func Transition(s State, e Event) State {
	switch e := e.(type) {
	case SelectService:
		if s.Step != SelectingService {
			return s
		}
		s.ServiceID = max(e.ID, 0)
	case SelectDate:
		if s.Step != SelectingDateTime || !s.Selectable(e.Date) {
			return s
		}
		s.Date = dayOf(e.Date, s.Today.Location())
	case SelectTime:
		if s.Step != SelectingDateTime || !s.HasDate() || !validSlot(e.Slot) {
			return s
		}
		s.Time = e.Slot
	case EditDetails:
		if s.Step != EnteringDetails {
			return s
		}
		s.Details = e.Details
		s.FieldErrors = nil
	case Next:
		return next(s)
	case Prev:
		switch s.Step {
		case SelectingDateTime:
			s.Step = SelectingService
		case EnteringDetails:
			s.Step = SelectingDateTime
		}
	case SubmitSucceeded:
		if s.Step != Submitting {
			return s
		}
		result := e.Result
		s.Step = Completed
		s.Result = &result
		s.Err = nil
	case SubmitFailed:
		if s.Step != Submitting {
			return s
		}
		s.Step = EnteringDetails
		s.Err = e.Err
		if s.Err == nil {
			s.Err = errors.New("wizard: submission failed")
		}
	case Reset:
		if s.Step != Completed {
			return s
		}
		return Init(s.Today, 0)
	}
	return s
}

func next(s State) State {
	switch s.Step {
	case SelectingService:
		if s.ServiceID > 0 {
			s.Step = SelectingDateTime
		}
	case SelectingDateTime:
		if s.HasDate() && s.Time != "" {
			s.Step = EnteringDetails
		}
	case EnteringDetails:
		if errs := checkDetails(s.Details); errs != nil {
			s.FieldErrors = errs
			return s
		}
		s.FieldErrors = nil
		s.Err = nil
		s.Step = Submitting
	}
	return s
}

// checkDetails runs the booking input rules on the customer fields only.
func checkDetails(d Details) map[string]string {
	err := contract.InsertBookingSchema.CheckFields(map[string]any{
		"customerName":  d.Name,
		"customerEmail": d.Email,
		"customerPhone": d.Phone,
	}, customerFields...)
	if err == nil {
		return nil
	}
	var verr *contract.ValidationError
	if !errors.As(err, &verr) {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(customerFields))
	for _, fe := range verr.Errors {
		if _, seen := out[fe.Path]; !seen {
			out[fe.Path] = fe.Message
		}
	}
	return out
}
