package wizard

import (
	"errors"
	"fmt"
	"time"

	"github.com/programari/backend/pkg/contract"
)

// ErrIncompleteSelection is returned by BuildSubmission when the service,
// date or time is missing.
var ErrIncompleteSelection = errors.New("wizard: service, date and time must be selected")

// ComposeDate returns date with its time of day replaced by slot ("HH:MM",
// 24-hour). Seconds and below are zeroed.
func ComposeDate(date time.Time, slot string) (time.Time, error) {
	hm, err := time.Parse("15:04", slot)
	if err != nil {
		return time.Time{}, fmt.Errorf("wizard: invalid time slot %q", slot)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hm.Hour(), hm.Minute(), 0, 0, date.Location()), nil
}

// BuildSubmission assembles the booking request from s. It checks the
// selection itself rather than trusting the step.
func BuildSubmission(s State) (contract.InsertBooking, error) {
	if s.ServiceID <= 0 || !s.HasDate() || s.Time == "" {
		return contract.InsertBooking{}, ErrIncompleteSelection
	}
	date, err := ComposeDate(s.Date, s.Time)
	if err != nil {
		return contract.InsertBooking{}, err
	}
	return contract.InsertBooking{
		ServiceID:     s.ServiceID,
		CustomerName:  s.Details.Name,
		CustomerEmail: s.Details.Email,
		CustomerPhone: s.Details.Phone,
		Date:          date,
	}, nil
}
