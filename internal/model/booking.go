package model

import (
	"time"

	"github.com/programari/backend/pkg/contract"
)

// BookingStatus is the operator-managed state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// Booking is a stored appointment request. Status starts as pending; nothing
// in this service changes it afterwards.
type Booking struct {
	ID int `json:"id"`
	contract.InsertBooking
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}
