package handler

import (
	"context"
	"net/http"

	"github.com/programari/backend/internal/model"
	"github.com/programari/backend/pkg/contract"
)

type BookingCreator interface {
	CreateBooking(ctx context.Context, in contract.InsertBooking) (*model.Booking, error)
}

// BookingHandler accepts booking requests.
type BookingHandler struct {
	bookings BookingCreator
}

func NewBookingHandler(bookings BookingCreator) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Create handles POST /api/bookings. New bookings start as pending.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	ep := contract.API.Bookings.Create
	in, ok := decodeInput[contract.InsertBooking](w, r, ep)
	if !ok {
		return
	}

	booking, err := h.bookings.CreateBooking(r.Context(), in)
	if err != nil {
		writeInternalError(w, r, ep, err)
		return
	}
	writeJSON(w, ep.SuccessStatus(), contract.Created{
		ID:      booking.ID,
		Message: "Booking created successfully",
	})
}
