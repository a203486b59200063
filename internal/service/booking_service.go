package service

import (
	"context"
	"log/slog"

	"github.com/programari/backend/internal/event"
	"github.com/programari/backend/internal/model"
	"github.com/programari/backend/pkg/contract"
)

// BookingRepository is the part of the storage port bookings need.
type BookingRepository interface {
	CreateBooking(ctx context.Context, in contract.InsertBooking) (*model.Booking, error)
}

// BookingService defines the business logic for booking requests.
type BookingService interface {
	// CreateBooking stores a pending booking and announces it. The returned
	// booking carries the id, status and created_at assigned by storage.
	CreateBooking(ctx context.Context, in contract.InsertBooking) (*model.Booking, error)
}

// bookingServiceImpl is the production implementation of BookingService.
type bookingServiceImpl struct {
	repo      BookingRepository
	publisher event.Publisher
}

// NewBookingService creates a BookingService. A nil publisher drops events.
func NewBookingService(repo BookingRepository, publisher event.Publisher) BookingService {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &bookingServiceImpl{repo: repo, publisher: publisher}
}

// CreateBooking persists the booking, then publishes booking.created. A
// publish failure is logged; the booking stands. The publisher must not
// block, see event.AsyncPublisher.
func (s *bookingServiceImpl) CreateBooking(ctx context.Context, in contract.InsertBooking) (*model.Booking, error) {
	b, err := s.repo.CreateBooking(ctx, in)
	if err != nil {
		return nil, err
	}

	// リクエストがキャンセルされてもイベント送信は続ける
	if err := s.publisher.PublishBookingCreated(context.WithoutCancel(ctx), b); err != nil {
		slog.Error("failed to publish booking event",
			"booking_id", b.ID,
			"event_type", event.TypeBookingCreated,
			"error", err,
		)
	}
	return b, nil
}
