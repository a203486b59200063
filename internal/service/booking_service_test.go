package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/programari/backend/internal/model"
	"github.com/programari/backend/pkg/contract"
)

// ---------------------------------------------------------------------------
// mocks
// ---------------------------------------------------------------------------

type mockBookingRepository struct {
	createFunc func(ctx context.Context, in contract.InsertBooking) (*model.Booking, error)
}

func (m *mockBookingRepository) CreateBooking(ctx context.Context, in contract.InsertBooking) (*model.Booking, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, in)
	}
	return &model.Booking{ID: 1, InsertBooking: in, Status: model.BookingPending}, nil
}

type mockPublisher struct {
	publishFunc func(ctx context.Context, b *model.Booking) error
	published   []*model.Booking
}

func (m *mockPublisher) PublishBookingCreated(ctx context.Context, b *model.Booking) error {
	m.published = append(m.published, b)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, b)
	}
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func sampleBooking() contract.InsertBooking {
	return contract.InsertBooking{
		ServiceID:     2,
		CustomerName:  "Ana Pop",
		CustomerEmail: "ana@example.com",
		CustomerPhone: "0722000000",
		Date:          time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

// ---------------------------------------------------------------------------
// CreateBooking tests
// ---------------------------------------------------------------------------

func TestBookingService_CreateBooking_PublishesAfterStore(t *testing.T) {
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, in contract.InsertBooking) (*model.Booking, error) {
			return &model.Booking{ID: 42, InsertBooking: in, Status: model.BookingPending}, nil
		},
	}
	pub := &mockPublisher{}
	svc := NewBookingService(repo, pub)

	b, err := svc.CreateBooking(context.Background(), sampleBooking())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID != 42 {
		t.Errorf("expected id 42, got %d", b.ID)
	}
	if len(pub.published) != 1 || pub.published[0].ID != 42 {
		t.Errorf("expected one event for booking 42, got %+v", pub.published)
	}
}

func TestBookingService_CreateBooking_StoreFailure(t *testing.T) {
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, in contract.InsertBooking) (*model.Booking, error) {
			return nil, errors.New("insert failed")
		},
	}
	pub := &mockPublisher{}
	svc := NewBookingService(repo, pub)

	if _, err := svc.CreateBooking(context.Background(), sampleBooking()); err == nil {
		t.Fatal("expected error")
	}
	if len(pub.published) != 0 {
		t.Error("no event should be published when storage fails")
	}
}

func TestBookingService_CreateBooking_PublishFailureKeepsBooking(t *testing.T) {
	pub := &mockPublisher{
		publishFunc: func(ctx context.Context, b *model.Booking) error {
			return errors.New("kafka unavailable")
		},
	}
	svc := NewBookingService(&mockBookingRepository{}, pub)

	b, err := svc.CreateBooking(context.Background(), sampleBooking())
	if err != nil {
		t.Fatalf("publish failure must not fail the booking: %v", err)
	}
	if b == nil || b.Status != model.BookingPending {
		t.Errorf("unexpected booking %+v", b)
	}
}

func TestBookingService_CreateBooking_PublishOutlivesRequest(t *testing.T) {
	var pubCtxErr error
	pub := &mockPublisher{
		publishFunc: func(ctx context.Context, b *model.Booking) error {
			pubCtxErr = ctx.Err()
			return nil
		},
	}
	svc := NewBookingService(&mockBookingRepository{}, pub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.CreateBooking(ctx, sampleBooking()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pubCtxErr != nil {
		t.Errorf("publish context should not be cancelled, got %v", pubCtxErr)
	}
}

func TestNewBookingService_NilPublisher(t *testing.T) {
	svc := NewBookingService(&mockBookingRepository{}, nil)
	if _, err := svc.CreateBooking(context.Background(), sampleBooking()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
