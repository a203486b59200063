package repository

import (
	"context"
	"sync"
	"time"

	"github.com/programari/backend/internal/model"
	"github.com/programari/backend/pkg/contract"
)

// MemoryStorage keeps everything in process memory. Records are returned in
// insertion order. Used by tests and by DATABASE_URL=memory.
type MemoryStorage struct {
	mu       sync.RWMutex
	now      func() time.Time
	services []model.Service
	bookings []model.Booking
	messages []model.Message
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{now: func() time.Time { return time.Now().UTC() }}
}

var _ Storage = (*MemoryStorage)(nil)

func (s *MemoryStorage) Ping(context.Context) error { return nil }

func (s *MemoryStorage) ListServices(context.Context) ([]model.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Service, len(s.services))
	copy(out, s.services)
	return out, nil
}

func (s *MemoryStorage) GetServiceBySlug(_ context.Context, slug string) (*model.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, svc := range s.services {
		if svc.Slug == slug {
			found := svc
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStorage) CreateService(_ context.Context, in contract.InsertService) (*model.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, svc := range s.services {
		if svc.Slug == in.Slug {
			return nil, ErrDuplicateSlug
		}
	}
	svc := model.Service{
		ID:               len(s.services) + 1,
		Title:            in.Title,
		Slug:             in.Slug,
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		Price:            in.Price,
		Duration:         in.Duration,
		ImageURL:         in.ImageURL,
	}
	s.services = append(s.services, svc)
	return &svc, nil
}

func (s *MemoryStorage) CreateBooking(_ context.Context, in contract.InsertBooking) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := model.Booking{
		ID:            len(s.bookings) + 1,
		InsertBooking: in,
		Status:        model.BookingPending,
		CreatedAt:     s.now(),
	}
	s.bookings = append(s.bookings, b)
	return &b, nil
}

func (s *MemoryStorage) CreateMessage(_ context.Context, in contract.InsertMessage) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := model.Message{
		ID:            len(s.messages) + 1,
		InsertMessage: in,
		CreatedAt:     s.now(),
	}
	s.messages = append(s.messages, m)
	return &m, nil
}

// Bookings returns a copy of the stored bookings.
func (s *MemoryStorage) Bookings() []model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

// Messages returns a copy of the stored messages.
func (s *MemoryStorage) Messages() []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}
