package handler

import (
	"context"

	"github.com/programari/backend/internal/model"
	"github.com/programari/backend/pkg/contract"
)

type mockStore struct {
	mockDB
	listServicesFunc  func(ctx context.Context) ([]model.Service, error)
	getServiceFunc    func(ctx context.Context, slug string) (*model.Service, error)
	createServiceFunc func(ctx context.Context, in contract.InsertService) (*model.Service, error)
	createBookingFunc func(ctx context.Context, in contract.InsertBooking) (*model.Booking, error)
	createMessageFunc func(ctx context.Context, in contract.InsertMessage) (*model.Message, error)
}

func (m *mockStore) ListServices(ctx context.Context) ([]model.Service, error) {
	if m.listServicesFunc != nil {
		return m.listServicesFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) GetServiceBySlug(ctx context.Context, slug string) (*model.Service, error) {
	if m.getServiceFunc != nil {
		return m.getServiceFunc(ctx, slug)
	}
	return nil, nil
}

func (m *mockStore) CreateService(ctx context.Context, in contract.InsertService) (*model.Service, error) {
	if m.createServiceFunc != nil {
		return m.createServiceFunc(ctx, in)
	}
	return &model.Service{ID: 1}, nil
}

func (m *mockStore) CreateBooking(ctx context.Context, in contract.InsertBooking) (*model.Booking, error) {
	if m.createBookingFunc != nil {
		return m.createBookingFunc(ctx, in)
	}
	return &model.Booking{ID: 1, InsertBooking: in, Status: model.BookingPending}, nil
}

func (m *mockStore) CreateMessage(ctx context.Context, in contract.InsertMessage) (*model.Message, error) {
	if m.createMessageFunc != nil {
		return m.createMessageFunc(ctx, in)
	}
	return &model.Message{ID: 1, InsertMessage: in}, nil
}
