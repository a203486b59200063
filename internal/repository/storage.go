package repository

import (
	"context"

	"github.com/programari/backend/internal/model"
	"github.com/programari/backend/pkg/contract"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// Storage is the persistence port the request handlers depend on.
// Implementations own their concurrency; callers hold no locks.
type Storage interface {
	DB

	// ListServices returns every service in storage order.
	ListServices(ctx context.Context) ([]model.Service, error)
	// GetServiceBySlug returns ErrNotFound when no service has the slug.
	GetServiceBySlug(ctx context.Context, slug string) (*model.Service, error)
	// CreateService returns ErrDuplicateSlug when the slug is taken.
	CreateService(ctx context.Context, in contract.InsertService) (*model.Service, error)
	// CreateBooking stores a pending booking and assigns ID and CreatedAt.
	CreateBooking(ctx context.Context, in contract.InsertBooking) (*model.Booking, error)
	// CreateMessage stores a message and assigns ID and CreatedAt.
	CreateMessage(ctx context.Context, in contract.InsertMessage) (*model.Message, error)
}
