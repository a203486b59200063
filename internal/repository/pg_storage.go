package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/programari/backend/internal/model"
	"github.com/programari/backend/pkg/contract"
)

const uniqueViolation = "23505"

// PgStorage is the PostgreSQL implementation of Storage.
type PgStorage struct {
	pool *pgxpool.Pool
}

// NewPgStorage creates a PgStorage backed by the given pool.
func NewPgStorage(pool *pgxpool.Pool) *PgStorage {
	return &PgStorage{pool: pool}
}

// Ensure PgStorage implements Storage at compile time.
var _ Storage = (*PgStorage)(nil)

func (s *PgStorage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

const serviceColumns = `id, title, slug, description, short_description, price, duration, image_url`

func scanService(row pgx.Row) (*model.Service, error) {
	var svc model.Service
	if err := row.Scan(&svc.ID, &svc.Title, &svc.Slug, &svc.Description,
		&svc.ShortDescription, &svc.Price, &svc.Duration, &svc.ImageURL); err != nil {
		return nil, err
	}
	return &svc, nil
}

// ListServices returns all services ordered by id.
func (s *PgStorage) ListServices(ctx context.Context) ([]model.Service, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []model.Service{}
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, *svc)
	}
	return services, rows.Err()
}

func (s *PgStorage) GetServiceBySlug(ctx context.Context, slug string) (*model.Service, error) {
	svc, err := scanService(s.pool.QueryRow(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE slug = $1`, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *PgStorage) CreateService(ctx context.Context, in contract.InsertService) (*model.Service, error) {
	svc := &model.Service{
		Title:            in.Title,
		Slug:             in.Slug,
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		Price:            in.Price,
		Duration:         in.Duration,
		ImageURL:         in.ImageURL,
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO services (title, slug, description, short_description, price, duration, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		in.Title, in.Slug, in.Description, in.ShortDescription, in.Price, in.Duration, in.ImageURL,
	).Scan(&svc.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}
	return svc, nil
}

// CreateBooking inserts a bookings row; status and created_at come from the
// column defaults.
func (s *PgStorage) CreateBooking(ctx context.Context, in contract.InsertBooking) (*model.Booking, error) {
	b := &model.Booking{InsertBooking: in}
	var status string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO bookings (service_id, customer_name, customer_email, customer_phone, date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, status, created_at`,
		in.ServiceID, in.CustomerName, in.CustomerEmail, in.CustomerPhone, in.Date,
	).Scan(&b.ID, &status, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	b.Status = model.BookingStatus(status)
	return b, nil
}

func (s *PgStorage) CreateMessage(ctx context.Context, in contract.InsertMessage) (*model.Message, error) {
	m := &model.Message{InsertMessage: in}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO messages (name, email, message)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		in.Name, in.Email, in.Message,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}
