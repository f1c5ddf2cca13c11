package repository

import (
	"context"
	"fmt"
	"time"

	reservationserrors "astro/internal/reservations/errors"
	"astro/pkg/db"
	"astro/pkg/model"

	"github.com/jmoiron/sqlx"
)

const (
	insertReservationQuery = `
		INSERT INTO reservations (name, phone, "date", "time", guests, special_requests)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, phone, "date", "time", guests, special_requests, created_at`

	selectReservationsQuery = `
		SELECT id, name, phone, "date", "time", guests, special_requests, created_at
		FROM reservations
		ORDER BY id ASC`
)

type postgresReservationRepository struct {
	db           *sqlx.DB
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewPostgresReservationRepository(conn *sqlx.DB, readTimeout, writeTimeout time.Duration) ReservationRepository {
	return &postgresReservationRepository{
		db:           conn,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// CreateReservation relies on the SERIAL id column and the created_at
// default, so id assignment and insert are one atomic statement.
func (r *postgresReservationRepository) CreateReservation(ctx context.Context, input *model.ReservationInput) (*model.Reservation, error) {
	if input == nil {
		return nil, reservationserrors.ErrNilInput
	}

	ctx, cancel := db.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	var reservation model.Reservation
	err := r.db.GetContext(ctx, &reservation, insertReservationQuery,
		input.Name,
		input.Phone,
		input.Date,
		input.Time,
		input.Guests,
		input.SpecialRequests,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to insert reservation: %w", reservationserrors.ErrStorage, err)
	}

	reservation.CreatedAt = reservation.CreatedAt.UTC()
	return &reservation, nil
}

func (r *postgresReservationRepository) GetReservations(ctx context.Context) ([]*model.Reservation, error) {
	ctx, cancel := db.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	reservations := make([]*model.Reservation, 0)
	if err := r.db.SelectContext(ctx, &reservations, selectReservationsQuery); err != nil {
		return nil, fmt.Errorf("%w: failed to list reservations: %w", reservationserrors.ErrStorage, err)
	}

	for _, reservation := range reservations {
		reservation.CreatedAt = reservation.CreatedAt.UTC()
	}
	return reservations, nil
}
