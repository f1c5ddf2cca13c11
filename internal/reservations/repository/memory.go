package repository

import (
	"context"
	"sync"
	"time"

	reservationserrors "astro/internal/reservations/errors"
	"astro/pkg/model"
)

type memoryReservationRepository struct {
	mu           sync.Mutex
	reservations []*model.Reservation
	nextID       int64
	now          func() time.Time
}

func NewMemoryReservationRepository() ReservationRepository {
	return &memoryReservationRepository{
		reservations: make([]*model.Reservation, 0),
		nextID:       1,
		now:          time.Now,
	}
}

func (r *memoryReservationRepository) CreateReservation(ctx context.Context, input *model.ReservationInput) (*model.Reservation, error) {
	if input == nil {
		return nil, reservationserrors.ErrNilInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	reservation := model.NewReservation(r.nextID, input, r.now().UTC())
	r.nextID++
	r.reservations = append(r.reservations, reservation)

	return cloneReservation(reservation), nil
}

func (r *memoryReservationRepository) GetReservations(ctx context.Context) ([]*model.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Reservation, 0, len(r.reservations))
	for _, reservation := range r.reservations {
		out = append(out, cloneReservation(reservation))
	}
	return out, nil
}
