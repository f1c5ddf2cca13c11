package repository

import (
	"context"

	"astro/pkg/model"
)

// ReservationRepository persists reservations. Implementations assign ids
// in strictly increasing order and stamp CreatedAt at insert time.
type ReservationRepository interface {
	CreateReservation(ctx context.Context, input *model.ReservationInput) (*model.Reservation, error)
	GetReservations(ctx context.Context) ([]*model.Reservation, error)
}

func cloneReservation(r *model.Reservation) *model.Reservation {
	c := *r
	return &c
}
