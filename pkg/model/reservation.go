package model

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type Reservation struct {
	ID              int64       `json:"id" db:"id"`
	Name            string      `json:"name" db:"name"`
	Phone           string      `json:"phone" db:"phone"`
	Date            string      `json:"date" db:"date"`
	Time            string      `json:"time" db:"time"`
	Guests          string      `json:"guests" db:"guests"`
	SpecialRequests null.String `json:"specialRequests" db:"special_requests"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
}

// ReservationInput is a booking request that passed validation. The store
// assigns ID and CreatedAt when it turns an input into a Reservation.
type ReservationInput struct {
	Name            string      `json:"name" validate:"minlen=2"`
	Phone           string      `json:"phone" validate:"minlen=6"`
	Date            string      `json:"date" validate:"minlen=1"`
	Time            string      `json:"time" validate:"minlen=1"`
	Guests          string      `json:"guests" validate:"minlen=1"`
	SpecialRequests null.String `json:"specialRequests,omitzero"`
}

// NewReservation builds the stored record for an input.
func NewReservation(id int64, input *ReservationInput, createdAt time.Time) *Reservation {
	return &Reservation{
		ID:              id,
		Name:            input.Name,
		Phone:           input.Phone,
		Date:            input.Date,
		Time:            input.Time,
		Guests:          input.Guests,
		SpecialRequests: input.SpecialRequests,
		CreatedAt:       createdAt,
	}
}

// ReservationCreatedResponse is the 201 body of POST /api/reservations.
type ReservationCreatedResponse struct {
	Message     string       `json:"message"`
	Reservation *Reservation `json:"reservation"`
}
