package model

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

const (
	EventReservationCreated = "reservation.created"
	EventSchemaVersion      = "1"
)

// ReservationCreatedEvent is published after a reservation is stored.
type ReservationCreatedEvent struct {
	ReservationID   int64       `json:"reservation_id"`
	Name            string      `json:"name"`
	Phone           string      `json:"phone"`
	Date            string      `json:"date"`
	Time            string      `json:"time"`
	Guests          string      `json:"guests"`
	SpecialRequests null.String `json:"special_requests"`
	CreatedAt       time.Time   `json:"created_at"`
}

func NewReservationCreatedEvent(r *Reservation) ReservationCreatedEvent {
	return ReservationCreatedEvent{
		ReservationID:   r.ID,
		Name:            r.Name,
		Phone:           r.Phone,
		Date:            r.Date,
		Time:            r.Time,
		Guests:          r.Guests,
		SpecialRequests: r.SpecialRequests,
		CreatedAt:       r.CreatedAt,
	}
}
