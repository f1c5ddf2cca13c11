package service

import (
	"context"
	"errors"

	"astro/internal/reservations/events"
	"astro/internal/reservations/repository"
	"astro/internal/reservations/validator"
	apperrors "astro/pkg/errors"
	"astro/pkg/logger"
	"astro/pkg/model"
)

const (
	msgValidationFailed = "Validation failed"
	msgCreateFailed     = "Server error occurred while creating reservation"
	msgFetchFailed      = "Server error occurred while fetching reservations"
)

type ReservationService interface {
	// Create validates a decoded JSON body and stores it.
	Create(ctx context.Context, payload any) (*model.Reservation, error)
	GetAll(ctx context.Context) ([]*model.Reservation, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	validator *validator.ReservationValidator
	publisher events.Publisher
	log       *logger.Logger
}

func NewReservationService(
	repo repository.ReservationRepository,
	validator *validator.ReservationValidator,
	publisher events.Publisher,
	log *logger.Logger,
) ReservationService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &reservationService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		log:       log,
	}
}

func (s *reservationService) Create(ctx context.Context, payload any) (*model.Reservation, error) {
	input, err := s.validator.Parse(payload)
	if err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, apperrors.Internal(msgCreateFailed, err)
		}
		s.log.Warn("Reservation validation failed", "error", verrs.Error())
		return nil, apperrors.Validation(msgValidationFailed, verrs, verrs.Fields())
	}

	if !model.IsBookableTimeSlot(input.Time) {
		s.log.Info("Reservation requested outside the standard time slots", "time", input.Time, "date", input.Date)
	}

	reservation, err := s.repo.CreateReservation(ctx, input)
	if err != nil {
		s.log.Error("Error creating reservation", "error", err)
		return nil, apperrors.Internal(msgCreateFailed, err)
	}

	s.log.Info("Reservation created successfully",
		"id", reservation.ID,
		"date", reservation.Date,
		"time", reservation.Time,
		"guests", reservation.Guests,
	)

	// The reservation is already committed, so a broker failure is only logged.
	if err := s.publisher.ReservationCreated(ctx, reservation); err != nil {
		s.log.Warn("Failed to publish reservation event", "id", reservation.ID, "error", err)
	}

	return reservation, nil
}

func (s *reservationService) GetAll(ctx context.Context) ([]*model.Reservation, error) {
	reservations, err := s.repo.GetReservations(ctx)
	if err != nil {
		s.log.Error("Error fetching reservations", "error", err)
		return nil, apperrors.Internal(msgFetchFailed, err)
	}
	if reservations == nil {
		reservations = []*model.Reservation{}
	}
	return reservations, nil
}
