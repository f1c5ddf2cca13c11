package events

import (
	"context"
	"fmt"
	"time"

	"astro/pkg/kafka"
	"astro/pkg/logger"
	"astro/pkg/middleware"
	"astro/pkg/model"
)

// Publisher announces stored reservations to downstream consumers.
type Publisher interface {
	ReservationCreated(ctx context.Context, r *model.Reservation) error
	Close() error
}

// MessagePublisher is the subset of kafka.Producer used here.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	producer MessagePublisher
	source   string
	timeout  time.Duration
	log      *logger.Logger
}

func NewKafkaPublisher(producer MessagePublisher, source string, timeout time.Duration, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		source:   source,
		timeout:  timeout,
		log:      log,
	}
}

// ReservationCreated publishes a reservation.created event keyed by the
// reservation id. The request id, when present, becomes the correlation id.
func (p *kafkaPublisher) ReservationCreated(ctx context.Context, r *model.Reservation) error {
	if r == nil {
		return fmt.Errorf("reservation cannot be nil")
	}

	msg, err := kafka.NewMessage().
		WithKey(fmt.Sprintf("%d", r.ID)).
		WithValue(model.NewReservationCreatedEvent(r)).
		WithEventType(model.EventReservationCreated).
		WithSchemaVersion(model.EventSchemaVersion).
		WithSource(p.source).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", model.EventReservationCreated, err)
	}

	// The HTTP response must not depend on the broker, so publish under
	// our own deadline even when the request is cancelled.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.producer.Publish(pubCtx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", model.EventReservationCreated, err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher for deployments without a broker.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) ReservationCreated(context.Context, *model.Reservation) error {
	return nil
}

func (noopPublisher) Close() error {
	return nil
}
