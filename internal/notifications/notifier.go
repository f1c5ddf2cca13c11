package notifications

import (
	"context"
	"fmt"
	"strings"

	"astro/pkg/kafka"
	"astro/pkg/logger"
	"astro/pkg/model"
	"astro/pkg/sanitizer"
)

const maxNoteLength = 60

// Notifier turns reservation.created events into guest confirmations.
type Notifier struct {
	sender         Sender
	region         string
	restaurantName string
	log            *logger.Logger
}

func NewNotifier(sender Sender, defaultRegion, restaurantName string, log *logger.Logger) *Notifier {
	return &Notifier{
		sender:         sender,
		region:         defaultRegion,
		restaurantName: restaurantName,
		log:            log,
	}
}

// Handle is a kafka.MessageHandler. Undecodable payloads and unusable
// phone numbers are permanent failures; other event types are skipped.
func (n *Notifier) Handle(ctx context.Context, msg kafka.Message) error {
	if eventType := msg.GetEventType(); eventType != "" && eventType != model.EventReservationCreated {
		n.log.Debug("Skipping unrelated event", "event_type", eventType, "key", msg.Key)
		return nil
	}

	var event model.ReservationCreatedEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("failed to decode reservation event", err)
	}

	to, err := sanitizer.NormalizePhone(event.Phone, n.region)
	if err != nil {
		return kafka.NewPermanentError(fmt.Sprintf("reservation %d has no reachable phone", event.ReservationID), err)
	}

	if err := n.sender.SendSMS(ctx, to, n.Compose(event)); err != nil {
		return err
	}

	n.log.Info("Reservation confirmation sent",
		"reservation_id", event.ReservationID,
		"correlation_id", msg.GetCorrelationID(),
	)
	return nil
}

// Compose renders the confirmation text.
func (n *Notifier) Compose(event model.ReservationCreatedEvent) string {
	var b strings.Builder

	name := sanitizer.TrimAndNormalize(event.Name)
	fmt.Fprintf(&b, "Hi %s, we received your request for a table for %s at %s on %s at %s.",
		name, event.Guests, n.restaurantName, event.Date, event.Time)

	if note := sanitizer.TrimAndNormalize(event.SpecialRequests.String); event.SpecialRequests.Valid && note != "" {
		fmt.Fprintf(&b, " Note: %s.", sanitizer.Truncate(note, maxNoteLength))
	}
	fmt.Fprintf(&b, " Ref #%d.", event.ReservationID)
	return b.String()
}
