package notifications

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"astro/pkg/kafka"
	"astro/pkg/logger"

	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Sender delivers a text message to an E.164 number.
type Sender interface {
	SendSMS(ctx context.Context, to, body string) error
}

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

type twilioSender struct {
	api  messageCreator
	from string
	log  *logger.Logger
}

func NewTwilioSender(accountSID, authToken, from string, log *logger.Logger) Sender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &twilioSender{api: client.Api, from: from, log: log}
}

// SendSMS returns a transient error for throttling and gateway failures
// and a permanent one for requests Twilio rejects outright.
func (s *twilioSender) SendSMS(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return kafka.NewTransientError("sms cancelled", err)
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		var restErr *twclient.TwilioRestError
		if errors.As(err, &restErr) &&
			restErr.Status != http.StatusTooManyRequests &&
			restErr.Status < http.StatusInternalServerError {
			return kafka.NewPermanentError(fmt.Sprintf("twilio rejected message (code %d)", restErr.Code), err)
		}
		return kafka.NewTransientError("failed to send SMS", err)
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	s.log.Info("SMS sent", "sid", sid)
	return nil
}

type logSender struct {
	log *logger.Logger
}

// NewLogSender returns a Sender that only logs, for environments without
// Twilio credentials.
func NewLogSender(log *logger.Logger) Sender {
	return &logSender{log: log}
}

func (s *logSender) SendSMS(_ context.Context, to, body string) error {
	s.log.Info("SMS delivery disabled, message logged instead", "to", to, "body", body)
	return nil
}
