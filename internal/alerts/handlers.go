package alerts

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

func handleWelcomeEmail(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	if err := sendViaPlunk(p.Envelope.To, p.Envelope.Subject, p.Envelope.Body); err != nil {
		log.Warn().Err(err).Str("to", p.Envelope.To).Msg("welcome email failed")
		return err
	}
	return nil
}

func handleBookingRequested(ctx context.Context, t *asynq.Task) error {
	var p BookingRequestedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	if err := sendViaPlunk(p.Envelope.To, p.Envelope.Subject, p.Envelope.Body); err != nil {
		log.Warn().Err(err).Str("booking_id", p.BookingID).Msg("booking requested email failed")
		return err
	}
	return nil
}

func handleBookingStatusChanged(ctx context.Context, t *asynq.Task) error {
	var p BookingStatusChangedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	if err := sendViaPlunk(p.Envelope.To, p.Envelope.Subject, p.Envelope.Body); err != nil {
		log.Warn().Err(err).Str("booking_id", p.BookingID).Str("status", p.Status).Msg("status email failed")
		return err
	}
	return nil
}
