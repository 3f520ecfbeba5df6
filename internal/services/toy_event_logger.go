package services

import (
	"toytopia/pkg/rabbitmq"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

// NewToyEventLogger returns a consumer handler that writes each toy event to
// log. Undecodable messages are reported as errors.
func NewToyEventLogger(log zerolog.Logger) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		event, err := rabbitmq.DecodeToyEvent(msg)
		if err != nil {
			return err
		}

		log.Info().
			Str("type", event.Type).
			Str("toy_id", event.ToyID).
			Str("seller_email", event.SellerEmail).
			Time("occurred_at", event.OccurredAt).
			Uint64("delivery_tag", msg.DeliveryTag).
			Msg("Received toy event")
		return nil
	}
}
