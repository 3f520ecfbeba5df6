package services_test

import (
	"bytes"
	"testing"

	"toytopia/internal/services"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
)

func TestToyEventLogger(t *testing.T) {
	var buf bytes.Buffer
	handle := services.NewToyEventLogger(zerolog.New(&buf))

	err := handle(amqp.Delivery{
		DeliveryTag: 7,
		Body:        []byte(`{"type":"toy.deleted","toy_id":"t1","occurred_at":"2026-01-02T03:04:05Z"}`),
	})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"type":"toy.deleted"`)
	assert.Contains(t, buf.String(), `"toy_id":"t1"`)
	assert.Contains(t, buf.String(), `"delivery_tag":7`)

	assert.Error(t, handle(amqp.Delivery{Body: []byte("{")}))
}
