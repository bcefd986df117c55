package events

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	msg, err := newPublishing("region.created", "r-1", map[string]string{"ownerId": "u-1"}, now)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "region.created", msg.Type)
	assert.JSONEq(t, `{
		"event": "region.created",
		"entityId": "r-1",
		"occurredAt": "2024-05-01T12:00:00Z",
		"payload": {"ownerId": "u-1"}
	}`, string(msg.Body))
}

func TestNewPublishing_OmitsEmptyPayload(t *testing.T) {
	msg, err := newPublishing("user.deleted", "u-1", nil, time.Now().UTC())
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.NotContains(t, body, "payload")
}

func TestNewPublishing_UnencodablePayload(t *testing.T) {
	_, err := newPublishing("x", "y", make(chan int), time.Now())
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Publish(context.Background(), "e", "id", nil))
}

func TestClose_NilSafe(t *testing.T) {
	var p *RabbitPublisher
	assert.NotPanics(t, p.Close)
}
