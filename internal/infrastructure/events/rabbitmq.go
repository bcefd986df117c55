// Package events publishes region and user lifecycle events to RabbitMQ.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Envelope is the message body written to the queue.
type Envelope struct {
	Event      string    `json:"event"`
	EntityID   string    `json:"entityId"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload,omitempty"`
}

// RabbitPublisher wraps an AMQP channel and a durable queue. Channels are not
// safe for concurrent publishing, so Publish serializes on mu.
type RabbitPublisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	Queue string
}

func NewRabbitPublisher(url, queue string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &RabbitPublisher{conn: conn, ch: ch, Queue: queue}, nil
}

func (p *RabbitPublisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// Publish sends one persistent JSON message routed to the queue.
func (p *RabbitPublisher) Publish(ctx context.Context, event, entityID string, payload any) error {
	msg, err := newPublishing(event, entityID, payload, time.Now().UTC())
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		msg,
	)
}

func newPublishing(event, entityID string, payload any, now time.Time) (amqp.Publishing, error) {
	b, err := json.Marshal(Envelope{Event: event, EntityID: entityID, OccurredAt: now, Payload: payload})
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
		Type:         event,
		Body:         b,
	}, nil
}

// Nop discards events; it is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, any) error { return nil }
