package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Queue names.  Durable queues on the default exchange, routing key equal to
// the queue name.
const (
	RegistrationConfirmedQueue = "registration.confirmed"
	PaymentProcessedQueue      = "payment.processed"
)

// AMQPPublisher publishes domain notifications to RabbitMQ.  Each publish
// dials, sends and closes; callers treat failures as non-fatal and only log
// them, so the request flow never depends on the broker.
type AMQPPublisher struct {
	url string
}

// NewAMQPPublisher returns a publisher for the given broker URL.
func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{url: url}
}

// PublishRegistrationConfirmed sends a registration notification.
func (p *AMQPPublisher) PublishRegistrationConfirmed(ctx context.Context, ev RegistrationConfirmedEvent) error {
	return p.publish(ctx, RegistrationConfirmedQueue, ev)
}

// PublishPaymentProcessed sends a payment outcome notification.
func (p *AMQPPublisher) PublishPaymentProcessed(ctx context.Context, ev PaymentProcessedEvent) error {
	return p.publish(ctx, PaymentProcessedQueue, ev)
}

func (p *AMQPPublisher) publish(ctx context.Context, queueName string, payload any) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", queueName, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return ch.PublishWithContext(ctx, "", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
