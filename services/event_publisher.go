package services

import (
	"context"
	"encoding/json"
	"time"

	"car-rental-backend/queue"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventPublisher pushes reservation lifecycle events to RabbitMQ.
// Publishing is best-effort: the caller logs and ignores failures so a
// broker outage never blocks the booking workflow. A nil publisher is a
// no-op, which is how the service runs when no broker URL is configured.
type EventPublisher struct {
	URL string
}

func NewEventPublisher(url string) *EventPublisher {
	if url == "" {
		return nil
	}
	return &EventPublisher{URL: url}
}

func (p *EventPublisher) Publish(ctx context.Context, event queue.ReservationEvent) error {
	if p == nil {
		return nil
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		queue.QueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",              // default exchange
		queue.QueueName, // routing key = queue name
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}
