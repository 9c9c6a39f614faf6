// Package service publishes domain events to RabbitMQ. Publishing is
// best-effort: errors are logged and returned, and callers ignore them so a
// broker outage never fails a booking that already committed.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/kadrfilm/booking-server/internal/queue"
)

// Publisher sends events to the broker. A nil *Publisher is a valid no-op.
type Publisher struct {
	url string
	log *zap.Logger
}

// NewPublisher builds a publisher for the configured broker.
func NewPublisher(log *zap.Logger) *Publisher {
	return &Publisher{url: queue.BrokerURL(), log: log}
}

// BookingCreated publishes a BookingCreatedEvent to the booking.created
// queue. Messages are persistent so they survive broker restarts.
func (p *Publisher) BookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error {
	if p == nil {
		return nil
	}
	return p.publish(ctx, queue.BookingCreatedQueue, ev)
}

// MessageSent publishes a MessageSentEvent to the message.sent queue.
func (p *Publisher) MessageSent(ctx context.Context, ev queue.MessageSentEvent) error {
	if p == nil {
		return nil
	}
	return p.publish(ctx, queue.MessageSentQueue, ev)
}

func (p *Publisher) publish(ctx context.Context, queueName string, ev any) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		p.log.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err = ch.PublishWithContext(pubCtx, "", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.log.Warn("rabbitmq: publish failed", zap.String("queue", queueName), zap.Error(err))
	}
	return err
}
