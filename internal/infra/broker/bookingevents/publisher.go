// Package bookingevents публикует события бронирований в RabbitMQ
package bookingevents

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

const DefaultQueue = "booking.events"

// Publisher публикует события в долговечную очередь через exchange по умолчанию.
// Публикатор без канала ничего не отправляет.
type Publisher struct {
	mu    sync.Mutex
	ch    Channel
	queue string
	now   func() time.Time
}

// NewPublisher объявляет очередь и создает публикатор
func NewPublisher(ch Channel, queue string) (*Publisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}

	if ch != nil {
		if _, err := ch.QueueDeclare(
			queue,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,
		); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDeclareQueue, queue, err)
		}
	}

	return &Publisher{ch: ch, queue: queue, now: time.Now}, nil
}

// NewNopPublisher публикатор, который ничего не отправляет (брокер не настроен)
func NewNopPublisher() *Publisher {
	return &Publisher{queue: DefaultQueue, now: time.Now}
}

// Publish отправляет событие о бронировании как persistent JSON
func (p *Publisher) Publish(ctx context.Context, eventType EventType, booking *domain.Booking) error {
	if p.ch == nil {
		return nil
	}

	event := NewEvent(eventType, booking, p.now())

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodeEvent, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Type:         string(event.Type),
		Timestamp:    event.OccurredAt,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPublish, event.Type, err)
	}

	return nil
}
