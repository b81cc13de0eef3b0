package bookingevents

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel подмножество *amqp.Channel, используемое публикатором
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}
