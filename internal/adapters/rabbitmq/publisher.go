package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	"github.com/bacaxnot/finance-sub000/internal/middleware"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel the publisher uses.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Publisher struct {
	channel Channel
}

func NewPublisher(ch Channel) *Publisher {
	return &Publisher{channel: ch}
}

var _ portsrepo.EventPublisher = (*Publisher)(nil)

func (p *Publisher) Publish(ctx context.Context, exchange, routingKey string, body any) error {
	bytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         bytes,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Debug("Event published", "exchange", exchange, "routing_key", routingKey)
	return nil
}

// Dial opens a connection and a channel, and declares exchange as a durable
// topic exchange.
func Dial(url, connectionName, exchange string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Properties: amqp.Table{"connection_name": connectionName},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return conn, ch, nil
}
