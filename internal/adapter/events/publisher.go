package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeName = "tiffinbox.orders"

// Publisher broadcasts order lifecycle events over AMQP. Publishing is best
// effort: a broker failure is logged and never fails the triggering request.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

type envelope struct {
	Type       string         `json:"type"`
	OrderID    string         `json:"order_id"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// NewPublisher connects to the broker and declares the topic exchange.
func NewPublisher(url string, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch, logger: logger}, nil
}

// Publish emits one event with the event type as routing key.
func (p *Publisher) Publish(ctx context.Context, eventType, orderID string, payload map[string]any) {
	body, err := json.Marshal(envelope{
		Type:       eventType,
		OrderID:    orderID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		p.logger.Error("marshal event", slog.String("type", eventType), slog.String("error", err.Error()))
		return
	}
	err = p.channel.PublishWithContext(ctx,
		exchangeName,
		eventType, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error("publish event",
			slog.String("type", eventType),
			slog.String("order", orderID),
			slog.String("error", err.Error()),
		)
	}
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

// Publish discards the event.
func (NoopPublisher) Publish(context.Context, string, string, map[string]any) {}
