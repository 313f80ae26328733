// Package amqp publishes webhook dead-letter notifications onto a durable
// exchange so an operator tool outside this process can observe and
// replay events that exhausted C6's retry budget.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/google/uuid"
)

// DLQPublisher implements ports.DeadLetterPublisher over a single
// long-lived channel. Enabled is false in environments without a broker;
// PublishDeadLettered then no-ops.
type DLQPublisher struct {
	channel    *amqp.Channel
	exchange   string
	routingKey string
	enabled    bool
}

// Dial opens a connection and channel to the broker at url and declares
// the topic exchange events publish onto. Returns a disabled publisher
// (nil channel, all publishes no-op) when enabled is false, so callers
// need not special-case a missing broker at every call site.
func Dial(url, exchange, routingKey string, enabled bool) (*DLQPublisher, func() error, error) {
	if !enabled {
		return &DLQPublisher{enabled: false}, func() error { return nil }, nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dialing amqp broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("opening amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("declaring amqp exchange: %w", err)
	}

	closer := func() error {
		ch.Close()
		return conn.Close()
	}
	return &DLQPublisher{channel: ch, exchange: exchange, routingKey: routingKey, enabled: true}, closer, nil
}

type deadLetterMessage struct {
	EventID  uuid.UUID `json:"event_id"`
	Provider string    `json:"provider"`
}

// PublishDeadLettered publishes eventID/provider onto the dead-letter
// exchange. Never returns an error that should abort the caller's
// process() call — the webhook service discards the returned error.
func (p *DLQPublisher) PublishDeadLettered(ctx context.Context, eventID uuid.UUID, provider string) error {
	if !p.enabled {
		return nil
	}

	body, err := json.Marshal(deadLetterMessage{EventID: eventID, Provider: provider})
	if err != nil {
		return fmt.Errorf("encoding dead-letter message: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.channel.PublishWithContext(publishCtx, p.exchange, p.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
