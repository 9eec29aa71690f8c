// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package enrichment

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/taibuivan/cadenza/internal/platform/broker"
	"github.com/taibuivan/cadenza/internal/platform/constants"
	"github.com/taibuivan/cadenza/pkg/uuidv7"
)

// Channels hands out the shared AMQP channel; [broker.AMQP] implements it.
type Channels interface {
	Publisher(ctx context.Context) (broker.Publisher, error)
	Reset()
	Close() error
}

// AMQPTransport publishes to a durable priority queue through the default exchange.
type AMQPTransport struct {
	channels Channels
	queue    string
}

// NewAMQPTransport publishes to queue over channels.
func NewAMQPTransport(channels Channels, queue string) *AMQPTransport {
	return &AMQPTransport{channels: channels, queue: queue}
}

// DeclareQueue returns the topology of queue: durable, with a priority ceiling of
// [constants.EnrichmentMaxPriority].
func DeclareQueue(queue string) broker.Topology {
	return func(channel *amqp.Channel) error {
		_, err := channel.QueueDeclare(queue, true, false, false, false, amqp.Table{
			"x-max-priority": constants.EnrichmentMaxPriority,
		})
		return err
	}
}

// Send implements [Transport]. A failed publish discards the channel so the next
// send redials.
func (t *AMQPTransport) Send(ctx context.Context, event Event) error {
	body, err := event.Body()
	if err != nil {
		return fmt.Errorf("enrichment: encode event: %w", err)
	}

	publisher, err := t.channels.Publisher(ctx)
	if err != nil {
		return err
	}

	err = publisher.PublishWithContext(ctx, "", t.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Priority:     event.Priority(),
		MessageId:    uuidv7.New(),
		Timestamp:    time.Now().UTC(),
		Type:         string(event.Kind.Type()),
		Body:         body,
	})
	if err != nil {
		t.channels.Reset()
		return fmt.Errorf("enrichment: publish to %s: %w", t.queue, err)
	}
	return nil
}

// Close implements [Transport].
func (t *AMQPTransport) Close() error {
	return t.channels.Close()
}
