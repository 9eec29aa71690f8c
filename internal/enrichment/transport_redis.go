// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package enrichment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/cadenza/internal/platform/constants"
)

// RedisTransport pushes events onto one Redis list per priority.
//
// # Consumption
//
// Lists are named "<queue>:p<priority>". A consumer that calls BRPOP with
// [QueueKeys] (highest priority first) gets the same drain order as the AMQP
// priority queue, and LPUSH/BRPOP keeps each list FIFO.
type RedisTransport struct {
	client redis.Cmdable
	queue  string
	closer func() error
}

// NewRedisTransport pushes to lists of queue. The client is closed with the transport.
func NewRedisTransport(client *redis.Client, queue string) *RedisTransport {
	return &RedisTransport{client: client, queue: queue, closer: client.Close}
}

// QueueKeys lists the keys of queue from the highest priority to the lowest.
func QueueKeys(queue string) []string {
	keys := make([]string, 0, constants.EnrichmentMaxPriority)
	for priority := constants.EnrichmentMaxPriority; priority >= 1; priority-- {
		keys = append(keys, queueKey(queue, uint8(priority)))
	}
	return keys
}

func queueKey(queue string, priority uint8) string {
	return queue + ":p" + strconv.Itoa(int(priority))
}

// Send implements [Transport].
func (t *RedisTransport) Send(ctx context.Context, event Event) error {
	body, err := event.Body()
	if err != nil {
		return fmt.Errorf("enrichment: encode event: %w", err)
	}

	key := queueKey(t.queue, event.Priority())
	if err := t.client.LPush(ctx, key, body).Err(); err != nil {
		return fmt.Errorf("enrichment: push to %s: %w", key, err)
	}
	return nil
}

// Close implements [Transport].
func (t *RedisTransport) Close() error {
	if t.closer == nil {
		return nil
	}
	return t.closer()
}
