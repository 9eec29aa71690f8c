// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package broker manages the long-lived AMQP connection used to publish enrichment events.
//
// # Lifecycle
//
// The connection is established lazily on first publish, not at startup, so the API can
// serve catalog traffic while the broker is down. [AMQP.Ping] only reports the state of
// the current channel. A broken channel is discarded with
// [AMQP.Reset] and redialed on the next use, no sooner than the configured backoff.
// All methods are safe for concurrent use.
package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Opinionated connection settings.
const (
	dialTimeout = 5 * time.Second
	heartbeat   = 10 * time.Second
)

var (
	// ErrClosed is returned once [AMQP.Close] has been called.
	ErrClosed = errors.New("broker: closed")

	// ErrBackoff is returned while waiting to redial after a failure.
	ErrBackoff = errors.New("broker: reconnect backoff in progress")

	// ErrNotConnected is reported by [AMQP.Ping] while no channel is open.
	ErrNotConnected = errors.New("broker: not connected")
)

// Publisher is the publishing half of an AMQP channel.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Topology declares the exchanges and queues a fresh channel needs.
type Topology func(channel *amqp.Channel) error

// AMQP is a lazily dialed connection with a single shared channel.
type AMQP struct {
	url      string
	topology Topology
	backoff  time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	lastDial time.Time
	lastErr  error
	closed   bool
}

// NewAMQP returns an unconnected broker; topology runs on every new channel.
func NewAMQP(url string, topology Topology, backoff time.Duration, logger *slog.Logger) *AMQP {
	return &AMQP{url: url, topology: topology, backoff: backoff, logger: logger}
}

// Publisher returns the shared channel, dialing the broker if needed.
func (b *AMQP) Publisher(ctx context.Context) (Publisher, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	channel, err := b.ensureChannel(ctx)
	if err != nil {
		return nil, err
	}
	return channel, nil
}

// Ping reports whether a channel is open. It never dials, so it neither blocks on an
// unreachable broker nor delays the next redial.
func (b *AMQP) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case b.closed:
		return ErrClosed
	case b.channel != nil && !b.channel.IsClosed() && !b.conn.IsClosed():
		return nil
	case b.lastErr != nil:
		return fmt.Errorf("%w: %w", ErrNotConnected, b.lastErr)
	default:
		return ErrNotConnected
	}
}

// Reset discards the current connection after a publish failure.
func (b *AMQP) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.teardown()
}

// Close shuts the connection down; later calls return [ErrClosed].
func (b *AMQP) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	if b.conn == nil {
		return nil
	}
	err := b.conn.Close()
	b.conn, b.channel = nil, nil
	if errors.Is(err, amqp.ErrClosed) {
		return nil
	}
	return err
}

// ensureChannel must be called with mu held.
func (b *AMQP) ensureChannel(ctx context.Context) (*amqp.Channel, error) {
	if b.closed {
		return nil, ErrClosed
	}

	if b.channel != nil && !b.channel.IsClosed() && !b.conn.IsClosed() {
		return b.channel, nil
	}
	b.teardown()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !b.lastDial.IsZero() && time.Since(b.lastDial) < b.backoff {
		return nil, ErrBackoff
	}
	b.lastDial = time.Now()

	conn, channel, err := b.dial(ctx)
	b.lastErr = err
	if err != nil {
		return nil, err
	}

	b.conn, b.channel = conn, channel
	b.logger.Info("broker_connected", slog.String("vhost", conn.Config.Vhost))

	return channel, nil
}

// dial opens a connection and a channel with the topology declared.
//
// The TCP dial and the AMQP handshake are bounded by dialTimeout and by the deadline of ctx,
// whichever comes first.
func (b *AMQP) dial(ctx context.Context) (*amqp.Connection, *amqp.Channel, error) {
	deadline := time.Now().Add(dialTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	conn, err := amqp.DialConfig(b.url, amqp.Config{
		Heartbeat: heartbeat,
		Locale:    "en_US",
		Dial: func(network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{Deadline: deadline}
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			// Cleared by the client once the handshake completes.
			if err := conn.SetDeadline(deadline); err != nil {
				_ = conn.Close()
				return nil, err
			}
			return conn, nil
		},
		Properties: amqp.Table{
			"connection_name": "cadenza-api",
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("broker: dial failed: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("broker: open channel failed: %w", err)
	}

	if b.topology != nil {
		if err := b.topology(channel); err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("broker: declare topology failed: %w", err)
		}
	}

	return conn, channel, nil
}

// teardown must be called with mu held.
func (b *AMQP) teardown() {
	if b.conn != nil {
		_ = b.conn.Close()
	}
	b.conn, b.channel = nil, nil
}
