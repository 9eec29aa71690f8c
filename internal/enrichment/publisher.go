// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package enrichment

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/taibuivan/cadenza/internal/platform/constants"
)

// Transport sends one encoded event to the broker.
type Transport interface {
	Send(ctx context.Context, event Event) error
	Close() error
}

// Options tunes a [Publisher].
type Options struct {
	// Buffer is the number of events held while the transport is busy.
	Buffer int

	// SendTimeout bounds every call to [Transport.Send].
	SendTimeout time.Duration
}

// Publisher buffers events and sends them from a single goroutine.
//
// # Guarantees
//
//   - [Publisher.Publish] returns without waiting on the broker.
//   - Transport failures are logged and discarded; they never reach the caller.
//   - Events published after [Publisher.Close] are dropped.
type Publisher struct {
	transport   Transport
	logger      *slog.Logger
	sendTimeout time.Duration

	// mu guards closing queue against concurrent sends on it.
	mu     sync.RWMutex
	closed bool
	queue  chan Event

	// base is cancelled when a shutdown deadline passes, aborting in-flight sends.
	base   context.Context
	cancel context.CancelFunc
	done   chan struct{}

	closeOnce sync.Once
	closeErr  error

	sent    atomic.Uint64
	failed  atomic.Uint64
	dropped atomic.Uint64
}

// NewPublisher starts the sender goroutine. Close must be called to stop it.
func NewPublisher(transport Transport, logger *slog.Logger, options Options) *Publisher {
	if options.Buffer <= 0 {
		options.Buffer = constants.DefaultEnrichmentBuffer
	}
	if options.SendTimeout <= 0 {
		options.SendTimeout = constants.DefaultEnrichmentSendTimeout
	}

	base, cancel := context.WithCancel(context.Background())
	publisher := &Publisher{
		transport:   transport,
		logger:      logger.With(slog.String("component", "enrichment")),
		sendTimeout: options.SendTimeout,
		queue:       make(chan Event, options.Buffer),
		base:        base,
		cancel:      cancel,
		done:        make(chan struct{}),
	}

	go publisher.run()
	return publisher
}

// Publish enqueues event without blocking.
//
// The event is dropped with a warning when the buffer is full or the publisher is closed.
func (p *Publisher) Publish(event Event) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.drop(event, "publisher_closed")
		return
	}

	select {
	case p.queue <- event:
	default:
		p.drop(event, "buffer_full")
	}
}

// Close stops accepting events and drains the buffer until ctx is done.
//
// When ctx expires first, in-flight and buffered events are abandoned and ctx's error
// is returned; the process is never held up waiting for the broker. Close is idempotent.
func (p *Publisher) Close(ctx context.Context) error {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()

		select {
		case <-p.done:
		case <-ctx.Done():
			p.cancel()
			p.closeErr = ctx.Err()
			p.logger.Warn("enrichment_drain_abandoned", slog.Int("pending", len(p.queue)))
		}

		if err := p.transport.Close(); err != nil && p.closeErr == nil {
			p.closeErr = err
		}
		p.cancel()

		p.logger.Info("enrichment_publisher_closed",
			slog.Uint64("sent", p.sent.Load()),
			slog.Uint64("failed", p.failed.Load()),
			slog.Uint64("dropped", p.dropped.Load()),
		)
	})
	return p.closeErr
}

// Stats returns the number of sent, failed and dropped events so far.
func (p *Publisher) Stats() (sent, failed, dropped uint64) {
	return p.sent.Load(), p.failed.Load(), p.dropped.Load()
}

// run is the single sender. It exits once queue is closed and drained.
func (p *Publisher) run() {
	defer close(p.done)

	for event := range p.queue {
		if p.base.Err() != nil {
			p.drop(event, "shutdown_deadline")
			continue
		}
		p.send(event)
	}
}

func (p *Publisher) send(event Event) {
	ctx, cancel := context.WithTimeout(p.base, p.sendTimeout)
	defer cancel()

	if err := p.transport.Send(ctx, event); err != nil {
		p.failed.Add(1)
		p.logger.Error("enrichment_send_failed", slog.Any("event", event), slog.Any("error", err))
		return
	}

	p.sent.Add(1)
	p.logger.Debug("enrichment_event_sent", slog.Any("event", event))
}

func (p *Publisher) drop(event Event, reason string) {
	p.dropped.Add(1)
	p.logger.Warn("enrichment_event_dropped", slog.Any("event", event), slog.String("reason", reason))
}
