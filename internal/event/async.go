package event

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/programari/backend/internal/model"
)

var (
	ErrQueueFull       = errors.New("event: publish queue full")
	ErrPublisherClosed = errors.New("event: publisher closed")
)

const (
	defaultQueueSize      = 256
	defaultPublishTimeout = 5 * time.Second
)

// AsyncPublisher hands events to a background worker so callers never wait
// on the broker. Each event gets its own publish timeout. Close drains the
// queue before closing the wrapped Publisher.
type AsyncPublisher struct {
	next    Publisher
	timeout time.Duration

	mu     sync.RWMutex
	queue  chan *model.Booking
	closed bool
	done   chan struct{}
}

// NewAsyncPublisher starts the worker. Non-positive sizes fall back to
// defaults.
func NewAsyncPublisher(next Publisher, queueSize int, timeout time.Duration) *AsyncPublisher {
	if next == nil {
		next = NopPublisher{}
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	p := &AsyncPublisher{
		next:    next,
		timeout: timeout,
		queue:   make(chan *model.Booking, queueSize),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

var _ Publisher = (*AsyncPublisher)(nil)

// PublishBookingCreated enqueues b. It never blocks; a full queue is
// reported as ErrQueueFull and the event is dropped.
func (p *AsyncPublisher) PublishBookingCreated(_ context.Context, b *model.Booking) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.queue <- b:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *AsyncPublisher) run() {
	defer close(p.done)
	for b := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		if err := p.next.PublishBookingCreated(ctx, b); err != nil {
			slog.Error("failed to publish booking event",
				"booking_id", b.ID,
				"event_type", TypeBookingCreated,
				"error", err,
			)
		}
		cancel()
	}
}

// Close stops accepting events, waits for queued ones and closes the wrapped
// Publisher. It is safe to call more than once.
func (p *AsyncPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		<-p.done
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.next.Close()
}
