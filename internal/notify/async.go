package notify

import (
	"context"
	"sync"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/usecase"

	"go.uber.org/zap"
)

const (
	DefaultQueueSize = 256
	deliveryTimeout  = 15 * time.Second
)

type job struct {
	ctx     context.Context
	decided bool
	booking entity.Booking
	venue   *entity.Venue
}

// Async hands booking changes to a background worker so slow brokers or SMTP
// servers never hold up the request that stored the booking. When the queue is
// full the notification is dropped and logged.
type Async struct {
	next usecase.BookingNotifier
	jobs chan job
	log  *zap.Logger
	done chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewAsync(next usecase.BookingNotifier, queueSize int, log *zap.Logger) *Async {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	a := &Async{
		next: next,
		jobs: make(chan job, queueSize),
		log:  log.With(zap.String("notifier", "async")),
		done: make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Async) BookingCreated(ctx context.Context, booking *entity.Booking, venue *entity.Venue) {
	a.enqueue(ctx, false, booking, venue)
}

func (a *Async) BookingDecided(ctx context.Context, booking *entity.Booking, venue *entity.Venue) {
	a.enqueue(ctx, true, booking, venue)
}

func (a *Async) enqueue(ctx context.Context, decided bool, booking *entity.Booking, venue *entity.Venue) {
	j := job{
		// keep request values (request id) but not its cancellation
		ctx:     context.WithoutCancel(ctx),
		decided: decided,
		booking: *booking,
	}
	if venue != nil {
		v := *venue
		j.venue = &v
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		a.log.Warn("Notifier closed, dropping event", zap.String("booking_id", booking.ID.String()))
		return
	}

	select {
	case a.jobs <- j:
	default:
		a.log.Warn("Notification queue full, dropping event",
			zap.String("booking_id", booking.ID.String()),
			zap.String("status", string(booking.Status)),
		)
	}
}

func (a *Async) run() {
	defer close(a.done)
	for j := range a.jobs {
		ctx, cancel := context.WithTimeout(j.ctx, deliveryTimeout)
		if j.decided {
			a.next.BookingDecided(ctx, &j.booking, j.venue)
		} else {
			a.next.BookingCreated(ctx, &j.booking, j.venue)
		}
		cancel()
	}
}

// Close stops accepting work and waits for queued notifications until ctx ends.
func (a *Async) Close(ctx context.Context) error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.jobs)
	}
	a.mu.Unlock()

	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		a.log.Warn("Notification queue not drained before shutdown", zap.Int("pending", len(a.jobs)))
		return ctx.Err()
	}
}
