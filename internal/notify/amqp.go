package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	publishTimeout = 5 * time.Second
	dialTimeout    = 2 * time.Second
)

// AMQPPublisher publishes booking events as persistent JSON messages on a durable queue.
// The connection is opened lazily and reopened after the broker drops it.
type AMQPPublisher struct {
	url   string
	queue string
	log   *zap.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(cfg utils.AMQPConfig, log *zap.Logger) *AMQPPublisher {
	return &AMQPPublisher{
		url:   cfg.URL,
		queue: cfg.Queue,
		log:   log.With(zap.String("notifier", "amqp")),
	}
}

func (p *AMQPPublisher) BookingCreated(ctx context.Context, booking *entity.Booking, venue *entity.Venue) {
	p.publish(ctx, newBookingEvent(EventBookingCreated, booking, venue))
}

func (p *AMQPPublisher) BookingDecided(ctx context.Context, booking *entity.Booking, venue *entity.Venue) {
	p.publish(ctx, newBookingEvent(decisionEventType(booking.Status), booking, venue))
}

func (p *AMQPPublisher) publish(ctx context.Context, event BookingEvent) {
	if err := p.Publish(ctx, event); err != nil {
		p.log.Error("Failed to publish booking event",
			zap.Error(err),
			zap.String("type", event.Type),
			zap.String("booking_id", event.BookingID),
		)
	}
}

// Publish sends one event. Failures are returned so callers can decide to ignore them.
func (p *AMQPPublisher) Publish(ctx context.Context, event BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         event.Type,
			MessageId:    event.BookingID + ":" + event.Type,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.reset()
		return fmt.Errorf("publish %s event: %w", event.Type, err)
	}
	return nil
}

// channel returns an open channel, dialing if needed. Caller holds p.mu.
func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() && p.conn != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout),
	})
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	p.conn, p.ch = conn, ch
	p.log.Info("Connected to message broker", zap.String("queue", p.queue))
	return ch, nil
}

func (p *AMQPPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}
