// Package rabbitmq publishes booking events to a RabbitMQ topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/charter-booking/charter-booking-service/internal/domain"
)

// DefaultExchange is the topic exchange booking events are published to.
const DefaultExchange = "charter.bookings"

// ErrNotAcknowledged is returned when the broker nacks a published message.
var ErrNotAcknowledged = errors.New("rabbitmq: publish not acknowledged")

// Config holds the publisher settings.
type Config struct {
	URL      string
	Exchange string
}

// Publisher implements domain.EventPublisher with publisher confirms.
// The connection is redialed lazily when the broker closes it.
type Publisher struct {
	url      string
	exchange string
	logger   zerolog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher dials the broker, declares the exchange and enables confirms.
func NewPublisher(cfg Config, logger zerolog.Logger) (*Publisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("rabbitmq: url is required")
	}
	exchange := cfg.Exchange
	if exchange == "" {
		exchange = DefaultExchange
	}

	p := &Publisher{
		url:      cfg.URL,
		exchange: exchange,
		logger:   logger.With().Str("component", "rabbitmq").Str("exchange", exchange).Logger(),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connectLocked(); err != nil {
		return nil, err
	}

	return p, nil
}

// connectLocked opens a connection and a confirm-mode channel. p.mu must be held.
func (p *Publisher) connectLocked() error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(10 * time.Second),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq dial failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq: failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return fmt.Errorf("declare exchange %s: %w", p.exchange, err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq: failed to enable confirms: %w", err)
	}

	p.conn = conn
	p.ch = ch
	p.logger.Info().Msg("RabbitMQ connection established")
	return nil
}

// channel returns an open channel, reconnecting once if the previous one was closed.
func (p *Publisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn != nil && !p.conn.IsClosed() && p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}

	p.closeLocked()
	p.logger.Warn().Msg("RabbitMQ channel closed, reconnecting")
	if err := p.connectLocked(); err != nil {
		return nil, err
	}
	return p.ch, nil
}

// PublishBookingEvent implements domain.EventPublisher.
// It waits for the broker confirm or ctx, whichever comes first.
func (p *Publisher) PublishBookingEvent(ctx context.Context, event domain.BookingEvent) error {
	msg, err := buildPublishing(event, time.Now())
	if err != nil {
		return err
	}

	ch, err := p.channel()
	if err != nil {
		return err
	}

	confirm, err := ch.PublishWithDeferredConfirmWithContext(ctx, p.exchange, routingKey(event), false, false, msg)
	if err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}

	ack, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("rabbitmq confirm: %w", err)
	}
	if !ack {
		return ErrNotAcknowledged
	}

	p.logger.Debug().Str("booking_id", event.BookingID).Str("routing_key", msg.Type).Msg("Booking event published")
	return nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}

func (p *Publisher) closeLocked() error {
	var err error
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil && !p.conn.IsClosed() {
		err = p.conn.Close()
	}
	p.conn = nil
	return err
}

// routingKey defaults to the booking.created key for untyped events.
func routingKey(event domain.BookingEvent) string {
	if event.Type == "" {
		return domain.EventTypeBookingCreated
	}
	return event.Type
}

// buildPublishing encodes event as a persistent JSON message.
func buildPublishing(event domain.BookingEvent, now time.Time) (amqp.Publishing, error) {
	event.Type = routingKey(event)

	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encode booking event: %w", err)
	}

	return amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    event.BookingID,
		Type:         event.Type,
		Timestamp:    now.UTC(),
		Body:         body,
	}, nil
}

// Ensure Publisher implements domain.EventPublisher at compile time.
var _ domain.EventPublisher = (*Publisher)(nil)
