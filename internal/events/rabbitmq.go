package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const publishTimeout = 5 * time.Second

// Channel is the subset of *amqp.Channel used for publishing.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// rabbitPublisher implements Publisher on a single AMQP channel.
type rabbitPublisher struct {
	mu     sync.Mutex
	conn   *amqp.Connection
	ch     Channel
	queue  string
	logger zerolog.Logger
}

// NewRabbitPublisher dials url, opens a channel and declares a durable queue.
func NewRabbitPublisher(url, queue string, logger zerolog.Logger) (Publisher, error) {
	logger = logger.With().Str("component", "order-event-publisher").Logger()

	conn, err := amqp.Dial(url)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to RabbitMQ")
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error().Err(err).Msg("failed to open RabbitMQ channel")
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	p, err := NewChannelPublisher(ch, queue, logger)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.(*rabbitPublisher).conn = conn

	logger.Info().Str("queue", queue).Msg("RabbitMQ publisher initialised")
	return p, nil
}

// NewChannelPublisher creates a publisher over an open channel and declares
// the durable queue.
func NewChannelPublisher(ch Channel, queue string, logger zerolog.Logger) (Publisher, error) {
	_, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &rabbitPublisher{
		ch:     ch,
		queue:  queue,
		logger: logger,
	}, nil
}

// PublishOrderCreated publishes the event as persistent JSON on the default exchange.
func (p *rabbitPublisher) PublishOrderCreated(ctx context.Context, event *OrderCreated) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	err = p.ch.PublishWithContext(ctx,
		"",      // exchange
		p.queue, // routing key (queue name)
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    event.OrderID.String(),
			Type:         event.Type,
			Timestamp:    event.CreatedAt,
			Body:         body,
		})
	p.mu.Unlock()

	if err != nil {
		p.logger.Error().
			Err(err).
			Str("order_id", event.OrderID.String()).
			Msg("failed to publish order event")
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	p.logger.Debug().
		Str("order_id", event.OrderID.String()).
		Str("queue", p.queue).
		Msg("order event published")

	return nil
}

// Close closes the channel and the connection.
func (p *rabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if err := p.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}
