package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"onsen-store/internal/config"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Publisher emits order lifecycle events to the event stream.
type Publisher interface {
	// PublishOrderCreated emits an OrderCreatedEvent. The order ID is
	// used as the partition key so events for one order stay ordered.
	PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error

	// Close flushes and releases the underlying writer.
	Close() error
}

// kafkaPublisher implements Publisher on a Kafka topic.
type kafkaPublisher struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

// NewKafkaPublisher creates a Publisher writing to the configured
// Kafka topic.
func NewKafkaPublisher(cfg config.KafkaConfig, logger zerolog.Logger) Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: 10 * time.Second,
	}

	return &kafkaPublisher{
		writer: writer,
		logger: logger.With().Str("component", "kafka-publisher").Logger(),
	}
}

func (p *kafkaPublisher) PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error().
			Err(err).
			Int64("order_id", event.OrderID).
			Msg("failed to publish order event")
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	p.logger.Debug().
		Int64("order_id", event.OrderID).
		Str("event_id", event.EventID).
		Msg("order event published")

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// nopPublisher discards events. It stands in when the event stream is
// disabled.
type nopPublisher struct{}

// NewNopPublisher creates a Publisher that discards all events.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error {
	return nil
}

func (nopPublisher) Close() error {
	return nil
}
