package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/config"
	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

const headerEventType = "event_type"

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes outbox messages to a Kafka topic keyed by order ID, so
// every event of one order lands on the same partition.
type Publisher struct {
	w writer
}

func NewPublisher(cfg config.KafkaConfig) *Publisher {
	return &Publisher{
		w: &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafkago.Hash{},
			RequiredAcks: kafkago.RequireAll,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, msgs ...domain.OutboxMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	out := make([]kafkago.Message, len(msgs))
	for i, m := range msgs {
		out[i] = toKafkaMessage(m)
	}

	if err := p.w.WriteMessages(ctx, out...); err != nil {
		return fmt.Errorf("publish %d outbox messages: %w", len(out), err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.w.Close()
}

func toKafkaMessage(m domain.OutboxMessage) kafkago.Message {
	return kafkago.Message{
		Key:   []byte(m.AggregateID),
		Value: m.Payload,
		Headers: []kafkago.Header{
			{Key: headerEventType, Value: []byte(m.EventType)},
			{Key: "message_id", Value: []byte(m.ID)},
		},
		Time: m.CreatedAt,
	}
}
