// Package kafka publishes outbox messages to Kafka with franz-go.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/outbox"

	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	HeaderMessageID = "message-id"
	HeaderEventType = "event-type"
)

type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// Publisher implements ports.EventPublisher. Records are keyed by aggregate
// ID so every event of one order lands on the same partition in order.
type Publisher struct {
	client producer
	topic  string
}

func NewPublisher(brokers []string, topic, clientID string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no seed brokers")
	}
	if topic == "" {
		return nil, errors.New("kafka: empty topic")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProduceRequestTimeout(10*time.Second),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ClientID(clientID),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka: create client: %w", err)
	}

	return newPublisher(client, topic), nil
}

func newPublisher(client producer, topic string) *Publisher {
	return &Publisher{client: client, topic: topic}
}

func (p *Publisher) Publish(ctx context.Context, m *outbox.Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := p.client.ProduceSync(ctx, p.record(m)).FirstErr(); err != nil {
		return fmt.Errorf("kafka: produce %s to %s: %w", m.ID(), p.topic, err)
	}
	return nil
}

func (p *Publisher) Close() {
	p.client.Close()
}

func (p *Publisher) record(m *outbox.Message) *kgo.Record {
	return &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(m.AggregateID().String()),
		Value:     m.Payload(),
		Timestamp: m.CreatedAt(),
		Headers: []kgo.RecordHeader{
			{Key: HeaderMessageID, Value: []byte(m.ID().String())},
			{Key: HeaderEventType, Value: []byte(m.EventType())},
		},
	}
}
