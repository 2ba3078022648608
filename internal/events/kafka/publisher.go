package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	interfaces "github.com/sheikh-saqib/ledger-orchestrator/internal/interfaces"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes JSON events to Kafka. The topic is chosen per call and
// the key keeps events of one entity on one partition.
type Publisher struct {
	writer messageWriter
}

func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
			WriteTimeout:           5 * time.Second,
		},
	}
}

// Publish encodes every event and hands them to the writer in one call.
// Nothing is written when an event cannot be encoded.
func (p *Publisher) Publish(ctx context.Context, topic string, events ...interfaces.Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, len(events))
	for i, e := range events {
		data, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("encode %T: %w", e.Payload, err)
		}
		msgs[i] = kafka.Message{
			Topic: topic,
			Key:   []byte(e.Key),
			Value: data,
		}
	}

	return p.writer.WriteMessages(ctx, msgs...)
}

// Close flushes pending writes.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
