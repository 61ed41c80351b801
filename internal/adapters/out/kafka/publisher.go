// Package kafka publishes outbox messages to a Kafka topic.
package kafka

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fieldservice/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const (
	headerEventName = "event-name"
	headerOutboxID  = "outbox-id"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventPublisher implements ports.EventPublisher. Messages are keyed by
// aggregate id so that one aggregate's events land on one partition in
// order.
type EventPublisher struct {
	writer messageWriter
	topic  string
}

// NewEventPublisher creates a synchronous writer for topic. RequireOne makes
// a write succeed only after the partition leader has stored it.
func NewEventPublisher(brokers []string, topic string) *EventPublisher {
	return newEventPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}, topic)
}

func newEventPublisher(writer messageWriter, topic string) *EventPublisher {
	return &EventPublisher{writer: writer, topic: topic}
}

func (p *EventPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafka.Message{
			Key:   []byte(m.AggregateID),
			Value: m.Payload,
			Time:  m.CreatedAt,
			Headers: []kafka.Header{
				{Key: headerEventName, Value: []byte(m.EventName)},
				{Key: headerOutboxID, Value: []byte(strconv.FormatInt(m.ID, 10))},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("kafka write to %s: %w", p.topic, err)
	}
	return nil
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}

// ParseBrokers splits "host1:9092,host2:9092" into a list, dropping blanks.
func ParseBrokers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
