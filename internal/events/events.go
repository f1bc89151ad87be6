// Package events publishes product change notifications.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event types emitted by the product service
const (
	ProductCreated = "product_created"
	ProductUpdated = "product_updated"
	ProductDeleted = "product_deleted"
)

// ProductEvent describes a change to a product
type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  uint      `json:"productID"`
	Name       string    `json:"name,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher delivers product events to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, event ProductEvent) error
	Close() error
}

// NopPublisher discards every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ProductEvent) error { return nil }

func (NopPublisher) Close() error { return nil }

// messageWriter is the subset of *kafka.Writer the publisher needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes product events as JSON to a Kafka topic keyed by product id
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

// NewKafkaPublisher creates a publisher for the comma separated broker list
func NewKafkaPublisher(brokers, topic string) *KafkaPublisher {
	var addrs []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			addrs = append(addrs, b)
		}
	}

	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(addrs...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		timeout: 5 * time.Second,
	}
}

// Publish blocks until the broker acknowledges the event or the timeout elapses
func (p *KafkaPublisher) Publish(ctx context.Context, event ProductEvent) error {
	msg, err := newMessage(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s: %w", event.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func newMessage(event ProductEvent) (kafka.Message, error) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: marshal event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.ProductID), 10)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}, nil
}
