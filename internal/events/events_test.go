package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisherPublish(t *testing.T) {
	writer := &recordingWriter{}
	publisher := &KafkaPublisher{writer: writer, timeout: time.Second}

	err := publisher.Publish(context.Background(), ProductEvent{Type: ProductCreated, ProductID: 12, Name: "Lamp"})
	require.NoError(t, err)
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "12", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, ProductCreated, string(msg.Headers[0].Value))

	var decoded ProductEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, ProductCreated, decoded.Type)
	assert.Equal(t, uint(12), decoded.ProductID)
	assert.Equal(t, "Lamp", decoded.Name)
	assert.False(t, decoded.OccurredAt.IsZero())

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisherWriteError(t *testing.T) {
	brokerDown := errors.New("dial tcp: connection refused")
	publisher := &KafkaPublisher{writer: &recordingWriter{err: brokerDown}, timeout: time.Second}

	err := publisher.Publish(context.Background(), ProductEvent{Type: ProductDeleted, ProductID: 1})

	assert.ErrorIs(t, err, brokerDown)
	assert.ErrorContains(t, err, ProductDeleted)
}

func TestNewKafkaPublisherBrokerList(t *testing.T) {
	publisher := NewKafkaPublisher(" kafka-1:9092, ,kafka-2:9092", "product_events")

	writer, ok := publisher.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "product_events", writer.Topic)
	assert.NotNil(t, writer.Addr)
	assert.IsType(t, &kafka.Hash{}, writer.Balancer)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), ProductEvent{Type: ProductUpdated}))
	assert.NoError(t, p.Close())
}
