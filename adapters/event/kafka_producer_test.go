package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/devfinder/internal/application/service"
	"github.com/khoahotran/devfinder/internal/config"
	"github.com/khoahotran/devfinder/pkg/logger"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewKafkaProducerClient_RequiresBrokers(t *testing.T) {
	_, err := NewKafkaProducerClient(config.Config{}, logger.NewNop())
	assert.Error(t, err)
}

func TestNewKafkaProducerClient_DefaultTopic(t *testing.T) {
	var cfg config.Config
	cfg.Kafka.Brokers = []string{"localhost:9092"}

	client, err := NewKafkaProducerClient(cfg, logger.NewNop())
	require.NoError(t, err)
	defer client.Close()

	w, ok := client.LookupEventsWriter.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, TopicLookupEvents, w.Topic)
}

func TestPublishLookup(t *testing.T) {
	w := &recordingWriter{}
	client := &KafkaProducerClient{LookupEventsWriter: w, topic: TopicLookupEvents, log: logger.NewNop()}

	evt := service.LookupEvent{
		ID:         "evt-1",
		Username:   "octocat",
		Outcome:    service.OutcomeFound,
		Status:     200,
		DurationMs: 42,
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, client.PublishLookup(context.Background(), evt))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "octocat", string(w.msgs[0].Key))

	var got service.LookupEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, evt, got)

	client.Close()
	assert.True(t, w.closed)
}

func TestPublishLookup_WriteError(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker down")}
	client := &KafkaProducerClient{LookupEventsWriter: w, topic: TopicLookupEvents, log: logger.NewNop()}

	err := client.PublishLookup(context.Background(), service.LookupEvent{Username: "octocat"})
	assert.ErrorContains(t, err, "broker down")
}
