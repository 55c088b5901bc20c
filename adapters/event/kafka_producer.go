package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/devfinder/internal/application/service"
	"github.com/khoahotran/devfinder/internal/config"
	"github.com/khoahotran/devfinder/pkg/logger"
)

const TopicLookupEvents = "lookup.events"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	LookupEventsWriter messageWriter
	topic              string
	log                logger.Logger
}

var _ service.EventPublisher = (*KafkaProducerClient)(nil)

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}
	topic := cfg.Kafka.Topic
	if topic == "" {
		topic = TopicLookupEvents
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
		Async:    true,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Warn("Kafka writer error", zap.String("detail", fmt.Sprintf(msg, args...)))
		}),
	}

	log.Info("Kafka lookup producer initialized", zap.Strings("brokers", brokers), zap.String("topic", topic))
	return &KafkaProducerClient{LookupEventsWriter: writer, topic: topic, log: log}, nil
}

// PublishLookup keys messages by username so lookups of one account stay
// ordered within a partition.
func (c *KafkaProducerClient) PublishLookup(ctx context.Context, evt service.LookupEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal lookup event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.Username),
		Value: payload,
	}
	if err := c.LookupEventsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write lookup event to %s: %w", c.topic, err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.LookupEventsWriter != nil {
		if err := c.LookupEventsWriter.Close(); err != nil {
			c.log.Error("Failed to close Kafka writer", err)
		}
	}
	c.log.Info("Closed Kafka producer")
}

// NoopPublisher drops events. It is used when Kafka is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishLookup(context.Context, service.LookupEvent) error { return nil }
