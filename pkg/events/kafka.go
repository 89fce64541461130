package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Joechristian9/SituationalReport-sub000/config"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaPublisher writes lifecycle events to a Kafka topic keyed by typhoon id
type KafkaPublisher struct {
	writer messageWriter
	logger *zap.Logger
}

// NewKafkaPublisher creates a producer for the configured topic
func NewKafkaPublisher(cfg *config.KafkaConfig, logger *zap.Logger) *KafkaPublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		WriteTimeout: 5 * time.Second,
	}
	logger.Info("kafka publisher enabled",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic),
	)
	return &KafkaPublisher{writer: w, logger: logger}
}

// Publish serializes and sends one event
func (p *KafkaPublisher) Publish(ctx context.Context, event TyphoonEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a TyphoonEvent into a Kafka message.
func serializeToMessage(event TyphoonEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize typhoon event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.TyphoonID), 10)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "occurred_at", Value: []byte(event.OccurredAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
