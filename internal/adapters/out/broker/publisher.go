// Package broker publishes outbox messages to a Kafka topic with
// segmentio/kafka-go. Messages are keyed by aggregate id so events of one
// order stay in one partition and keep their order.
package broker

import (
	"context"
	"fmt"
	"time"

	"bidding/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	HeaderEventName = "event-name"
	HeaderMessageID = "message-id"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher. With no brokers configured it
// accepts and drops every message.
type Publisher struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(brokers) == 0 {
		logger.Info("kafka brokers not configured; outbox messages will be dropped")
		return &Publisher{topic: topic, logger: logger}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
		Logger:       kafkaLogger{logger: logger},
		ErrorLogger:  kafkaErrorLogger{logger: logger},
	}
	return newPublisher(writer, topic, logger)
}

func newPublisher(writer messageWriter, topic string, logger *zap.Logger) *Publisher {
	return &Publisher{writer: writer, topic: topic, logger: logger}
}

// Publish writes all messages in one synchronous batch.
func (p *Publisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if p.writer == nil || len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, msg := range messages {
		batch = append(batch, kafka.Message{
			Key:   []byte(msg.AggregateID),
			Value: msg.Payload,
			Time:  msg.OccurredAt,
			Headers: []kafka.Header{
				{Key: HeaderEventName, Value: []byte(msg.EventName)},
				{Key: HeaderMessageID, Value: []byte(msg.ID.String())},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

type kafkaLogger struct {
	logger *zap.Logger
}

func (k kafkaLogger) Printf(msg string, args ...interface{}) {
	k.logger.Sugar().Debugf(msg, args...)
}

type kafkaErrorLogger struct {
	logger *zap.Logger
}

func (k kafkaErrorLogger) Printf(msg string, args ...interface{}) {
	k.logger.Sugar().Errorf(msg, args...)
}
