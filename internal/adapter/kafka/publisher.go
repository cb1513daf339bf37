package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/disaster-alert-service/internal/config"
	"github.com/couchcryptid/disaster-alert-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher produces accepted submissions to a Kafka topic.
// It implements reconciler.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured alerts topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAlertsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish serializes and produces one acknowledgment. Keyed by locality so
// submissions for the same (area, city) land on the same partition.
func (p *Publisher) Publish(ctx context.Context, ack domain.SubmissionAck) error {
	msg, err := serializeToMessage(ack)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

// Close flushes pending messages and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals an acknowledgment into a Kafka message.
func serializeToMessage(ack domain.SubmissionAck) (kafkago.Message, error) {
	data, err := json.Marshal(ack)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize submission ack: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(domain.RowKey(ack.Area, ack.City)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "alert_type", Value: []byte(ack.AlertType)},
			{Key: "submitted_at", Value: []byte(ack.Timestamp.Format(time.RFC3339))},
		},
	}, nil
}
