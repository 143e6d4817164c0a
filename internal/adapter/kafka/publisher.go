// Package kafka publishes completed search outcomes to an audit topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/lodestar-geo/place-search-service/internal/domain"
)

// Publisher produces search outcomes to a Kafka topic.
// It implements search.OutcomePublisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the audit topic.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishOutcome serializes and publishes one search outcome to the audit
// topic. Messages are keyed by query so repeated searches for the same place
// land on the same partition.
func (p *Publisher) PublishOutcome(ctx context.Context, outcome domain.SearchOutcome) error {
	msg, err := serializeToMessage(outcome)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a SearchOutcome into a Kafka message.
func serializeToMessage(outcome domain.SearchOutcome) (kafkago.Message, error) {
	data, err := json.Marshal(outcome)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize search outcome: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(outcome.Query),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "status", Value: []byte(outcome.Status)},
			{Key: "searched_at", Value: []byte(outcome.SearchedAt.Format(time.RFC3339))},
		},
	}, nil
}
