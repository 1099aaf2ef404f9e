package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/payram/igaming-events-api/internal/models"
)

// SubmissionMessage is published for every public event submission that reached the store.
type SubmissionMessage struct {
	Action      string       `json:"action"`
	EventID     string       `json:"eventId"`
	Event       models.Event `json:"event"`
	SubmittedAt time.Time    `json:"submittedAt"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// SubmissionPublisher streams submissions to the moderation topic.
type SubmissionPublisher struct {
	writer messageWriter
}

// NewSubmissionPublisher returns a publisher writing to topic on brokers.
func NewSubmissionPublisher(brokers []string, topic string) *SubmissionPublisher {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.Hash{},
	})
	return &SubmissionPublisher{writer: writer}
}

// PublishSubmission writes msg keyed by the event link so resubmissions stay ordered.
func (p *SubmissionPublisher) PublishSubmission(ctx context.Context, msg SubmissionMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Event.Link),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("publish submission %s: %w", msg.EventID, err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *SubmissionPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
