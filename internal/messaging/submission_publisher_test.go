package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payram/igaming-events-api/internal/models"
)

type writerStub struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *writerStub) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *writerStub) Close() error {
	w.closed = true
	return nil
}

func TestPublishSubmissionKeysByLink(t *testing.T) {
	writer := &writerStub{}
	publisher := &SubmissionPublisher{writer: writer}
	submittedAt := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

	err := publisher.PublishSubmission(context.Background(), SubmissionMessage{
		Action:      "created",
		EventID:     "page-1",
		Event:       models.Event{EventName: "ICE", Link: "https://ice"},
		SubmittedAt: submittedAt,
	})
	require.NoError(t, err)

	require.Len(t, writer.messages, 1)
	assert.Equal(t, "https://ice", string(writer.messages[0].Key))

	var decoded SubmissionMessage
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
	assert.Equal(t, "created", decoded.Action)
	assert.Equal(t, "ICE", decoded.Event.EventName)
	assert.True(t, submittedAt.Equal(decoded.SubmittedAt))

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestPublishSubmissionWrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	publisher := &SubmissionPublisher{writer: &writerStub{err: boom}}

	err := publisher.PublishSubmission(context.Background(), SubmissionMessage{EventID: "x"})

	assert.ErrorIs(t, err, boom)
}
