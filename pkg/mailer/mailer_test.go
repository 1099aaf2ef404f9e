package mailer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/payram/igaming-events-api/pkg/config"
)

type senderStub struct {
	sent []*gomail.Message
	err  error
}

func (s *senderStub) DialAndSend(m ...*gomail.Message) error {
	s.sent = append(s.sent, m...)
	return s.err
}

func TestNewSMTPMailerRequiresCredentials(t *testing.T) {
	_, err := NewSMTPMailer(config.MailConfig{Host: "smtp.example.com", Port: 587})
	assert.ErrorIs(t, err, ErrNotConfigured)

	m, err := NewSMTPMailer(config.MailConfig{Host: "smtp.example.com", Port: 587, Username: "bot@example.com", Password: "secret", FromName: "PayRam Gaming Events"})
	require.NoError(t, err)
	assert.Equal(t, "PayRam Gaming Events <bot@example.com>", m.from)
}

func TestSendBuildsMessage(t *testing.T) {
	stub := &senderStub{}
	m := &SMTPMailer{dialer: stub, from: FromAddress("", "bot@example.com")}

	err := m.Send(context.Background(), Message{
		To:      "ana@example.com",
		Subject: "Calendar Invite: ICE",
		HTML:    "<p>Hi Ana,</p>",
		Attachments: []Attachment{{
			Filename:    "event.ics",
			ContentType: "text/calendar; charset=utf-8; method=PUBLISH",
			Content:     []byte("BEGIN:VCALENDAR"),
		}},
	})
	require.NoError(t, err)
	require.Len(t, stub.sent, 1)

	msg := stub.sent[0]
	assert.Equal(t, []string{"bot@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"ana@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Calendar Invite: ICE"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, `filename="event.ics"`)
	assert.Contains(t, raw, "text/calendar; charset=utf-8; method=PUBLISH")
	assert.True(t, strings.Contains(raw, "text/html"))
}

func TestSendWrapsTransportError(t *testing.T) {
	m := &SMTPMailer{dialer: &senderStub{err: errors.New("auth failed")}, from: "bot@example.com"}

	err := m.Send(context.Background(), Message{To: "ana@example.com"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth failed")
}

func TestSendHonoursCancelledContext(t *testing.T) {
	stub := &senderStub{}
	m := &SMTPMailer{dialer: stub, from: "bot@example.com"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Send(ctx, Message{To: "ana@example.com"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, stub.sent)
}
