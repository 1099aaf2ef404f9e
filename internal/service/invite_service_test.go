package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payram/igaming-events-api/internal/dto"
	appErrors "github.com/payram/igaming-events-api/pkg/errors"
	"github.com/payram/igaming-events-api/pkg/mailer"
)

type mailerStub struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *mailerStub) Send(ctx context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func inviteRequest() dto.SendInviteRequest {
	return dto.SendInviteRequest{
		UserName:         "Ana Lima",
		UserEmail:        "ana@example.com",
		UserIndustry:     "Payments",
		EventName:        "ICE Barcelona",
		EventDescription: "Gaming expo",
		EventLocation:    "Barcelona",
		StartDate:        "04-02-2025",
		EndDate:          "06-02-2025",
		EventWebsite:     "https://icegaming.com",
	}
}

func newInviteService(m InviteMailer, regs RegistrationWriter, metrics *MetricsService) *InviteService {
	svc := NewInviteService(m, regs, metrics, nil, nil, InviteConfig{OrganizerEmail: "bot@payram.com"})
	svc.now = func() time.Time { return time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestSendInviteDeliversMailAndRecordsRegistration(t *testing.T) {
	mail := &mailerStub{}
	store := &eventStoreStub{}
	metrics := NewMetricsService()
	svc := newInviteService(mail, store, metrics)

	result, err := svc.SendInvite(context.Background(), inviteRequest())
	require.NoError(t, err)

	require.NotNil(t, result.RegistrationID)
	assert.Equal(t, "reg-1", *result.RegistrationID)
	require.Len(t, store.regs, 1)
	assert.Equal(t, "Payments", store.regs[0].Industry)

	require.Len(t, mail.sent, 1)
	msg := mail.sent[0]
	assert.Equal(t, "ana@example.com", msg.To)
	assert.Equal(t, "Calendar Invite: ICE Barcelona", msg.Subject)
	assert.Contains(t, msg.HTML, "Hi Ana,")
	assert.Contains(t, msg.HTML, "Tuesday, February 4, 2025 - Thursday, February 6, 2025")
	assert.Contains(t, msg.HTML, `href="https://icegaming.com"`)
	assert.Contains(t, msg.HTML, InviteSignature)

	require.Len(t, msg.Attachments, 1)
	att := msg.Attachments[0]
	assert.Equal(t, "event.ics", att.Filename)
	assert.Equal(t, InviteContentType, att.ContentType)
	body := string(att.Content)
	assert.Contains(t, body, "DTSTART:20250204T000000Z")
	assert.Contains(t, body, "DTEND:20250207T000000Z")
	assert.Contains(t, body, "UID:1736499600000@payram.com")
	assert.Contains(t, body, "mailto:bot@payram.com")

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.invites.WithLabelValues("sent")))
}

func TestSendInviteSingleDayAndNoWebsite(t *testing.T) {
	mail := &mailerStub{}
	svc := newInviteService(mail, nil, nil)
	req := inviteRequest()
	req.EndDate = req.StartDate
	req.EventWebsite = ""

	result, err := svc.SendInvite(context.Background(), req)
	require.NoError(t, err)

	assert.Nil(t, result.RegistrationID)
	html := mail.sent[0].HTML
	assert.Contains(t, html, "<strong>Date:</strong> Tuesday, February 4, 2025</li>")
	assert.NotContains(t, html, "Website &amp; tickets info")
}

func TestSendInviteEscapesUserInput(t *testing.T) {
	mail := &mailerStub{}
	svc := newInviteService(mail, nil, nil)
	req := inviteRequest()
	req.UserName = "<script>alert(1)</script> Doe"

	_, err := svc.SendInvite(context.Background(), req)
	require.NoError(t, err)

	assert.NotContains(t, mail.sent[0].HTML, "<script>")
}

func TestSendInviteRegistrationFailureIsNotFatal(t *testing.T) {
	mail := &mailerStub{}
	store := &eventStoreStub{regErr: errors.New("notion down")}
	svc := newInviteService(mail, store, nil)

	result, err := svc.SendInvite(context.Background(), inviteRequest())
	require.NoError(t, err)

	assert.Nil(t, result.RegistrationID)
	assert.Len(t, mail.sent, 1)
}

func TestSendInviteMailFailure(t *testing.T) {
	store := &eventStoreStub{}
	metrics := NewMetricsService()
	svc := newInviteService(&mailerStub{err: errors.New("smtp auth")}, store, metrics)

	_, err := svc.SendInvite(context.Background(), inviteRequest())

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Status)
	assert.Equal(t, "Failed to send calendar invite", appErr.Message)
	assert.Len(t, store.regs, 1, "registration still runs")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.invites.WithLabelValues("failed")))
}

func TestSendInviteWithoutMailerFails(t *testing.T) {
	svc := newInviteService(nil, nil, nil)

	_, err := svc.SendInvite(context.Background(), inviteRequest())

	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestSendInviteValidation(t *testing.T) {
	cases := map[string]struct {
		mutate  func(*dto.SendInviteRequest)
		message string
	}{
		"missing name":  {func(r *dto.SendInviteRequest) { r.UserName = "" }, "Missing required fields"},
		"missing dates": {func(r *dto.SendInviteRequest) { r.StartDate = "" }, "Missing required fields"},
		"bad email":     {func(r *dto.SendInviteRequest) { r.UserEmail = "not-an-email" }, "userEmail must be a valid email address"},
		"bad date":      {func(r *dto.SendInviteRequest) { r.EndDate = "31-02-2025" }, `Invalid endDate "31-02-2025": expected DD-MM-YYYY`},
		"inverted":      {func(r *dto.SendInviteRequest) { r.StartDate = "10-02-2025" }, "startDate must not be after endDate"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			mail := &mailerStub{}
			svc := newInviteService(mail, nil, nil)
			req := inviteRequest()
			tc.mutate(&req)

			_, err := svc.SendInvite(context.Background(), req)

			var appErr *appErrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
			assert.Equal(t, tc.message, appErr.Message)
			assert.Empty(t, mail.sent)
		})
	}
}

func TestFirstName(t *testing.T) {
	assert.Equal(t, "Ana", firstName("Ana Lima"))
	assert.Equal(t, "Ana", firstName("  Ana  "))
	assert.Equal(t, "", firstName(""))
	assert.False(t, strings.Contains(firstName("Ana\tLima"), "\t"))
}
