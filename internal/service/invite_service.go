package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/payram/igaming-events-api/internal/calendar"
	"github.com/payram/igaming-events-api/internal/dto"
	"github.com/payram/igaming-events-api/internal/ics"
	"github.com/payram/igaming-events-api/internal/models"
	appErrors "github.com/payram/igaming-events-api/pkg/errors"
	"github.com/payram/igaming-events-api/pkg/mailer"
)

// InviteContentType is the content type of the event.ics attachment.
const InviteContentType = "text/calendar; charset=utf-8; method=PUBLISH"

var errMailerNotConfigured = errors.New("mail delivery is not configured")

// InviteMailer delivers invite emails.
type InviteMailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// RegistrationWriter records invite requesters.
type RegistrationWriter interface {
	CreateRegistration(ctx context.Context, reg *models.Registration) (string, error)
}

// InviteConfig controls generated invites.
type InviteConfig struct {
	UIDDomain      string
	Location       *time.Location
	OrganizerName  string
	OrganizerEmail string
}

// InviteService emails calendar invites and records the requester.
type InviteService struct {
	mailer        InviteMailer
	registrations RegistrationWriter
	metrics       *MetricsService
	validator     *validator.Validate
	logger        *zap.Logger
	cfg           InviteConfig
	now           func() time.Time
}

// NewInviteService constructs the service. A nil mailer fails every send; a
// nil registration writer skips recording.
func NewInviteService(m InviteMailer, registrations RegistrationWriter, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg InviteConfig) *InviteService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.UIDDomain == "" {
		cfg.UIDDomain = "payram.com"
	}
	if cfg.OrganizerName == "" {
		cfg.OrganizerName = "PayRam"
	}
	return &InviteService{
		mailer:        m,
		registrations: registrations,
		metrics:       metrics,
		validator:     validate,
		logger:        logger,
		cfg:           cfg,
		now:           time.Now,
	}
}

// SendInvite emails the ICS invite and writes the registration concurrently.
// Only a mail failure fails the call.
func (s *InviteService) SendInvite(ctx context.Context, req dto.SendInviteRequest) (*dto.SendInviteResult, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	start, _ := calendar.ParseDateIn(req.StartDate, s.cfg.Location)
	end, _ := calendar.ParseDateIn(req.EndDate, s.cfg.Location)

	now := s.now()
	body := ics.BuildInvite(ics.Invite{
		UID:         ics.InviteUID(now, s.cfg.UIDDomain),
		Summary:     req.EventName,
		Description: req.EventDescription,
		Website:     req.EventWebsite,
		Location:    req.EventLocation,
		Start:       start,
		End:         end,
		Organizer:   ics.Person{Name: s.cfg.OrganizerName, Email: s.cfg.OrganizerEmail},
		Attendee:    ics.Person{Name: req.UserName, Email: req.UserEmail},
		Stamp:       now,
	})

	html, err := renderInviteEmail(inviteEmail{
		EventName: req.EventName,
		FirstName: firstName(req.UserName),
		DateRange: calendar.FormatLongDateRange(req.StartDate, req.EndDate),
		Location:  req.EventLocation,
		Website:   req.EventWebsite,
		Signature: InviteSignature,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to send calendar invite")
	}

	msg := mailer.Message{
		To:      req.UserEmail,
		Subject: "Calendar Invite: " + req.EventName,
		HTML:    html,
		Attachments: []mailer.Attachment{{
			Filename:    "event.ics",
			ContentType: InviteContentType,
			Content:     []byte(body),
		}},
	}

	var (
		sendErr error
		regID   *string
		wg      conc.WaitGroup
	)
	wg.Go(func() { sendErr = s.send(ctx, msg) })
	wg.Go(func() { regID = s.register(ctx, req) })
	wg.Wait()

	s.metrics.RecordInvite(sendErr == nil)
	if sendErr != nil {
		s.logger.Error("calendar invite not sent", zap.String("event", req.EventName), zap.Error(sendErr))
		return nil, appErrors.Wrap(sendErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to send calendar invite")
	}

	s.logger.Info("calendar invite sent", zap.String("event", req.EventName), zap.Bool("registered", regID != nil))
	return &dto.SendInviteResult{RegistrationID: regID}, nil
}

func (s *InviteService) validate(req dto.SendInviteRequest) error {
	if err := s.validator.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) == 1 && verrs[0].Tag() == "email" {
			return validationFailure("userEmail must be a valid email address")
		}
		return validationFailure("Missing required fields")
	}
	return validateDateSpan(req.StartDate, req.EndDate)
}

func (s *InviteService) send(ctx context.Context, msg mailer.Message) error {
	if s.mailer == nil {
		return errMailerNotConfigured
	}
	return s.mailer.Send(ctx, msg)
}

// register returns nil when the registration could not be written.
func (s *InviteService) register(ctx context.Context, req dto.SendInviteRequest) *string {
	if s.registrations == nil {
		return nil
	}
	reg := &models.Registration{
		Name:     strings.TrimSpace(req.UserName),
		Email:    strings.TrimSpace(req.UserEmail),
		Industry: strings.TrimSpace(req.UserIndustry),
	}

	started := time.Now()
	id, err := s.registrations.CreateRegistration(ctx, reg)
	s.metrics.ObserveStoreCall("create_registration", err, time.Since(started))
	if err != nil {
		s.logger.Warn("registration not recorded", zap.String("email", reg.Email), zap.Error(err))
		return nil
	}
	return &id
}
