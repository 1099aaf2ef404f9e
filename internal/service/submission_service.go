package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc/iter"
	"go.uber.org/zap"

	"github.com/payram/igaming-events-api/internal/calendar"
	"github.com/payram/igaming-events-api/internal/dto"
	"github.com/payram/igaming-events-api/internal/messaging"
	"github.com/payram/igaming-events-api/internal/models"
	"github.com/payram/igaming-events-api/internal/repository"
)

// EventWriter is the document store as seen by submissions.
type EventWriter interface {
	repository.EventQuerier
	CreateEvent(ctx context.Context, record *models.EventRecord) (string, error)
	UpdateEvent(ctx context.Context, record *models.EventRecord) error
}

// SubmissionPublisher notifies moderators of new submissions.
type SubmissionPublisher interface {
	PublishSubmission(ctx context.Context, msg messaging.SubmissionMessage) error
}

// SubmissionConfig tunes the write paths.
type SubmissionConfig struct {
	MaxPages       int
	PageSize       int
	MaxConcurrency int
}

// SubmissionService reconciles submitted events with the document store by link.
type SubmissionService struct {
	store     EventWriter
	publisher SubmissionPublisher
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       SubmissionConfig
	now       func() time.Time
}

// NewSubmissionService constructs the service. publisher, cache and metrics are optional.
func NewSubmissionService(store EventWriter, publisher SubmissionPublisher, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg SubmissionConfig) *SubmissionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{
		store:     store,
		publisher: publisher,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// SubmitEvent creates or updates the event sharing req.Link. Either way the
// record goes back to under-review.
func (s *SubmissionService) SubmitEvent(ctx context.Context, req dto.SubmitEventRequest) (*dto.SubmitEventResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailure("Invalid payload: eventName and link are required")
	}

	event := req.Event()
	if err := validateDateSpan(event.StartDate, event.EndDate); err != nil {
		return nil, err
	}
	if event.Month == "" {
		if start, err := calendar.ParseDate(event.StartDate); err == nil {
			event.Month = calendar.MonthYear(start)
		}
	}

	record := &models.EventRecord{Status: models.EventStatusUnderReview, Event: event.Truncated()}

	existingID := s.findIDByLink(ctx, record.Link)
	result := &dto.SubmitEventResult{}
	if existingID != "" {
		record.ID = existingID
		err := s.observe("update", func() error { return s.store.UpdateEvent(ctx, record) })
		if err != nil {
			return nil, storeFailure(err, "Failed to process event")
		}
		result.Action = dto.ActionUpdated
		result.EventID = existingID
		// A reviewed event that is resubmitted leaves the public list.
		s.cache.Invalidate(ctx, CachePatternEvents)
	} else {
		var id string
		err := s.observe("create", func() error {
			var createErr error
			id, createErr = s.store.CreateEvent(ctx, record)
			return createErr
		})
		if err != nil {
			return nil, storeFailure(err, "Failed to process event")
		}
		result.Action = dto.ActionCreated
		result.EventID = id
	}

	s.metrics.RecordSubmission(result.Action)
	s.logger.Info("event submitted", zap.String("action", result.Action), zap.String("event_id", result.EventID), zap.String("link", record.Link))
	s.publish(ctx, result, record.Event)
	return result, nil
}

// findIDByLink returns the id of the record with link, or "" when there is none.
// Lookup failures count as a miss.
func (s *SubmissionService) findIDByLink(ctx context.Context, link string) string {
	var page *models.EventPage
	err := s.observe("query", func() error {
		var queryErr error
		page, queryErr = s.store.QueryEvents(ctx, models.EventFilter{Link: link, PageSize: 1})
		return queryErr
	})
	if err != nil {
		s.logger.Warn("lookup by link failed, treating as new event", zap.String("link", link), zap.Error(err))
		return ""
	}
	if page == nil || len(page.Records) == 0 {
		return ""
	}
	return page.Records[0].ID
}

func (s *SubmissionService) publish(ctx context.Context, result *dto.SubmitEventResult, event models.Event) {
	if s.publisher == nil {
		return
	}
	msg := messaging.SubmissionMessage{
		Action:      result.Action,
		EventID:     result.EventID,
		Event:       event,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.publisher.PublishSubmission(ctx, msg); err != nil {
		s.logger.Warn("publish submission failed", zap.String("event_id", result.EventID), zap.Error(err))
	}
}

type bulkOp struct {
	index  int
	action string
	record models.EventRecord
}

// BulkSubmit imports a batch, marking every item reviewed. All writes run
// concurrently and settle independently; the result lists each item's outcome.
func (s *SubmissionService) BulkSubmit(ctx context.Context, events []models.Event) (*dto.BulkSubmitResult, error) {
	var existing []models.EventRecord
	err := s.observe("collect", func() error {
		var collectErr error
		existing, collectErr = repository.CollectEvents(ctx, s.store, models.EventFilter{PageSize: s.cfg.PageSize}, s.cfg.MaxPages)
		return collectErr
	})
	if err != nil {
		return nil, storeFailure(err, "Failed to fetch existing events")
	}

	linkToID := make(map[string]string, len(existing))
	for _, record := range existing {
		if record.Link != "" {
			linkToID[record.Link] = record.ID
		}
	}

	results := make([]dto.BulkItemResult, len(events))
	truncated := make([]models.Event, len(events))
	lastNew := make(map[string]int)
	for i, event := range events {
		truncated[i] = event.Truncated()
		link := truncated[i].Link
		if _, ok := linkToID[link]; !ok && link != "" {
			lastNew[link] = i
		}
	}

	ops := make([]bulkOp, 0, len(events))
	for i, event := range truncated {
		results[i] = dto.BulkItemResult{Index: i, Link: event.Link}
		switch {
		case event.EventName == "" || event.Link == "":
			results[i].Action = dto.ActionInvalid
			results[i].Error = "eventName and link are required"
		case linkToID[event.Link] != "":
			ops = append(ops, bulkOp{index: i, action: dto.ActionUpdated, record: models.EventRecord{
				ID: linkToID[event.Link], Status: models.EventStatusReviewed, Event: event,
			}})
		case lastNew[event.Link] != i:
			results[i].Action = dto.ActionSkipped
		default:
			ops = append(ops, bulkOp{index: i, action: dto.ActionCreated, record: models.EventRecord{
				Status: models.EventStatusReviewed, Event: event,
			}})
		}
	}

	workers := s.cfg.MaxConcurrency
	if workers <= 0 {
		workers = len(ops)
	}
	mapper := iter.Mapper[bulkOp, dto.BulkItemResult]{MaxGoroutines: workers}
	settled := mapper.Map(ops, func(op *bulkOp) dto.BulkItemResult {
		return s.applyBulkOp(ctx, op)
	})

	wrote := false
	for _, r := range settled {
		results[r.Index] = r
		if r.Error == "" {
			wrote = true
		}
	}
	for _, r := range results {
		outcome := r.Action
		if r.Failed() {
			outcome = "failed"
		}
		s.metrics.RecordBulkOutcome(outcome)
	}
	if wrote {
		s.cache.Invalidate(ctx, CachePatternEvents)
	}

	summary := dto.Summarize(results)
	s.logger.Info("bulk submit finished",
		zap.Int("total", summary.Total),
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("failed", summary.Failed),
		zap.Int("invalid", summary.Invalid),
		zap.Int("skipped", summary.Skipped),
	)
	return &dto.BulkSubmitResult{Summary: summary, Results: results}, nil
}

func (s *SubmissionService) applyBulkOp(ctx context.Context, op *bulkOp) dto.BulkItemResult {
	result := dto.BulkItemResult{Index: op.index, Link: op.record.Link, Action: op.action}
	record := op.record

	var err error
	if op.action == dto.ActionUpdated {
		err = s.observe("update", func() error { return s.store.UpdateEvent(ctx, &record) })
		result.EventID = record.ID
	} else {
		err = s.observe("create", func() error {
			id, createErr := s.store.CreateEvent(ctx, &record)
			result.EventID = id
			return createErr
		})
	}
	if err != nil {
		result.Error = err.Error()
		s.logger.Warn("bulk item failed", zap.Int("index", op.index), zap.String("action", op.action), zap.String("link", record.Link), zap.Error(err))
	}
	return result
}

func (s *SubmissionService) observe(operation string, call func() error) error {
	start := time.Now()
	err := call()
	s.metrics.ObserveStoreCall(operation, err, time.Since(start))
	return err
}

// validateDateSpan checks a start/end pair when both are present.
func validateDateSpan(startRaw, endRaw string) error {
	if startRaw == "" || endRaw == "" {
		return nil
	}
	start, err := calendar.ParseDate(startRaw)
	if err != nil {
		return validationFailure(fmt.Sprintf("Invalid startDate %q: expected DD-MM-YYYY", startRaw))
	}
	end, err := calendar.ParseDate(endRaw)
	if err != nil {
		return validationFailure(fmt.Sprintf("Invalid endDate %q: expected DD-MM-YYYY", endRaw))
	}
	if start.After(end) {
		return validationFailure("startDate must not be after endDate")
	}
	return nil
}
