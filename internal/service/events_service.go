package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/payram/igaming-events-api/internal/calendar"
	"github.com/payram/igaming-events-api/internal/dto"
	"github.com/payram/igaming-events-api/internal/ics"
	"github.com/payram/igaming-events-api/internal/models"
	"github.com/payram/igaming-events-api/internal/repository"
	appErrors "github.com/payram/igaming-events-api/pkg/errors"
	"github.com/payram/igaming-events-api/pkg/export"
)

// Card grid and detail view limits.
const (
	DefaultCardPageSize = 12
	MaxCardPageSize     = 60
	CardPreviewLength   = 200
	DetailPreviewLength = 300
)

type fallbackEvents interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// EventsConfig tunes the read paths.
type EventsConfig struct {
	MaxPages  int
	PageSize  int
	CacheTTL  time.Duration
	UIDDomain string
}

// EventsService serves the public read models built from reviewed events.
type EventsService struct {
	store    repository.EventQuerier
	fallback fallbackEvents
	cache    *CacheService
	metrics  *MetricsService
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
	cfg      EventsConfig
	now      func() time.Time
}

// NewEventsService constructs the service. fallback, cache and metrics are optional.
func NewEventsService(store repository.EventQuerier, fallback fallbackEvents, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cfg EventsConfig) *EventsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.UIDDomain == "" {
		cfg.UIDDomain = "payram.com"
	}
	return &EventsService{
		store:    store,
		fallback: fallback,
		cache:    cache,
		metrics:  metrics,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// ListReviewed returns every reviewed event from the live store.
func (s *EventsService) ListReviewed(ctx context.Context) ([]models.Event, error) {
	var cached []models.Event
	if s.cache.Get(ctx, CacheKeyReviewedEvents, &cached) {
		return cached, nil
	}

	start := time.Now()
	records, err := repository.CollectEvents(ctx, s.store, models.EventFilter{Status: models.EventStatusReviewed, PageSize: s.cfg.PageSize}, s.cfg.MaxPages)
	s.metrics.ObserveStoreCall("collect_reviewed", err, time.Since(start))
	if err != nil {
		return nil, storeFailure(err, "Failed to fetch reviewed events")
	}

	events := models.Events(records)
	s.cache.Set(ctx, CacheKeyReviewedEvents, events, s.cfg.CacheTTL)
	return events, nil
}

// viewEvents loads reviewed events for the rendered views, serving the bundled
// dataset when the live store fails.
func (s *EventsService) viewEvents(ctx context.Context) ([]models.Event, string, error) {
	events, err := s.ListReviewed(ctx)
	if err == nil {
		return events, dto.SourceLive, nil
	}
	if s.fallback == nil {
		return nil, "", err
	}

	fallback, fbErr := s.fallback.ListEvents(ctx)
	if fbErr != nil {
		s.logger.Error("fallback dataset unavailable", zap.NamedError("live_error", err), zap.Error(fbErr))
		return nil, "", err
	}
	s.logger.Warn("serving fallback dataset", zap.Error(err))
	s.metrics.RecordFallback()
	return fallback, dto.SourceFallback, nil
}

// CardPage returns one page of date-sorted cards plus footer stats.
func (s *EventsService) CardPage(ctx context.Context, query dto.CardQuery) (*dto.CardPage, error) {
	events, source, err := s.viewEvents(ctx)
	if err != nil {
		return nil, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	size := query.Limit
	if size <= 0 {
		size = DefaultCardPageSize
	}
	if size > MaxCardPageSize {
		size = MaxCardPageSize
	}

	sorted := calendar.SortEventsByDate(events)
	total := len(sorted)
	lo := total
	if page-1 <= total/size {
		lo = (page - 1) * size
	}
	if lo > total {
		lo = total
	}
	hi := lo + size
	if hi > total {
		hi = total
	}

	cards := make([]dto.EventCard, 0, hi-lo)
	for _, e := range sorted[lo:hi] {
		preview, _ := models.Preview(e.Description, CardPreviewLength)
		cards = append(cards, dto.EventCard{
			Event:              e,
			DateRange:          calendar.FormatDateRange(e.StartDate, e.EndDate),
			DescriptionPreview: preview,
		})
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + size - 1) / size
	}
	return &dto.CardPage{
		Cards:      cards,
		Pagination: models.Pagination{Page: page, PageSize: size, TotalCount: total, TotalPages: totalPages},
		Stats:      cardStats(events),
		Source:     source,
	}, nil
}

func cardStats(events []models.Event) dto.CardStats {
	locations := make(map[string]struct{})
	for _, e := range events {
		if loc := strings.TrimSpace(e.Location); loc != "" {
			locations[loc] = struct{}{}
		}
	}
	return dto.CardStats{TotalEvents: len(events), Locations: len(locations)}
}

// CalendarMonth lays out the requested month, defaulting to the current one.
func (s *EventsService) CalendarMonth(ctx context.Context, query dto.CalendarQuery) (*calendar.MonthLayout, string, error) {
	now := s.now()
	current := now
	if query.Month != "" {
		parsed, err := calendar.ParseMonth(query.Month, now.Location())
		if err != nil {
			return nil, "", validationFailure("month must be YYYY-MM")
		}
		current = parsed
	}
	expanded, err := parseExpanded(query.Expanded)
	if err != nil {
		return nil, "", err
	}

	events, source, err := s.viewEvents(ctx)
	if err != nil {
		return nil, "", err
	}

	layout := calendar.BuildMonth(events, current, calendar.Options{Today: now, Expanded: expanded})
	return &layout, source, nil
}

func parseExpanded(raw string) (map[int]bool, error) {
	expanded := map[int]bool{}
	if strings.TrimSpace(raw) == "" {
		return expanded, nil
	}
	for _, part := range strings.Split(raw, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || idx < 0 || idx >= calendar.WeeksPerGrid {
			return nil, validationFailure(fmt.Sprintf("expanded must list week indexes 0-%d", calendar.WeeksPerGrid-1))
		}
		expanded[idx] = true
	}
	return expanded, nil
}

// Detail returns the event identified by link.
func (s *EventsService) Detail(ctx context.Context, link string) (*dto.EventDetail, string, error) {
	if strings.TrimSpace(link) == "" {
		return nil, "", validationFailure("link is required")
	}
	events, source, err := s.viewEvents(ctx)
	if err != nil {
		return nil, "", err
	}
	for _, e := range events {
		if e.Link != link {
			continue
		}
		preview, more := models.Preview(e.Description, DetailPreviewLength)
		return &dto.EventDetail{
			Event:              e,
			DateRange:          calendar.FormatDateRange(e.StartDate, e.EndDate),
			LongDateRange:      calendar.FormatLongDateRange(e.StartDate, e.EndDate),
			DescriptionPreview: preview,
			HasMore:            more,
		}, source, nil
	}
	return nil, "", appErrors.Clone(appErrors.ErrNotFound, "event not found")
}

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Export renders the reviewed events as CSV or PDF. Exports never use the fallback dataset.
func (s *EventsService) Export(ctx context.Context, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, validationFailure("format must be csv or pdf")
	}

	events, err := s.ListReviewed(ctx)
	if err != nil {
		return nil, err
	}
	data := eventsDataset(calendar.SortEventsByDate(events))
	stamp := s.now().Format("20060102")

	if format == ExportFormatPDF {
		body, err := s.pdf.Render(data, "iGaming Events")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{Filename: "igaming-events-" + stamp + ".pdf", ContentType: "application/pdf", Body: body}, nil
	}

	body, err := s.csv.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return &ExportFile{Filename: "igaming-events-" + stamp + ".csv", ContentType: "text/csv; charset=utf-8", Body: body}, nil
}

func eventsDataset(events []models.Event) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Event", "Dates", "Location", "Website", "Link"},
		Widths:  []float64{3, 2, 2.5, 2.5, 3},
		Rows:    make([][]string, 0, len(events)),
	}
	for _, e := range events {
		data.Rows = append(data.Rows, []string{
			e.EventName,
			calendar.FormatDateRange(e.StartDate, e.EndDate),
			e.Location,
			e.Website,
			e.Link,
		})
	}
	return data
}

// Feed renders the subscription calendar.
func (s *EventsService) Feed(ctx context.Context) ([]byte, string, error) {
	events, source, err := s.viewEvents(ctx)
	if err != nil {
		return nil, "", err
	}
	return []byte(ics.BuildFeed(events, s.cfg.UIDDomain, s.now())), source, nil
}
