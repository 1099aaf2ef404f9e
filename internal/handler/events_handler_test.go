package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payram/igaming-events-api/internal/calendar"
	"github.com/payram/igaming-events-api/internal/dto"
	"github.com/payram/igaming-events-api/internal/models"
	"github.com/payram/igaming-events-api/internal/service"
	appErrors "github.com/payram/igaming-events-api/pkg/errors"
)

type eventsServiceStub struct {
	cardQuery     dto.CardQuery
	calendarQuery dto.CalendarQuery
	detailLink    string
	exportFormat  string
	err           error
}

func (s *eventsServiceStub) CardPage(ctx context.Context, query dto.CardQuery) (*dto.CardPage, error) {
	s.cardQuery = query
	if s.err != nil {
		return nil, s.err
	}
	return &dto.CardPage{
		Cards:      []dto.EventCard{{Event: models.Event{EventName: "ICE"}, DateRange: "Feb 4 - Feb 6, 2025"}},
		Pagination: models.Pagination{Page: 1, PageSize: 12, TotalCount: 1, TotalPages: 1},
		Stats:      dto.CardStats{TotalEvents: 1, Locations: 1},
		Source:     dto.SourceFallback,
	}, nil
}

func (s *eventsServiceStub) CalendarMonth(ctx context.Context, query dto.CalendarQuery) (*calendar.MonthLayout, string, error) {
	s.calendarQuery = query
	if s.err != nil {
		return nil, "", s.err
	}
	return &calendar.MonthLayout{Year: 2025, Month: 3, Label: "March 2025"}, dto.SourceLive, nil
}

func (s *eventsServiceStub) Detail(ctx context.Context, link string) (*dto.EventDetail, string, error) {
	s.detailLink = link
	if s.err != nil {
		return nil, "", s.err
	}
	return &dto.EventDetail{Event: models.Event{EventName: "ICE", Link: link}}, dto.SourceLive, nil
}

func (s *eventsServiceStub) Export(ctx context.Context, format string) (*service.ExportFile, error) {
	s.exportFormat = format
	if s.err != nil {
		return nil, s.err
	}
	return &service.ExportFile{Filename: "igaming-events-20250310.csv", ContentType: "text/csv; charset=utf-8", Body: []byte("Event\n")}, nil
}

func (s *eventsServiceStub) Feed(ctx context.Context) ([]byte, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), dto.SourceLive, nil
}

func eventsRouter(stub *eventsServiceStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewEventsHandler(stub)
	r := gin.New()
	r.GET("/events/cards", h.Cards)
	r.GET("/events/calendar", h.Calendar)
	r.GET("/events/detail", h.Detail)
	r.GET("/events/export", h.Export)
	r.GET("/calendar.ics", h.Feed)
	return r
}

func TestCardsEnvelope(t *testing.T) {
	stub := &eventsServiceStub{}

	w := perform(eventsRouter(stub), http.MethodGet, "/events/cards?page=2&limit=6", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.CardQuery{Page: 2, Limit: 6}, stub.cardQuery)
	body := decode(t, w)
	assert.Len(t, body["data"], 1)
	assert.Equal(t, 1.0, body["pagination"].(map[string]interface{})["total_count"])
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, "fallback", meta["source"])
	assert.Equal(t, 1.0, meta["stats"].(map[string]interface{})["locations"])
}

func TestCardsRejectsNonNumericPage(t *testing.T) {
	w := perform(eventsRouter(&eventsServiceStub{}), http.MethodGet, "/events/cards?page=two", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendarPassesQuery(t *testing.T) {
	stub := &eventsServiceStub{}

	w := perform(eventsRouter(stub), http.MethodGet, "/events/calendar?month=2025-03&expanded=0,3", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.CalendarQuery{Month: "2025-03", Expanded: "0,3"}, stub.calendarQuery)
	assert.Equal(t, "March 2025", decode(t, w)["data"].(map[string]interface{})["label"])
}

func TestCalendarValidationError(t *testing.T) {
	stub := &eventsServiceStub{err: appErrors.Clone(appErrors.ErrValidation, "month must be YYYY-MM")}

	w := perform(eventsRouter(stub), http.MethodGet, "/events/calendar?month=2025-03", "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	errBody := decode(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
}

func TestCalendarRejectsMalformedMonthBeforeService(t *testing.T) {
	stub := &eventsServiceStub{}

	w := perform(eventsRouter(stub), http.MethodGet, "/events/calendar?month=2025-13", "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	errBody := decode(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
	assert.Equal(t, "month must be YYYY-MM", errBody["message"])
	assert.Equal(t, dto.CalendarQuery{}, stub.calendarQuery)
}

func TestDetailNotFound(t *testing.T) {
	stub := &eventsServiceStub{err: appErrors.Clone(appErrors.ErrNotFound, "event not found")}

	w := perform(eventsRouter(stub), http.MethodGet, "/events/detail?link=https%3A%2F%2Fice", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "https://ice", stub.detailLink)
}

func TestExportSetsAttachmentHeaders(t *testing.T) {
	stub := &eventsServiceStub{}

	w := perform(eventsRouter(stub), http.MethodGet, "/events/export?format=csv", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", stub.exportFormat)
	assert.Equal(t, `attachment; filename="igaming-events-20250310.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "Event\n", w.Body.String())
}

func TestFeed(t *testing.T) {
	w := perform(eventsRouter(&eventsServiceStub{}), http.MethodGet, "/calendar.ics", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "live", w.Header().Get(SourceHeader))

	w = perform(eventsRouter(&eventsServiceStub{err: errors.New("boom")}), http.MethodGet, "/calendar.ics", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
