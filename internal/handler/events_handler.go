package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/payram/igaming-events-api/internal/calendar"
	"github.com/payram/igaming-events-api/internal/dto"
	"github.com/payram/igaming-events-api/internal/service"
	appErrors "github.com/payram/igaming-events-api/pkg/errors"
	"github.com/payram/igaming-events-api/pkg/response"
)

// SourceHeader reports whether a non-JSON body came from the live store or the fallback dataset.
const SourceHeader = "X-Data-Source"

type eventsService interface {
	CardPage(ctx context.Context, query dto.CardQuery) (*dto.CardPage, error)
	CalendarMonth(ctx context.Context, query dto.CalendarQuery) (*calendar.MonthLayout, string, error)
	Detail(ctx context.Context, link string) (*dto.EventDetail, string, error)
	Export(ctx context.Context, format string) (*service.ExportFile, error)
	Feed(ctx context.Context) ([]byte, string, error)
}

// EventsHandler serves the rendered read models.
type EventsHandler struct {
	service eventsService
}

// NewEventsHandler constructs the handler.
func NewEventsHandler(service eventsService) *EventsHandler {
	return &EventsHandler{service: service}
}

// Cards godoc
// @Summary Paginated event cards
// @Tags Events
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Cards per page (max 60)"
// @Success 200 {object} response.Envelope
// @Router /events/cards [get]
func (h *EventsHandler) Cards(c *gin.Context) {
	var query dto.CardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "page and limit must be integers"))
		return
	}

	page, err := h.service.CardPage(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page.Cards, &page.Pagination, map[string]interface{}{
		"source": page.Source,
		"stats":  page.Stats,
	})
}

// Calendar godoc
// @Summary Month calendar layout
// @Tags Events
// @Produce json
// @Param month query string false "Month (YYYY-MM)"
// @Param expanded query string false "Comma separated week indexes to expand"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /events/calendar [get]
func (h *EventsHandler) Calendar(c *gin.Context) {
	var query dto.CalendarQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "month must be YYYY-MM"))
		return
	}

	layout, source, err := h.service.CalendarMonth(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, layout, nil, map[string]interface{}{"source": source})
}

// Detail godoc
// @Summary Event detail
// @Tags Events
// @Produce json
// @Param link query string true "Event link"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/detail [get]
func (h *EventsHandler) Detail(c *gin.Context) {
	detail, source, err := h.service.Detail(c.Request.Context(), c.Query("link"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil, map[string]interface{}{"source": source})
}

// Export godoc
// @Summary Download reviewed events
// @Tags Events
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /events/export [get]
func (h *EventsHandler) Export(c *gin.Context) {
	file, err := h.service.Export(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}

// Feed godoc
// @Summary iCalendar subscription feed
// @Tags Events
// @Produce text/calendar
// @Success 200 {string} string
// @Router /calendar.ics [get]
func (h *EventsHandler) Feed(c *gin.Context) {
	body, source, err := h.service.Feed(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header(SourceHeader, source)
	c.Header("Content-Disposition", `inline; filename="igaming-events.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}
