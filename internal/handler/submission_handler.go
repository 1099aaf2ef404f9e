package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/payram/igaming-events-api/internal/dto"
	"github.com/payram/igaming-events-api/internal/models"
	appErrors "github.com/payram/igaming-events-api/pkg/errors"
	"github.com/payram/igaming-events-api/pkg/response"
)

type submissionService interface {
	SubmitEvent(ctx context.Context, req dto.SubmitEventRequest) (*dto.SubmitEventResult, error)
	BulkSubmit(ctx context.Context, events []models.Event) (*dto.BulkSubmitResult, error)
}

type reviewedEventsService interface {
	ListReviewed(ctx context.Context) ([]models.Event, error)
}

// SubmissionHandler serves the public submission and moderation routes.
// Responses keep the flat JSON contract that existing site clients read.
type SubmissionHandler struct {
	submissions submissionService
	reviewed    reviewedEventsService
}

// NewSubmissionHandler constructs the handler.
func NewSubmissionHandler(submissions submissionService, reviewed reviewedEventsService) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions, reviewed: reviewed}
}

// Submit godoc
// @Summary Submit an event for review
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body dto.SubmitEventRequest true "Event"
// @Success 200 {object} dto.SubmitEventResponse
// @Failure 400 {object} response.Failure
// @Failure 500 {object} response.Failure
// @Router /submit-event [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req dto.SubmitEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FlatError(c, appErrors.Clone(appErrors.ErrValidation, "Invalid payload: eventName and link are required"))
		return
	}

	result, err := h.submissions.SubmitEvent(c.Request.Context(), req)
	if err != nil {
		response.FlatError(c, err)
		return
	}

	response.Flat(c, http.StatusOK, dto.SubmitEventResponse{
		Success: true,
		Message: "Event " + result.Action + " successfully",
		Action:  result.Action,
		EventID: result.EventID,
	})
}

type bulkPayload struct {
	Events *[]models.Event `json:"events"`
}

// BulkSubmit godoc
// @Summary Import reviewed events in bulk
// @Tags Moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.BulkSubmitRequest true "Events"
// @Success 200 {object} dto.BulkSubmitResponse
// @Failure 400 {object} response.Failure
// @Failure 401 {object} response.Failure
// @Failure 500 {object} response.Failure
// @Router /bulk-submit-event [post]
func (h *SubmissionHandler) BulkSubmit(c *gin.Context) {
	var payload bulkPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Events == nil {
		response.FlatError(c, appErrors.Clone(appErrors.ErrValidation, "Invalid payload: events array is required"))
		return
	}

	result, err := h.submissions.BulkSubmit(c.Request.Context(), *payload.Events)
	if err != nil {
		response.FlatError(c, err)
		return
	}

	response.Flat(c, http.StatusOK, dto.BulkSubmitResponse{
		Success: true,
		Message: "Events processed successfully",
		Summary: result.Summary,
		Results: result.Results,
	})
}

// Reviewed godoc
// @Summary List reviewed events
// @Tags Events
// @Produce json
// @Success 200 {object} dto.ReviewedEventsResponse
// @Failure 500 {object} response.Failure
// @Router /reviewed-events [get]
func (h *SubmissionHandler) Reviewed(c *gin.Context) {
	events, err := h.reviewed.ListReviewed(c.Request.Context())
	if err != nil {
		response.FlatError(c, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	response.Flat(c, http.StatusOK, dto.ReviewedEventsResponse{Events: events})
}
