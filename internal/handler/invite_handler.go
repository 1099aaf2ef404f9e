package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/payram/igaming-events-api/internal/dto"
	appErrors "github.com/payram/igaming-events-api/pkg/errors"
	"github.com/payram/igaming-events-api/pkg/response"
)

type inviteService interface {
	SendInvite(ctx context.Context, req dto.SendInviteRequest) (*dto.SendInviteResult, error)
}

// InviteHandler serves calendar invite requests.
type InviteHandler struct {
	invites inviteService
}

// NewInviteHandler constructs the handler.
func NewInviteHandler(invites inviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

// Send godoc
// @Summary Email a calendar invite
// @Tags Invites
// @Accept json
// @Produce json
// @Param payload body dto.SendInviteRequest true "Invite request"
// @Success 200 {object} dto.SendInviteResponse
// @Failure 400 {object} response.Failure
// @Failure 500 {object} response.Failure
// @Router /send-calendar-invite [post]
func (h *InviteHandler) Send(c *gin.Context) {
	var req dto.SendInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FlatError(c, appErrors.Clone(appErrors.ErrValidation, "Missing required fields"))
		return
	}

	result, err := h.invites.SendInvite(c.Request.Context(), req)
	if err != nil {
		response.FlatError(c, err)
		return
	}

	response.Flat(c, http.StatusOK, dto.SendInviteResponse{
		Success:        true,
		Message:        "Calendar invite sent successfully",
		RegistrationID: result.RegistrationID,
	})
}
