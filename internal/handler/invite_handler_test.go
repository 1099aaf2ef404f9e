package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payram/igaming-events-api/internal/dto"
	appErrors "github.com/payram/igaming-events-api/pkg/errors"
)

type inviteServiceStub struct {
	req    dto.SendInviteRequest
	result *dto.SendInviteResult
	err    error
}

func (s *inviteServiceStub) SendInvite(ctx context.Context, req dto.SendInviteRequest) (*dto.SendInviteResult, error) {
	s.req = req
	return s.result, s.err
}

func inviteRouter(stub *inviteServiceStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/send-calendar-invite", NewInviteHandler(stub).Send)
	return r
}

func TestSendInviteHandler(t *testing.T) {
	id := "reg-1"
	stub := &inviteServiceStub{result: &dto.SendInviteResult{RegistrationID: &id}}

	w := perform(inviteRouter(stub), http.MethodPost, "/send-calendar-invite", `{"userName":"Ana","userEmail":"ana@example.com","eventName":"ICE"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Calendar invite sent successfully","registrationId":"reg-1"}`, w.Body.String())
	assert.Equal(t, "ana@example.com", stub.req.UserEmail)
}

func TestSendInviteHandlerNullRegistration(t *testing.T) {
	stub := &inviteServiceStub{result: &dto.SendInviteResult{}}

	w := perform(inviteRouter(stub), http.MethodPost, "/send-calendar-invite", `{}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w)["registrationId"])
}

func TestSendInviteHandlerErrors(t *testing.T) {
	w := perform(inviteRouter(&inviteServiceStub{}), http.MethodPost, "/send-calendar-invite", `[`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields", decode(t, w)["error"])

	stub := &inviteServiceStub{err: appErrors.Wrap(errors.New("smtp down"), appErrors.ErrInternal.Code, 500, "Failed to send calendar invite")}
	w = perform(inviteRouter(stub), http.MethodPost, "/send-calendar-invite", `{}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to send calendar invite", decode(t, w)["error"])
}
