package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/payram/igaming-events-api/internal/models"
	appErrors "github.com/payram/igaming-events-api/pkg/errors"
)

func recorder() (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return w, c
}

func TestJSONEnvelope(t *testing.T) {
	w, c := recorder()

	JSON(c, http.StatusOK, []string{"a"}, &models.Pagination{Page: 1, PageSize: 12, TotalCount: 1, TotalPages: 1}, map[string]interface{}{"source": "live"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"data":["a"],"pagination":{"page":1,"page_size":12,"total_count":1,"total_pages":1},"meta":{"source":"live"}}`, w.Body.String())
}

func TestErrorEnvelope(t *testing.T) {
	w, c := recorder()

	Error(c, appErrors.Clone(appErrors.ErrNotFound, "event not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":{"code":"NOT_FOUND","message":"event not found","status":404}}`, w.Body.String())
}

func TestFlatError(t *testing.T) {
	w, c := recorder()
	FlatError(c, appErrors.Wrap(errors.New("timeout"), appErrors.ErrUpstream.Code, 500, "Failed to process event"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to process event","details":"timeout"}`, w.Body.String())

	w, c = recorder()
	FlatError(c, errors.New("boom"))
	assert.JSONEq(t, `{"error":"internal server error","details":"boom"}`, w.Body.String())
}
