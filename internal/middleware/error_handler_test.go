package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kkkukkk/kin-booking-sub001/internal/dto"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newErrorContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestErrorHandler_HTTPError(t *testing.T) {
	c, rec := newErrorContext()

	ErrorHandler(echo.NewHTTPError(http.StatusConflict, "insufficient seats for event"), c)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp dto.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "insufficient seats for event", resp.Message)
}

func TestErrorHandler_PlainError(t *testing.T) {
	c, rec := newErrorContext()

	ErrorHandler(errors.New("boom"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp dto.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "boom", resp.Message)
}

func TestErrorHandler_CommittedResponse(t *testing.T) {
	c, rec := newErrorContext()
	c.Response().WriteHeader(http.StatusOK)

	ErrorHandler(errors.New("late failure"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
