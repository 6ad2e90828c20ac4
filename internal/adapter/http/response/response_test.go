package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEcho() (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return e, c, rec
}

func TestHealth(t *testing.T) {
	_, c, rec := setupEcho()

	err := Health(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var result HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "ok", result.Status)
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		write       func(echo.Context) error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "bad request",
			write:       func(c echo.Context) error { return BadRequest(c, "Invalid input") },
			wantStatus:  http.StatusBadRequest,
			wantCode:    CodeInvalidRequest,
			wantMessage: "Invalid input",
		},
		{
			name:        "invalid request body",
			write:       InvalidRequestBody,
			wantStatus:  http.StatusBadRequest,
			wantCode:    CodeInvalidRequest,
			wantMessage: MsgInvalidRequestBody,
		},
		{
			name:        "validation with message",
			write:       func(c echo.Context) error { return ValidationErrorWithMessage(c, "vehicle class is unknown") },
			wantStatus:  http.StatusBadRequest,
			wantCode:    CodeValidationError,
			wantMessage: "vehicle class is unknown",
		},
		{
			name:        "unauthorized",
			write:       Unauthorized,
			wantStatus:  http.StatusUnauthorized,
			wantCode:    CodeUnauthorized,
			wantMessage: MsgUnauthorized,
		},
		{
			name:        "not found",
			write:       func(c echo.Context) error { return NotFound(c, "airport not found: XXX") },
			wantStatus:  http.StatusNotFound,
			wantCode:    CodeNotFound,
			wantMessage: "airport not found: XXX",
		},
		{
			name:        "persistence failed",
			write:       PersistenceFailed,
			wantStatus:  http.StatusBadGateway,
			wantCode:    CodePersistenceError,
			wantMessage: MsgPersistenceFailed,
		},
		{
			name:        "gateway timeout",
			write:       GatewayTimeout,
			wantStatus:  http.StatusGatewayTimeout,
			wantCode:    CodeTimeout,
			wantMessage: MsgTimeout,
		},
		{
			name:        "request cancelled",
			write:       RequestCancelled,
			wantStatus:  http.StatusGatewayTimeout,
			wantCode:    CodeTimeout,
			wantMessage: MsgRequestCancelled,
		},
		{
			name:        "internal error",
			write:       InternalServerError,
			wantStatus:  http.StatusInternalServerError,
			wantCode:    CodeInternalError,
			wantMessage: MsgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c, rec := setupEcho()

			require.NoError(t, tt.write(c))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var result ErrorDetail
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
			assert.Equal(t, tt.wantCode, result.Code)
			assert.Equal(t, tt.wantMessage, result.Message)
		})
	}
}

func TestValidationError(t *testing.T) {
	_, c, rec := setupEcho()

	details := map[string]string{
		"contact.email": "contact email is required",
		"passengers":    "at least 1 passenger is required",
	}
	messages := []string{"contact email is required", "at least 1 passenger is required"}

	err := ValidationError(c, details, messages)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var result ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, CodeValidationError, result.Code)
	assert.Equal(t, MsgValidationFailed, result.Message)
	assert.Equal(t, details, result.Details)
	assert.Equal(t, messages, result.Errors)
}

func TestConflict(t *testing.T) {
	_, c, rec := setupEcho()

	err := Conflict(c, map[string]string{"bookingId": "booking-1"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var result ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, CodeConflict, result.Code)
	assert.Equal(t, "booking-1", result.Details["bookingId"])
}

func TestPlainError(t *testing.T) {
	_, c, rec := setupEcho()

	err := PlainError(c, http.StatusMethodNotAllowed, "Method not allowed")

	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String())
}

func TestCreated(t *testing.T) {
	_, c, rec := setupEcho()

	err := Created(c, map[string]string{"id": "booking-1"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"booking-1"}`, rec.Body.String())
}
