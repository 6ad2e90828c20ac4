package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/charter-booking/charter-booking-service/internal/adapter/http/response"
	"github.com/charter-booking/charter-booking-service/internal/domain"
	"github.com/charter-booking/charter-booking-service/internal/usecase"
)

var testIdempotencyConfig = IdempotencyConfig{LockTTL: 10 * time.Second, TTL: time.Hour}

func serveIdempotent(store domain.IdempotencyStore, key string, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = Idempotency(store, testIdempotencyConfig, zerolog.Nop())(handler)(c)
	return rec
}

func created(c echo.Context) error {
	SetIdempotentResult(c, "booking-1")
	return c.NoContent(http.StatusCreated)
}

func TestDefaultIdempotencyConfig_LockOutlivesSubmission(t *testing.T) {
	cfg := DefaultIdempotencyConfig()
	booking := usecase.DefaultBookingConfig()

	longest := booking.SubmitTimeout + booking.NotificationTimeout + booking.PublishTimeout
	assert.GreaterOrEqual(t, cfg.LockTTL, longest, "a key must not unlock while its submission can still run")
	assert.Less(t, cfg.LockTTL, cfg.TTL)
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := domain.NewMockIdempotencyStore(ctrl)

	rec := serveIdempotent(store, "", created)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestIdempotency_FirstRequestCompletesKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := domain.NewMockIdempotencyStore(ctrl)

	gomock.InOrder(
		store.EXPECT().Reserve(gomock.Any(), "key-1", 10*time.Second).Return(true, nil),
		store.EXPECT().Complete(gomock.Any(), "key-1", "COMPLETED:booking-1", time.Hour).Return(nil),
	)

	rec := serveIdempotent(store, "key-1", created)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Header().Get(IdempotencyHitHeader))
}

func TestIdempotency_FailedRequestReleasesKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := domain.NewMockIdempotencyStore(ctrl)

	store.EXPECT().Reserve(gomock.Any(), "key-1", gomock.Any()).Return(true, nil)
	store.EXPECT().Release(gomock.Any(), "key-1").Return(nil)

	rec := serveIdempotent(store, "key-1", func(c echo.Context) error {
		return response.PersistenceFailed(c)
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestIdempotency_RepeatedKeyIsRejected(t *testing.T) {
	tests := []struct {
		name        string
		state       string
		stateErr    error
		wantDetails map[string]string
	}{
		{
			name:        "completed",
			state:       "COMPLETED:booking-1",
			wantDetails: map[string]string{"idempotencyKey": "key-1", "bookingId": "booking-1"},
		},
		{
			name:        "in progress",
			state:       domain.IdempotencyProcessing,
			wantDetails: map[string]string{"idempotencyKey": "key-1", "state": "in_progress"},
		},
		{
			name:        "state unreadable",
			stateErr:    errors.New("connection reset"),
			wantDetails: map[string]string{"idempotencyKey": "key-1", "state": "in_progress"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := domain.NewMockIdempotencyStore(ctrl)

			store.EXPECT().Reserve(gomock.Any(), "key-1", gomock.Any()).Return(false, nil)
			store.EXPECT().State(gomock.Any(), "key-1").Return(tt.state, tt.stateErr)

			called := false
			rec := serveIdempotent(store, "key-1", func(c echo.Context) error {
				called = true
				return created(c)
			})

			assert.False(t, called)
			assert.Equal(t, http.StatusConflict, rec.Code)
			assert.Equal(t, "true", rec.Header().Get(IdempotencyHitHeader))

			var body response.ErrorDetail
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, response.CodeConflict, body.Code)
			assert.Equal(t, tt.wantDetails, body.Details)
		})
	}
}

func TestIdempotency_StoreUnavailableFailsOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := domain.NewMockIdempotencyStore(ctrl)

	store.EXPECT().Reserve(gomock.Any(), "key-1", gomock.Any()).Return(false, errors.New("dial tcp: connection refused"))

	rec := serveIdempotent(store, "key-1", created)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestIdempotency_NilStorePassesThrough(t *testing.T) {
	rec := serveIdempotent(nil, "key-1", created)

	assert.Equal(t, http.StatusCreated, rec.Code)
}
