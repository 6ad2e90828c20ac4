package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charter-booking/charter-booking-service/internal/domain"
)

const testSecret = "test-signing-secret"

// =====================================================
// Token Verifier Tests
// =====================================================

func TestTokenVerifier_IssueAndVerify(t *testing.T) {
	v := NewTokenVerifier(testSecret)

	token, err := v.Issue(domain.Identity{UserID: "user-1", Email: "ada@example.com"}, time.Hour)
	require.NoError(t, err)

	id, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.UserID)
	assert.Equal(t, "ada@example.com", id.Email)
}

func TestTokenVerifier_Rejects(t *testing.T) {
	v := NewTokenVerifier(testSecret)

	expired, err := v.Issue(domain.Identity{UserID: "user-1"}, -time.Minute)
	require.NoError(t, err)

	otherKey, err := NewTokenVerifier("another-secret").Issue(domain.Identity{UserID: "user-1"}, time.Hour)
	require.NoError(t, err)

	noSubject, err := v.Issue(domain.Identity{}, time.Hour)
	require.NoError(t, err)

	hs512, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, &Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{Subject: "user-1"},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: expired},
		{name: "wrong key", token: otherKey},
		{name: "missing subject", token: noSubject},
		{name: "other algorithm", token: hs512},
		{name: "garbage", token: "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := v.Verify(tt.token)
			assert.Error(t, err)
			assert.Nil(t, id)
		})
	}
}

func TestTokenVerifier_EmptySecretRejectsEverything(t *testing.T) {
	token, err := NewTokenVerifier(testSecret).Issue(domain.Identity{UserID: "user-1"}, time.Hour)
	require.NoError(t, err)

	_, err = NewTokenVerifier("").Verify(token)
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "absent", header: ""},
		{name: "valid", header: "Bearer abc.def", want: "abc.def"},
		{name: "wrong scheme", header: "Basic abc", wantErr: ErrBadAuthScheme},
		{name: "empty token", header: "Bearer   ", wantErr: ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// =====================================================
// Auth Middleware Tests
// =====================================================

func runAuth(t *testing.T, header, wallet string) (*httptest.ResponseRecorder, domain.RequestContext, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	if wallet != "" {
		req.Header.Set(WalletHeader, wallet)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var (
		rc     domain.RequestContext
		inCtx  bool
		called bool
	)
	handler := Auth(NewTokenVerifier(testSecret))(func(c echo.Context) error {
		called = true
		rc = GetRequestContext(c)
		_, inCtx = domain.IdentityFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	if !called {
		return rec, rc, false
	}
	return rec, rc, inCtx
}

func TestAuth_AnonymousRequestContinues(t *testing.T) {
	rec, rc, inCtx := runAuth(t, "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, rc.Authenticated())
	assert.Nil(t, rc.Wallet)
	assert.False(t, inCtx)
}

func TestAuth_ValidTokenResolvesIdentity(t *testing.T) {
	token, err := NewTokenVerifier(testSecret).Issue(domain.Identity{UserID: "user-1", Email: "ada@example.com"}, time.Hour)
	require.NoError(t, err)

	rec, rc, inCtx := runAuth(t, "Bearer "+token, " 0xabc ")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, rc.Authenticated())
	assert.Equal(t, "user-1", rc.Identity.UserID)
	require.NotNil(t, rc.Wallet)
	assert.Equal(t, "0xabc", *rc.Wallet)
	assert.True(t, inCtx)
}

func TestAuth_InvalidTokenReturns401(t *testing.T) {
	for _, header := range []string{"Bearer not-a-jwt", "Token abc"} {
		t.Run(header, func(t *testing.T) {
			rec, _, _ := runAuth(t, header, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
