package middleware

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/charter-booking/charter-booking-service/internal/adapter/http/response"
	"github.com/charter-booking/charter-booking-service/internal/domain"
)

const (
	// WalletHeader carries the wallet address connected in the client.
	WalletHeader = "X-Wallet-Address"

	identityKey = "identity"
	walletKey   = "wallet"
)

// Token errors.
var (
	ErrBadAuthScheme      = errors.New("authorization must start with Bearer")
	ErrEmptyToken         = errors.New("bearer token missing")
	ErrInvalidSigningAlgo = errors.New("unexpected signing method")
	ErrMissingSubject     = errors.New("token has no subject")
)

// Claims are the access token claims issued by the identity provider.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwtlib.RegisteredClaims
}

// TokenVerifier validates HS256 access tokens signed with a shared secret.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a TokenVerifier. An empty secret disables verification,
// in which case every bearer token is rejected.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(strings.TrimSpace(secret))}
}

// Issue signs a token for the given identity. Used by tooling and tests.
func (v *TokenVerifier) Issue(id domain.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: id.Email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(v.secret)
}

// Verify checks the signature and standard claims and returns the identity.
func (v *TokenVerifier) Verify(tokenString string) (*domain.Identity, error) {
	if len(v.secret) == 0 {
		return nil, errors.New("token verification is not configured")
	}

	parser := jwtlib.NewParser(jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwtlib.Token) (any, error) {
		if t.Method != jwtlib.SigningMethodHS256 {
			return nil, ErrInvalidSigningAlgo
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return &domain.Identity{UserID: claims.Subject, Email: claims.Email}, nil
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// An absent header returns an empty token and no error.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", nil
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", ErrBadAuthScheme
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}

// Auth returns middleware that resolves the optional caller identity and connected wallet.
// Requests without an Authorization header continue anonymously; a header carrying an
// invalid token is rejected with 401.
func Auth(verifier *TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			token, err := bearerToken(req.Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return response.Unauthorized(c)
			}

			if token != "" {
				id, err := verifier.Verify(token)
				if err != nil {
					return response.Unauthorized(c)
				}
				c.Set(identityKey, id)
				c.SetRequest(req.WithContext(domain.ContextWithIdentity(req.Context(), id)))
			}

			if wallet := strings.TrimSpace(req.Header.Get(WalletHeader)); wallet != "" {
				c.Set(walletKey, wallet)
			}

			return next(c)
		}
	}
}

// GetRequestContext returns the identity and wallet resolved by Auth.
func GetRequestContext(c echo.Context) domain.RequestContext {
	var rc domain.RequestContext
	if id, ok := c.Get(identityKey).(*domain.Identity); ok {
		rc.Identity = id
	}
	if wallet, ok := c.Get(walletKey).(string); ok {
		rc.Wallet = &wallet
	}
	return rc
}

