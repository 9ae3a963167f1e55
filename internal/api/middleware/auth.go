package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/opencamp-hq/bootcamp-api/internal/api/metrics"
	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
	"github.com/opencamp-hq/bootcamp-api/internal/core/ports"
)

// contextUserKey is where Protect stores the resolved account.
const contextUserKey = "auth.user"

// TokenCookie is the cookie consulted when no Authorization header is sent.
const TokenCookie = "token"

// Protect authenticates the request: it extracts a bearer token from the
// Authorization header or the token cookie, verifies it, and re-resolves
// the subject against the account store so deleted accounts lose access
// immediately. On success the account is attached to the request context
// for role and ownership checks downstream.
func Protect(verifier ports.TokenVerifier, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return unauthorized()
			}

			sub, err := verifier.VerifyToken(token)
			if err != nil {
				return unauthorized()
			}

			id, err := primitive.ObjectIDFromHex(sub)
			if err != nil {
				return unauthorized()
			}

			user, err := users.FindByID(c.Request().Context(), id)
			if err != nil {
				// Valid token, but the subject no longer exists.
				return unauthorized()
			}

			c.Set(contextUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the account attached by Protect, or nil when the
// request is unauthenticated.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(contextUserKey).(*domain.User)
	return user
}

// SetCurrentUser attaches an account to the context. Exported for handler
// tests that bypass Protect.
func SetCurrentUser(c echo.Context, user *domain.User) {
	c.Set(contextUserKey, user)
}

func extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func unauthorized() error {
	metrics.AuthRejectionsTotal.WithLabelValues("unauthorized").Inc()
	return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrNotAuthorized.Error())
}
