package ports

import (
	"context"

	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
)

// AuthService covers registration, login and self-service account updates.
type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	UpdateDetails(ctx context.Context, userID, name, email string) (*domain.User, error)
	// UpdatePassword verifies the current password before storing the new
	// hash and reissuing a token.
	UpdatePassword(ctx context.Context, userID, current, next string) (string, error)
}

// TokenVerifier validates a bearer token and returns the subject account
// identity it carries. Failures are domain.ErrTokenExpired or
// domain.ErrTokenInvalid.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}
