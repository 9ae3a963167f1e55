package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
)

func TestAuthService_Register_HashesPassword(t *testing.T) {
	svc := NewAuthService(newStubUsers(), "secret", time.Hour)

	user, token, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret1", domain.RolePublisher)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if user.Password == "s3cret1" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RolePublisher {
		t.Fatalf("role = %q", user.Role)
	}
}

func TestAuthService_Register_SaltIsPerCall(t *testing.T) {
	users := newStubUsers()
	svc := NewAuthService(users, "secret", time.Hour)

	u1, _, err := svc.Register(context.Background(), "A", "a@example.com", "same-pass", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	u2, _, err := svc.Register(context.Background(), "B", "b@example.com", "same-pass", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u1.Password == u2.Password {
		t.Fatalf("same plaintext produced identical digests")
	}
}

func TestAuthService_Register_RejectsAdminRole(t *testing.T) {
	svc := NewAuthService(newStubUsers(), "secret", time.Hour)

	if _, _, err := svc.Register(context.Background(), "Eve", "eve@example.com", "pass123", domain.RoleAdmin); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := NewAuthService(newStubUsers(), "secret", time.Hour)

	if _, _, err := svc.Register(context.Background(), "A", "dup@example.com", "pass123", ""); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "B", "dup@example.com", "pass456", ""); !errors.Is(err, domain.ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
}

func TestAuthService_Login_RoundTrip(t *testing.T) {
	svc := NewAuthService(newStubUsers(), "secret", time.Hour)

	registered, _, err := svc.Register(context.Background(), "Carol", "carol@example.com", "pass123", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "pass123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("login resolved a different account")
	}

	sub, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if sub != registered.ID.Hex() {
		t.Fatalf("subject = %q, want %q", sub, registered.ID.Hex())
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := NewAuthService(newStubUsers(), "secret", time.Hour)
	_, _, _ = svc.Register(context.Background(), "D", "d@example.com", "right-pass", "")

	if _, _, err := svc.Login(context.Background(), "d@example.com", "wrong-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailIndistinguishable(t *testing.T) {
	svc := NewAuthService(newStubUsers(), "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_VerifyToken_Expired(t *testing.T) {
	// Sign a token whose expiry is already in the past.
	claims := jwt.MapClaims{
		"sub": "64f000000000000000000001",
		"exp": time.Now().Add(-time.Hour).Unix(),
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	verifier := NewAuthService(newStubUsers(), "secret", time.Hour)
	if _, err := verifier.VerifyToken(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthService_VerifyToken_WrongSecret(t *testing.T) {
	users := newStubUsers()
	issuer := NewAuthService(users, "secret-a", time.Hour)

	_, token, err := issuer.Register(context.Background(), "F", "f@example.com", "pass123", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	verifier := NewAuthService(users, "secret-b", time.Hour)
	if _, err := verifier.VerifyToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthService_VerifyToken_Garbage(t *testing.T) {
	svc := NewAuthService(newStubUsers(), "secret", time.Hour)
	if _, err := svc.VerifyToken("not.a.token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthService_UpdatePassword(t *testing.T) {
	users := newStubUsers()
	svc := NewAuthService(users, "secret", time.Hour)

	registered, _, err := svc.Register(context.Background(), "G", "g@example.com", "old-pass", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.UpdatePassword(context.Background(), registered.ID.Hex(), "wrong", "new-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong current password, got %v", err)
	}

	token, err := svc.UpdatePassword(context.Background(), registered.ID.Hex(), "old-pass", "new-pass")
	if err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a reissued token")
	}

	if _, _, err := svc.Login(context.Background(), "g@example.com", "new-pass"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "g@example.com", "old-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted")
	}
}
