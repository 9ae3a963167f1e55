package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
	"github.com/opencamp-hq/bootcamp-api/internal/core/ports"
)

const defaultTokenTTL = 30 * 24 * time.Hour

// AuthService implements registration, login, token issue/verify and
// self-service account updates.
type AuthService struct {
	users    ports.UserRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(users ports.UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{users: users, secret: secret, tokenTTL: tokenTTL}
}

// Register creates an account and returns it with a fresh token. Only the
// user and publisher roles are self-assignable; administrators are created
// through the admin user CRUD.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*domain.User, string, error) {
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RolePublisher {
		return nil, "", domain.ErrValidation
	}
	if name == "" || email == "" || password == "" {
		return nil, "", domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:      name,
		Email:     email,
		Role:      role,
		Password:  string(hash),
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(created)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

// Login verifies credentials and returns a fresh token. A missing account
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// UpdateDetails changes the account's name and/or email.
func (s *AuthService) UpdateDetails(ctx context.Context, userID, name, email string) (*domain.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if name != "" {
		set["name"] = name
	}
	if email != "" {
		set["email"] = email
	}
	return s.users.Update(ctx, id, set)
}

// UpdatePassword re-verifies the current password before storing the new
// hash, then reissues a token so the client can keep a valid session.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, current, next string) (string, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", domain.ErrUserNotFound
	}
	if next == "" {
		return "", domain.ErrValidation
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	updated, err := s.users.Update(ctx, id, bson.M{"password": string(hash), "updatedAt": time.Now().UTC()})
	if err != nil {
		return "", err
	}
	return s.IssueToken(updated)
}

// IssueToken mints a signed, time-bounded HS256 token carrying the account
// identity as subject.
func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.Hex(),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
		"jti":  uuid.NewString(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

// VerifyToken validates signature, structure and expiry, and returns the
// subject account identity. Unsigned or tampered claims are never trusted.
func (s *AuthService) VerifyToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return "", domain.ErrTokenInvalid
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrTokenInvalid
	}
	return sub, nil
}
