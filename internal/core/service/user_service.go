package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
	"github.com/opencamp-hq/bootcamp-api/internal/core/ports"
	"github.com/opencamp-hq/bootcamp-api/internal/query"
)

// UserService implements administrator account CRUD. Route-level role gates
// ensure only administrators reach it.
type UserService struct {
	users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context, opts query.Options) (ports.ListResult[domain.User], error) {
	items, total, err := s.users.List(ctx, opts)
	if err != nil {
		return ports.ListResult[domain.User]{}, err
	}
	return ports.ListResult[domain.User]{Items: items, Total: total}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return s.users.FindByID(ctx, oid)
}

// Create adds an account with any role of the closed set, including
// administrator.
func (s *UserService) Create(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) || name == "" || email == "" || password == "" {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.users.Create(ctx, &domain.User{
		Name:      name,
		Email:     email,
		Role:      role,
		Password:  string(hash),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *UserService) Update(ctx context.Context, id string, changes ports.UpdateUserInput) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	setString(set, "name", changes.Name)
	setString(set, "email", changes.Email)
	if changes.Role != nil {
		if !domain.ValidRole(*changes.Role) {
			return nil, domain.ErrValidation
		}
		set["role"] = *changes.Role
	}
	if changes.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*changes.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		set["password"] = string(hash)
	}
	return s.users.Update(ctx, oid, set)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	return s.users.Delete(ctx, oid)
}
