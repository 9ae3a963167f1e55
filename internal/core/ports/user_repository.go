package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
	"github.com/opencamp-hq/bootcamp-api/internal/query"
)

// UserRepository defines persistence for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// FindByEmail returns the account including its credential hash.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, opts query.Options) ([]domain.User, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*domain.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
