package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
	"github.com/opencamp-hq/bootcamp-api/internal/query"
)

// BootcampRepository defines persistence for the parent resource.
type BootcampRepository interface {
	Create(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Bootcamp, error)
	// FindByOwner returns the bootcamp published by the given account, or
	// domain.ErrBootcampNotFound when it has none.
	FindByOwner(ctx context.Context, owner primitive.ObjectID) (*domain.Bootcamp, error)
	List(ctx context.Context, opts query.Options) ([]domain.Bootcamp, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*domain.Bootcamp, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
