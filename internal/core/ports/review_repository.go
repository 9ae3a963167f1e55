package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
	"github.com/opencamp-hq/bootcamp-api/internal/query"
)

// ReviewRepository defines persistence for reviews. Create surfaces
// domain.ErrDuplicateField when the (bootcamp, user) uniqueness constraint
// is violated.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) (*domain.Review, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Review, error)
	List(ctx context.Context, opts query.Options) ([]domain.Review, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*domain.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) error
}
