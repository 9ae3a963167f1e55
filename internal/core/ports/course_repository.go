package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
	"github.com/opencamp-hq/bootcamp-api/internal/query"
)

// CourseRepository defines persistence for courses.
type CourseRepository interface {
	Create(ctx context.Context, c *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error)
	// FindByBootcamps returns all courses referencing any of the given
	// bootcamps, used for relation expansion.
	FindByBootcamps(ctx context.Context, bootcamps []primitive.ObjectID) ([]domain.Course, error)
	List(ctx context.Context, opts query.Options) ([]domain.Course, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*domain.Course, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) error
}
