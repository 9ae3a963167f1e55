package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/opencamp-hq/bootcamp-api/internal/aggregate"
	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
	"github.com/opencamp-hq/bootcamp-api/internal/query"
)

// Recomputer schedules a post-commit aggregate recompute for a parent.
type Recomputer interface {
	Schedule(parent primitive.ObjectID, def aggregate.Definition)
}

// ListResult pairs one page of items with the total count over the filter.
type ListResult[T any] struct {
	Items []T
	Total int64
}

// BootcampService covers parent-resource use cases. Mutations take the
// acting account so ownership can be enforced.
type BootcampService interface {
	List(ctx context.Context, opts query.Options) (ListResult[domain.Bootcamp], error)
	Get(ctx context.Context, id string) (*domain.Bootcamp, error)
	Create(ctx context.Context, actor *domain.User, b *domain.Bootcamp) (*domain.Bootcamp, error)
	Update(ctx context.Context, actor *domain.User, id string, changes UpdateBootcampInput) (*domain.Bootcamp, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}

// UpdateBootcampInput carries the client-writable bootcamp fields; nil
// means "leave unchanged". Aggregate fields are deliberately absent — they
// are only ever written by the aggregate maintainer.
type UpdateBootcampInput struct {
	Name          *string
	Description   *string
	Website       *string
	Phone         *string
	Email         *string
	Address       *string
	Careers       []string
	Housing       *bool
	JobAssistance *bool
	JobGuarantee  *bool
	AcceptGi      *bool
}

// CourseService covers course use cases. bootcampID scopes list and create
// to one parent.
type CourseService interface {
	List(ctx context.Context, bootcampID string, opts query.Options) (ListResult[domain.Course], error)
	Get(ctx context.Context, id string) (*domain.Course, error)
	Create(ctx context.Context, actor *domain.User, bootcampID string, c *domain.Course) (*domain.Course, error)
	Update(ctx context.Context, actor *domain.User, id string, changes UpdateCourseInput) (*domain.Course, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}

type UpdateCourseInput struct {
	Title                *string
	Description          *string
	Weeks                *int
	Tuition              *int
	MinimumSkill         *string
	ScholarshipAvailable *bool
}

// ReviewService covers review use cases.
type ReviewService interface {
	List(ctx context.Context, bootcampID string, opts query.Options) (ListResult[domain.Review], error)
	Get(ctx context.Context, id string) (*domain.Review, error)
	Create(ctx context.Context, actor *domain.User, bootcampID string, r *domain.Review) (*domain.Review, error)
	Update(ctx context.Context, actor *domain.User, id string, changes UpdateReviewInput) (*domain.Review, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}

type UpdateReviewInput struct {
	Title  *string
	Text   *string
	Rating *int
}

// UserService covers administrator account CRUD.
type UserService interface {
	List(ctx context.Context, opts query.Options) (ListResult[domain.User], error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, name, email, password, role string) (*domain.User, error)
	Update(ctx context.Context, id string, changes UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type UpdateUserInput struct {
	Name     *string
	Email    *string
	Role     *string
	Password *string
}
