package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
	"github.com/opencamp-hq/bootcamp-api/internal/core/ports"
	"github.com/opencamp-hq/bootcamp-api/internal/query"
)

// BootcampService implements parent-resource use cases: listing through the
// query compiler, ownership-gated mutations and cascading deletes.
type BootcampService struct {
	bootcamps ports.BootcampRepository
	courses   ports.CourseRepository
	reviews   ports.ReviewRepository
}

func NewBootcampService(bootcamps ports.BootcampRepository, courses ports.CourseRepository, reviews ports.ReviewRepository) *BootcampService {
	return &BootcampService{bootcamps: bootcamps, courses: courses, reviews: reviews}
}

func (s *BootcampService) List(ctx context.Context, opts query.Options) (ports.ListResult[domain.Bootcamp], error) {
	items, total, err := s.bootcamps.List(ctx, opts)
	if err != nil {
		return ports.ListResult[domain.Bootcamp]{}, err
	}

	if opts.Populate == "courses" && len(items) > 0 {
		if err := s.expandCourses(ctx, items); err != nil {
			return ports.ListResult[domain.Bootcamp]{}, err
		}
	}
	return ports.ListResult[domain.Bootcamp]{Items: items, Total: total}, nil
}

// expandCourses resolves the courses relation for one page of bootcamps
// with a single child query, preserving the paging already applied to the
// primary collection.
func (s *BootcampService) expandCourses(ctx context.Context, items []domain.Bootcamp) error {
	ids := make([]primitive.ObjectID, 0, len(items))
	for _, b := range items {
		ids = append(ids, b.ID)
	}

	courses, err := s.courses.FindByBootcamps(ctx, ids)
	if err != nil {
		return err
	}

	byParent := make(map[primitive.ObjectID][]domain.Course, len(items))
	for _, c := range courses {
		byParent[c.Bootcamp] = append(byParent[c.Bootcamp], c)
	}
	for i := range items {
		items[i].Courses = byParent[items[i].ID]
	}
	return nil
}

func (s *BootcampService) Get(ctx context.Context, id string) (*domain.Bootcamp, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBootcampNotFound
	}
	return s.bootcamps.FindByID(ctx, oid)
}

// Create publishes a bootcamp owned by the acting account. A publisher may
// only hold one bootcamp; administrators are exempt.
func (s *BootcampService) Create(ctx context.Context, actor *domain.User, b *domain.Bootcamp) (*domain.Bootcamp, error) {
	if !actor.IsAdmin() {
		_, err := s.bootcamps.FindByOwner(ctx, actor.ID)
		switch {
		case err == nil:
			return nil, domain.ErrBootcampExists
		case !errors.Is(err, domain.ErrBootcampNotFound):
			return nil, err
		}
	}

	b.User = actor.ID
	b.CreatedAt = time.Now().UTC()
	return s.bootcamps.Create(ctx, b)
}

func (s *BootcampService) Update(ctx context.Context, actor *domain.User, id string, changes ports.UpdateBootcampInput) (*domain.Bootcamp, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(existing.User) {
		return nil, domain.ErrNotAuthorized
	}

	set := bson.M{}
	setString(set, "name", changes.Name)
	setString(set, "description", changes.Description)
	setString(set, "website", changes.Website)
	setString(set, "phone", changes.Phone)
	setString(set, "email", changes.Email)
	setString(set, "address", changes.Address)
	if changes.Careers != nil {
		set["careers"] = changes.Careers
	}
	setBool(set, "housing", changes.Housing)
	setBool(set, "jobAssistance", changes.JobAssistance)
	setBool(set, "jobGuarantee", changes.JobGuarantee)
	setBool(set, "acceptGi", changes.AcceptGi)
	if len(set) == 0 {
		return existing, nil
	}
	return s.bootcamps.Update(ctx, existing.ID, set)
}

// Delete removes a bootcamp together with its courses and reviews. The
// denormalised aggregates need no recompute: they are deleted with the
// parent document.
func (s *BootcampService) Delete(ctx context.Context, actor *domain.User, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Owns(existing.User) {
		return domain.ErrNotAuthorized
	}

	if err := s.bootcamps.Delete(ctx, existing.ID); err != nil {
		return err
	}
	if err := s.courses.DeleteByBootcamp(ctx, existing.ID); err != nil {
		return err
	}
	return s.reviews.DeleteByBootcamp(ctx, existing.ID)
}

func setString(set bson.M, key string, v *string) {
	if v != nil {
		set[key] = *v
	}
}

func setBool(set bson.M, key string, v *bool) {
	if v != nil {
		set[key] = *v
	}
}

func setInt(set bson.M, key string, v *int) {
	if v != nil {
		set[key] = *v
	}
}
