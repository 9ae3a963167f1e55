package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/opencamp-hq/bootcamp-api/internal/aggregate"
	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
	"github.com/opencamp-hq/bootcamp-api/internal/core/ports"
	"github.com/opencamp-hq/bootcamp-api/internal/query"
)

// CourseService implements course use cases. Every durable course mutation
// schedules an averageCost recompute on the owning bootcamp.
type CourseService struct {
	courses    ports.CourseRepository
	bootcamps  ports.BootcampRepository
	recomputer ports.Recomputer
}

func NewCourseService(courses ports.CourseRepository, bootcamps ports.BootcampRepository, recomputer ports.Recomputer) *CourseService {
	return &CourseService{courses: courses, bootcamps: bootcamps, recomputer: recomputer}
}

// List returns courses, optionally scoped to one bootcamp when bootcampID
// is non-empty.
func (s *CourseService) List(ctx context.Context, bootcampID string, opts query.Options) (ports.ListResult[domain.Course], error) {
	if bootcampID != "" {
		oid, err := primitive.ObjectIDFromHex(bootcampID)
		if err != nil {
			return ports.ListResult[domain.Course]{}, domain.ErrBootcampNotFound
		}
		opts.Filter["bootcamp"] = oid
	}

	items, total, err := s.courses.List(ctx, opts)
	if err != nil {
		return ports.ListResult[domain.Course]{}, err
	}

	if opts.Populate == "bootcamp" && len(items) > 0 {
		if err := s.expandBootcamp(ctx, items); err != nil {
			return ports.ListResult[domain.Course]{}, err
		}
	}
	return ports.ListResult[domain.Course]{Items: items, Total: total}, nil
}

// expandBootcamp resolves the bootcamp relation for a page of courses. A
// dangling reference leaves the detail nil rather than failing the list.
func (s *CourseService) expandBootcamp(ctx context.Context, items []domain.Course) error {
	cache := make(map[primitive.ObjectID]*domain.Bootcamp)
	for i := range items {
		parent, ok := cache[items[i].Bootcamp]
		if !ok {
			var err error
			parent, err = s.bootcamps.FindByID(ctx, items[i].Bootcamp)
			if err != nil {
				if errors.Is(err, domain.ErrBootcampNotFound) {
					parent = nil
				} else {
					return err
				}
			}
			cache[items[i].Bootcamp] = parent
		}
		items[i].BootcampDetail = parent
	}
	return nil
}

func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}

	course, err := s.courses.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if parent, err := s.bootcamps.FindByID(ctx, course.Bootcamp); err == nil {
		course.BootcampDetail = parent
	}
	return course, nil
}

// Create adds a course to a bootcamp the actor owns (or any bootcamp for
// an administrator) and schedules the cost aggregate recompute.
func (s *CourseService) Create(ctx context.Context, actor *domain.User, bootcampID string, c *domain.Course) (*domain.Course, error) {
	bid, err := primitive.ObjectIDFromHex(bootcampID)
	if err != nil {
		return nil, domain.ErrBootcampNotFound
	}

	bootcamp, err := s.bootcamps.FindByID(ctx, bid)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(bootcamp.User) {
		return nil, domain.ErrNotAuthorized
	}

	c.Bootcamp = bootcamp.ID
	c.User = actor.ID
	c.CreatedAt = time.Now().UTC()

	created, err := s.courses.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	s.recomputer.Schedule(bootcamp.ID, aggregate.AverageCost)
	return created, nil
}

func (s *CourseService) Update(ctx context.Context, actor *domain.User, id string, changes ports.UpdateCourseInput) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}
	existing, err := s.courses.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(existing.User) {
		return nil, domain.ErrNotAuthorized
	}

	set := bson.M{}
	setString(set, "title", changes.Title)
	setString(set, "description", changes.Description)
	setInt(set, "weeks", changes.Weeks)
	setInt(set, "tuition", changes.Tuition)
	setString(set, "minimumSkill", changes.MinimumSkill)
	setBool(set, "scholarshipAvailable", changes.ScholarshipAvailable)
	if len(set) == 0 {
		return existing, nil
	}

	updated, err := s.courses.Update(ctx, existing.ID, set)
	if err != nil {
		return nil, err
	}
	s.recomputer.Schedule(existing.Bootcamp, aggregate.AverageCost)
	return updated, nil
}

func (s *CourseService) Delete(ctx context.Context, actor *domain.User, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCourseNotFound
	}
	existing, err := s.courses.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if !actor.Owns(existing.User) {
		return domain.ErrNotAuthorized
	}

	if err := s.courses.Delete(ctx, existing.ID); err != nil {
		return err
	}
	s.recomputer.Schedule(existing.Bootcamp, aggregate.AverageCost)
	return nil
}
