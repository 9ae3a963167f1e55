package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/opencamp-hq/bootcamp-api/internal/aggregate"
	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
	"github.com/opencamp-hq/bootcamp-api/internal/core/ports"
	"github.com/opencamp-hq/bootcamp-api/internal/query"
)

// ReviewService implements review use cases. Every durable review mutation
// schedules an averageRating recompute on the reviewed bootcamp.
type ReviewService struct {
	reviews    ports.ReviewRepository
	bootcamps  ports.BootcampRepository
	recomputer ports.Recomputer
}

func NewReviewService(reviews ports.ReviewRepository, bootcamps ports.BootcampRepository, recomputer ports.Recomputer) *ReviewService {
	return &ReviewService{reviews: reviews, bootcamps: bootcamps, recomputer: recomputer}
}

func (s *ReviewService) List(ctx context.Context, bootcampID string, opts query.Options) (ports.ListResult[domain.Review], error) {
	if bootcampID != "" {
		oid, err := primitive.ObjectIDFromHex(bootcampID)
		if err != nil {
			return ports.ListResult[domain.Review]{}, domain.ErrBootcampNotFound
		}
		opts.Filter["bootcamp"] = oid
	}

	items, total, err := s.reviews.List(ctx, opts)
	if err != nil {
		return ports.ListResult[domain.Review]{}, err
	}
	return ports.ListResult[domain.Review]{Items: items, Total: total}, nil
}

func (s *ReviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}
	return s.reviews.FindByID(ctx, oid)
}

// Create adds a review for a bootcamp. The one-review-per-account-per-
// bootcamp rule is enforced by the storage layer's unique index and
// surfaces as domain.ErrDuplicateField.
func (s *ReviewService) Create(ctx context.Context, actor *domain.User, bootcampID string, r *domain.Review) (*domain.Review, error) {
	bid, err := primitive.ObjectIDFromHex(bootcampID)
	if err != nil {
		return nil, domain.ErrBootcampNotFound
	}

	bootcamp, err := s.bootcamps.FindByID(ctx, bid)
	if err != nil {
		return nil, err
	}

	r.Bootcamp = bootcamp.ID
	r.User = actor.ID
	r.CreatedAt = time.Now().UTC()

	created, err := s.reviews.Create(ctx, r)
	if err != nil {
		return nil, err
	}
	s.recomputer.Schedule(bootcamp.ID, aggregate.AverageRating)
	return created, nil
}

func (s *ReviewService) Update(ctx context.Context, actor *domain.User, id string, changes ports.UpdateReviewInput) (*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}
	existing, err := s.reviews.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(existing.User) {
		return nil, domain.ErrNotAuthorized
	}

	set := bson.M{}
	setString(set, "title", changes.Title)
	setString(set, "text", changes.Text)
	setInt(set, "rating", changes.Rating)
	if len(set) == 0 {
		return existing, nil
	}

	updated, err := s.reviews.Update(ctx, existing.ID, set)
	if err != nil {
		return nil, err
	}
	s.recomputer.Schedule(existing.Bootcamp, aggregate.AverageRating)
	return updated, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor *domain.User, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReviewNotFound
	}
	existing, err := s.reviews.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if !actor.Owns(existing.User) {
		return domain.ErrNotAuthorized
	}

	if err := s.reviews.Delete(ctx, existing.ID); err != nil {
		return err
	}
	s.recomputer.Schedule(existing.Bootcamp, aggregate.AverageRating)
	return nil
}
