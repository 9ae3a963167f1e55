package service

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
	"github.com/opencamp-hq/bootcamp-api/internal/core/ports"
	"github.com/opencamp-hq/bootcamp-api/internal/query"
)

func reviewer() *domain.User {
	return &domain.User{ID: primitive.NewObjectID(), Role: domain.RoleUser}
}

func newReviewFixture() (*ReviewService, *stubReviews, *stubBootcamps, *stubRecomputer) {
	reviews := newStubReviews()
	bootcamps := newStubBootcamps()
	rec := &stubRecomputer{}
	return NewReviewService(reviews, bootcamps, rec), reviews, bootcamps, rec
}

func TestReviewService_Create_SchedulesRatingRecompute(t *testing.T) {
	svc, _, bootcamps, rec := newReviewFixture()
	b, _ := bootcamps.Create(context.Background(), &domain.Bootcamp{Name: "Devworks"})
	actor := reviewer()

	created, err := svc.Create(context.Background(), actor, b.ID.Hex(), &domain.Review{Title: "Great", Rating: 9})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Bootcamp != b.ID || created.User != actor.ID {
		t.Fatalf("relations not stamped: %+v", created)
	}
	if rec.count() != 1 {
		t.Fatalf("recomputes = %d, want 1", rec.count())
	}
	if want := "average_rating:" + b.ID.Hex(); rec.calls[0] != want {
		t.Fatalf("recompute = %q, want %q", rec.calls[0], want)
	}
}

func TestReviewService_Create_OnePerAccountPerBootcamp(t *testing.T) {
	svc, _, bootcamps, _ := newReviewFixture()
	b, _ := bootcamps.Create(context.Background(), &domain.Bootcamp{Name: "Devworks"})
	actor := reviewer()

	if _, err := svc.Create(context.Background(), actor, b.ID.Hex(), &domain.Review{Title: "First", Rating: 8}); err != nil {
		t.Fatalf("first review: %v", err)
	}
	if _, err := svc.Create(context.Background(), actor, b.ID.Hex(), &domain.Review{Title: "Second", Rating: 3}); !errors.Is(err, domain.ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
}

func TestReviewService_Create_UnknownBootcamp(t *testing.T) {
	svc, _, _, rec := newReviewFixture()

	if _, err := svc.Create(context.Background(), reviewer(), "ffffffffffffffffffffffff", &domain.Review{Rating: 5}); !errors.Is(err, domain.ErrBootcampNotFound) {
		t.Fatalf("expected ErrBootcampNotFound, got %v", err)
	}
	if rec.count() != 0 {
		t.Fatalf("recompute scheduled for a rejected create")
	}
}

func TestReviewService_Update_OwnershipGate(t *testing.T) {
	svc, _, bootcamps, rec := newReviewFixture()
	b, _ := bootcamps.Create(context.Background(), &domain.Bootcamp{Name: "Devworks"})
	actor := reviewer()
	created, _ := svc.Create(context.Background(), actor, b.ID.Hex(), &domain.Review{Title: "OK", Rating: 6})

	rating := 2
	if _, err := svc.Update(context.Background(), reviewer(), created.ID.Hex(), ports.UpdateReviewInput{Rating: &rating}); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}

	updated, err := svc.Update(context.Background(), actor, created.ID.Hex(), ports.UpdateReviewInput{Rating: &rating})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Rating != 2 {
		t.Fatalf("rating = %d", updated.Rating)
	}
	if rec.count() != 2 {
		t.Fatalf("recomputes = %d, want 2", rec.count())
	}
}

func TestReviewService_Delete_AdminOverride(t *testing.T) {
	svc, reviews, bootcamps, rec := newReviewFixture()
	b, _ := bootcamps.Create(context.Background(), &domain.Bootcamp{Name: "Devworks"})
	created, _ := svc.Create(context.Background(), reviewer(), b.ID.Hex(), &domain.Review{Rating: 7})

	if err := svc.Delete(context.Background(), admin(), created.ID.Hex()); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := reviews.FindByID(context.Background(), created.ID); !errors.Is(err, domain.ErrReviewNotFound) {
		t.Fatalf("review still present after delete")
	}
	if rec.count() != 2 {
		t.Fatalf("recomputes = %d, want 2", rec.count())
	}
}

func TestReviewService_List_ScopedToBootcamp(t *testing.T) {
	svc, _, bootcamps, _ := newReviewFixture()
	b1, _ := bootcamps.Create(context.Background(), &domain.Bootcamp{Name: "A"})
	b2, _ := bootcamps.Create(context.Background(), &domain.Bootcamp{Name: "B"})
	_, _ = svc.Create(context.Background(), reviewer(), b1.ID.Hex(), &domain.Review{Rating: 8})
	_, _ = svc.Create(context.Background(), reviewer(), b2.ID.Hex(), &domain.Review{Rating: 4})

	res, err := svc.List(context.Background(), b1.ID.Hex(), query.Compile(nil))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(res.Items) != 1 || res.Items[0].Bootcamp != b1.ID {
		t.Fatalf("scoped list = %+v", res.Items)
	}
}
