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

func publisher() *domain.User {
	return &domain.User{ID: primitive.NewObjectID(), Role: domain.RolePublisher}
}

func admin() *domain.User {
	return &domain.User{ID: primitive.NewObjectID(), Role: domain.RoleAdmin}
}

func newBootcampFixture() (*BootcampService, *stubBootcamps, *stubCourses, *stubReviews) {
	bootcamps := newStubBootcamps()
	courses := newStubCourses()
	reviews := newStubReviews()
	return NewBootcampService(bootcamps, courses, reviews), bootcamps, courses, reviews
}

func TestBootcampService_Create_SetsOwner(t *testing.T) {
	svc, _, _, _ := newBootcampFixture()
	owner := publisher()

	created, err := svc.Create(context.Background(), owner, &domain.Bootcamp{Name: "Devworks"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.User != owner.ID {
		t.Fatalf("owner = %v, want %v", created.User, owner.ID)
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("createdAt not set")
	}
}

func TestBootcampService_Create_OnePerPublisher(t *testing.T) {
	svc, _, _, _ := newBootcampFixture()
	owner := publisher()

	if _, err := svc.Create(context.Background(), owner, &domain.Bootcamp{Name: "First"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), owner, &domain.Bootcamp{Name: "Second"}); !errors.Is(err, domain.ErrBootcampExists) {
		t.Fatalf("expected ErrBootcampExists, got %v", err)
	}
}

func TestBootcampService_Create_AdminExemptFromLimit(t *testing.T) {
	svc, _, _, _ := newBootcampFixture()
	actor := admin()

	for i := 0; i < 2; i++ {
		if _, err := svc.Create(context.Background(), actor, &domain.Bootcamp{Name: "B"}); err != nil {
			t.Fatalf("admin create %d: %v", i, err)
		}
	}
}

func TestBootcampService_Get_MalformedIDIsNotFound(t *testing.T) {
	svc, _, _, _ := newBootcampFixture()

	if _, err := svc.Get(context.Background(), "not-a-hex-id"); !errors.Is(err, domain.ErrBootcampNotFound) {
		t.Fatalf("expected ErrBootcampNotFound, got %v", err)
	}
}

func TestBootcampService_Update_OwnershipGate(t *testing.T) {
	svc, _, _, _ := newBootcampFixture()
	owner := publisher()
	stranger := publisher()

	created, err := svc.Create(context.Background(), owner, &domain.Bootcamp{Name: "Devworks"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	name := "Hacked"
	if _, err := svc.Update(context.Background(), stranger, created.ID.Hex(), ports.UpdateBootcampInput{Name: &name}); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for non-owner, got %v", err)
	}

	updated, err := svc.Update(context.Background(), owner, created.ID.Hex(), ports.UpdateBootcampInput{Name: &name})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Name != "Hacked" {
		t.Fatalf("name = %q", updated.Name)
	}

	name2 := "Admin rename"
	if _, err := svc.Update(context.Background(), admin(), created.ID.Hex(), ports.UpdateBootcampInput{Name: &name2}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
}

func TestBootcampService_Delete_Cascades(t *testing.T) {
	svc, _, courses, reviews := newBootcampFixture()
	owner := publisher()

	created, err := svc.Create(context.Background(), owner, &domain.Bootcamp{Name: "Devworks"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, _ = courses.Create(context.Background(), &domain.Course{Bootcamp: created.ID, Tuition: 1000})
	_, _ = reviews.Create(context.Background(), &domain.Review{Bootcamp: created.ID, User: owner.ID, Rating: 8})

	if err := svc.Delete(context.Background(), owner, created.ID.Hex()); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if got, _ := courses.FindByBootcamps(context.Background(), []primitive.ObjectID{created.ID}); len(got) != 0 {
		t.Fatalf("courses not cascaded: %d left", len(got))
	}
	if items, _, _ := reviews.List(context.Background(), query.Options{Filter: map[string]any{"bootcamp": created.ID}}); len(items) != 0 {
		t.Fatalf("reviews not cascaded: %d left", len(items))
	}
}

func TestBootcampService_List_ExpandsCourses(t *testing.T) {
	svc, bootcamps, courses, _ := newBootcampFixture()

	b, _ := bootcamps.Create(context.Background(), &domain.Bootcamp{Name: "Devworks"})
	_, _ = courses.Create(context.Background(), &domain.Course{Bootcamp: b.ID, Title: "Go 101"})
	_, _ = courses.Create(context.Background(), &domain.Course{Bootcamp: b.ID, Title: "Go 102"})

	opts := query.Compile(nil)
	opts.Populate = "courses"
	res, err := svc.List(context.Background(), opts)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("items = %d", len(res.Items))
	}
	if len(res.Items[0].Courses) != 2 {
		t.Fatalf("expanded courses = %d, want 2", len(res.Items[0].Courses))
	}
}
