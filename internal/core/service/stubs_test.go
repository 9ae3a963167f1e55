package service

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/opencamp-hq/bootcamp-api/internal/aggregate"
	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
	"github.com/opencamp-hq/bootcamp-api/internal/query"
)

// In-memory repository stubs. Update applies only the $set keys the
// services actually write.

type stubUsers struct {
	byID map[primitive.ObjectID]*domain.User
}

func newStubUsers() *stubUsers {
	return &stubUsers{byID: make(map[primitive.ObjectID]*domain.User)}
}

func (r *stubUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateField
		}
	}
	clone := *user
	clone.ID = primitive.NewObjectID()
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUsers) FindByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *stubUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUsers) List(_ context.Context, _ query.Options) ([]domain.User, int64, error) {
	items := make([]domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		items = append(items, *u)
	}
	return items, int64(len(items)), nil
}

func (r *stubUsers) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if v, ok := set["name"].(string); ok {
		u.Name = v
	}
	if v, ok := set["email"].(string); ok {
		u.Email = v
	}
	if v, ok := set["role"].(string); ok {
		u.Role = v
	}
	if v, ok := set["password"].(string); ok {
		u.Password = v
	}
	out := *u
	return &out, nil
}

func (r *stubUsers) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubBootcamps struct {
	byID map[primitive.ObjectID]*domain.Bootcamp
}

func newStubBootcamps() *stubBootcamps {
	return &stubBootcamps{byID: make(map[primitive.ObjectID]*domain.Bootcamp)}
}

func (r *stubBootcamps) Create(_ context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error) {
	clone := *b
	clone.ID = primitive.NewObjectID()
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBootcamps) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Bootcamp, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBootcampNotFound
	}
	out := *b
	return &out, nil
}

func (r *stubBootcamps) FindByOwner(_ context.Context, owner primitive.ObjectID) (*domain.Bootcamp, error) {
	for _, b := range r.byID {
		if b.User == owner {
			out := *b
			return &out, nil
		}
	}
	return nil, domain.ErrBootcampNotFound
}

func (r *stubBootcamps) List(_ context.Context, _ query.Options) ([]domain.Bootcamp, int64, error) {
	items := make([]domain.Bootcamp, 0, len(r.byID))
	for _, b := range r.byID {
		items = append(items, *b)
	}
	return items, int64(len(items)), nil
}

func (r *stubBootcamps) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*domain.Bootcamp, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBootcampNotFound
	}
	if v, ok := set["name"].(string); ok {
		b.Name = v
	}
	if v, ok := set["description"].(string); ok {
		b.Description = v
	}
	out := *b
	return &out, nil
}

func (r *stubBootcamps) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrBootcampNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubCourses struct {
	byID map[primitive.ObjectID]*domain.Course
}

func newStubCourses() *stubCourses {
	return &stubCourses{byID: make(map[primitive.ObjectID]*domain.Course)}
}

func (r *stubCourses) Create(_ context.Context, c *domain.Course) (*domain.Course, error) {
	clone := *c
	clone.ID = primitive.NewObjectID()
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCourses) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Course, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	out := *c
	return &out, nil
}

func (r *stubCourses) FindByBootcamps(_ context.Context, bootcamps []primitive.ObjectID) ([]domain.Course, error) {
	var items []domain.Course
	for _, c := range r.byID {
		for _, bid := range bootcamps {
			if c.Bootcamp == bid {
				items = append(items, *c)
			}
		}
	}
	return items, nil
}

func (r *stubCourses) List(_ context.Context, opts query.Options) ([]domain.Course, int64, error) {
	var items []domain.Course
	for _, c := range r.byID {
		if bid, ok := opts.Filter["bootcamp"].(primitive.ObjectID); ok && c.Bootcamp != bid {
			continue
		}
		items = append(items, *c)
	}
	return items, int64(len(items)), nil
}

func (r *stubCourses) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*domain.Course, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	if v, ok := set["title"].(string); ok {
		c.Title = v
	}
	if v, ok := set["tuition"].(int); ok {
		c.Tuition = v
	}
	out := *c
	return &out, nil
}

func (r *stubCourses) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubCourses) DeleteByBootcamp(_ context.Context, bootcamp primitive.ObjectID) error {
	for id, c := range r.byID {
		if c.Bootcamp == bootcamp {
			delete(r.byID, id)
		}
	}
	return nil
}

type stubReviews struct {
	byID map[primitive.ObjectID]*domain.Review
}

func newStubReviews() *stubReviews {
	return &stubReviews{byID: make(map[primitive.ObjectID]*domain.Review)}
}

// Create mimics the unique (bootcamp, user) index.
func (r *stubReviews) Create(_ context.Context, rev *domain.Review) (*domain.Review, error) {
	for _, existing := range r.byID {
		if existing.Bootcamp == rev.Bootcamp && existing.User == rev.User {
			return nil, domain.ErrDuplicateField
		}
	}
	clone := *rev
	clone.ID = primitive.NewObjectID()
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubReviews) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Review, error) {
	rev, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	out := *rev
	return &out, nil
}

func (r *stubReviews) List(_ context.Context, opts query.Options) ([]domain.Review, int64, error) {
	var items []domain.Review
	for _, rev := range r.byID {
		if bid, ok := opts.Filter["bootcamp"].(primitive.ObjectID); ok && rev.Bootcamp != bid {
			continue
		}
		items = append(items, *rev)
	}
	return items, int64(len(items)), nil
}

func (r *stubReviews) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*domain.Review, error) {
	rev, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	if v, ok := set["title"].(string); ok {
		rev.Title = v
	}
	if v, ok := set["rating"].(int); ok {
		rev.Rating = v
	}
	out := *rev
	return &out, nil
}

func (r *stubReviews) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubReviews) DeleteByBootcamp(_ context.Context, bootcamp primitive.ObjectID) error {
	for id, rev := range r.byID {
		if rev.Bootcamp == bootcamp {
			delete(r.byID, id)
		}
	}
	return nil
}

// stubRecomputer records scheduled recomputes.
type stubRecomputer struct {
	mu    sync.Mutex
	calls []string
}

func (s *stubRecomputer) Schedule(parent primitive.ObjectID, def aggregate.Definition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, def.Name+":"+parent.Hex())
}

func (s *stubRecomputer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
