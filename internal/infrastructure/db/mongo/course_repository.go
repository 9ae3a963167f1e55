package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
	"github.com/opencamp-hq/bootcamp-api/internal/query"
)

const collectionCourses = "courses"

type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection(collectionCourses)}
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return nil, err
	}

	created := *c
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid
	}
	return &created, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Course
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CourseRepository) FindByBootcamps(ctx context.Context, bootcamps []primitive.ObjectID) ([]domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"bootcamp": bson.M{"$in": bootcamps}})
	if err != nil {
		return nil, err
	}

	var items []domain.Course
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CourseRepository) List(ctx context.Context, opts query.Options) ([]domain.Course, int64, error) {
	return list[domain.Course](ctx, r.col, opts)
}

func (r *CourseRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Course
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CourseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) DeleteByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"bootcamp": bootcamp})
	return err
}

// EnsureIndexes creates the parent and creator lookup indexes.
func (r *CourseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "bootcamp", Value: 1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
