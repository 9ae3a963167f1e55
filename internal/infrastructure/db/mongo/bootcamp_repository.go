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

const collectionBootcamps = "bootcamps"

type BootcampRepository struct {
	col *mongo.Collection
}

func NewBootcampRepository(db *mongo.Database) *BootcampRepository {
	return &BootcampRepository{col: db.Collection(collectionBootcamps)}
}

func (r *BootcampRepository) Create(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateField
		}
		return nil, err
	}

	created := *b
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid
	}
	return &created, nil
}

func (r *BootcampRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Bootcamp, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *BootcampRepository) FindByOwner(ctx context.Context, owner primitive.ObjectID) (*domain.Bootcamp, error) {
	return r.findOne(ctx, bson.M{"user": owner})
}

func (r *BootcampRepository) findOne(ctx context.Context, filter bson.M) (*domain.Bootcamp, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var b domain.Bootcamp
	if err := r.col.FindOne(ctx, filter).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBootcampNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BootcampRepository) List(ctx context.Context, opts query.Options) ([]domain.Bootcamp, int64, error) {
	return list[domain.Bootcamp](ctx, r.col, opts)
}

func (r *BootcampRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*domain.Bootcamp, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var b domain.Bootcamp
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBootcampNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BootcampRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrBootcampNotFound
	}
	return nil
}

// EnsureIndexes creates the owner lookup index.
func (r *BootcampRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
