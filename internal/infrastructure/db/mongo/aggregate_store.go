package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
)

// AggregateStore is the storage surface for the aggregate maintainer: it
// averages a numeric field over the children of one bootcamp and writes or
// clears the derived field on the parent document.
type AggregateStore struct {
	db *mongo.Database
}

func NewAggregateStore(db *mongo.Database) *AggregateStore {
	return &AggregateStore{db: db}
}

// Average computes the mean of sourceField across all children referencing
// the parent. count is zero when the parent has no children; mean is only
// meaningful when count > 0.
func (s *AggregateStore) Average(ctx context.Context, childCollection, sourceField string, parent primitive.ObjectID) (float64, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"bootcamp": parent}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$bootcamp",
			"mean":  bson.M{"$avg": "$" + sourceField},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := s.db.Collection(childCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}

	var results []struct {
		Mean  float64 `bson:"mean"`
		Count int64   `bson:"count"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].Mean, results[0].Count, nil
}

func (s *AggregateStore) SetParentField(ctx context.Context, parent primitive.ObjectID, field string, value any) error {
	return s.updateParent(ctx, parent, bson.M{"$set": bson.M{field: value}})
}

func (s *AggregateStore) UnsetParentField(ctx context.Context, parent primitive.ObjectID, field string) error {
	return s.updateParent(ctx, parent, bson.M{"$unset": bson.M{field: ""}})
}

func (s *AggregateStore) updateParent(ctx context.Context, parent primitive.ObjectID, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.db.Collection(collectionBootcamps).UpdateOne(ctx, bson.M{"_id": parent}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Parent deleted between the child mutation and the recompute.
		return domain.ErrBootcampNotFound
	}
	return nil
}
