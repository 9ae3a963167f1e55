package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/opencamp-hq/bootcamp-api/internal/query"
)

// list executes a compiled query plan against one collection: a total count
// over the filter (ignoring the page window) plus the windowed find.
func list[T any](ctx context.Context, col *mongo.Collection, opts query.Options) ([]T, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := col.CountDocuments(ctx, opts.Filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := col.Find(ctx, opts.Filter, opts.Find())
	if err != nil {
		return nil, 0, err
	}

	items := make([]T, 0, opts.Limit)
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
