// Package aggregate keeps denormalised mean aggregates on a parent record
// consistent with its live children. Recomputation is registered as an
// explicit post-commit callback by the calling service rather than hidden
// in model lifecycle hooks: a Definition names the child collection, the
// source field and the rounding rule, and the maintainer recomputes the
// full mean from the current children on every trigger.
package aggregate

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/opencamp-hq/bootcamp-api/internal/api/metrics"
)

const recomputeTimeout = 10 * time.Second

// Definition describes one maintained aggregate.
type Definition struct {
	// Name labels the aggregate in logs and metrics.
	Name string
	// ChildCollection is the collection holding the source records.
	ChildCollection string
	// SourceField is the numeric child field being averaged.
	SourceField string
	// TargetField is the parent field receiving the mean.
	TargetField string
	// Round converts the raw mean into the stored value.
	Round func(mean float64) any
}

// AverageCost is the mean course tuition, rounded up to the nearest
// multiple of 10 before storing. The ceiling-to-10 is a product rule.
var AverageCost = Definition{
	Name:            "average_cost",
	ChildCollection: "courses",
	SourceField:     "tuition",
	TargetField:     "averageCost",
	Round:           func(mean float64) any { return int(math.Ceil(mean/10) * 10) },
}

// AverageRating is the raw, unrounded mean review rating.
var AverageRating = Definition{
	Name:            "average_rating",
	ChildCollection: "reviews",
	SourceField:     "rating",
	TargetField:     "averageRating",
	Round:           func(mean float64) any { return mean },
}

// Store is the storage surface the maintainer needs: compute the current
// mean over the children of one parent, and set or clear the parent field.
type Store interface {
	Average(ctx context.Context, childCollection, sourceField string, parent primitive.ObjectID) (mean float64, count int64, err error)
	SetParentField(ctx context.Context, parent primitive.ObjectID, field string, value any) error
	UnsetParentField(ctx context.Context, parent primitive.ObjectID, field string) error
}

// Maintainer recomputes aggregates after child mutations. It is best-effort
// derived state: failures are logged, never propagated to the request that
// triggered them.
type Maintainer struct {
	store Store
	log   zerolog.Logger
}

func NewMaintainer(store Store, log zerolog.Logger) *Maintainer {
	return &Maintainer{store: store, log: log}
}

// Schedule triggers a recompute on a background goroutine and returns
// immediately. The response path never waits on it.
func (m *Maintainer) Schedule(parent primitive.ObjectID, def Definition) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recomputeTimeout)
		defer cancel()

		start := time.Now()
		err := m.Recompute(ctx, parent, def)
		metrics.AggregateRecomputeDuration.WithLabelValues(def.Name).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.AggregateRecomputesTotal.WithLabelValues(def.Name, "error").Inc()
			m.log.Error().Err(err).
				Str("aggregate", def.Name).
				Str("parent_id", parent.Hex()).
				Msg("aggregate recompute failed")
			return
		}
		metrics.AggregateRecomputesTotal.WithLabelValues(def.Name, "ok").Inc()
	}()
}

// Recompute derives the aggregate fully from the current children.
// Idempotent and safe to run concurrently for the same parent: the value
// is always a full recompute, so the last writer leaves a consistent state.
// With zero children the parent field is unset, keeping "no data yet"
// distinguishable from a zero mean.
func (m *Maintainer) Recompute(ctx context.Context, parent primitive.ObjectID, def Definition) error {
	mean, count, err := m.store.Average(ctx, def.ChildCollection, def.SourceField, parent)
	if err != nil {
		return err
	}
	if count == 0 {
		return m.store.UnsetParentField(ctx, parent, def.TargetField)
	}
	return m.store.SetParentField(ctx, parent, def.TargetField, def.Round(mean))
}
