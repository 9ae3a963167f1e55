// Package metrics defines the custom Prometheus metrics for the bootcamp
// API. It is the single source of truth for metric names, labels and help
// strings; collectors register themselves with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bootcamp_api"

// AuthRejectionsTotal counts requests rejected by the access control chain.
// Label:
//   - kind: "unauthorized" (missing/invalid token, dead subject) or
//     "forbidden" (role outside the route's allow-list)
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or role checks.",
	},
	[]string{"kind"},
)

// RateLimitRejectionsTotal counts requests rejected by the rate limiter.
var RateLimitRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratelimit_rejections_total",
		Help:      "Total number of requests rejected by the per-origin rate limiter.",
	},
)

// ListQueriesTotal counts compiled list queries per collection.
var ListQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_queries_total",
		Help:      "Total number of list queries executed through the query compiler.",
	},
	[]string{"collection"},
)

// AggregateRecomputesTotal counts aggregate recompute outcomes.
// Labels:
//   - aggregate: "average_cost" or "average_rating"
//   - result: "ok" or "error"
var AggregateRecomputesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "aggregate_recomputes_total",
		Help:      "Total number of denormalised aggregate recomputations, by outcome.",
	},
	[]string{"aggregate", "result"},
)

// AggregateRecomputeDuration measures one full recompute, from trigger to
// parent write.
var AggregateRecomputeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "aggregate_recompute_duration_seconds",
		Help:      "Duration of aggregate recomputation from trigger to parent write.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"aggregate"},
)
