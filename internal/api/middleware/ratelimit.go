package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/opencamp-hq/bootcamp-api/internal/api/metrics"
)

// Limiter decides whether one more request from an origin fits the window.
type Limiter interface {
	Allow(ctx context.Context, origin string) (allowed bool, retryAfter time.Duration, err error)
}

// RateLimit rejects excess requests from the same origin with 429 and a
// human-readable retry-after message. Limiter backend failures fail open:
// availability of the API outweighs precise throttling.
func RateLimit(limiter Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, retryAfter, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, failing open")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitRejectionsTotal.Inc()
				retry := retryAfter.Round(time.Second)
				if retry <= 0 {
					retry = time.Second
				}
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", int(retry.Seconds())))
				return echo.NewHTTPError(http.StatusTooManyRequests,
					fmt.Sprintf("Too many requests, please try again in %s", retry))
			}
			return next(c)
		}
	}
}
