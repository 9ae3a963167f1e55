package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opencamp-hq/bootcamp-api/internal/api/metrics"
	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
)

// Authorize gates a route on an allow-list of roles. It must run after
// Protect. An authenticated account whose role is outside the list is
// rejected with 403 and a message naming the offending role.
func Authorize(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrNotAuthorized.Error())
			}
			if _, ok := allowed[user.Role]; !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden,
					fmt.Sprintf("User role %s is not authorized to access this route", user.Role))
			}
			return next(c)
		}
	}
}
