package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
)

func authorizeEcho(user *domain.User, roles ...string) *echo.Echo {
	e := echo.New()
	attach := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user != nil {
				SetCurrentUser(c, user)
			}
			return next(c)
		}
	}
	e.GET("/gated", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, attach, Authorize(roles...))
	return e
}

func TestAuthorize_AllowedRolePasses(t *testing.T) {
	user := &domain.User{ID: primitive.NewObjectID(), Role: domain.RolePublisher}
	e := authorizeEcho(user, domain.RolePublisher, domain.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAuthorize_DisallowedRoleNamesTheRole(t *testing.T) {
	user := &domain.User{ID: primitive.NewObjectID(), Role: domain.RoleUser}
	e := authorizeEcho(user, domain.RolePublisher, domain.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User role user is not authorized to access this route") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestAuthorize_MissingUserIsUnauthorized(t *testing.T) {
	e := authorizeEcho(nil, domain.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
