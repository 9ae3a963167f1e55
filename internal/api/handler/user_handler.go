package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opencamp-hq/bootcamp-api/internal/api/metrics"
	"github.com/opencamp-hq/bootcamp-api/internal/core/ports"
	"github.com/opencamp-hq/bootcamp-api/internal/query"
)

// UserHandler exposes the administrator-only account CRUD routes.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user publisher admin"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role" validate:"omitempty,oneof=user publisher admin"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// List returns accounts through the query compiler.
//
// @Summary      List accounts
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	metrics.ListQueriesTotal.WithLabelValues("users").Inc()

	opts := query.Compile(c.QueryParams())

	res, err := h.service.List(c.Request().Context(), opts)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, res.Items, len(res.Items), opts.Paginate(res.Total))
}

func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, created)
}

func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	changes := ports.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	}

	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), changes)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, updated)
}

func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]any{})
}
