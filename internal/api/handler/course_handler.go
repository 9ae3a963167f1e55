package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opencamp-hq/bootcamp-api/internal/api/metrics"
	"github.com/opencamp-hq/bootcamp-api/internal/api/middleware"
	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
	"github.com/opencamp-hq/bootcamp-api/internal/core/ports"
	"github.com/opencamp-hq/bootcamp-api/internal/query"
)

// CourseHandler exposes course routes, both top-level and nested under a
// bootcamp.
type CourseHandler struct {
	service ports.CourseService
}

func NewCourseHandler(service ports.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

type createCourseRequest struct {
	Title                string `json:"title" validate:"required"`
	Description          string `json:"description" validate:"required"`
	Weeks                int    `json:"weeks" validate:"required,gt=0"`
	Tuition              int    `json:"tuition" validate:"required,gte=0"`
	MinimumSkill         string `json:"minimumSkill" validate:"required,oneof=beginner intermediate advanced"`
	ScholarshipAvailable bool   `json:"scholarshipAvailable"`
}

type updateCourseRequest struct {
	Title                *string `json:"title"`
	Description          *string `json:"description"`
	Weeks                *int    `json:"weeks" validate:"omitempty,gt=0"`
	Tuition              *int    `json:"tuition" validate:"omitempty,gte=0"`
	MinimumSkill         *string `json:"minimumSkill" validate:"omitempty,oneof=beginner intermediate advanced"`
	ScholarshipAvailable *bool   `json:"scholarshipAvailable"`
}

// List returns courses, scoped to one bootcamp when mounted on the nested
// route, with the bootcamp relation expanded.
func (h *CourseHandler) List(c echo.Context) error {
	metrics.ListQueriesTotal.WithLabelValues("courses").Inc()

	opts := query.Compile(c.QueryParams())
	opts.Populate = "bootcamp"

	res, err := h.service.List(c.Request().Context(), c.Param("bootcampId"), opts)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, res.Items, len(res.Items), opts.Paginate(res.Total))
}

func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, course)
}

func (h *CourseHandler) Create(c echo.Context) error {
	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course := &domain.Course{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
	}

	created, err := h.service.Create(c.Request().Context(), middleware.CurrentUser(c), c.Param("bootcampId"), course)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, created)
}

func (h *CourseHandler) Update(c echo.Context) error {
	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	changes := ports.UpdateCourseInput{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
	}

	updated, err := h.service.Update(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), changes)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, updated)
}

func (h *CourseHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]any{})
}
