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

// ReviewHandler exposes review routes, both top-level and nested under a
// bootcamp.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type createReviewRequest struct {
	Title  string `json:"title" validate:"required,max=100"`
	Text   string `json:"text" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=10"`
}

type updateReviewRequest struct {
	Title  *string `json:"title" validate:"omitempty,max=100"`
	Text   *string `json:"text"`
	Rating *int    `json:"rating" validate:"omitempty,min=1,max=10"`
}

// List returns reviews, scoped to one bootcamp when mounted on the nested
// route.
func (h *ReviewHandler) List(c echo.Context) error {
	metrics.ListQueriesTotal.WithLabelValues("reviews").Inc()

	opts := query.Compile(c.QueryParams())

	res, err := h.service.List(c.Request().Context(), c.Param("bootcampId"), opts)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, res.Items, len(res.Items), opts.Paginate(res.Total))
}

func (h *ReviewHandler) Get(c echo.Context) error {
	review, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, review)
}

func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review := &domain.Review{
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	}

	created, err := h.service.Create(c.Request().Context(), middleware.CurrentUser(c), c.Param("bootcampId"), review)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, created)
}

func (h *ReviewHandler) Update(c echo.Context) error {
	var req updateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	changes := ports.UpdateReviewInput{
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	}

	updated, err := h.service.Update(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), changes)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, updated)
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]any{})
}
