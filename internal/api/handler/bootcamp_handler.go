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

// BootcampHandler exposes the parent-resource routes.
type BootcampHandler struct {
	service ports.BootcampService
}

func NewBootcampHandler(service ports.BootcampService) *BootcampHandler {
	return &BootcampHandler{service: service}
}

type createBootcampRequest struct {
	Name          string   `json:"name" validate:"required,max=50"`
	Description   string   `json:"description" validate:"required,max=500"`
	Website       string   `json:"website" validate:"omitempty,url"`
	Phone         string   `json:"phone" validate:"omitempty,max=20"`
	Email         string   `json:"email" validate:"omitempty,email"`
	Address       string   `json:"address"`
	Careers       []string `json:"careers" validate:"required,min=1"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee"`
	AcceptGi      bool     `json:"acceptGi"`
}

type updateBootcampRequest struct {
	Name          *string  `json:"name" validate:"omitempty,max=50"`
	Description   *string  `json:"description" validate:"omitempty,max=500"`
	Website       *string  `json:"website" validate:"omitempty,url"`
	Phone         *string  `json:"phone" validate:"omitempty,max=20"`
	Email         *string  `json:"email" validate:"omitempty,email"`
	Address       *string  `json:"address"`
	Careers       []string `json:"careers"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"jobAssistance"`
	JobGuarantee  *bool    `json:"jobGuarantee"`
	AcceptGi      *bool    `json:"acceptGi"`
}

// List returns bootcamps through the query compiler, with the courses
// relation expanded.
//
// @Summary      List bootcamps
// @Tags         bootcamps
// @Produce      json
// @Param        select  query  string  false  "Comma-separated projection"
// @Param        sort    query  string  false  "Comma-separated sort, - prefix for descending"
// @Param        page    query  int     false  "1-based page"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  map[string]any
// @Router       /bootcamps [get]
func (h *BootcampHandler) List(c echo.Context) error {
	metrics.ListQueriesTotal.WithLabelValues("bootcamps").Inc()

	opts := query.Compile(c.QueryParams())
	opts.Populate = "courses"

	res, err := h.service.List(c.Request().Context(), opts)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, res.Items, len(res.Items), opts.Paginate(res.Total))
}

func (h *BootcampHandler) Get(c echo.Context) error {
	b, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, b)
}

func (h *BootcampHandler) Create(c echo.Context) error {
	var req createBootcampRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	b := &domain.Bootcamp{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGi:      req.AcceptGi,
	}

	created, err := h.service.Create(c.Request().Context(), middleware.CurrentUser(c), b)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, created)
}

func (h *BootcampHandler) Update(c echo.Context) error {
	var req updateBootcampRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	changes := ports.UpdateBootcampInput{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGi:      req.AcceptGi,
	}

	updated, err := h.service.Update(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), changes)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, updated)
}

func (h *BootcampHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]any{})
}
