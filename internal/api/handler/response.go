package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/opencamp-hq/bootcamp-api/internal/query"
)

// response is the success envelope shared by all endpoints. Count and
// Pagination only appear on list responses.
type response struct {
	Success    bool              `json:"success"`
	Count      *int              `json:"count,omitempty"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
	Data       any               `json:"data"`
}

// tokenResponse is the envelope for endpoints that mint a session token.
type tokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, response{Success: true, Data: data})
}

func respondList(c echo.Context, status int, data any, count int, pagination *query.Pagination) error {
	return c.JSON(status, response{
		Success:    true,
		Count:      &count,
		Pagination: pagination,
		Data:       data,
	})
}
