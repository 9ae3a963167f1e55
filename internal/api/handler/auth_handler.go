package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/opencamp-hq/bootcamp-api/internal/api/middleware"
	"github.com/opencamp-hq/bootcamp-api/internal/core/ports"
)

// AuthHandler exposes registration, login and self-service account routes.
type AuthHandler struct {
	auth      ports.AuthService
	cookieTTL time.Duration
}

func NewAuthHandler(auth ports.AuthService, cookieTTL time.Duration) *AuthHandler {
	if cookieTTL <= 0 {
		cookieTTL = 30 * 24 * time.Hour
	}
	return &AuthHandler{auth: auth, cookieTTL: cookieTTL}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user publisher"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateDetailsRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// Register creates a new account and returns a session token.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, token, err := h.auth.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}
	return h.sendToken(c, http.StatusCreated, token)
}

// Login authenticates an account and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, _, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.sendToken(c, http.StatusOK, token)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HttpOnly: true,
	})
	return respond(c, http.StatusOK, map[string]any{})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c echo.Context) error {
	return respond(c, http.StatusOK, middleware.CurrentUser(c))
}

// UpdateDetails changes the authenticated account's name and/or email.
func (h *AuthHandler) UpdateDetails(c echo.Context) error {
	var req updateDetailsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := middleware.CurrentUser(c)
	updated, err := h.auth.UpdateDetails(c.Request().Context(), user.ID.Hex(), req.Name, req.Email)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, updated)
}

// UpdatePassword verifies the current password, stores the new one and
// reissues the session token.
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := middleware.CurrentUser(c)
	token, err := h.auth.UpdatePassword(c.Request().Context(), user.ID.Hex(), req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}
	return h.sendToken(c, http.StatusOK, token)
}

// sendToken sets the httpOnly session cookie and returns the token in the
// body for clients that prefer the Authorization header.
func (h *AuthHandler) sendToken(c echo.Context, status int, token string) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieTTL),
		HttpOnly: true,
	})
	return c.JSON(status, tokenResponse{Success: true, Token: token})
}
