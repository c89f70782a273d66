package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/orca-works/orca-crm/internal/api/dto"
	"github.com/orca-works/orca-crm/internal/auth"
	"github.com/orca-works/orca-crm/internal/service"
	apperrors "github.com/orca-works/orca-crm/pkg/util"
)

// AuthHandler manages the single-operator session endpoints.
type AuthHandler struct {
	service      *service.AuthService
	cookieSecure bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{service: authService, cookieSecure: cookieSecure}
}

// Login handles POST /auth/login. A successful login sets the token in an
// HTTP-only cookie and echoes it in the body for non-browser clients.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	token, exp, err := h.service.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Expires:  exp,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
	return c.JSON(fiber.Map{"data": dto.LoginResponse{Token: token, ExpiresAt: exp}})
}

// Logout handles POST /auth/logout by expiring the cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator required")
	}
	return c.JSON(fiber.Map{"data": dto.MeResponse{Username: principal.Username}})
}
