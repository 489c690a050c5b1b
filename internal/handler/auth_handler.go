package handler

import (
	"time"

	"go-pharmacy-pos/internal/middleware"
	"go-pharmacy-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles the terminal login.
// POST /api/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Username and password are required"})
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.JSON(fiber.Map{"message": "Logged in"})
}

// POST /api/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(middleware.SessionCookie); token != "" {
		h.authService.Logout(token)
	}
	c.ClearCookie(middleware.SessionCookie)
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// LogoutBeacon is hit by navigator.sendBeacon on tab close; it must
// never fail from the browser's point of view.
// POST /api/logout-beacon
func (h *AuthHandler) LogoutBeacon(c *fiber.Ctx) error {
	if token := c.Cookies(middleware.SessionCookie); token != "" {
		h.authService.Logout(token)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
