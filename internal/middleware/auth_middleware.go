package middleware

import (
	"strings"

	"go-pharmacy-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the login cookie set by POST /api/login.
const SessionCookie = "pos_session"

// RequireSession gates every /api route behind an active login. API
// callers get a 401 JSON body; browser navigation is sent back to the
// login page.
func RequireSession(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			// Fall back to a bearer header for non-browser clients.
			authHeader := c.Get("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				token = parts[1]
			}
		}
		if token == "" {
			return reject(c)
		}

		username, err := auth.Validate(token)
		if err != nil {
			return reject(c)
		}

		c.Locals("username", username)
		return c.Next()
	}
}

func reject(c *fiber.Ctx) error {
	if strings.Contains(c.Get("Accept"), "text/html") {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
}
