package api

import (
	"github.com/gofiber/fiber/v2"
)

// AuthRequired resolves the auth cookie into a user and stores it in the
// request locals. Requests without a valid session get a 401.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, ok := handler.authenticateRequest(c)
	if !ok {
		clearAuthCookie(c, handler.cookieSecure)
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}
