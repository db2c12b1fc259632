package api

import (
	"github.com/evamaren/daybook/internal/models"
	"github.com/evamaren/daybook/internal/remote"
	"github.com/gofiber/fiber/v2"
)

const (
	authCookieName = "daybook_auth"
	contextUserKey = "daybook_user"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// requestSession exposes the authenticated user as a session source, so the
// sync adapter can re-check authentication right before it writes.
func (handler *Handler) requestSession(c *fiber.Ctx) remote.SessionSource {
	return remote.SessionFunc(func() (remote.Session, bool) {
		user, ok := currentUser(c)
		if !ok {
			return remote.Session{}, false
		}
		return remote.Session{OwnerID: user.ID}, true
	})
}
