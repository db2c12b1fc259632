package api

import (
	"errors"

	"github.com/evamaren/daybook/internal/forms"
	"github.com/evamaren/daybook/internal/remote"
	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// formError translates form and sync errors into HTTP responses.
func formError(c *fiber.Ctx, err error) error {
	var validation *forms.ValidationError
	switch {
	case errors.As(err, &validation):
		return apiError(c, fiber.StatusBadRequest, validation.Error())
	case errors.Is(err, remote.ErrNotAuthenticated):
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	case errors.Is(err, remote.ErrUnauthorized):
		return apiError(c, fiber.StatusForbidden, "not allowed")
	case errors.Is(err, remote.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, forms.ErrSubmitInProgress):
		return apiError(c, fiber.StatusConflict, "submit already in progress")
	case errors.Is(err, forms.ErrDeleteNotArmed), errors.Is(err, forms.ErrNothingToDelete):
		return apiError(c, fiber.StatusConflict, "delete not confirmed")
	default:
		return apiError(c, fiber.StatusBadGateway, "sync failed")
	}
}

// deleteConfirmed reports whether the client armed the destructive action.
func deleteConfirmed(c *fiber.Ctx) bool {
	return c.Get("X-Confirm-Delete") == "true"
}
