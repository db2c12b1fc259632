package api

import (
	"context"
	"strings"
	"time"

	"github.com/evamaren/daybook/internal/assistant"
	"github.com/evamaren/daybook/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	chatRateLimit  = 20
	chatRateWindow = time.Minute
	chatTimeout    = 30 * time.Second
)

type chatPayload struct {
	Message        string `json:"message" form:"message"`
	IncludeJournal bool   `json:"include_journal" form:"include_journal"`
}

// Chat forwards a user message to the assistant, optionally grounding it in
// the user's most recent journal entries.
func (handler *Handler) Chat(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	if handler.generator == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "assistant is not configured")
	}

	payload := chatPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	message := strings.TrimSpace(payload.Message)
	if message == "" {
		return apiError(c, fiber.StatusBadRequest, "message is required")
	}

	now := time.Now()
	limiterKey := userLimiterKey(user.ID)
	if handler.chatLimiter.tooManyRecent(limiterKey, now, chatRateLimit, chatRateWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many messages, slow down")
	}
	handler.chatLimiter.record(limiterKey, now, chatRateWindow)

	var entries []models.JournalEntry
	if payload.IncludeJournal {
		recent, err := handler.adapter.FetchRecentEntries(user.ID, assistant.DefaultContextEntries)
		if err != nil {
			return formError(c, err)
		}
		entries = recent
	}

	ctx, cancel := context.WithTimeout(c.Context(), chatTimeout)
	defer cancel()

	reply, err := handler.generator.Generate(ctx, assistant.BuildPrompt(message, entries))
	if err != nil {
		return apiError(c, fiber.StatusBadGateway, "assistant is unavailable")
	}

	return c.JSON(fiber.Map{"reply": reply})
}
