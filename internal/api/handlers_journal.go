package api

import (
	"github.com/evamaren/daybook/internal/forms"
	"github.com/evamaren/daybook/internal/models"
	"github.com/gofiber/fiber/v2"
)

type entryPayload struct {
	Date         *string `json:"date" form:"date"`
	Content      *string `json:"content" form:"content"`
	Energy       *int    `json:"energy" form:"energy"`
	Productivity *int    `json:"productivity" form:"productivity"`
}

func (handler *Handler) entryForm(c *fiber.Ctx, user *models.User) *forms.JournalForm {
	return forms.NewJournalForm(forms.JournalFormConfig{
		Writer:   handler.adapter,
		Entries:  handler.registry.Space(user.ID).Entries,
		Sessions: handler.requestSession(c),
		OnSave:   func() { handler.refreshEntries(user.ID) },
	})
}

// refreshEntries re-fetches the owner's entries and reconciles the snapshot,
// which also re-resolves the active selection and persists to the cache.
func (handler *Handler) refreshEntries(ownerID uint) {
	entries, err := handler.adapter.FetchEntries(ownerID)
	if err != nil {
		return
	}
	handler.registry.Space(ownerID).Entries.ReplaceAll(entries)
}

func applyEntryPayload(form *forms.JournalForm, payload entryPayload) {
	if payload.Date != nil {
		form.SetDate(*payload.Date)
	}
	if payload.Content != nil {
		form.SetContent(*payload.Content)
	}
	if payload.Energy != nil {
		form.SetEnergy(*payload.Energy)
	}
	if payload.Productivity != nil {
		form.SetProductivity(*payload.Productivity)
	}
}

func (handler *Handler) ListEntries(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	entries, err := handler.adapter.FetchEntries(user.ID)
	if err != nil {
		return formError(c, err)
	}

	snapshot := handler.registry.Space(user.ID).Entries
	snapshot.ReplaceAll(entries)

	return c.JSON(fiber.Map{
		"entries":   entries,
		"active_id": snapshot.Selected(),
	})
}

func (handler *Handler) GetEntry(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	entry, err := handler.adapter.GetEntry(user.ID, c.Params("id"))
	if err != nil {
		return formError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) CreateEntry(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	payload := entryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	form := handler.entryForm(c, user)
	applyEntryPayload(form, payload)

	saved, err := form.Submit()
	if err != nil {
		return formError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (handler *Handler) UpdateEntry(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	existing, err := handler.adapter.GetEntry(user.ID, c.Params("id"))
	if err != nil {
		return formError(c, err)
	}

	payload := entryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	form := handler.entryForm(c, user)
	form.LoadEntry(existing)
	applyEntryPayload(form, payload)

	saved, err := form.Submit()
	if err != nil {
		return formError(c, err)
	}
	return c.JSON(saved)
}

func (handler *Handler) DeleteEntry(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	existing, err := handler.adapter.GetEntry(user.ID, c.Params("id"))
	if err != nil {
		return formError(c, err)
	}

	form := handler.entryForm(c, user)
	form.LoadEntry(existing)
	if deleteConfirmed(c) {
		form.ConfirmDelete()
	}

	if err := form.Delete(); err != nil {
		return formError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

type selectionPayload struct {
	ID string `json:"id" form:"id"`
}

// SelectEntry moves the active selection. An empty id clears it; an id that
// is not in the current snapshot is rejected.
func (handler *Handler) SelectEntry(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	payload := selectionPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	snapshot := handler.registry.Space(user.ID).Entries
	if snapshot.Len() == 0 {
		handler.refreshEntries(user.ID)
	}
	if payload.ID != "" {
		if _, found := snapshot.Get(payload.ID); !found {
			return apiError(c, fiber.StatusNotFound, "not found")
		}
	}

	snapshot.Select(payload.ID)
	return c.JSON(fiber.Map{"active_id": snapshot.Selected()})
}
