package api

import (
	"errors"
	"time"

	"github.com/evamaren/daybook/internal/forms"
	"github.com/evamaren/daybook/internal/models"
	"github.com/evamaren/daybook/internal/remote"
	"github.com/gofiber/fiber/v2"
)

type planPayload struct {
	WeekStart *string                          `json:"week_start" form:"week_start"`
	Days      *map[string]models.DayAssignment `json:"days"`
}

func (handler *Handler) planForm(c *fiber.Ctx, user *models.User) *forms.PlanForm {
	return forms.NewPlanForm(forms.PlanFormConfig{
		Writer:   handler.adapter,
		Sessions: handler.requestSession(c),
		OnSave:   func() { handler.refreshPlans(user.ID) },
	})
}

func (handler *Handler) refreshPlans(ownerID uint) {
	plans, err := handler.adapter.FetchPlans(ownerID)
	if err != nil {
		return
	}
	handler.registry.Space(ownerID).Plans.ReplaceAll(plans)
}

func applyPlanPayload(form *forms.PlanForm, payload planPayload) {
	if payload.WeekStart != nil {
		form.SetWeekStart(*payload.WeekStart)
	}
	if payload.Days != nil {
		form.SetDays(*payload.Days)
	}
}

func (handler *Handler) ListPlans(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	plans, err := handler.adapter.FetchPlans(user.ID)
	if err != nil {
		return formError(c, err)
	}

	handler.registry.Space(user.ID).Plans.ReplaceAll(plans)
	return c.JSON(fiber.Map{"plans": plans})
}

// CurrentPlan resolves the plan for the week containing today, anchored on
// Sunday in the server's configured location.
func (handler *Handler) CurrentPlan(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	weekStart := models.WeekStartOf(time.Now().In(handler.location))
	plan, err := handler.adapter.GetPlanByWeekStart(user.ID, weekStart)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return c.JSON(fiber.Map{"week_start": weekStart, "plan": nil})
		}
		return formError(c, err)
	}
	return c.JSON(fiber.Map{"week_start": weekStart, "plan": plan})
}

func (handler *Handler) GetPlan(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	plan, err := handler.adapter.GetPlan(user.ID, c.Params("id"))
	if err != nil {
		return formError(c, err)
	}
	return c.JSON(plan)
}

func (handler *Handler) CreatePlan(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	payload := planPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	form := handler.planForm(c, user)
	applyPlanPayload(form, payload)

	saved, err := form.Submit()
	if err != nil {
		return formError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (handler *Handler) UpdatePlan(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	existing, err := handler.adapter.GetPlan(user.ID, c.Params("id"))
	if err != nil {
		return formError(c, err)
	}

	payload := planPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	form := handler.planForm(c, user)
	form.LoadPlan(existing)
	applyPlanPayload(form, payload)

	saved, err := form.Submit()
	if err != nil {
		return formError(c, err)
	}
	return c.JSON(saved)
}

func (handler *Handler) DeletePlan(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	existing, err := handler.adapter.GetPlan(user.ID, c.Params("id"))
	if err != nil {
		return formError(c, err)
	}

	form := handler.planForm(c, user)
	form.LoadPlan(existing)
	if deleteConfirmed(c) {
		form.ConfirmDelete()
	}

	if err := form.Delete(); err != nil {
		return formError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
