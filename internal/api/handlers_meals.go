package api

import (
	"encoding/json"

	"github.com/evamaren/daybook/internal/forms"
	"github.com/evamaren/daybook/internal/models"
	"github.com/gofiber/fiber/v2"
)

// amountField decodes a nutrition amount from either a JSON number or the
// raw text of an input field. Text goes through forms.ParseAmount, so blank
// or unparseable input coerces to zero instead of failing the request.
type amountField float64

func (field *amountField) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*field = amountField(forms.ParseAmount(text))
		return nil
	}

	var parsed float64
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	*field = amountField(parsed)
	return nil
}

// mealPayload uses pointers so a PATCH can distinguish "not sent" from a
// zero value.
type mealPayload struct {
	Date     *string      `json:"date" form:"date"`
	Type     *string      `json:"type" form:"type"`
	Name     *string      `json:"name" form:"name"`
	Calories *amountField `json:"calories" form:"calories"`
	Protein  *amountField `json:"protein" form:"protein"`
	Carbs    *amountField `json:"carbs" form:"carbs"`
	Fat      *amountField `json:"fat" form:"fat"`
	Notes    *string      `json:"notes" form:"notes"`
}

func (handler *Handler) mealForm(c *fiber.Ctx, user *models.User) *forms.MealForm {
	return forms.NewMealForm(forms.MealFormConfig{
		Writer:   handler.adapter,
		Meals:    handler.registry.Space(user.ID).Meals,
		Sessions: handler.requestSession(c),
		OnSave:   func() { handler.refreshMeals(user.ID) },
	})
}

func (handler *Handler) refreshMeals(ownerID uint) {
	meals, err := handler.adapter.FetchMeals(ownerID)
	if err != nil {
		return
	}
	handler.registry.Space(ownerID).Meals.ReplaceAll(meals)
}

func applyMealPayload(form *forms.MealForm, payload mealPayload) {
	if payload.Date != nil {
		form.SetDate(*payload.Date)
	}
	if payload.Type != nil {
		form.SetType(*payload.Type)
	}
	if payload.Name != nil {
		form.SetName(*payload.Name)
	}
	if payload.Calories != nil {
		form.SetCalories(float64(*payload.Calories))
	}
	if payload.Protein != nil {
		form.SetProtein(float64(*payload.Protein))
	}
	if payload.Carbs != nil {
		form.SetCarbs(float64(*payload.Carbs))
	}
	if payload.Fat != nil {
		form.SetFat(float64(*payload.Fat))
	}
	if payload.Notes != nil {
		form.SetNotes(*payload.Notes)
	}
}

func (handler *Handler) ListMeals(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	meals, err := handler.adapter.FetchMeals(user.ID)
	if err != nil {
		return formError(c, err)
	}

	snapshot := handler.registry.Space(user.ID).Meals
	snapshot.ReplaceAll(meals)

	return c.JSON(fiber.Map{
		"meals":     meals,
		"active_id": snapshot.Selected(),
	})
}

func (handler *Handler) GetMeal(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	meal, err := handler.adapter.GetMeal(user.ID, c.Params("id"))
	if err != nil {
		return formError(c, err)
	}
	return c.JSON(meal)
}

func (handler *Handler) CreateMeal(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	payload := mealPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	form := handler.mealForm(c, user)
	applyMealPayload(form, payload)

	saved, err := form.Submit()
	if err != nil {
		return formError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (handler *Handler) UpdateMeal(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	existing, err := handler.adapter.GetMeal(user.ID, c.Params("id"))
	if err != nil {
		return formError(c, err)
	}

	payload := mealPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	form := handler.mealForm(c, user)
	form.LoadMeal(existing)
	applyMealPayload(form, payload)

	saved, err := form.Submit()
	if err != nil {
		return formError(c, err)
	}
	return c.JSON(saved)
}

// DeleteMeal removes the meal only. Weekly plans that reference its id keep
// the stale reference.
func (handler *Handler) DeleteMeal(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	existing, err := handler.adapter.GetMeal(user.ID, c.Params("id"))
	if err != nil {
		return formError(c, err)
	}

	form := handler.mealForm(c, user)
	form.LoadMeal(existing)
	if deleteConfirmed(c) {
		form.ConfirmDelete()
	}

	if err := form.Delete(); err != nil {
		return formError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) SelectMeal(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	payload := selectionPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	snapshot := handler.registry.Space(user.ID).Meals
	if snapshot.Len() == 0 {
		handler.refreshMeals(user.ID)
	}
	if payload.ID != "" {
		if _, found := snapshot.Get(payload.ID); !found {
			return apiError(c, fiber.StatusNotFound, "not found")
		}
	}

	snapshot.Select(payload.ID)
	return c.JSON(fiber.Map{"active_id": snapshot.Selected()})
}
