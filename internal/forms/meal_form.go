package forms

import (
	"strconv"
	"strings"
	"time"

	"github.com/evamaren/daybook/internal/models"
	"github.com/evamaren/daybook/internal/remote"
)

type MealStore interface {
	Get(id string) (models.Meal, bool)
	Add(meal models.Meal)
	Update(meal models.Meal)
	Remove(id string)
	Select(id string)
}

type MealWriter interface {
	CreateMeal(source remote.SessionSource, input models.Meal) (models.Meal, error)
	UpdateMeal(source remote.SessionSource, id string, changes remote.MealChanges) (models.Meal, error)
	DeleteMeal(source remote.SessionSource, id string) error
}

type MealDraft struct {
	Date     string
	Type     string
	Name     string
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Notes    string
}

type MealForm struct {
	writer   MealWriter
	meals    MealStore
	sessions remote.SessionSource
	onSave   func()
	now      func() time.Time

	state       State
	mealID      string
	draft       MealDraft
	message     string
	deleteArmed bool
}

type MealFormConfig struct {
	Writer   MealWriter
	Meals    MealStore
	Sessions remote.SessionSource
	OnSave   func()
	Now      func() time.Time
}

func NewMealForm(config MealFormConfig) *MealForm {
	form := &MealForm{
		writer:   config.Writer,
		meals:    config.Meals,
		sessions: config.Sessions,
		onSave:   config.OnSave,
		now:      config.Now,
	}
	if form.now == nil {
		form.now = time.Now
	}
	form.resetDraft()
	return form
}

func (form *MealForm) State() State {
	return form.state
}

func (form *MealForm) Draft() MealDraft {
	return form.draft
}

func (form *MealForm) MealID() string {
	return form.mealID
}

func (form *MealForm) Message() string {
	return form.message
}

func (form *MealForm) resetDraft() {
	form.state = StateIdle
	form.mealID = ""
	form.deleteArmed = false
	form.draft = MealDraft{
		Date: todayFor(form.now),
		Type: models.MealBreakfast,
	}
}

func (form *MealForm) Load(id string) {
	if id == "" {
		form.resetDraft()
		form.message = ""
		return
	}

	form.state = StateLoading
	meal, found := form.meals.Get(id)
	if !found {
		form.resetDraft()
		form.state = StateEditing
		form.message = "meal not found"
		return
	}
	form.LoadMeal(meal)
}

// LoadMeal seeds the draft from an already fetched meal.
func (form *MealForm) LoadMeal(meal models.Meal) {
	form.mealID = meal.ID
	form.draft = MealDraft{
		Date:     meal.Date,
		Type:     meal.Type,
		Name:     meal.Name,
		Calories: meal.Calories,
		Protein:  meal.Protein,
		Carbs:    meal.Carbs,
		Fat:      meal.Fat,
		Notes:    meal.Notes,
	}
	form.state = StateEditing
	form.message = ""
}

func (form *MealForm) SetDate(value string) {
	form.draft.Date = value
	form.touch()
}

func (form *MealForm) SetType(value string) {
	form.draft.Type = value
	form.touch()
}

func (form *MealForm) SetName(value string) {
	form.draft.Name = value
	form.touch()
}

func (form *MealForm) SetNotes(value string) {
	form.draft.Notes = value
	form.touch()
}

func (form *MealForm) SetCalories(value float64) {
	form.draft.Calories = clampAmount(value)
	form.touch()
}

func (form *MealForm) SetProtein(value float64) {
	form.draft.Protein = clampAmount(value)
	form.touch()
}

func (form *MealForm) SetCarbs(value float64) {
	form.draft.Carbs = clampAmount(value)
	form.touch()
}

func (form *MealForm) SetFat(value float64) {
	form.draft.Fat = clampAmount(value)
	form.touch()
}

func (form *MealForm) touch() {
	if form.state == StateIdle {
		form.state = StateEditing
	}
}

// ParseAmount turns free-form numeric input into a non-negative amount.
// Blank or unparseable input becomes 0 instead of failing the form.
func ParseAmount(value string) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return clampAmount(parsed)
}

func clampAmount(value float64) float64 {
	if value < 0 {
		return 0
	}
	return value
}

func (form *MealForm) validate() *ValidationError {
	if strings.TrimSpace(form.draft.Name) == "" {
		return &ValidationError{Field: "name", Reason: "enter a meal name"}
	}
	if !models.ValidMealType(form.draft.Type) {
		return &ValidationError{Field: "type", Reason: "unknown meal type"}
	}
	if !validDate(form.draft.Date) {
		return &ValidationError{Field: "date", Reason: "invalid date"}
	}
	return nil
}

func (form *MealForm) Submit() (models.Meal, error) {
	if form.state == StateSubmitting {
		return models.Meal{}, ErrSubmitInProgress
	}
	form.state = StateSubmitting

	if form.draft.Date == "" {
		form.draft.Date = todayFor(form.now)
	}
	form.draft.Name = strings.TrimSpace(form.draft.Name)
	form.draft.Calories = clampAmount(form.draft.Calories)
	form.draft.Protein = clampAmount(form.draft.Protein)
	form.draft.Carbs = clampAmount(form.draft.Carbs)
	form.draft.Fat = clampAmount(form.draft.Fat)

	if validationErr := form.validate(); validationErr != nil {
		form.message = validationErr.Error()
		form.state = StateEditing
		return models.Meal{}, validationErr
	}

	if _, ok := form.sessions.CurrentSession(); !ok {
		form.message = "you must be signed in to save meals"
		form.state = StateEditing
		return models.Meal{}, remote.ErrNotAuthenticated
	}

	creating := form.mealID == ""
	var saved models.Meal
	var err error
	if creating {
		saved, err = form.writer.CreateMeal(form.sessions, models.Meal{
			Date:     form.draft.Date,
			Type:     form.draft.Type,
			Name:     form.draft.Name,
			Calories: form.draft.Calories,
			Protein:  form.draft.Protein,
			Carbs:    form.draft.Carbs,
			Fat:      form.draft.Fat,
			Notes:    form.draft.Notes,
		})
	} else {
		changes := remote.MealChanges{
			Date:     &form.draft.Date,
			Type:     &form.draft.Type,
			Name:     &form.draft.Name,
			Calories: &form.draft.Calories,
			Protein:  &form.draft.Protein,
			Carbs:    &form.draft.Carbs,
			Fat:      &form.draft.Fat,
			Notes:    &form.draft.Notes,
		}
		saved, err = form.writer.UpdateMeal(form.sessions, form.mealID, changes)
	}
	if err != nil {
		form.message = "failed to save meal"
		form.state = StateEditing
		return models.Meal{}, err
	}

	if creating {
		if form.meals != nil {
			form.meals.Add(saved)
			form.meals.Select(saved.ID)
		}
		form.resetDraft()
	} else {
		if form.meals != nil {
			form.meals.Update(saved)
		}
		form.LoadMeal(saved)
	}
	form.message = ""

	if form.onSave != nil {
		form.onSave()
	}
	return saved, nil
}

func (form *MealForm) ConfirmDelete() {
	form.deleteArmed = true
}

func (form *MealForm) Delete() error {
	if form.mealID == "" {
		return ErrNothingToDelete
	}
	if !form.deleteArmed {
		return ErrDeleteNotArmed
	}

	if err := form.writer.DeleteMeal(form.sessions, form.mealID); err != nil {
		form.message = "failed to delete meal"
		return err
	}

	if form.meals != nil {
		form.meals.Remove(form.mealID)
	}
	form.resetDraft()
	form.message = ""

	if form.onSave != nil {
		form.onSave()
	}
	return nil
}
