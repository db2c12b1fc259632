package forms

import (
	"time"

	"github.com/evamaren/daybook/internal/models"
	"github.com/evamaren/daybook/internal/remote"
)

type PlanWriter interface {
	CreatePlan(source remote.SessionSource, input models.WeeklyPlan) (models.WeeklyPlan, error)
	UpdatePlan(source remote.SessionSource, id string, changes remote.PlanChanges) (models.WeeklyPlan, error)
	DeletePlan(source remote.SessionSource, id string) error
}

type PlanDraft struct {
	WeekStart string
	Days      map[string]models.DayAssignment
}

// PlanForm edits one weekly plan: a 7-day window anchored at WeekStart with
// per-day meal slot assignments. Slot values are opaque meal ids; the form
// does not check that they resolve, since deleting a meal intentionally
// leaves plan references behind.
type PlanForm struct {
	writer   PlanWriter
	sessions remote.SessionSource
	onSave   func()
	now      func() time.Time

	state       State
	planID      string
	draft       PlanDraft
	message     string
	deleteArmed bool
}

type PlanFormConfig struct {
	Writer   PlanWriter
	Sessions remote.SessionSource
	OnSave   func()
	Now      func() time.Time
}

func NewPlanForm(config PlanFormConfig) *PlanForm {
	form := &PlanForm{
		writer:   config.Writer,
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

func (form *PlanForm) State() State {
	return form.state
}

func (form *PlanForm) Draft() PlanDraft {
	return form.draft
}

func (form *PlanForm) PlanID() string {
	return form.planID
}

func (form *PlanForm) Message() string {
	return form.message
}

func (form *PlanForm) resetDraft() {
	form.state = StateIdle
	form.planID = ""
	form.deleteArmed = false
	form.draft = PlanDraft{
		WeekStart: models.WeekStartOf(form.now()),
		Days:      make(map[string]models.DayAssignment),
	}
}

// LoadPlan seeds the draft from an already fetched plan.
func (form *PlanForm) LoadPlan(plan models.WeeklyPlan) {
	days := make(map[string]models.DayAssignment, len(plan.Days))
	for date, assignment := range plan.Days {
		days[date] = assignment
	}
	form.planID = plan.ID
	form.draft = PlanDraft{WeekStart: plan.WeekStart, Days: days}
	form.state = StateEditing
	form.message = ""
}

func (form *PlanForm) SetWeekStart(value string) {
	form.draft.WeekStart = value
	form.touch()
}

func (form *PlanForm) SetDay(date string, assignment models.DayAssignment) {
	form.draft.Days[date] = assignment
	form.touch()
}

func (form *PlanForm) SetDays(days map[string]models.DayAssignment) {
	if days == nil {
		days = make(map[string]models.DayAssignment)
	}
	form.draft.Days = days
	form.touch()
}

func (form *PlanForm) RemoveDay(date string) {
	delete(form.draft.Days, date)
	form.touch()
}

func (form *PlanForm) touch() {
	if form.state == StateIdle {
		form.state = StateEditing
	}
}

func (form *PlanForm) validate() *ValidationError {
	weekStart, err := time.Parse(dateLayout, form.draft.WeekStart)
	if err != nil {
		return &ValidationError{Field: "week_start", Reason: "invalid date"}
	}
	weekEnd := weekStart.AddDate(0, 0, 7)

	for date := range form.draft.Days {
		day, err := time.Parse(dateLayout, date)
		if err != nil {
			return &ValidationError{Field: "days", Reason: "invalid day key " + date}
		}
		if day.Before(weekStart) || !day.Before(weekEnd) {
			return &ValidationError{Field: "days", Reason: date + " is outside the plan week"}
		}
	}
	return nil
}

func (form *PlanForm) Submit() (models.WeeklyPlan, error) {
	if form.state == StateSubmitting {
		return models.WeeklyPlan{}, ErrSubmitInProgress
	}
	form.state = StateSubmitting

	if form.draft.WeekStart == "" {
		form.draft.WeekStart = models.WeekStartOf(form.now())
	}

	if validationErr := form.validate(); validationErr != nil {
		form.message = validationErr.Error()
		form.state = StateEditing
		return models.WeeklyPlan{}, validationErr
	}

	if _, ok := form.sessions.CurrentSession(); !ok {
		form.message = "you must be signed in to save plans"
		form.state = StateEditing
		return models.WeeklyPlan{}, remote.ErrNotAuthenticated
	}

	creating := form.planID == ""
	var saved models.WeeklyPlan
	var err error
	if creating {
		saved, err = form.writer.CreatePlan(form.sessions, models.WeeklyPlan{
			WeekStart: form.draft.WeekStart,
			Days:      form.draft.Days,
		})
	} else {
		days := form.draft.Days
		changes := remote.PlanChanges{
			WeekStart: &form.draft.WeekStart,
			Days:      &days,
		}
		saved, err = form.writer.UpdatePlan(form.sessions, form.planID, changes)
	}
	if err != nil {
		form.message = "failed to save plan"
		form.state = StateEditing
		return models.WeeklyPlan{}, err
	}

	if creating {
		form.resetDraft()
	} else {
		form.LoadPlan(saved)
	}
	form.message = ""

	if form.onSave != nil {
		form.onSave()
	}
	return saved, nil
}

func (form *PlanForm) ConfirmDelete() {
	form.deleteArmed = true
}

func (form *PlanForm) Delete() error {
	if form.planID == "" {
		return ErrNothingToDelete
	}
	if !form.deleteArmed {
		return ErrDeleteNotArmed
	}

	if err := form.writer.DeletePlan(form.sessions, form.planID); err != nil {
		form.message = "failed to delete plan"
		return err
	}

	form.resetDraft()
	form.message = ""

	if form.onSave != nil {
		form.onSave()
	}
	return nil
}
