package remote

import (
	"github.com/evamaren/daybook/internal/models"
	"github.com/google/uuid"
)

// PlanChanges is a partial update: nil fields keep their current value. Days
// replaces the whole mapping when set.
type PlanChanges struct {
	WeekStart *string
	Days      *map[string]models.DayAssignment
}

func (adapter *Adapter) FetchPlans(ownerID uint) ([]models.WeeklyPlan, error) {
	if ownerID == 0 {
		return nil, ErrUnauthorized
	}
	plans, err := adapter.repos.Plans.ListByOwner(ownerID)
	if err != nil {
		return nil, remoteFailure("fetch plans", err)
	}
	return plans, nil
}

func (adapter *Adapter) GetPlan(ownerID uint, id string) (models.WeeklyPlan, error) {
	if ownerID == 0 {
		return models.WeeklyPlan{}, ErrUnauthorized
	}
	plan, found, err := adapter.repos.Plans.FindByOwnerAndID(ownerID, id)
	if err != nil {
		return models.WeeklyPlan{}, remoteFailure("get plan", err)
	}
	if !found {
		return models.WeeklyPlan{}, ErrNotFound
	}
	return plan, nil
}

func (adapter *Adapter) GetPlanByWeekStart(ownerID uint, weekStart string) (models.WeeklyPlan, error) {
	if ownerID == 0 {
		return models.WeeklyPlan{}, ErrUnauthorized
	}
	plan, found, err := adapter.repos.Plans.FindByOwnerAndWeekStart(ownerID, weekStart)
	if err != nil {
		return models.WeeklyPlan{}, remoteFailure("get plan by week", err)
	}
	if !found {
		return models.WeeklyPlan{}, ErrNotFound
	}
	return plan, nil
}

func (adapter *Adapter) CreatePlan(source SessionSource, input models.WeeklyPlan) (models.WeeklyPlan, error) {
	ownerID, err := adapter.resolveOwner(source)
	if err != nil {
		return models.WeeklyPlan{}, err
	}

	plan := input
	plan.ID = uuid.NewString()
	plan.OwnerID = ownerID
	if plan.Days == nil {
		plan.Days = make(map[string]models.DayAssignment)
	}

	if err := adapter.repos.Plans.Create(&plan); err != nil {
		return models.WeeklyPlan{}, remoteFailure("create plan", err)
	}

	adapter.bus.Publish(TablePlans)
	return plan, nil
}

func (adapter *Adapter) UpdatePlan(source SessionSource, id string, changes PlanChanges) (models.WeeklyPlan, error) {
	ownerID, err := adapter.resolveOwner(source)
	if err != nil {
		return models.WeeklyPlan{}, err
	}

	plan, found, err := adapter.repos.Plans.FindByOwnerAndID(ownerID, id)
	if err != nil {
		return models.WeeklyPlan{}, remoteFailure("update plan", err)
	}
	if !found {
		return models.WeeklyPlan{}, ErrNotFound
	}

	if changes.WeekStart != nil {
		plan.WeekStart = *changes.WeekStart
	}
	if changes.Days != nil {
		plan.Days = *changes.Days
	}

	if err := adapter.repos.Plans.Save(&plan); err != nil {
		return models.WeeklyPlan{}, remoteFailure("update plan", err)
	}

	adapter.bus.Publish(TablePlans)
	return plan, nil
}

func (adapter *Adapter) DeletePlan(source SessionSource, id string) error {
	ownerID, err := adapter.resolveOwner(source)
	if err != nil {
		return err
	}

	rows, err := adapter.repos.Plans.DeleteByOwnerAndID(ownerID, id)
	if err != nil {
		return remoteFailure("delete plan", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	adapter.bus.Publish(TablePlans)
	return nil
}
