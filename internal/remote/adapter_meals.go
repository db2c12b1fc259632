package remote

import (
	"github.com/evamaren/daybook/internal/models"
	"github.com/google/uuid"
)

// MealChanges is a partial update: nil fields keep their current value.
type MealChanges struct {
	Date     *string
	Type     *string
	Name     *string
	Calories *float64
	Protein  *float64
	Carbs    *float64
	Fat      *float64
	Notes    *string
}

func (adapter *Adapter) FetchMeals(ownerID uint) ([]models.Meal, error) {
	if ownerID == 0 {
		return nil, ErrUnauthorized
	}
	meals, err := adapter.repos.Meals.ListByOwner(ownerID)
	if err != nil {
		return nil, remoteFailure("fetch meals", err)
	}
	return meals, nil
}

func (adapter *Adapter) GetMeal(ownerID uint, id string) (models.Meal, error) {
	if ownerID == 0 {
		return models.Meal{}, ErrUnauthorized
	}
	meal, found, err := adapter.repos.Meals.FindByOwnerAndID(ownerID, id)
	if err != nil {
		return models.Meal{}, remoteFailure("get meal", err)
	}
	if !found {
		return models.Meal{}, ErrNotFound
	}
	return meal, nil
}

func (adapter *Adapter) CreateMeal(source SessionSource, input models.Meal) (models.Meal, error) {
	ownerID, err := adapter.resolveOwner(source)
	if err != nil {
		return models.Meal{}, err
	}

	meal := input
	meal.ID = uuid.NewString()
	meal.OwnerID = ownerID

	if err := adapter.repos.Meals.Create(&meal); err != nil {
		return models.Meal{}, remoteFailure("create meal", err)
	}

	adapter.bus.Publish(TableMeals)
	return meal, nil
}

func (adapter *Adapter) UpdateMeal(source SessionSource, id string, changes MealChanges) (models.Meal, error) {
	ownerID, err := adapter.resolveOwner(source)
	if err != nil {
		return models.Meal{}, err
	}

	updates := make(map[string]any)
	if changes.Date != nil {
		updates["date"] = *changes.Date
	}
	if changes.Type != nil {
		updates["type"] = *changes.Type
	}
	if changes.Name != nil {
		updates["name"] = *changes.Name
	}
	if changes.Calories != nil {
		updates["calories"] = *changes.Calories
	}
	if changes.Protein != nil {
		updates["protein"] = *changes.Protein
	}
	if changes.Carbs != nil {
		updates["carbs"] = *changes.Carbs
	}
	if changes.Fat != nil {
		updates["fat"] = *changes.Fat
	}
	if changes.Notes != nil {
		updates["notes"] = *changes.Notes
	}

	if len(updates) > 0 {
		rows, err := adapter.repos.Meals.UpdateByOwnerAndID(ownerID, id, updates)
		if err != nil {
			return models.Meal{}, remoteFailure("update meal", err)
		}
		if rows == 0 {
			return models.Meal{}, ErrNotFound
		}
		adapter.bus.Publish(TableMeals)
	}

	return adapter.GetMeal(ownerID, id)
}

// DeleteMeal removes the meal row only. Weekly plans referencing the meal are
// left untouched; their slots are resolved lazily by readers.
func (adapter *Adapter) DeleteMeal(source SessionSource, id string) error {
	ownerID, err := adapter.resolveOwner(source)
	if err != nil {
		return err
	}

	rows, err := adapter.repos.Meals.DeleteByOwnerAndID(ownerID, id)
	if err != nil {
		return remoteFailure("delete meal", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	adapter.bus.Publish(TableMeals)
	return nil
}
