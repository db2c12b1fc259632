package remote

import (
	"errors"
	"testing"

	"github.com/evamaren/daybook/internal/models"
)

func TestCreateMealPersistsNutrition(t *testing.T) {
	adapter := newTestAdapter(t)

	saved, err := adapter.CreateMeal(sessionFor(1), models.Meal{
		Date:     "2026-08-20",
		Type:     models.MealBreakfast,
		Name:     "Oats",
		Calories: 350,
		Protein:  12,
		Carbs:    60,
		Fat:      6,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected a generated id")
	}

	fetched, err := adapter.GetMeal(1, saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Name != "Oats" || fetched.Type != models.MealBreakfast {
		t.Fatalf("unexpected meal: %+v", fetched)
	}
	if fetched.Calories != 350 || fetched.Protein != 12 || fetched.Carbs != 60 || fetched.Fat != 6 {
		t.Fatalf("nutrition fields lost: %+v", fetched)
	}
}

func TestUpdateMealPartial(t *testing.T) {
	adapter := newTestAdapter(t)
	session := sessionFor(1)

	saved, err := adapter.CreateMeal(session, models.Meal{
		Date:     "2026-08-20",
		Type:     models.MealLunch,
		Name:     "Salad",
		Calories: 200,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	calories := 250.0
	updated, err := adapter.UpdateMeal(session, saved.ID, MealChanges{Calories: &calories})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Calories != 250 {
		t.Fatalf("expected calories 250, got %v", updated.Calories)
	}
	if updated.Name != "Salad" || updated.Type != models.MealLunch || updated.Date != "2026-08-20" {
		t.Fatalf("partial update touched other fields: %+v", updated)
	}
}

func TestDeleteMealLeavesPlanReferences(t *testing.T) {
	adapter := newTestAdapter(t)
	session := sessionFor(1)

	meal, err := adapter.CreateMeal(session, models.Meal{Date: "2026-08-20", Type: models.MealDinner, Name: "Pasta"})
	if err != nil {
		t.Fatalf("create meal: %v", err)
	}

	plan, err := adapter.CreatePlan(session, models.WeeklyPlan{
		WeekStart: "2026-08-16",
		Days: map[string]models.DayAssignment{
			"2026-08-20": {Dinner: meal.ID},
		},
	})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}

	if err := adapter.DeleteMeal(session, meal.ID); err != nil {
		t.Fatalf("delete meal: %v", err)
	}

	reloaded, err := adapter.GetPlan(1, plan.ID)
	if err != nil {
		t.Fatalf("get plan: %v", err)
	}
	if reloaded.Days["2026-08-20"].Dinner != meal.ID {
		t.Fatalf("expected the plan to keep the stale meal reference, got %+v", reloaded.Days)
	}
}

func TestDeleteMealUnknownID(t *testing.T) {
	adapter := newTestAdapter(t)

	if err := adapter.DeleteMeal(sessionFor(1), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
