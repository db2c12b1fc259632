package models

import "time"

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

type Meal struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID   uint      `gorm:"not null;index:idx_meals_owner_date" json:"-"`
	Date      string    `gorm:"not null;index:idx_meals_owner_date" json:"date"`
	Type      string    `gorm:"not null" json:"type"`
	Name      string    `gorm:"not null" json:"name"`
	Calories  float64   `gorm:"not null;default:0" json:"calories"`
	Protein   float64   `gorm:"not null;default:0" json:"protein"`
	Carbs     float64   `gorm:"not null;default:0" json:"carbs"`
	Fat       float64   `gorm:"not null;default:0" json:"fat"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (meal Meal) EntityID() string {
	return meal.ID
}

func (meal Meal) EntityDate() string {
	return meal.Date
}

// ValidMealType reports whether value is one of the four meal kinds.
func ValidMealType(value string) bool {
	switch value {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}
