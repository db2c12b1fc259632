package models

import "time"

// DateLayout is the calendar-date storage format used across entities.
const DateLayout = "2006-01-02"

// WeekStartOf returns the Sunday anchoring the 7-day window that contains
// day.
func WeekStartOf(day time.Time) string {
	anchor := day.AddDate(0, 0, -int(day.Weekday()))
	return anchor.Format(DateLayout)
}

// DayAssignment maps plan slots to meal ids. Slot values reference meals by
// id but do not own them: deleting a meal leaves any plan references in
// place, and readers resolve slots lazily, skipping ids that no longer exist.
type DayAssignment struct {
	Breakfast string   `json:"breakfast,omitempty"`
	Lunch     string   `json:"lunch,omitempty"`
	Dinner    string   `json:"dinner,omitempty"`
	Snacks    []string `json:"snacks,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// WeeklyPlan is an overlay over meals for one 7-day window. WeekStart
// anchors the window; Days is keyed by "2006-01-02" date strings inside it.
type WeeklyPlan struct {
	ID        string                   `gorm:"primaryKey;size:36" json:"id"`
	OwnerID   uint                     `gorm:"not null;index:idx_plans_owner_week" json:"-"`
	WeekStart string                   `gorm:"not null;index:idx_plans_owner_week" json:"week_start"`
	Days      map[string]DayAssignment `gorm:"serializer:json" json:"days"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

func (plan WeeklyPlan) EntityID() string {
	return plan.ID
}

func (plan WeeklyPlan) EntityDate() string {
	return plan.WeekStart
}
