package models

import "time"

const (
	RatingMin     = 1
	RatingMax     = 10
	RatingNeutral = 5
)

// JournalEntry is one dated journal record. Dates are stored as
// "2006-01-02" strings; the id is a UUID assigned at creation and never
// changes afterwards.
type JournalEntry struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID      uint      `gorm:"not null;index:idx_journal_owner_date" json:"-"`
	Date         string    `gorm:"not null;index:idx_journal_owner_date" json:"date"`
	Content      string    `gorm:"not null" json:"content"`
	Energy       int       `gorm:"not null;default:5" json:"energy"`
	Productivity int       `gorm:"not null;default:5" json:"productivity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (entry JournalEntry) EntityID() string {
	return entry.ID
}

func (entry JournalEntry) EntityDate() string {
	return entry.Date
}

// ClampRating forces a rating into the [RatingMin, RatingMax] range.
func ClampRating(value int) int {
	if value < RatingMin {
		return RatingMin
	}
	if value > RatingMax {
		return RatingMax
	}
	return value
}
