package db

import "gorm.io/gorm"

type Repositories struct {
	Users   *UserRepository
	Entries *JournalRepository
	Meals   *MealRepository
	Plans   *PlanRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:   NewUserRepository(database),
		Entries: NewJournalRepository(database),
		Meals:   NewMealRepository(database),
		Plans:   NewPlanRepository(database),
	}
}
