package db

import (
	"github.com/evamaren/daybook/internal/models"
	"gorm.io/gorm"
)

type PlanRepository struct {
	database *gorm.DB
}

func NewPlanRepository(database *gorm.DB) *PlanRepository {
	return &PlanRepository{database: database}
}

func (repo *PlanRepository) ListByOwner(ownerID uint) ([]models.WeeklyPlan, error) {
	plans := make([]models.WeeklyPlan, 0)
	if err := repo.database.
		Where("owner_id = ?", ownerID).
		Order("week_start DESC, created_at DESC, id DESC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (repo *PlanRepository) FindByOwnerAndID(ownerID uint, id string) (models.WeeklyPlan, bool, error) {
	plan := models.WeeklyPlan{}
	result := repo.database.
		Where("owner_id = ? AND id = ?", ownerID, id).
		Limit(1).
		Find(&plan)
	if result.Error != nil {
		return models.WeeklyPlan{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WeeklyPlan{}, false, nil
	}
	return plan, true, nil
}

func (repo *PlanRepository) FindByOwnerAndWeekStart(ownerID uint, weekStart string) (models.WeeklyPlan, bool, error) {
	plan := models.WeeklyPlan{}
	result := repo.database.
		Where("owner_id = ? AND week_start = ?", ownerID, weekStart).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&plan)
	if result.Error != nil {
		return models.WeeklyPlan{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WeeklyPlan{}, false, nil
	}
	return plan, true, nil
}

func (repo *PlanRepository) Create(plan *models.WeeklyPlan) error {
	return repo.database.Create(plan).Error
}

func (repo *PlanRepository) Save(plan *models.WeeklyPlan) error {
	return repo.database.Save(plan).Error
}

func (repo *PlanRepository) DeleteByOwnerAndID(ownerID uint, id string) (int64, error) {
	result := repo.database.
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&models.WeeklyPlan{})
	return result.RowsAffected, result.Error
}
