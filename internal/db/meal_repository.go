package db

import (
	"github.com/evamaren/daybook/internal/models"
	"gorm.io/gorm"
)

type MealRepository struct {
	database *gorm.DB
}

func NewMealRepository(database *gorm.DB) *MealRepository {
	return &MealRepository{database: database}
}

func (repo *MealRepository) ListByOwner(ownerID uint) ([]models.Meal, error) {
	meals := make([]models.Meal, 0)
	if err := repo.database.
		Where("owner_id = ?", ownerID).
		Order("date DESC, created_at DESC, id DESC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (repo *MealRepository) FindByOwnerAndID(ownerID uint, id string) (models.Meal, bool, error) {
	meal := models.Meal{}
	result := repo.database.
		Where("owner_id = ? AND id = ?", ownerID, id).
		Limit(1).
		Find(&meal)
	if result.Error != nil {
		return models.Meal{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Meal{}, false, nil
	}
	return meal, true, nil
}

func (repo *MealRepository) Create(meal *models.Meal) error {
	return repo.database.Create(meal).Error
}

func (repo *MealRepository) UpdateByOwnerAndID(ownerID uint, id string, updates map[string]any) (int64, error) {
	result := repo.database.Model(&models.Meal{}).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (repo *MealRepository) DeleteByOwnerAndID(ownerID uint, id string) (int64, error) {
	result := repo.database.
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&models.Meal{})
	return result.RowsAffected, result.Error
}
