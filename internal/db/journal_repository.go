package db

import (
	"github.com/evamaren/daybook/internal/models"
	"gorm.io/gorm"
)

type JournalRepository struct {
	database *gorm.DB
}

func NewJournalRepository(database *gorm.DB) *JournalRepository {
	return &JournalRepository{database: database}
}

func (repo *JournalRepository) ListByOwner(ownerID uint) ([]models.JournalEntry, error) {
	entries := make([]models.JournalEntry, 0)
	if err := repo.database.
		Where("owner_id = ?", ownerID).
		Order("date DESC, created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *JournalRepository) ListRecentByOwner(ownerID uint, limit int) ([]models.JournalEntry, error) {
	entries := make([]models.JournalEntry, 0)
	if err := repo.database.
		Where("owner_id = ?", ownerID).
		Order("date DESC, created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *JournalRepository) FindByOwnerAndID(ownerID uint, id string) (models.JournalEntry, bool, error) {
	entry := models.JournalEntry{}
	result := repo.database.
		Where("owner_id = ? AND id = ?", ownerID, id).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.JournalEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.JournalEntry{}, false, nil
	}
	return entry, true, nil
}

func (repo *JournalRepository) Create(entry *models.JournalEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *JournalRepository) UpdateByOwnerAndID(ownerID uint, id string, updates map[string]any) (int64, error) {
	result := repo.database.Model(&models.JournalEntry{}).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (repo *JournalRepository) DeleteByOwnerAndID(ownerID uint, id string) (int64, error) {
	result := repo.database.
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&models.JournalEntry{})
	return result.RowsAffected, result.Error
}
