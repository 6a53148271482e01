package db

import (
	"context"
	"time"

	"github.com/terraincognita07/bloomcal/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EntryRepository struct {
	database *gorm.DB
}

func NewEntryRepository(database *gorm.DB) *EntryRepository {
	return &EntryRepository{database: database}
}

func (repo *EntryRepository) ListByUser(ctx context.Context, userID uint) ([]models.Entry, error) {
	entries := make([]models.Entry, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_key ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *EntryRepository) FindByUserAndDate(ctx context.Context, userID uint, dateKey string) (models.Entry, bool, error) {
	entry := models.Entry{}
	result := repo.database.WithContext(ctx).
		Where("user_id = ? AND date_key = ?", userID, dateKey).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.Entry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Entry{}, false, nil
	}
	return entry, true, nil
}

// Upsert keeps a single document per user and day; a second write for the
// same day replaces the stored document and source.
func (repo *EntryRepository) Upsert(ctx context.Context, entry *models.Entry) error {
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	return repo.database.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "source", "updated_at"}),
	}).Create(entry).Error
}

func (repo *EntryRepository) DeleteByUserAndDate(ctx context.Context, userID uint, dateKey string) error {
	return repo.database.WithContext(ctx).
		Where("user_id = ? AND date_key = ?", userID, dateKey).
		Delete(&models.Entry{}).Error
}

func (repo *EntryRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := repo.database.WithContext(ctx).Model(&models.Entry{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
