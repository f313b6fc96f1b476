package db

import (
	"github.com/terraincognita07/cardiocheck/internal/models"
	"gorm.io/gorm"
)

type FeedbackRepository struct {
	database *gorm.DB
}

func NewFeedbackRepository(database *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{database: database}
}

func (repo *FeedbackRepository) Create(entry *models.Feedback) error {
	return repo.database.Create(entry).Error
}

func (repo *FeedbackRepository) ListRecentByUser(username string, limit int) ([]models.Feedback, error) {
	if limit <= 0 {
		limit = 10
	}
	entries := make([]models.Feedback, 0, limit)
	if err := repo.database.
		Where("user = ?", username).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *FeedbackRepository) Count() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Feedback{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
