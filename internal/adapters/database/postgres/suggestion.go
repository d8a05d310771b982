package postgres

import (
	"context"

	"github.com/strello4ka/yoga-daily-bot/internal/domain/entity"
	"gorm.io/gorm"
)

type suggestionStorage struct {
	db *gorm.DB
}

func NewSuggestionStorage(db *gorm.DB) *suggestionStorage {
	return &suggestionStorage{
		db: db,
	}
}

// Create is a function that creates a new suggestion in the database.
func (s *suggestionStorage) Create(ctx context.Context, suggestion *entity.Suggestion) (*entity.Suggestion, error) {
	err := s.db.WithContext(ctx).Create(&suggestion).Error
	return suggestion, err
}

// GetAll returns the latest suggestions, newest first.
func (s *suggestionStorage) GetAll(ctx context.Context, limit int) ([]entity.Suggestion, error) {
	var suggestions []entity.Suggestion
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&suggestions).Error
	return suggestions, err
}
