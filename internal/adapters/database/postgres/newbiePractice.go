package postgres

import (
	"context"

	"github.com/strello4ka/yoga-daily-bot/internal/domain/entity"
	"gorm.io/gorm"
)

type newbiePracticeStorage struct {
	db *gorm.DB
}

func NewNewbiePracticeStorage(db *gorm.DB) *newbiePracticeStorage {
	return &newbiePracticeStorage{
		db: db,
	}
}

// Create is a function that creates a new newbie practice in the database.
func (s *newbiePracticeStorage) Create(ctx context.Context, practice *entity.NewbiePractice) (*entity.NewbiePractice, error) {
	err := s.db.WithContext(ctx).Create(&practice).Error
	return practice, err
}

// GetByNumber returns the curriculum entry at the given position.
func (s *newbiePracticeStorage) GetByNumber(ctx context.Context, number int) (*entity.NewbiePractice, error) {
	var practice entity.NewbiePractice
	err := s.db.WithContext(ctx).Where("number = ?", number).First(&practice).Error
	return &practice, err
}

// Count is a function that gets the count of newbie practices from the database.
func (s *newbiePracticeStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.NewbiePractice{}).Count(&count).Error
	return count, err
}
