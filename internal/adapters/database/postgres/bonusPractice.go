package postgres

import (
	"context"

	"github.com/strello4ka/yoga-daily-bot/internal/domain/entity"
	"gorm.io/gorm"
)

type bonusPracticeStorage struct {
	db *gorm.DB
}

func NewBonusPracticeStorage(db *gorm.DB) *bonusPracticeStorage {
	return &bonusPracticeStorage{
		db: db,
	}
}

// Create is a function that creates a new bonus practice in the database.
func (s *bonusPracticeStorage) Create(ctx context.Context, bonus *entity.BonusPractice) (*entity.BonusPractice, error) {
	err := s.db.WithContext(ctx).Create(&bonus).Error
	return bonus, err
}

// GetByParentID returns all bonus practices attached to a parent, in stable
// order. An empty slice is a valid result.
func (s *bonusPracticeStorage) GetByParentID(ctx context.Context, parentID uint) ([]entity.BonusPractice, error) {
	var bonuses []entity.BonusPractice
	err := s.db.WithContext(ctx).Where("parent_practice_id = ?", parentID).Order("id").Find(&bonuses).Error
	return bonuses, err
}

// Delete is a function that deletes a bonus practice from the database.
func (s *bonusPracticeStorage) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&entity.BonusPractice{}, "id = ?", id).Error
}

// Count is a function that gets the count of bonus practices from the database.
func (s *bonusPracticeStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.BonusPractice{}).Count(&count).Error
	return count, err
}
