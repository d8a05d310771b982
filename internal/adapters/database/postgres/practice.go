package postgres

import (
	"context"

	"github.com/strello4ka/yoga-daily-bot/internal/domain/entity"
	"gorm.io/gorm"
)

type practiceStorage struct {
	db *gorm.DB
}

func NewPracticeStorage(db *gorm.DB) *practiceStorage {
	return &practiceStorage{
		db: db,
	}
}

// Create is a function that creates a new practice in the database.
func (s *practiceStorage) Create(ctx context.Context, practice *entity.Practice) (*entity.Practice, error) {
	err := s.db.WithContext(ctx).Create(&practice).Error
	return practice, err
}

// Get is a function that gets a practice from the database by id.
func (s *practiceStorage) Get(ctx context.Context, id uint) (*entity.Practice, error) {
	var practice entity.Practice
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&practice).Error
	return &practice, err
}

// GetByURL is a function that gets a practice from the database by video url.
func (s *practiceStorage) GetByURL(ctx context.Context, videoURL string) (*entity.Practice, error) {
	var practice entity.Practice
	err := s.db.WithContext(ctx).Where("video_url = ?", videoURL).First(&practice).Error
	return &practice, err
}

// GetAll returns all practices ordered by id. The stable order is what the
// cyclic selection index walks over.
func (s *practiceStorage) GetAll(ctx context.Context) ([]entity.Practice, error) {
	var practices []entity.Practice
	err := s.db.WithContext(ctx).Order("id").Find(&practices).Error
	return practices, err
}

// GetByWeekday returns the pool for an exact weekday (1..7), ordered by id.
func (s *practiceStorage) GetByWeekday(ctx context.Context, weekday int) ([]entity.Practice, error) {
	var practices []entity.Practice
	err := s.db.WithContext(ctx).Where("weekday = ?", weekday).Order("id").Find(&practices).Error
	return practices, err
}

// GetAnyDay returns practices not pinned to a weekday, ordered by id.
func (s *practiceStorage) GetAnyDay(ctx context.Context) ([]entity.Practice, error) {
	var practices []entity.Practice
	err := s.db.WithContext(ctx).Where("weekday IS NULL").Order("id").Find(&practices).Error
	return practices, err
}

// Update is a function that updates a practice in the database.
func (s *practiceStorage) Update(ctx context.Context, practice *entity.Practice) (*entity.Practice, error) {
	err := s.db.WithContext(ctx).Save(&practice).Error
	return practice, err
}

// Delete removes a practice; bonus rows go with it via the cascade constraint.
func (s *practiceStorage) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&entity.Practice{}, "id = ?", id).Error
}

// Count is a function that gets the count of practices from the database.
func (s *practiceStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Practice{}).Count(&count).Error
	return count, err
}
