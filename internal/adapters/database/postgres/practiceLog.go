package postgres

import (
	"context"
	"time"

	"github.com/strello4ka/yoga-daily-bot/internal/domain/entity"
	"gorm.io/gorm"
)

type practiceLogStorage struct {
	db *gorm.DB
}

func NewPracticeLogStorage(db *gorm.DB) *practiceLogStorage {
	return &practiceLogStorage{
		db: db,
	}
}

// Create appends a delivery record.
func (s *practiceLogStorage) Create(ctx context.Context, log *entity.PracticeLog) (*entity.PracticeLog, error) {
	err := s.db.WithContext(ctx).Create(&log).Error
	return log, err
}

// Delete removes a ledger row. Only used to undo the row of a send that
// never reached the user.
func (s *practiceLogStorage) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&entity.PracticeLog{}, "id = ?", id).Error
}

// MarkCompleted flips the Completed flag of a log row. The only mutation
// this table ever sees.
func (s *practiceLogStorage) MarkCompleted(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Model(&entity.PracticeLog{}).Where("id = ?", id).
		Update("completed", true).Error
}

// CountCompleted counts completed practices of a user. A non-nil since
// excludes marks made before the user's last progress reset.
func (s *practiceLogStorage) CountCompleted(ctx context.Context, userID int64, since *time.Time) (int64, error) {
	query := s.db.WithContext(ctx).Model(&entity.PracticeLog{}).
		Where("user_id = ? AND completed = ?", userID, true)
	if since != nil {
		query = query.Where("sent_at > ?", *since)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}
