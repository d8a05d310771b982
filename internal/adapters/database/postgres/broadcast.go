package postgres

import (
	"context"
	"errors"

	"github.com/strello4ka/yoga-daily-bot/internal/domain/entity"
	"gorm.io/gorm"
)

type broadcastStorage struct {
	db *gorm.DB
}

func NewBroadcastStorage(db *gorm.DB) *broadcastStorage {
	return &broadcastStorage{
		db: db,
	}
}

// Create is a function that records one sent broadcast message.
func (s *broadcastStorage) Create(ctx context.Context, message *entity.BroadcastMessage) (*entity.BroadcastMessage, error) {
	err := s.db.WithContext(ctx).Create(&message).Error
	return message, err
}

// GetLatestBatch returns all messages of the most recently sent broadcast.
// An empty slice means no broadcast has been recorded yet.
func (s *broadcastStorage) GetLatestBatch(ctx context.Context) ([]entity.BroadcastMessage, error) {
	var latest entity.BroadcastMessage
	err := s.db.WithContext(ctx).Order("created_at DESC").First(&latest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var messages []entity.BroadcastMessage
	err = s.db.WithContext(ctx).Where("batch_id = ?", latest.BatchID).Order("id").Find(&messages).Error
	return messages, err
}

// DeleteBatch drops all ledger rows of a broadcast.
func (s *broadcastStorage) DeleteBatch(ctx context.Context, batchID string) error {
	return s.db.WithContext(ctx).Delete(&entity.BroadcastMessage{}, "batch_id = ?", batchID).Error
}
