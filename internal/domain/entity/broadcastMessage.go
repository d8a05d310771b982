package entity

import "time"

type BroadcastType string

const (
	BroadcastTypeText  BroadcastType = "text"
	BroadcastTypePhoto BroadcastType = "photo"
)

// BroadcastMessage records one message of an admin broadcast. All messages of
// one broadcast share a BatchID, which makes bulk edit and bulk delete of the
// latest broadcast possible.
type BroadcastMessage struct {
	ID          uint          `gorm:"primaryKey"`
	BatchID     string        `gorm:"type:uuid;not null;index"`
	UserID      int64         `gorm:"not null"`
	ChatID      int64         `gorm:"not null"`
	MessageID   int           `gorm:"not null"`
	Type        BroadcastType `gorm:"not null"`
	Text        string
	PhotoFileID string
	CreatedAt   time.Time
}
