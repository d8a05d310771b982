package entity

import "time"

// Suggestion is a user-submitted practice link. A freeform inbox for the
// curator, never merged into the practice pool automatically.
type Suggestion struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    int64  `gorm:"not null;index"`
	VideoURL  string `gorm:"not null"`
	Comment   string
	CreatedAt time.Time
}
