package entity

import "time"

// PracticeLog is the delivery ledger: one row per successful send. A row is
// created just before the send so its id can ride in the done-button
// callback; a failed send removes it again. The only mutation a surviving
// row ever sees is flipping Completed when the user presses the button.
type PracticeLog struct {
	ID         uint  `gorm:"primaryKey"`
	UserID     int64 `gorm:"not null;index"`
	PracticeID uint  `gorm:"not null;index"`
	DayNumber  int   `gorm:"not null"`
	Completed  bool  `gorm:"not null;default:false"`
	SentAt     time.Time
}
