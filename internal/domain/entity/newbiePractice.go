package entity

import "time"

// NewbiePractice is an entry of the fixed first-weeks curriculum. Number is
// the position in the sequence (1..28), not a calendar weekday.
type NewbiePractice struct {
	ID                 uint   `gorm:"primaryKey"`
	Number             int    `gorm:"not null;uniqueIndex;check:number >= 1 AND number <= 28"`
	Title              string `gorm:"not null"`
	VideoURL           string `gorm:"not null;uniqueIndex"`
	Duration           int    `gorm:"not null"`
	ChannelName        string `gorm:"not null"`
	Description        string
	CuratorDescription string
	Intensity          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
