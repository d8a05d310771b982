package entity

import "time"

// Practice is a single video-based yoga session deliverable to users.
// Weekday is 1 (Monday) through 7 (Sunday); nil means "any day" — such
// practices are used as a fallback when a weekday has no pool of its own.
type Practice struct {
	ID                 uint   `gorm:"primaryKey"`
	Title              string `gorm:"not null"`
	VideoURL           string `gorm:"not null;uniqueIndex"`
	Duration           int    `gorm:"not null"`
	ChannelName        string `gorm:"not null"`
	Description        string
	CuratorDescription string
	Intensity          string
	Weekday            *int `gorm:"index;check:weekday >= 1 AND weekday <= 7"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
