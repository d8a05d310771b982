package entity

import "time"

// User is a subscriber of the daily delivery.
// ID is the telegram user id, so autoincrement is disabled.
type User struct {
	ID                int64  `gorm:"primaryKey;autoIncrement:false"`
	ChatID            int64  `gorm:"not null"`
	NotifyTime        string `gorm:"size:5;not null;index"`
	Name              string
	Days              int `gorm:"not null;default:0"`
	ChallengeStartID  *uint
	ChallengeStartDay *int
	ProgressResetAt   *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// InChallenge reports whether delivery order is pinned to a starting
// practice id instead of the weekday schedule.
func (u *User) InChallenge() bool {
	return u.ChallengeStartID != nil
}
