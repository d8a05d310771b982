package entity

import "time"

// BonusPractice is a supplementary video delivered right after its parent
// practice within the same send. Removed together with the parent.
type BonusPractice struct {
	ID                 uint   `gorm:"primaryKey"`
	ParentPracticeID   uint   `gorm:"not null;index"`
	Title              string `gorm:"not null"`
	VideoURL           string `gorm:"not null;uniqueIndex"`
	Duration           int    `gorm:"not null"`
	ChannelName        string `gorm:"not null"`
	Description        string
	CuratorDescription string
	Intensity          string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Parent Practice `gorm:"foreignKey:ParentPracticeID;constraint:OnDelete:CASCADE"`
}
