package models

import "time"

// GlobalChallenge is the single site-wide challenge for one calendar day.
type GlobalChallenge struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Date        time.Time `gorm:"uniqueIndex;not null" json:"date"`
	CreatedAt   time.Time `json:"createdAt"`

	// Relations
	Completions []Completion `gorm:"foreignKey:ChallengeID" json:"-"`
}
