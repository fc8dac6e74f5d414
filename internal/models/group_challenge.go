package models

import "time"

// GroupChallenge is a challenge created ad hoc by a group member.
type GroupChallenge struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	GroupID     uint64    `gorm:"not null;index" json:"groupId"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Date        time.Time `gorm:"not null" json:"date"`
	CreatedAt   time.Time `json:"createdAt"`

	// Relations
	Group       Group             `gorm:"foreignKey:GroupID" json:"-"`
	Completions []GroupCompletion `gorm:"foreignKey:ChallengeID" json:"completions,omitempty"`
}
