package models

import "time"

// GroupCompletion records a member's done-state for a group challenge, keyed
// by (user, challenge date) like global completions.
type GroupCompletion struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint64    `gorm:"not null;uniqueIndex:idx_group_completions_user_date" json:"userId"`
	ChallengeID uint64    `gorm:"not null" json:"challengeId"`
	Date        time.Time `gorm:"not null;uniqueIndex:idx_group_completions_user_date" json:"date"`
	Completed   bool      `gorm:"not null" json:"completed"`
	CompletedAt time.Time `gorm:"not null" json:"completedAt"`

	// Relations
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	Challenge GroupChallenge `gorm:"foreignKey:ChallengeID" json:"-"`
}
