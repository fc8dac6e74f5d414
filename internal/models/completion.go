package models

import "time"

// Completion records a user's done-state for the global challenge of one
// calendar day. At most one row per (user, date); a second submission for the
// same day updates the existing row.
type Completion struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint64    `gorm:"not null;uniqueIndex:idx_completions_user_date" json:"userId"`
	ChallengeID uint64    `gorm:"not null" json:"challengeId"`
	Date        time.Time `gorm:"not null;uniqueIndex:idx_completions_user_date" json:"date"`
	Completed   bool      `gorm:"not null" json:"completed"`
	CompletedAt time.Time `gorm:"not null" json:"completedAt"`

	// Relations
	User      User            `gorm:"foreignKey:UserID" json:"-"`
	Challenge GlobalChallenge `gorm:"foreignKey:ChallengeID" json:"-"`
}
