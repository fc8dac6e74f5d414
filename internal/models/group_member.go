package models

import "time"

// GroupMember authorizes a user's access to a group. Unique per (group, user).
type GroupMember struct {
	GroupID  uint64    `gorm:"primarykey" json:"groupId"`
	UserID   uint64    `gorm:"primarykey" json:"userId"`
	JoinedAt time.Time `json:"joinedAt"`

	// Relations
	Group Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
