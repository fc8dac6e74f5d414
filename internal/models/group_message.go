package models

import "time"

type GroupMessage struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	GroupID   uint64    `gorm:"not null;index" json:"groupId"`
	SenderID  uint64    `gorm:"not null" json:"senderId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Group  Group `gorm:"foreignKey:GroupID" json:"-"`
	Sender User  `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
