package models

import (
	"time"

	"gorm.io/gorm"
)

type Group struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members    []GroupMember    `gorm:"foreignKey:GroupID" json:"members,omitempty"`
	Challenges []GroupChallenge `gorm:"foreignKey:GroupID" json:"challenges,omitempty"`
	Messages   []GroupMessage   `gorm:"foreignKey:GroupID" json:"messages,omitempty"`
}
