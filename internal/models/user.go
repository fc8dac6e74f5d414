package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID                      uint64         `gorm:"primarykey" json:"id"`
	Email                   string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username                string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash            string         `gorm:"type:varchar(255);not null" json:"-"`
	ProfilePicture          *string        `gorm:"type:text" json:"profilePicture"`
	Bio                     *string        `gorm:"type:text" json:"bio"`
	EmailVerified           bool           `gorm:"not null;default:false" json:"emailVerified"`
	VerificationToken       *string        `gorm:"type:varchar(64);index" json:"-"`
	VerificationTokenExpiry *time.Time     `json:"-"`
	CreatedAt               time.Time      `json:"createdAt"`
	UpdatedAt               time.Time      `json:"updatedAt"`
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Completions []Completion  `gorm:"foreignKey:UserID" json:"-"`
	Memberships []GroupMember `gorm:"foreignKey:UserID" json:"-"`
	Posts       []Post        `gorm:"foreignKey:UserID" json:"-"`
}
