package models

import "time"

// Friendship is stored as a directed edge but treated as symmetric: either
// endpoint may message the other. LastMessageTime orders conversation lists.
type Friendship struct {
	ID              uint64     `gorm:"primarykey" json:"id"`
	UserID          uint64     `gorm:"not null;uniqueIndex:idx_friendships_pair" json:"userId"`
	FriendID        uint64     `gorm:"not null;uniqueIndex:idx_friendships_pair" json:"friendId"`
	LastMessageTime *time.Time `json:"lastMessageTime"`
	CreatedAt       time.Time  `json:"createdAt"`

	// Relations
	User   User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Friend User `gorm:"foreignKey:FriendID" json:"friend,omitempty"`
}
