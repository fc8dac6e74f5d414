package models

import "time"

type InviteType string

const (
	InviteTypeGroup         InviteType = "group_invite"
	InviteTypeFriendRequest InviteType = "friend_request"
)

// Invite is a pending action addressed to a recipient's email: a group
// invitation or a friend request. Accepted is tri-state: nil while pending,
// then set exactly once by the recipient's response.
type Invite struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	Type           InviteType `gorm:"type:varchar(20);not null" json:"type"`
	SenderID       uint64     `gorm:"not null" json:"senderId"`
	RecipientEmail string     `gorm:"type:varchar(255);not null;index" json:"recipientEmail"`
	GroupID        *uint64    `gorm:"index" json:"groupId"`
	Message        string     `gorm:"type:text" json:"message"`
	Accepted       *bool      `json:"accepted"`
	Read           bool       `gorm:"not null;default:false" json:"read"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	// Relations
	Sender User   `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Group  *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

// Pending reports whether the invite has not been responded to yet.
func (i *Invite) Pending() bool {
	return i.Accepted == nil
}
