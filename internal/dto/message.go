package dto

import (
	"time"

	"github.com/comfortzone/comfortzone-api/internal/models"
)

// GroupMessageDTO represents a group chat message in API responses
type GroupMessageDTO struct {
	ID        uint64        `json:"id"`
	GroupID   uint64        `json:"groupId"`
	Content   string        `json:"content"`
	Sender    PublicUserDTO `json:"sender"`
	CreatedAt time.Time     `json:"createdAt"`
}

// DirectMessageDTO represents a private message in API responses
type DirectMessageDTO struct {
	ID          uint64        `json:"id"`
	SenderID    uint64        `json:"senderId"`
	RecipientID uint64        `json:"recipientId"`
	Content     string        `json:"content"`
	Sender      PublicUserDTO `json:"sender"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// ToGroupMessageDTO converts a group message to DTO
func ToGroupMessageDTO(message models.GroupMessage) GroupMessageDTO {
	return GroupMessageDTO{
		ID:        message.ID,
		GroupID:   message.GroupID,
		Content:   message.Content,
		Sender:    ToPublicUserDTO(message.Sender),
		CreatedAt: message.CreatedAt,
	}
}

// ToGroupMessageDTOs converts a slice of group messages
func ToGroupMessageDTOs(messages []models.GroupMessage) []GroupMessageDTO {
	dtos := make([]GroupMessageDTO, len(messages))
	for i, m := range messages {
		dtos[i] = ToGroupMessageDTO(m)
	}
	return dtos
}

// ToDirectMessageDTO converts a direct message to DTO
func ToDirectMessageDTO(message models.DirectMessage) DirectMessageDTO {
	return DirectMessageDTO{
		ID:          message.ID,
		SenderID:    message.SenderID,
		RecipientID: message.RecipientID,
		Content:     message.Content,
		Sender:      ToPublicUserDTO(message.Sender),
		CreatedAt:   message.CreatedAt,
	}
}

// ToDirectMessageDTOs converts a slice of direct messages
func ToDirectMessageDTOs(messages []models.DirectMessage) []DirectMessageDTO {
	dtos := make([]DirectMessageDTO, len(messages))
	for i, m := range messages {
		dtos[i] = ToDirectMessageDTO(m)
	}
	return dtos
}
