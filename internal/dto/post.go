package dto

import (
	"time"

	"github.com/comfortzone/comfortzone-api/internal/models"
)

// PostDTO represents a feed post in API responses
type PostDTO struct {
	ID        uint64        `json:"id"`
	Content   string        `json:"content"`
	Image     *string       `json:"image"`
	IsPublic  bool          `json:"isPublic"`
	User      PublicUserDTO `json:"user"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ToPostDTO converts a post to DTO
func ToPostDTO(post models.Post) PostDTO {
	return PostDTO{
		ID:        post.ID,
		Content:   post.Content,
		Image:     post.Image,
		IsPublic:  post.IsPublic,
		User:      ToPublicUserDTO(post.User),
		CreatedAt: post.CreatedAt,
	}
}

// ToPostDTOs converts a slice of posts
func ToPostDTOs(posts []models.Post) []PostDTO {
	dtos := make([]PostDTO, len(posts))
	for i, p := range posts {
		dtos[i] = ToPostDTO(p)
	}
	return dtos
}
