package dto

import (
	"time"

	"github.com/comfortzone/comfortzone-api/internal/models"
)

// InviteSenderDTO identifies the sender of an invite.
type InviteSenderDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// InviteGroupDTO names the group an invite points at.
type InviteGroupDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// InviteDTO represents an invite in API responses
type InviteDTO struct {
	ID        uint64            `json:"id"`
	Type      models.InviteType `json:"type"`
	Sender    InviteSenderDTO   `json:"sender"`
	Group     *InviteGroupDTO   `json:"group"`
	Message   string            `json:"message"`
	Accepted  *bool             `json:"accepted"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ToInviteDTO converts an invite with preloaded relations to DTO
func ToInviteDTO(invite models.Invite) InviteDTO {
	dto := InviteDTO{
		ID:   invite.ID,
		Type: invite.Type,
		Sender: InviteSenderDTO{
			Username: invite.Sender.Username,
			Email:    invite.Sender.Email,
		},
		Message:   invite.Message,
		Accepted:  invite.Accepted,
		Read:      invite.Read,
		CreatedAt: invite.CreatedAt,
	}

	if invite.Group != nil {
		dto.Group = &InviteGroupDTO{
			ID:   invite.Group.ID,
			Name: invite.Group.Name,
		}
	}
	return dto
}

// ToInviteDTOs converts a slice of invites
func ToInviteDTOs(invites []models.Invite) []InviteDTO {
	dtos := make([]InviteDTO, len(invites))
	for i, invite := range invites {
		dtos[i] = ToInviteDTO(invite)
	}
	return dtos
}
