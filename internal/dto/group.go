package dto

import (
	"time"

	"github.com/comfortzone/comfortzone-api/internal/models"
	"github.com/comfortzone/comfortzone-api/internal/services"
)

// GroupChallengeDTO represents a group challenge in API responses
type GroupChallengeDTO struct {
	ID          uint64               `json:"id"`
	GroupID     uint64               `json:"groupId"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Date        time.Time            `json:"date"`
	Completions []GroupCompletionDTO `json:"completions"`
}

// GroupCompletionDTO represents a member's completion of a group challenge
type GroupCompletionDTO struct {
	UserID      uint64    `json:"userId"`
	Completed   bool      `json:"completed"`
	CompletedAt time.Time `json:"completedAt"`
}

// GroupMemberDTO represents a member in a group detail response
type GroupMemberDTO struct {
	User     PublicUserDTO `json:"user"`
	JoinedAt time.Time     `json:"joinedAt"`
}

// GroupSummaryDTO represents a group in the caller's group list
type GroupSummaryDTO struct {
	ID               uint64             `json:"id"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	CurrentChallenge *GroupChallengeDTO `json:"currentChallenge"`
}

// GroupDetailDTO represents a group with members and challenges
type GroupDetailDTO struct {
	ID          uint64              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	CreatedAt   time.Time           `json:"createdAt"`
	Members     []GroupMemberDTO    `json:"members"`
	Challenges  []GroupChallengeDTO `json:"challenges"`
}

// ToGroupChallengeDTO converts a group challenge to DTO
func ToGroupChallengeDTO(challenge models.GroupChallenge) GroupChallengeDTO {
	completions := make([]GroupCompletionDTO, len(challenge.Completions))
	for i, c := range challenge.Completions {
		completions[i] = GroupCompletionDTO{
			UserID:      c.UserID,
			Completed:   c.Completed,
			CompletedAt: c.CompletedAt,
		}
	}

	return GroupChallengeDTO{
		ID:          challenge.ID,
		GroupID:     challenge.GroupID,
		Title:       challenge.Title,
		Description: challenge.Description,
		Date:        challenge.Date,
		Completions: completions,
	}
}

// ToGroupSummaryDTO converts a group summary to DTO
func ToGroupSummaryDTO(summary services.GroupSummary) GroupSummaryDTO {
	dto := GroupSummaryDTO{
		ID:          summary.Group.ID,
		Name:        summary.Group.Name,
		Description: summary.Group.Description,
	}
	if summary.CurrentChallenge != nil {
		challenge := ToGroupChallengeDTO(*summary.CurrentChallenge)
		dto.CurrentChallenge = &challenge
	}
	return dto
}

// ToGroupDetailDTO converts a group with preloaded relations to DTO
func ToGroupDetailDTO(group models.Group) GroupDetailDTO {
	members := make([]GroupMemberDTO, len(group.Members))
	for i, m := range group.Members {
		members[i] = GroupMemberDTO{
			User:     ToPublicUserDTO(m.User),
			JoinedAt: m.JoinedAt,
		}
	}

	challenges := make([]GroupChallengeDTO, len(group.Challenges))
	for i, ch := range group.Challenges {
		challenges[i] = ToGroupChallengeDTO(ch)
	}

	return GroupDetailDTO{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		CreatedAt:   group.CreatedAt,
		Members:     members,
		Challenges:  challenges,
	}
}
