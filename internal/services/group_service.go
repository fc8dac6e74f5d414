package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/comfortzone/comfortzone-api/internal/constants"
	"github.com/comfortzone/comfortzone-api/internal/models"
	"github.com/comfortzone/comfortzone-api/internal/repository"
	"github.com/comfortzone/comfortzone-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrGroupNotFound          = errors.New("group not found")
	ErrGroupNameRequired      = errors.New("group name is required")
	ErrNotGroupMember         = errors.New("you are not a member of this group")
	ErrGroupChallengeNotFound = errors.New("challenge not found")
	ErrInviteRecipientUnknown = errors.New("no account with that email")
	ErrAlreadyGroupMember     = errors.New("user is already a member of this group")
	ErrAlreadyInvited         = errors.New("an invite for this user is already pending")
	ErrInviteNotFound         = errors.New("invite not found")
	ErrNotInviteRecipient     = errors.New("invite is not addressed to you")
	ErrInviteAlreadyResolved  = errors.New("invite has already been responded to")
)

// GroupService handles groups, memberships, group challenges, messages, and
// the invite lifecycle.
type GroupService struct {
	groupRepo  repository.GroupRepository
	inviteRepo repository.InviteRepository
	userRepo   repository.UserRepository
	socialRepo repository.SocialRepository
}

// NewGroupService creates a new GroupService.
func NewGroupService(
	groupRepo repository.GroupRepository,
	inviteRepo repository.InviteRepository,
	userRepo repository.UserRepository,
	socialRepo repository.SocialRepository,
) *GroupService {
	return &GroupService{
		groupRepo:  groupRepo,
		inviteRepo: inviteRepo,
		userRepo:   userRepo,
		socialRepo: socialRepo,
	}
}

// CreateGroup creates a group and its owning membership. Both writes happen
// in one transaction so a failure leaves no ownerless group.
func (s *GroupService) CreateGroup(ownerID uint64, name, description string) (*models.Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrGroupNameRequired
	}

	group := &models.Group{
		Name:        name,
		Description: description,
	}

	if err := s.groupRepo.CreateWithOwner(group, ownerID); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return group, nil
}

// GroupSummary is a group with its most recent challenge.
type GroupSummary struct {
	Group            models.Group
	CurrentChallenge *models.GroupChallenge
}

// MyGroups lists the groups the user belongs to, each with its latest
// challenge.
func (s *GroupService) MyGroups(userID uint64) ([]GroupSummary, error) {
	memberships, err := s.groupRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	summaries := make([]GroupSummary, 0, len(memberships))
	for _, m := range memberships {
		summary := GroupSummary{Group: m.Group}

		challenge, err := s.groupRepo.LatestChallenge(m.GroupID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find latest challenge: %w", err)
		}
		if err == nil {
			summary.CurrentChallenge = challenge
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetGroup returns a group with its members and challenges.
func (s *GroupService) GetGroup(id uint64) (*models.Group, error) {
	group, err := s.groupRepo.FindByIDWithDetails(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}
	return group, nil
}

// CreateChallenge creates a challenge in a group. The date defaults to now
// when omitted.
func (s *GroupService) CreateChallenge(groupID uint64, title, description string, date *time.Time) (*models.GroupChallenge, error) {
	challengeDate := time.Now()
	if date != nil {
		challengeDate = *date
	}

	challenge := &models.GroupChallenge{
		GroupID:     groupID,
		Title:       title,
		Description: description,
		Date:        challengeDate,
	}

	if err := s.groupRepo.CreateChallenge(challenge); err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}
	return challenge, nil
}

// CompleteChallenge upserts the member's completion for a group challenge,
// keyed by the challenge's calendar day.
func (s *GroupService) CompleteChallenge(userID, groupID, challengeID uint64) (*models.GroupCompletion, bool, error) {
	challenge, err := s.groupRepo.FindChallenge(groupID, challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrGroupChallengeNotFound
		}
		return nil, false, fmt.Errorf("failed to find challenge: %w", err)
	}

	day := utils.DayUTC(challenge.Date)
	now := time.Now()

	existing, err := s.groupRepo.FindGroupCompletion(userID, day)
	if err == nil {
		existing.ChallengeID = challenge.ID
		existing.Completed = true
		existing.CompletedAt = now
		if err := s.groupRepo.UpdateGroupCompletion(existing); err != nil {
			return nil, false, fmt.Errorf("failed to update completion: %w", err)
		}
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to find completion: %w", err)
	}

	completion := &models.GroupCompletion{
		UserID:      userID,
		ChallengeID: challenge.ID,
		Date:        day,
		Completed:   true,
		CompletedAt: now,
	}
	if err := s.groupRepo.CreateGroupCompletion(completion); err != nil {
		return nil, false, fmt.Errorf("failed to create completion: %w", err)
	}
	return completion, true, nil
}

// SendMessage posts a message to the group chat.
func (s *GroupService) SendMessage(groupID, senderID uint64, content string) (*models.GroupMessage, error) {
	message := &models.GroupMessage{
		GroupID:  groupID,
		SenderID: senderID,
		Content:  content,
	}

	if err := s.groupRepo.CreateMessage(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return message, nil
}

// ListMessages returns the newest window of the group chat in ascending
// order.
func (s *GroupService) ListMessages(groupID uint64) ([]models.GroupMessage, error) {
	messages, err := s.groupRepo.ListMessages(groupID, constants.GroupMessageWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// Invite creates a pending group invite for the holder of an email address.
func (s *GroupService) Invite(groupID uint64, sender *models.User, recipientEmail string) (*models.Invite, error) {
	recipientEmail = strings.TrimSpace(strings.ToLower(recipientEmail))

	recipient, err := s.userRepo.FindByEmail(recipientEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteRecipientUnknown
		}
		return nil, fmt.Errorf("failed to find recipient: %w", err)
	}

	if _, err := s.groupRepo.FindMember(groupID, recipient.ID); err == nil {
		return nil, ErrAlreadyGroupMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	if _, err := s.inviteRepo.FindPendingGroupInvite(recipientEmail, groupID); err == nil {
		return nil, ErrAlreadyInvited
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check pending invites: %w", err)
	}

	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to find group: %w", err)
	}

	invite := &models.Invite{
		Type:           models.InviteTypeGroup,
		SenderID:       sender.ID,
		RecipientEmail: recipientEmail,
		GroupID:        &groupID,
		Message:        fmt.Sprintf("%s invited you to join %s!", senderName(sender), group.Name),
	}

	if err := s.inviteRepo.Create(invite); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}
	return invite, nil
}

// MyInvites lists the invites addressed to an email, newest first.
func (s *GroupService) MyInvites(email string) ([]models.Invite, error) {
	invites, err := s.inviteRepo.ListForEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	return invites, nil
}

// RespondToInvite records the recipient's single response to an invite. Only
// the addressed recipient may respond, and only once. Accepting a group
// invite creates the membership; accepting a friend request creates the
// friendship edge. Resolution and side effect commit together.
func (s *GroupService) RespondToInvite(inviteID uint64, responder *models.User, accepted bool) (*models.Invite, error) {
	invite, err := s.inviteRepo.FindByID(inviteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to find invite: %w", err)
	}

	if !strings.EqualFold(invite.RecipientEmail, responder.Email) {
		return nil, ErrNotInviteRecipient
	}
	if !invite.Pending() {
		return nil, ErrInviteAlreadyResolved
	}

	var member *models.GroupMember
	var friendship *models.Friendship

	if accepted {
		switch invite.Type {
		case models.InviteTypeGroup:
			if invite.GroupID == nil {
				return nil, fmt.Errorf("group invite %d has no group", invite.ID)
			}
			if _, err := s.groupRepo.FindMember(*invite.GroupID, responder.ID); err == nil {
				return nil, ErrAlreadyGroupMember
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check membership: %w", err)
			}
			member = &models.GroupMember{
				GroupID:  *invite.GroupID,
				UserID:   responder.ID,
				JoinedAt: time.Now(),
			}
		case models.InviteTypeFriendRequest:
			if _, err := s.socialRepo.FindFriendshipBetween(invite.SenderID, responder.ID); err == nil {
				// Edge already exists; resolving the invite is all that is left.
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check friendship: %w", err)
			} else {
				friendship = &models.Friendship{
					UserID:   invite.SenderID,
					FriendID: responder.ID,
				}
			}
		default:
			return nil, fmt.Errorf("unknown invite type %q", invite.Type)
		}
	}

	if err := s.inviteRepo.Resolve(invite, accepted, member, friendship); err != nil {
		return nil, fmt.Errorf("failed to resolve invite: %w", err)
	}

	invite.Accepted = &accepted
	invite.Read = true
	return invite, nil
}

func senderName(user *models.User) string {
	if user.Username != "" {
		return user.Username
	}
	return user.Email
}
