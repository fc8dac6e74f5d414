package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/comfortzone/comfortzone-api/internal/constants"
	"github.com/comfortzone/comfortzone-api/internal/models"
	"github.com/comfortzone/comfortzone-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrRecipientNotFound    = errors.New("user not found")
	ErrSelfFriendRequest    = errors.New("you cannot add yourself as a friend")
	ErrAlreadyFriends       = errors.New("you are already friends with this user")
	ErrFriendRequestPending = errors.New("friend request already sent")
	ErrNotFriends           = errors.New("you can only message your friends")
	ErrPostContentRequired  = errors.New("post content is required")
)

// SocialService handles friendships, direct messages, the posts feed, and
// public profiles.
type SocialService struct {
	userRepo      repository.UserRepository
	socialRepo    repository.SocialRepository
	inviteRepo    repository.InviteRepository
	challengeRepo repository.ChallengeRepository
}

// NewSocialService creates a new SocialService.
func NewSocialService(
	userRepo repository.UserRepository,
	socialRepo repository.SocialRepository,
	inviteRepo repository.InviteRepository,
	challengeRepo repository.ChallengeRepository,
) *SocialService {
	return &SocialService{
		userRepo:      userRepo,
		socialRepo:    socialRepo,
		inviteRepo:    inviteRepo,
		challengeRepo: challengeRepo,
	}
}

// SendFriendRequest creates a friend_request invite addressed to the
// recipient's email.
func (s *SocialService) SendFriendRequest(sender *models.User, recipientUsername string) (*models.Invite, error) {
	recipient, err := s.userRepo.FindByUsername(strings.TrimSpace(recipientUsername))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to find recipient: %w", err)
	}

	if recipient.ID == sender.ID {
		return nil, ErrSelfFriendRequest
	}

	if _, err := s.socialRepo.FindFriendshipBetween(sender.ID, recipient.ID); err == nil {
		return nil, ErrAlreadyFriends
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}

	if _, err := s.inviteRepo.FindPendingFriendRequest(sender.ID, recipient.Email); err == nil {
		return nil, ErrFriendRequestPending
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}

	invite := &models.Invite{
		Type:           models.InviteTypeFriendRequest,
		SenderID:       sender.ID,
		RecipientEmail: recipient.Email,
		Message:        fmt.Sprintf("%s wants to be your friend!", senderName(sender)),
	}

	if err := s.inviteRepo.Create(invite); err != nil {
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}
	return invite, nil
}

// ListFriends returns the other endpoint of each friendship edge, most
// recent conversation first, de-duplicated by user id.
func (s *SocialService) ListFriends(userID uint64) ([]models.User, error) {
	friendships, err := s.socialRepo.ListFriendships(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}

	seen := make(map[uint64]bool, len(friendships))
	friends := make([]models.User, 0, len(friendships))
	for _, f := range friendships {
		other := f.Friend
		if f.UserID != userID {
			other = f.User
		}
		if seen[other.ID] {
			continue
		}
		seen[other.ID] = true
		friends = append(friends, other)
	}
	return friends, nil
}

// FriendsOf returns the friends of the user holding a username.
func (s *SocialService) FriendsOf(username string) ([]models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return s.ListFriends(user.ID)
}

// SendDirectMessage delivers a private message between friends and bumps the
// conversation's recency.
func (s *SocialService) SendDirectMessage(senderID, recipientID uint64, content string) (*models.DirectMessage, error) {
	friendship, err := s.socialRepo.FindFriendshipBetween(senderID, recipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFriends
		}
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}

	message := &models.DirectMessage{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}
	if err := s.socialRepo.CreateDirectMessage(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if err := s.socialRepo.TouchLastMessage(friendship.ID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to update conversation time: %w", err)
	}

	return message, nil
}

// ListDirectMessages returns the full conversation between two friends in
// ascending order.
func (s *SocialService) ListDirectMessages(userID, friendID uint64) ([]models.DirectMessage, error) {
	if _, err := s.socialRepo.FindFriendshipBetween(userID, friendID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFriends
		}
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}

	messages, err := s.socialRepo.ListDirectMessages(userID, friendID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// Profile returns a user's public profile with their current streak.
func (s *SocialService) Profile(username string) (*models.User, int, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrRecipientNotFound
		}
		return nil, 0, fmt.Errorf("failed to find user: %w", err)
	}

	completions, err := s.challengeRepo.ListCompletions(user.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list completions: %w", err)
	}

	return user, streakFrom(completions, time.Now()), nil
}

// CreatePost publishes a post to the feed.
func (s *SocialService) CreatePost(userID uint64, content string, image *string, isPublic bool) (*models.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrPostContentRequired
	}

	post := &models.Post{
		UserID:   userID,
		Content:  content,
		Image:    image,
		IsPublic: isPublic,
	}
	if err := s.socialRepo.CreatePost(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// ListPosts returns the feed visible to a user. "public" is everyone's
// public posts; "private" is the user's own posts plus friends' private
// posts; anything else is both.
func (s *SocialService) ListPosts(userID uint64, visibility repository.PostVisibility) ([]models.Post, error) {
	filter := repository.PostFilter{
		Visibility: visibility,
		UserID:     userID,
		Limit:      constants.PostFeedLimit,
	}

	if visibility != repository.PostVisibilityPublic {
		friendIDs, err := s.socialRepo.FriendIDs(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list friends: %w", err)
		}
		filter.FriendIDs = friendIDs
	}

	posts, err := s.socialRepo.ListPosts(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}
