package repository

import (
	"time"

	"github.com/comfortzone/comfortzone-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// Update persists changes to a user
	Update(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmailOrUsername finds a user matching the identifier as either
	// email or username
	FindByEmailOrUsername(identifier string) (*models.User, error)

	// FindByVerificationToken finds a user holding an unexpired verification token
	FindByVerificationToken(token string, now time.Time) (*models.User, error)
}

// ChallengeRepository defines the interface for global challenge and
// completion data access
type ChallengeRepository interface {
	// CreateGlobal creates a global challenge
	CreateGlobal(challenge *models.GlobalChallenge) error

	// FindGlobalByDate finds the unique global challenge for a calendar day
	FindGlobalByDate(date time.Time) (*models.GlobalChallenge, error)

	// LatestGlobal returns the global challenge with the most recent date
	LatestGlobal() (*models.GlobalChallenge, error)

	// FindCompletion finds a user's completion for a calendar day
	FindCompletion(userID uint64, date time.Time) (*models.Completion, error)

	// CreateCompletion creates a completion
	CreateCompletion(completion *models.Completion) error

	// UpdateCompletion persists changes to a completion
	UpdateCompletion(completion *models.Completion) error

	// ListCompletions returns every completion a user has recorded
	ListCompletions(userID uint64) ([]models.Completion, error)
}

// GroupRepository defines the interface for group, membership, group
// challenge, and group message data access
type GroupRepository interface {
	// CreateWithOwner creates a group and its owning membership atomically
	CreateWithOwner(group *models.Group, ownerID uint64) error

	// FindByID finds a group by ID
	FindByID(id uint64) (*models.Group, error)

	// FindByIDWithDetails finds a group with members, challenges, and
	// challenge completions preloaded
	FindByIDWithDetails(id uint64) (*models.Group, error)

	// ListForUser lists the memberships of a user with groups preloaded
	ListForUser(userID uint64) ([]models.GroupMember, error)

	// LatestChallenge returns a group's most recent challenge
	LatestChallenge(groupID uint64) (*models.GroupChallenge, error)

	// FindMember finds a specific group member
	FindMember(groupID, userID uint64) (*models.GroupMember, error)

	// AddMember adds a member to a group
	AddMember(member *models.GroupMember) error

	// CreateChallenge creates a group challenge
	CreateChallenge(challenge *models.GroupChallenge) error

	// FindChallenge finds a challenge belonging to a group
	FindChallenge(groupID, challengeID uint64) (*models.GroupChallenge, error)

	// FindGroupCompletion finds a member's completion for a calendar day
	FindGroupCompletion(userID uint64, date time.Time) (*models.GroupCompletion, error)

	// CreateGroupCompletion creates a group completion
	CreateGroupCompletion(completion *models.GroupCompletion) error

	// UpdateGroupCompletion persists changes to a group completion
	UpdateGroupCompletion(completion *models.GroupCompletion) error

	// CreateMessage creates a group message
	CreateMessage(message *models.GroupMessage) error

	// ListMessages returns the most recent messages of a group in ascending
	// creation order
	ListMessages(groupID uint64, limit int) ([]models.GroupMessage, error)
}

// InviteRepository defines the interface for invite data access
type InviteRepository interface {
	// Create creates a pending invite
	Create(invite *models.Invite) error

	// FindByID finds an invite with sender and group preloaded
	FindByID(id uint64) (*models.Invite, error)

	// FindPendingGroupInvite finds an unresolved invite to a group for an email
	FindPendingGroupInvite(recipientEmail string, groupID uint64) (*models.Invite, error)

	// FindPendingFriendRequest finds an unresolved friend request from a
	// sender to an email
	FindPendingFriendRequest(senderID uint64, recipientEmail string) (*models.Invite, error)

	// ListForEmail lists invites addressed to an email, newest first
	ListForEmail(email string) ([]models.Invite, error)

	// Resolve marks an invite responded and, on acceptance, creates the
	// membership or friendship in the same transaction
	Resolve(invite *models.Invite, accepted bool, member *models.GroupMember, friendship *models.Friendship) error
}

// SocialRepository defines the interface for friendship, direct message, and
// post data access
type SocialRepository interface {
	// FindFriendshipBetween finds the edge between two users, checked in both
	// directions
	FindFriendshipBetween(userID, friendID uint64) (*models.Friendship, error)

	// ListFriendships lists a user's friendship edges as either endpoint,
	// most recent conversation first
	ListFriendships(userID uint64) ([]models.Friendship, error)

	// FriendIDs returns the ids of a user's friends
	FriendIDs(userID uint64) ([]uint64, error)

	// CreateFriendship creates a friendship edge
	CreateFriendship(friendship *models.Friendship) error

	// TouchLastMessage updates a friendship's last-message timestamp
	TouchLastMessage(friendshipID uint64, at time.Time) error

	// CreateDirectMessage creates a direct message
	CreateDirectMessage(message *models.DirectMessage) error

	// ListDirectMessages returns a pair's history in ascending creation order
	ListDirectMessages(userID, friendID uint64) ([]models.DirectMessage, error)

	// CreatePost creates a post
	CreatePost(post *models.Post) error

	// ListPosts returns the newest posts visible to a user under the given
	// visibility filter
	ListPosts(filter PostFilter) ([]models.Post, error)
}

// PostVisibility selects which slice of the feed to return.
type PostVisibility string

const (
	PostVisibilityAll     PostVisibility = ""
	PostVisibilityPublic  PostVisibility = "public"
	PostVisibilityPrivate PostVisibility = "private"
)

// PostFilter holds feed query options.
type PostFilter struct {
	Visibility PostVisibility
	UserID     uint64
	FriendIDs  []uint64
	Limit      int
}
