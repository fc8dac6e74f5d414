package repository

import (
	"time"

	"github.com/comfortzone/comfortzone-api/internal/models"
	"gorm.io/gorm"
)

// GormSocialRepository is a GORM implementation of SocialRepository
type GormSocialRepository struct {
	db *gorm.DB
}

// NewSocialRepository creates a new SocialRepository
func NewSocialRepository(db *gorm.DB) SocialRepository {
	return &GormSocialRepository{db: db}
}

// FindFriendshipBetween finds the edge between two users. Edges are stored
// directed but mean the same thing either way round, so both orderings are
// checked here and nowhere else.
func (r *GormSocialRepository) FindFriendshipBetween(userID, friendID uint64) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := r.db.Where(
		"(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		userID, friendID, friendID, userID,
	).First(&friendship).Error; err != nil {
		return nil, err
	}
	return &friendship, nil
}

// ListFriendships lists a user's friendship edges as either endpoint, most
// recent conversation first
func (r *GormSocialRepository) ListFriendships(userID uint64) ([]models.Friendship, error) {
	var friendships []models.Friendship
	if err := r.db.Preload("User").Preload("Friend").
		Where("user_id = ? OR friend_id = ?", userID, userID).
		Order("last_message_time DESC").
		Find(&friendships).Error; err != nil {
		return nil, err
	}
	return friendships, nil
}

// FriendIDs returns the ids of a user's friends
func (r *GormSocialRepository) FriendIDs(userID uint64) ([]uint64, error) {
	var friendships []models.Friendship
	if err := r.db.Select("user_id", "friend_id").
		Where("user_id = ? OR friend_id = ?", userID, userID).
		Find(&friendships).Error; err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(friendships))
	for _, f := range friendships {
		if f.UserID == userID {
			ids = append(ids, f.FriendID)
		} else {
			ids = append(ids, f.UserID)
		}
	}
	return ids, nil
}

// CreateFriendship creates a friendship edge
func (r *GormSocialRepository) CreateFriendship(friendship *models.Friendship) error {
	return r.db.Create(friendship).Error
}

// TouchLastMessage updates a friendship's last-message timestamp
func (r *GormSocialRepository) TouchLastMessage(friendshipID uint64, at time.Time) error {
	return r.db.Model(&models.Friendship{}).
		Where("id = ?", friendshipID).
		Update("last_message_time", at).Error
}

// CreateDirectMessage creates a direct message
func (r *GormSocialRepository) CreateDirectMessage(message *models.DirectMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return err
	}
	return r.db.Preload("Sender").First(message, message.ID).Error
}

// ListDirectMessages returns a pair's history in ascending creation order
func (r *GormSocialRepository) ListDirectMessages(userID, friendID uint64) ([]models.DirectMessage, error) {
	var messages []models.DirectMessage
	if err := r.db.Preload("Sender").
		Where(
			"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, friendID, friendID, userID,
		).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// CreatePost creates a post
func (r *GormSocialRepository) CreatePost(post *models.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return err
	}
	return r.db.Preload("User").First(post, post.ID).Error
}

// ListPosts returns the newest posts visible to a user under the given
// visibility filter
func (r *GormSocialRepository) ListPosts(filter PostFilter) ([]models.Post, error) {
	query := r.db.Model(&models.Post{}).Preload("User")

	switch filter.Visibility {
	case PostVisibilityPublic:
		query = query.Where("is_public = ?", true)
	case PostVisibilityPrivate:
		if len(filter.FriendIDs) > 0 {
			query = query.Where(
				"user_id = ? OR (user_id IN ? AND is_public = ?)",
				filter.UserID, filter.FriendIDs, false,
			)
		} else {
			query = query.Where("user_id = ?", filter.UserID)
		}
	default:
		if len(filter.FriendIDs) > 0 {
			query = query.Where(
				"is_public = ? OR user_id = ? OR (user_id IN ? AND is_public = ?)",
				true, filter.UserID, filter.FriendIDs, false,
			)
		} else {
			query = query.Where("is_public = ? OR user_id = ?", true, filter.UserID)
		}
	}

	var posts []models.Post
	if err := query.Order("created_at DESC").
		Limit(filter.Limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
