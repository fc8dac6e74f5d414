package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/comfortzone/comfortzone-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateGroup is returned when creating the group fails inside the creation transaction.
	ErrCreateGroup = errors.New("group repository: create group failed")
	// ErrCreateGroupMember is returned when creating the owning membership fails inside the creation transaction.
	ErrCreateGroupMember = errors.New("group repository: create group member failed")
)

// GormGroupRepository is a GORM implementation of GroupRepository
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &GormGroupRepository{db: db}
}

// CreateWithOwner creates a group and its owning membership atomically. A
// failure on either write rolls back both: no group may exist without at
// least one member.
func (r *GormGroupRepository) CreateWithOwner(group *models.Group, ownerID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateGroup, err)
		}

		member := &models.GroupMember{
			GroupID:  group.ID,
			UserID:   ownerID,
			JoinedAt: time.Now(),
		}

		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateGroupMember, err)
		}

		return nil
	})
}

// FindByID finds a group by ID
func (r *GormGroupRepository) FindByID(id uint64) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// FindByIDWithDetails finds a group with members, challenges, and challenge
// completions preloaded
func (r *GormGroupRepository) FindByIDWithDetails(id uint64) (*models.Group, error) {
	var group models.Group
	if err := r.db.
		Preload("Members.User").
		Preload("Challenges", func(db *gorm.DB) *gorm.DB {
			return db.Order("group_challenges.date DESC")
		}).
		Preload("Challenges.Completions").
		First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// ListForUser lists the memberships of a user with groups preloaded
func (r *GormGroupRepository) ListForUser(userID uint64) ([]models.GroupMember, error) {
	var memberships []models.GroupMember
	if err := r.db.Preload("Group").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// LatestChallenge returns a group's most recent challenge
func (r *GormGroupRepository) LatestChallenge(groupID uint64) (*models.GroupChallenge, error) {
	var challenge models.GroupChallenge
	if err := r.db.Where("group_id = ?", groupID).
		Order("date DESC").
		First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

// FindMember finds a specific group member
func (r *GormGroupRepository) FindMember(groupID, userID uint64) (*models.GroupMember, error) {
	var member models.GroupMember
	if err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// AddMember adds a member to a group
func (r *GormGroupRepository) AddMember(member *models.GroupMember) error {
	return r.db.Create(member).Error
}

// CreateChallenge creates a group challenge
func (r *GormGroupRepository) CreateChallenge(challenge *models.GroupChallenge) error {
	return r.db.Create(challenge).Error
}

// FindChallenge finds a challenge belonging to a group
func (r *GormGroupRepository) FindChallenge(groupID, challengeID uint64) (*models.GroupChallenge, error) {
	var challenge models.GroupChallenge
	if err := r.db.Where("id = ? AND group_id = ?", challengeID, groupID).
		First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

// FindGroupCompletion finds a member's completion for a calendar day
func (r *GormGroupRepository) FindGroupCompletion(userID uint64, date time.Time) (*models.GroupCompletion, error) {
	var completion models.GroupCompletion
	if err := r.db.Where("user_id = ? AND date = ?", userID, date).
		First(&completion).Error; err != nil {
		return nil, err
	}
	return &completion, nil
}

// CreateGroupCompletion creates a group completion
func (r *GormGroupRepository) CreateGroupCompletion(completion *models.GroupCompletion) error {
	return r.db.Create(completion).Error
}

// UpdateGroupCompletion persists changes to a group completion
func (r *GormGroupRepository) UpdateGroupCompletion(completion *models.GroupCompletion) error {
	return r.db.Save(completion).Error
}

// CreateMessage creates a group message
func (r *GormGroupRepository) CreateMessage(message *models.GroupMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return err
	}
	return r.db.Preload("Sender").First(message, message.ID).Error
}

// ListMessages returns the most recent messages of a group in ascending
// creation order. The window is the newest `limit` messages, not a cursor.
func (r *GormGroupRepository) ListMessages(groupID uint64, limit int) ([]models.GroupMessage, error) {
	var messages []models.GroupMessage
	if err := r.db.Preload("Sender").
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}

	// Reverse into ascending order for display.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
