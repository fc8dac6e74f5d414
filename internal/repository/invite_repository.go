package repository

import (
	"errors"
	"fmt"

	"github.com/comfortzone/comfortzone-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrResolveInvite is returned when updating the invite fails inside the resolution transaction.
	ErrResolveInvite = errors.New("invite repository: resolve invite failed")
	// ErrCreateMembership is returned when creating the membership fails inside the resolution transaction.
	ErrCreateMembership = errors.New("invite repository: create membership failed")
	// ErrCreateFriendship is returned when creating the friendship fails inside the resolution transaction.
	ErrCreateFriendship = errors.New("invite repository: create friendship failed")
)

// GormInviteRepository is a GORM implementation of InviteRepository
type GormInviteRepository struct {
	db *gorm.DB
}

// NewInviteRepository creates a new InviteRepository
func NewInviteRepository(db *gorm.DB) InviteRepository {
	return &GormInviteRepository{db: db}
}

// Create creates a pending invite
func (r *GormInviteRepository) Create(invite *models.Invite) error {
	if err := r.db.Create(invite).Error; err != nil {
		return err
	}
	return r.db.Preload("Sender").Preload("Group").First(invite, invite.ID).Error
}

// FindByID finds an invite with sender and group preloaded
func (r *GormInviteRepository) FindByID(id uint64) (*models.Invite, error) {
	var invite models.Invite
	if err := r.db.Preload("Sender").Preload("Group").
		First(&invite, id).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// FindPendingGroupInvite finds an unresolved invite to a group for an email
func (r *GormInviteRepository) FindPendingGroupInvite(recipientEmail string, groupID uint64) (*models.Invite, error) {
	var invite models.Invite
	if err := r.db.Where(
		"recipient_email = ? AND group_id = ? AND type = ? AND accepted IS NULL",
		recipientEmail, groupID, models.InviteTypeGroup,
	).First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// FindPendingFriendRequest finds an unresolved friend request from a sender
// to an email
func (r *GormInviteRepository) FindPendingFriendRequest(senderID uint64, recipientEmail string) (*models.Invite, error) {
	var invite models.Invite
	if err := r.db.Where(
		"sender_id = ? AND recipient_email = ? AND type = ? AND accepted IS NULL",
		senderID, recipientEmail, models.InviteTypeFriendRequest,
	).First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// ListForEmail lists invites addressed to an email, newest first
func (r *GormInviteRepository) ListForEmail(email string) ([]models.Invite, error) {
	var invites []models.Invite
	if err := r.db.Preload("Sender").Preload("Group").
		Where("recipient_email = ?", email).
		Order("created_at DESC").
		Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

// Resolve marks an invite responded and, on acceptance, creates the
// membership or friendship in the same transaction. A failure on any write
// rolls the whole response back: no invite may end up resolved without its
// side effect.
func (r *GormInviteRepository) Resolve(invite *models.Invite, accepted bool, member *models.GroupMember, friendship *models.Friendship) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Invite{}).
			Where("id = ?", invite.ID).
			Updates(map[string]interface{}{
				"accepted": accepted,
				"read":     true,
			}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrResolveInvite, err)
		}

		if member != nil {
			if err := tx.Create(member).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrCreateMembership, err)
			}
		}

		if friendship != nil {
			if err := tx.Create(friendship).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrCreateFriendship, err)
			}
		}

		return nil
	})
}
