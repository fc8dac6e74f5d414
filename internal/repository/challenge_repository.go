package repository

import (
	"time"

	"github.com/comfortzone/comfortzone-api/internal/models"
	"gorm.io/gorm"
)

// GormChallengeRepository is a GORM implementation of ChallengeRepository
type GormChallengeRepository struct {
	db *gorm.DB
}

// NewChallengeRepository creates a new ChallengeRepository
func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &GormChallengeRepository{db: db}
}

// CreateGlobal creates a global challenge
func (r *GormChallengeRepository) CreateGlobal(challenge *models.GlobalChallenge) error {
	return r.db.Create(challenge).Error
}

// FindGlobalByDate finds the unique global challenge for a calendar day
func (r *GormChallengeRepository) FindGlobalByDate(date time.Time) (*models.GlobalChallenge, error) {
	var challenge models.GlobalChallenge
	if err := r.db.Where("date = ?", date).First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

// LatestGlobal returns the global challenge with the most recent date
func (r *GormChallengeRepository) LatestGlobal() (*models.GlobalChallenge, error) {
	var challenge models.GlobalChallenge
	if err := r.db.Order("date DESC").First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

// FindCompletion finds a user's completion for a calendar day
func (r *GormChallengeRepository) FindCompletion(userID uint64, date time.Time) (*models.Completion, error) {
	var completion models.Completion
	if err := r.db.Where("user_id = ? AND date = ?", userID, date).
		First(&completion).Error; err != nil {
		return nil, err
	}
	return &completion, nil
}

// CreateCompletion creates a completion
func (r *GormChallengeRepository) CreateCompletion(completion *models.Completion) error {
	return r.db.Create(completion).Error
}

// UpdateCompletion persists changes to a completion
func (r *GormChallengeRepository) UpdateCompletion(completion *models.Completion) error {
	return r.db.Save(completion).Error
}

// ListCompletions returns every completion a user has recorded
func (r *GormChallengeRepository) ListCompletions(userID uint64) ([]models.Completion, error) {
	var completions []models.Completion
	if err := r.db.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}
