package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/comfortzone/comfortzone-api/internal/models"
	"github.com/comfortzone/comfortzone-api/internal/repository"
	"github.com/comfortzone/comfortzone-api/internal/utils"
	"gorm.io/gorm"
)

var ErrChallengeNotFound = errors.New("no challenge for this date")

// ChallengeService handles global challenges, completions, and streaks.
type ChallengeService struct {
	challengeRepo repository.ChallengeRepository
}

// NewChallengeService creates a new ChallengeService.
func NewChallengeService(challengeRepo repository.ChallengeRepository) *ChallengeService {
	return &ChallengeService{
		challengeRepo: challengeRepo,
	}
}

// GlobalForDate returns the unique global challenge for a calendar day.
func (s *ChallengeService) GlobalForDate(date time.Time) (*models.GlobalChallenge, error) {
	challenge, err := s.challengeRepo.FindGlobalByDate(utils.DayUTC(date))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to find challenge: %w", err)
	}
	return challenge, nil
}

// CompletionStatus is one day's entry in a completion listing.
type CompletionStatus struct {
	Completed   bool      `json:"completed"`
	CompletedAt time.Time `json:"completedAt"`
}

// ListCompletions maps every day the user has recorded to its status, keyed
// by ISO date string.
func (s *ChallengeService) ListCompletions(userID uint64) (map[string]CompletionStatus, error) {
	completions, err := s.challengeRepo.ListCompletions(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	result := make(map[string]CompletionStatus, len(completions))
	for _, c := range completions {
		result[utils.DayUTC(c.Date).Format("2006-01-02")] = CompletionStatus{
			Completed:   c.Completed,
			CompletedAt: c.CompletedAt,
		}
	}
	return result, nil
}

// UpsertCompletion records a user's done-state for a day. The first
// submission creates the row against that day's challenge; later submissions
// update the flag and refresh the timestamp. The boolean reports whether a
// row was created.
func (s *ChallengeService) UpsertCompletion(userID uint64, date time.Time, completed bool) (*models.Completion, bool, error) {
	day := utils.DayUTC(date)
	now := time.Now()

	existing, err := s.challengeRepo.FindCompletion(userID, day)
	if err == nil {
		existing.Completed = completed
		existing.CompletedAt = now
		if err := s.challengeRepo.UpdateCompletion(existing); err != nil {
			return nil, false, fmt.Errorf("failed to update completion: %w", err)
		}
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to find completion: %w", err)
	}

	// A create must reference the day's challenge.
	challenge, err := s.challengeRepo.FindGlobalByDate(day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrChallengeNotFound
		}
		return nil, false, fmt.Errorf("failed to find challenge: %w", err)
	}

	completion := &models.Completion{
		UserID:      userID,
		ChallengeID: challenge.ID,
		Date:        day,
		Completed:   completed,
		CompletedAt: now,
	}
	if err := s.challengeRepo.CreateCompletion(completion); err != nil {
		return nil, false, fmt.Errorf("failed to create completion: %w", err)
	}
	return completion, true, nil
}

// Streak counts the user's consecutive completed days ending today.
func (s *ChallengeService) Streak(userID uint64) (int, error) {
	completions, err := s.challengeRepo.ListCompletions(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list completions: %w", err)
	}
	return streakFrom(completions, time.Now()), nil
}

// streakFrom walks backwards from today at UTC day granularity. The streak
// anchors on today, or on yesterday when today has no completed entry yet,
// and stops at the first day without a completed record.
func streakFrom(completions []models.Completion, today time.Time) int {
	days := make(map[time.Time]bool, len(completions))
	for _, c := range completions {
		if c.Completed {
			days[utils.DayUTC(c.Date)] = true
		}
	}

	cursor := utils.DayUTC(today)
	if !days[cursor] {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for days[cursor] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}
