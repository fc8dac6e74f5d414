package services

import (
	"testing"
	"time"

	"github.com/comfortzone/comfortzone-api/internal/models"
	"github.com/comfortzone/comfortzone-api/internal/repository"
	"github.com/comfortzone/comfortzone-api/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func completed(s string) models.Completion {
	return models.Completion{Date: day(s), Completed: true, CompletedAt: day(s)}
}

func skipped(s string) models.Completion {
	return models.Completion{Date: day(s), Completed: false, CompletedAt: day(s)}
}

func TestStreakFrom(t *testing.T) {
	today := day("2025-06-10")

	tests := []struct {
		name        string
		completions []models.Completion
		want        int
	}{
		{
			name:        "no completions",
			completions: nil,
			want:        0,
		},
		{
			name:        "single day today",
			completions: []models.Completion{completed("2025-06-10")},
			want:        1,
		},
		{
			name: "run ending today",
			completions: []models.Completion{
				completed("2025-06-08"),
				completed("2025-06-09"),
				completed("2025-06-10"),
			},
			want: 3,
		},
		{
			name: "today not done yet anchors on yesterday",
			completions: []models.Completion{
				completed("2025-06-08"),
				completed("2025-06-09"),
			},
			want: 2,
		},
		{
			name: "gap two days ago breaks the run",
			completions: []models.Completion{
				completed("2025-06-06"),
				completed("2025-06-07"),
			},
			want: 0,
		},
		{
			name: "incomplete day breaks the run",
			completions: []models.Completion{
				completed("2025-06-08"),
				skipped("2025-06-09"),
				completed("2025-06-10"),
			},
			want: 1,
		},
		{
			name: "gap in the middle only counts the recent run",
			completions: []models.Completion{
				completed("2025-06-05"),
				completed("2025-06-06"),
				completed("2025-06-09"),
				completed("2025-06-10"),
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, streakFrom(tt.completions, today))
		})
	}
}

func setupChallengeService(t *testing.T) *ChallengeService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.GlobalChallenge{}, &models.Completion{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewChallengeService(repository.NewChallengeRepository(db))
}

func TestChallengeService_UpsertCompletion(t *testing.T) {
	svc := setupChallengeService(t)

	today := utils.DayUTC(time.Now())
	err := svc.challengeRepo.CreateGlobal(&models.GlobalChallenge{
		Title:       "Do 10 pushups",
		Description: "Get your blood flowing!",
		Date:        today,
	})
	require.NoError(t, err)

	completion, created, err := svc.UpsertCompletion(1, today, true)
	require.NoError(t, err)
	require.True(t, created)
	require.True(t, completion.Completed)
	firstStamp := completion.CompletedAt

	// Second submission for the same day updates the row.
	completion, created, err = svc.UpsertCompletion(1, today, false)
	require.NoError(t, err)
	require.False(t, created)
	require.False(t, completion.Completed)
	require.False(t, completion.CompletedAt.Before(firstStamp))

	// The day stays single-rowed across submissions.
	statuses, err := svc.ListCompletions(1)
	require.NoError(t, err)
	require.Len(t, statuses, 1)

	status, ok := statuses[today.Format("2006-01-02")]
	require.True(t, ok)
	require.False(t, status.Completed)
}

func TestChallengeService_UpsertCompletionWithoutChallenge(t *testing.T) {
	svc := setupChallengeService(t)

	_, _, err := svc.UpsertCompletion(1, utils.DayUTC(time.Now()), true)
	require.ErrorIs(t, err, ErrChallengeNotFound)
}

func TestChallengeService_GlobalForDate(t *testing.T) {
	svc := setupChallengeService(t)

	date := day("2025-05-11")
	err := svc.challengeRepo.CreateGlobal(&models.GlobalChallenge{
		Title:       "Talk to a stranger",
		Description: "Ask someone how their day is going.",
		Date:        date,
	})
	require.NoError(t, err)

	challenge, err := svc.GlobalForDate(date)
	require.NoError(t, err)
	require.Equal(t, "Talk to a stranger", challenge.Title)

	_, err = svc.GlobalForDate(day("2025-05-12"))
	require.ErrorIs(t, err, ErrChallengeNotFound)
}
