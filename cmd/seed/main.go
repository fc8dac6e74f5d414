package main

import (
	"errors"
	"log"
	"time"

	"github.com/comfortzone/comfortzone-api/internal/config"
	"github.com/comfortzone/comfortzone-api/internal/database"
	"github.com/comfortzone/comfortzone-api/internal/models"
	"github.com/comfortzone/comfortzone-api/internal/repository"
	"gorm.io/gorm"
)

var baseDate = time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

var starterChallenges = []struct {
	Title       string
	Description string
}{
	{"Do 10 pushups", "Get your blood flowing!"},
	{"Talk to a stranger", "Ask someone how their day is going."},
	{"Take a cold shower", "Thirty seconds counts."},
	{"Call an old friend", "Someone you haven't spoken to in a month."},
	{"Eat something new", "Order the dish you always skip."},
	{"Compliment a coworker", "Be specific about it."},
	{"Walk a new route", "Leave the usual path for twenty minutes."},
	{"Ask a question in public", "In a meeting, a class, anywhere."},
	{"Write down a fear", "Then write the first step past it."},
	{"Say no to something", "Practice the small refusals."},
}

// Seeds a run of daily global challenges, one per calendar day, continuing
// from the latest date already in the table.
func main() {
	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	challengeRepo := repository.NewChallengeRepository(database.GetDB())

	next := baseDate
	latest, err := challengeRepo.LatestGlobal()
	switch {
	case err == nil:
		next = latest.Date.AddDate(0, 0, 1)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// empty table, start from the base date
	default:
		log.Fatalf("Failed to read latest challenge: %v", err)
	}

	log.Printf("Seeding challenges starting from %s", next.Format("2006-01-02"))

	added := 0
	for _, sc := range starterChallenges {
		if _, err := challengeRepo.FindGlobalByDate(next); err == nil {
			log.Printf("Skipping %s, challenge already exists", next.Format("2006-01-02"))
			next = next.AddDate(0, 0, 1)
			continue
		}

		challenge := models.GlobalChallenge{
			Title:       sc.Title,
			Description: sc.Description,
			Date:        next,
		}
		if err := challengeRepo.CreateGlobal(&challenge); err != nil {
			log.Fatalf("Failed to create challenge for %s: %v", next.Format("2006-01-02"), err)
		}

		log.Printf("Added %q for %s", sc.Title, next.Format("2006-01-02"))
		next = next.AddDate(0, 0, 1)
		added++
	}

	log.Printf("Done, %d challenges added", added)
}
