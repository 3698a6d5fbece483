// Seeder command for populating a demo class run for local testing.
//
// SAFETY: This command ONLY runs when:
//   - APP_ENV=development
//   - --confirm flag is provided
//
// Usage:
//
//	APP_ENV=development go run cmd/seed/main.go --confirm
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"lessonloop/internal/config"
	"lessonloop/internal/models"
	"lessonloop/internal/planner"
	"lessonloop/internal/store"

	"github.com/google/uuid"
)

func main() {
	confirm := flag.Bool("confirm", false, "Confirm seeding (required)")
	flag.Parse()

	if os.Getenv("APP_ENV") != "development" {
		log.Fatalf("ERROR: Seeder can only run in development. Set APP_ENV=development and try again.")
	}
	if !*confirm {
		log.Fatalf("ERROR: Seeder requires the --confirm flag.")
	}

	cfg := config.Load()
	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	now := time.Now()
	run := models.ClassRun{
		ID: uuid.New(),
		Profile: models.ClassProfile{
			Subject:            "Robotics",
			Expectation:        "Build and program a simple line-following robot",
			TotalSessions:      8,
			SessionLengthHours: 1.5,
			NumStudents:        4,
			AgeRange:           "10-12",
			Students: []models.StudentDetail{
				{Name: "Lina", Age: "10", Interest: "drawing", Energy: "high"},
				{Name: "Omar", Age: "11", Interest: "video games", Energy: "medium"},
				{Name: "Sara", Age: "12", Interest: "space", Energy: "low"},
				{Name: "Adam", Age: "11", Interest: "soccer", Energy: "high"},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := planner.GenerateNext(&run, now); err != nil {
		log.Fatalf("Failed to generate first plan: %v", err)
	}

	runs, err := st.Load()
	if err != nil {
		log.Fatalf("Failed to load existing runs: %v", err)
	}
	runs = store.UpsertRun(runs, run)
	if err := st.Save(runs); err != nil {
		log.Fatalf("Failed to save seeded run: %v", err)
	}

	log.Printf("Seeded demo class %s (%s) with %d session plan(s)", run.ID, run.Profile.Subject, len(run.Sessions))
}
