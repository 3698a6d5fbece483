package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lessonloop/internal/models"
)

// The only two user-facing guard conditions in the app. Handlers
// surface them as blocking alerts rather than error pages.
var (
	ErrSubjectRequired = errors.New("class subject is required before generating a plan")
	ErrRunCompleted    = errors.New("all configured sessions have already been generated")
)

// GenerateNext derives signals from the run's latest feedback, builds
// the next session plan and appends it to the run. It refuses when the
// subject is blank or when every configured session already has a
// plan, leaving the run untouched in both cases.
func GenerateNext(run *models.ClassRun, now time.Time) (*models.SessionRecord, error) {
	if strings.TrimSpace(run.Profile.Subject) == "" {
		return nil, ErrSubjectRequired
	}
	if len(run.Sessions) >= run.Profile.TotalSessions {
		return nil, ErrRunCompleted
	}

	sessionNumber := len(run.Sessions) + 1
	sig := DeriveSignals(run.Profile, run.LatestFeedback(), sessionNumber)

	run.Sessions = append(run.Sessions, models.SessionRecord{
		SessionNumber: sessionNumber,
		GeneratedAt:   now,
		PlanMd:        BuildPlan(run.Profile, sig, sessionNumber),
	})
	run.UpdatedAt = now
	return run.LastSession(), nil
}

// RecordFeedback attaches feedback to an existing session (no
// validation, always succeeds for a known session) and immediately
// generates the next plan from it. A completed run is not an error
// here: the feedback still lands, there is just nothing left to plan.
func RecordFeedback(run *models.ClassRun, sessionNumber int, fb models.SessionFeedback, now time.Time) error {
	rec := run.SessionByNumber(sessionNumber)
	if rec == nil {
		return fmt.Errorf("session %d not found", sessionNumber)
	}

	rec.Feedback = &fb
	run.UpdatedAt = now

	if _, err := GenerateNext(run, now); err != nil {
		if errors.Is(err, ErrRunCompleted) {
			return nil
		}
		return err
	}
	return nil
}
