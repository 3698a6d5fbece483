package planner

import (
	"errors"
	"strings"
	"testing"
	"time"

	"lessonloop/internal/models"

	"github.com/google/uuid"
)

func newTestRun(subject string, totalSessions, numStudents int) *models.ClassRun {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &models.ClassRun{
		ID: uuid.New(),
		Profile: models.ClassProfile{
			Subject:            subject,
			TotalSessions:      totalSessions,
			SessionLengthHours: 1,
			NumStudents:        numStudents,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestGenerateNextRefusesBlankSubject(t *testing.T) {
	run := newTestRun("", 4, 4)

	_, err := GenerateNext(run, time.Now())
	if !errors.Is(err, ErrSubjectRequired) {
		t.Fatalf("GenerateNext() error = %v, want ErrSubjectRequired", err)
	}
	if len(run.Sessions) != 0 {
		t.Errorf("refused generation must not append a record, got %d sessions", len(run.Sessions))
	}
}

func TestGenerateNextRefusesCompletedRun(t *testing.T) {
	run := newTestRun("Math", 1, 4)

	if _, err := GenerateNext(run, time.Now()); err != nil {
		t.Fatalf("first generation failed: %v", err)
	}

	_, err := GenerateNext(run, time.Now())
	if !errors.Is(err, ErrRunCompleted) {
		t.Fatalf("GenerateNext() error = %v, want ErrRunCompleted", err)
	}
	if len(run.Sessions) != 1 {
		t.Errorf("refused generation must not append a record, got %d sessions", len(run.Sessions))
	}
}

func TestGenerateNextNumbersSessionsContiguously(t *testing.T) {
	run := newTestRun("Math", 3, 4)

	for i := 1; i <= 3; i++ {
		rec, err := GenerateNext(run, time.Now())
		if err != nil {
			t.Fatalf("generation %d failed: %v", i, err)
		}
		if rec.SessionNumber != i {
			t.Errorf("SessionNumber = %d, want %d", rec.SessionNumber, i)
		}
		if rec.PlanMd == "" {
			t.Errorf("session %d has an empty plan", i)
		}
	}

	if run.State() != models.StateCompleted {
		t.Errorf("State() = %q, want %q", run.State(), models.StateCompleted)
	}
}

func TestRecordFeedbackUnknownSession(t *testing.T) {
	run := newTestRun("Math", 3, 4)

	err := RecordFeedback(run, 1, models.SessionFeedback{}, time.Now())
	if err == nil {
		t.Fatal("RecordFeedback() on a missing session should fail")
	}
}

func TestRecordFeedbackTriggersNextPlan(t *testing.T) {
	run := newTestRun("Math", 3, 4)

	if _, err := GenerateNext(run, time.Now()); err != nil {
		t.Fatalf("first generation failed: %v", err)
	}

	fb := models.SessionFeedback{ExcitedCount: intPtr(4), Digestible: "yes"}
	if err := RecordFeedback(run, 1, fb, time.Now()); err != nil {
		t.Fatalf("RecordFeedback() failed: %v", err)
	}

	if len(run.Sessions) != 2 {
		t.Fatalf("got %d sessions, want 2 (feedback triggers the next plan)", len(run.Sessions))
	}
	if run.Sessions[0].Feedback == nil {
		t.Error("feedback was not attached to session 1")
	}
	if run.Sessions[1].Feedback != nil {
		t.Error("session 2 should not start with feedback")
	}
}

func TestRecordFeedbackOnFinalSession(t *testing.T) {
	run := newTestRun("Math", 1, 4)

	if _, err := GenerateNext(run, time.Now()); err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	// The run is complete; feedback still lands, nothing new is planned.
	if err := RecordFeedback(run, 1, models.SessionFeedback{Digestible: "yes"}, time.Now()); err != nil {
		t.Fatalf("RecordFeedback() on the final session failed: %v", err)
	}
	if len(run.Sessions) != 1 {
		t.Errorf("got %d sessions, want 1", len(run.Sessions))
	}
	if run.Sessions[0].Feedback == nil {
		t.Error("feedback was not attached")
	}
}

// Full walkthrough of a two-session Robotics class: strong negative
// feedback after session one must flip both adaptation signals for
// session two, and a third generation must be refused.
func TestRoboticsEndToEnd(t *testing.T) {
	run := newTestRun("Robotics", 2, 4)

	if _, err := GenerateNext(run, time.Now()); err != nil {
		t.Fatalf("first generation failed: %v", err)
	}
	if len(run.Sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(run.Sessions))
	}

	fb := models.SessionFeedback{ExcitedCount: intPtr(1), Digestible: "no"}
	if err := RecordFeedback(run, 1, fb, time.Now()); err != nil {
		t.Fatalf("RecordFeedback() failed: %v", err)
	}
	if len(run.Sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(run.Sessions))
	}

	// 1/4 excited and "no" digestible: both signals on.
	sig := DeriveSignals(run.Profile, run.LatestFeedback(), 2)
	if !sig.NeedsMoreEngagement {
		t.Error("NeedsMoreEngagement should be true for 1/4 excited")
	}
	if !sig.NeedsMoreScaffold {
		t.Error("NeedsMoreScaffold should be true for digestible=no")
	}
	plan := run.Sessions[1].PlanMd
	if !strings.Contains(plan, "fast, playful challenge") {
		t.Error("session 2 plan missing the engagement warm-up variant")
	}
	if !strings.Contains(plan, "step by step") {
		t.Error("session 2 plan missing the scaffold mini-lesson variant")
	}

	// A third generation is refused and appends nothing.
	if _, err := GenerateNext(run, time.Now()); !errors.Is(err, ErrRunCompleted) {
		t.Fatalf("third generation error = %v, want ErrRunCompleted", err)
	}
	if len(run.Sessions) != 2 {
		t.Errorf("got %d sessions after refused generation, want 2", len(run.Sessions))
	}
}
