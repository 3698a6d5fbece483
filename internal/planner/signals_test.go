package planner

import (
	"strings"
	"testing"

	"lessonloop/internal/models"
)

func intPtr(n int) *int { return &n }

func TestDeriveSignalsEngagement(t *testing.T) {
	tests := []struct {
		name        string
		numStudents int
		feedback    *models.SessionFeedback
		want        bool
	}{
		{
			name:        "no feedback defaults to needing engagement",
			numStudents: 4,
			feedback:    nil,
			want:        true,
		},
		{
			name:        "absent excited count treated as zero",
			numStudents: 4,
			feedback:    &models.SessionFeedback{},
			want:        true,
		},
		{
			name:        "below half excited",
			numStudents: 4,
			feedback:    &models.SessionFeedback{ExcitedCount: intPtr(1)},
			want:        true,
		},
		{
			name:        "exactly half excited is enough",
			numStudents: 4,
			feedback:    &models.SessionFeedback{ExcitedCount: intPtr(2)},
			want:        false,
		},
		{
			name:        "everyone excited",
			numStudents: 4,
			feedback:    &models.SessionFeedback{ExcitedCount: intPtr(4)},
			want:        false,
		},
		{
			name:        "zero students always needs engagement",
			numStudents: 0,
			feedback:    &models.SessionFeedback{ExcitedCount: intPtr(10)},
			want:        true,
		},
		{
			name:        "zero students with no feedback",
			numStudents: 0,
			feedback:    nil,
			want:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := models.ClassProfile{Subject: "Math", NumStudents: tt.numStudents, TotalSessions: 8}
			sig := DeriveSignals(profile, tt.feedback, 1)
			if sig.NeedsMoreEngagement != tt.want {
				t.Errorf("NeedsMoreEngagement = %v, want %v", sig.NeedsMoreEngagement, tt.want)
			}
		})
	}
}

func TestDeriveSignalsScaffold(t *testing.T) {
	tests := []struct {
		name     string
		feedback *models.SessionFeedback
		want     bool
	}{
		{name: "no feedback", feedback: nil, want: false},
		{name: "digestible absent", feedback: &models.SessionFeedback{}, want: false},
		{name: "digestible yes", feedback: &models.SessionFeedback{Digestible: "yes"}, want: false},
		{name: "digestible some", feedback: &models.SessionFeedback{Digestible: "some"}, want: true},
		{name: "digestible no", feedback: &models.SessionFeedback{Digestible: "no"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := models.ClassProfile{Subject: "Math", NumStudents: 4, TotalSessions: 8}
			sig := DeriveSignals(profile, tt.feedback, 1)
			if sig.NeedsMoreScaffold != tt.want {
				t.Errorf("NeedsMoreScaffold = %v, want %v", sig.NeedsMoreScaffold, tt.want)
			}
		})
	}
}

func TestDeriveSignalsTheme(t *testing.T) {
	profile := models.ClassProfile{Subject: "Robotics", NumStudents: 4, TotalSessions: 8}
	sig := DeriveSignals(profile, nil, 1)
	if sig.Theme != "Robotics" {
		t.Errorf("Theme = %q, want %q", sig.Theme, "Robotics")
	}

	profile.Subject = "   "
	sig = DeriveSignals(profile, nil, 1)
	if sig.Theme != DefaultTheme {
		t.Errorf("Theme = %q, want default %q", sig.Theme, DefaultTheme)
	}
}

func TestDeriveSignalsInterests(t *testing.T) {
	profile := models.ClassProfile{
		Subject:       "Robotics",
		NumStudents:   3,
		TotalSessions: 8,
		Students: []models.StudentDetail{
			{Name: "A", Interest: "drawing"},
			{Name: "B"},
			{Name: "C", Interest: "space"},
		},
	}

	// Student interests are comma-joined, blanks skipped.
	sig := DeriveSignals(profile, nil, 1)
	if sig.Interests != "drawing, space" {
		t.Errorf("Interests = %q, want %q", sig.Interests, "drawing, space")
	}

	// Feedback-supplied interests win over the roster.
	fb := &models.SessionFeedback{OtherInterests: "dinosaurs"}
	sig = DeriveSignals(profile, fb, 2)
	if sig.Interests != "dinosaurs" {
		t.Errorf("Interests = %q, want %q", sig.Interests, "dinosaurs")
	}

	// Long interests are capped at 200 characters.
	fb.OtherInterests = strings.Repeat("x", 300)
	sig = DeriveSignals(profile, fb, 2)
	if got := len([]rune(sig.Interests)); got != 200 {
		t.Errorf("Interests length = %d, want 200", got)
	}
}

func TestDeriveSignalsLevelNote(t *testing.T) {
	profile := models.ClassProfile{
		Subject:       "Robotics",
		NumStudents:   4,
		TotalSessions: 8,
		AgeRange:      "10-12",
	}
	sig := DeriveSignals(profile, nil, 3)

	for _, want := range []string{"10-12", "4 students", "session 3 of 8"} {
		if !strings.Contains(sig.LevelNote, want) {
			t.Errorf("LevelNote = %q, missing %q", sig.LevelNote, want)
		}
	}

	profile.AgeRange = ""
	sig = DeriveSignals(profile, nil, 1)
	if !strings.Contains(sig.LevelNote, "Mixed ages") {
		t.Errorf("LevelNote = %q, want placeholder for missing age range", sig.LevelNote)
	}
}
