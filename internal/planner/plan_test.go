package planner

import (
	"strings"
	"testing"

	"lessonloop/internal/models"
)

func TestTimeBlocks(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		want  [5]int
	}{
		{
			name:  "one hour session",
			hours: 1,
			want:  [5]int{10, 15, 15, 15, 5},
		},
		{
			name:  "two hour session scales linearly",
			hours: 2,
			want:  [5]int{20, 30, 30, 30, 10},
		},
		{
			name:  "half hour session rounds to nearest minute",
			hours: 0.5,
			want:  [5]int{5, 8, 8, 8, 3}, // 7.5 and 2.5 round away from zero
		},
		{
			name:  "ninety minute session",
			hours: 1.5,
			want:  [5]int{15, 23, 23, 23, 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeBlocks(tt.hours)
			if got != tt.want {
				t.Errorf("TimeBlocks(%v) = %v, want %v", tt.hours, got, tt.want)
			}
		})
	}
}

func TestBuildPlanStructure(t *testing.T) {
	profile := models.ClassProfile{
		Subject:            "Robotics",
		Expectation:        "Build a line follower",
		TotalSessions:      8,
		SessionLengthHours: 1,
		NumStudents:        4,
		AgeRange:           "10-12",
	}
	sig := DeriveSignals(profile, nil, 1)
	plan := BuildPlan(profile, sig, 1)

	wantSections := []string{
		"# Session 1 Plan — Robotics",
		"## Agenda",
		"## Warm-Up",
		"## Mini-Lesson",
		"## Guided Practice",
		"## Apply & Create",
		"## Reflect & Share",
		"## Optional Extension",
	}
	pos := -1
	for _, section := range wantSections {
		idx := strings.Index(plan, section)
		if idx < 0 {
			t.Fatalf("plan missing section %q", section)
		}
		if idx < pos {
			t.Errorf("section %q out of order", section)
		}
		pos = idx
	}

	// One-hour agenda carries the base minute allocation.
	for _, line := range []string{
		"- Warm-up — 10 min",
		"- Mini-lesson — 15 min",
		"- Guided practice — 15 min",
		"- Apply & create — 15 min",
		"- Reflect & share — 5 min",
	} {
		if !strings.Contains(plan, line) {
			t.Errorf("plan missing agenda line %q", line)
		}
	}

	if !strings.Contains(plan, "Build a line follower") {
		t.Error("plan missing the class goal")
	}
}

func TestBuildPlanVariantSelection(t *testing.T) {
	profile := models.ClassProfile{
		Subject:            "Robotics",
		TotalSessions:      8,
		SessionLengthHours: 1,
		NumStudents:        4,
	}

	calm := BuildPlan(profile, Signals{Theme: "Robotics"}, 2)
	energetic := BuildPlan(profile, Signals{Theme: "Robotics", NeedsMoreEngagement: true}, 2)
	scaffolded := BuildPlan(profile, Signals{Theme: "Robotics", NeedsMoreScaffold: true}, 2)

	if calm == energetic {
		t.Error("engagement signal should change the plan text")
	}
	if calm == scaffolded {
		t.Error("scaffold signal should change the plan text")
	}

	// Engagement drives the warm-up, apply and extension sections.
	if !strings.Contains(energetic, "fast, playful challenge") {
		t.Error("engagement variant missing from warm-up")
	}
	if strings.Contains(calm, "fast, playful challenge") {
		t.Error("calm plan should not use the engagement warm-up variant")
	}

	// Scaffolding drives the mini-lesson, practice and reflect sections.
	if !strings.Contains(scaffolded, "step by step") {
		t.Error("scaffold variant missing from mini-lesson")
	}
	if strings.Contains(calm, "step by step") {
		t.Error("calm plan should not use the scaffold mini-lesson variant")
	}
}

func TestBuildPlanPlaceholders(t *testing.T) {
	profile := models.ClassProfile{
		Subject:            "Robotics",
		TotalSessions:      8,
		SessionLengthHours: 1,
	}
	sig := DeriveSignals(profile, nil, 1)
	plan := BuildPlan(profile, sig, 1)

	if !strings.Contains(plan, "(no goal set)") {
		t.Error("missing goal should render as a placeholder")
	}
	if !strings.Contains(plan, "(none noted)") {
		t.Error("missing interests should render as a placeholder")
	}
}
