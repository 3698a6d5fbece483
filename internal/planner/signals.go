package planner

import (
	"fmt"
	"strings"

	"lessonloop/internal/models"
)

// DefaultTheme is used when the class profile has no subject yet.
const DefaultTheme = "General Learning"

// maxInterestsLen caps the derived interests string so a long
// free-text answer cannot blow up the plan header.
const maxInterestsLen = 200

// Signals are the derived values that drive which template variant
// each plan section selects.
type Signals struct {
	NeedsMoreEngagement bool
	NeedsMoreScaffold   bool
	Theme               string
	Interests           string
	LevelNote           string
}

// DeriveSignals computes the adaptation signals for the given target
// session from the class profile and the most recent feedback (nil
// when none has been recorded yet). All absent inputs default to
// neutral values; there are no error conditions.
func DeriveSignals(profile models.ClassProfile, last *models.SessionFeedback, sessionNumber int) Signals {
	// With no students the excitement ratio is guarded to 0/1, so the
	// engagement signal is always on.
	ratio := 0.0
	if profile.NumStudents > 0 {
		excited := 0
		if last != nil && last.ExcitedCount != nil {
			excited = *last.ExcitedCount
		}
		ratio = float64(excited) / float64(profile.NumStudents)
	}

	needsScaffold := false
	if last != nil {
		needsScaffold = last.Digestible == "no" || last.Digestible == "some"
	}

	return Signals{
		NeedsMoreEngagement: ratio < 0.5,
		NeedsMoreScaffold:   needsScaffold,
		Theme:               deriveTheme(profile),
		Interests:           deriveInterests(profile, last),
		LevelNote:           deriveLevelNote(profile, sessionNumber),
	}
}

func deriveTheme(profile models.ClassProfile) string {
	subject := strings.TrimSpace(profile.Subject)
	if subject == "" {
		return DefaultTheme
	}
	return subject
}

// deriveInterests prefers interests the instructor reported in
// feedback over the comma-joined interests from the student roster.
func deriveInterests(profile models.ClassProfile, last *models.SessionFeedback) string {
	if last != nil {
		if other := strings.TrimSpace(last.OtherInterests); other != "" {
			return truncate(other, maxInterestsLen)
		}
	}

	var parts []string
	for _, s := range profile.Students {
		if interest := strings.TrimSpace(s.Interest); interest != "" {
			parts = append(parts, interest)
		}
	}
	return truncate(strings.Join(parts, ", "), maxInterestsLen)
}

func deriveLevelNote(profile models.ClassProfile, sessionNumber int) string {
	ages := strings.TrimSpace(profile.AgeRange)
	if ages == "" {
		ages = "Mixed ages"
	}
	return fmt.Sprintf("%s · %d students · session %d of %d",
		ages, profile.NumStudents, sessionNumber, profile.TotalSessions)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
