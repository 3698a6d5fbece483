package planner

import (
	"fmt"
	"math"
	"strings"

	"lessonloop/internal/models"
)

// Per-hour minute allocation for the five agenda blocks: warm-up,
// mini-lesson, guided practice, apply & create, reflect & share.
var blockMinutesPerHour = [5]int{10, 15, 15, 15, 5}

var blockNames = [5]string{
	"Warm-up",
	"Mini-lesson",
	"Guided practice",
	"Apply & create",
	"Reflect & share",
}

// TimeBlocks scales the per-hour agenda allocation by the session
// length, rounding each block to the nearest whole minute.
func TimeBlocks(sessionLengthHours float64) [5]int {
	var blocks [5]int
	for i, m := range blockMinutesPerHour {
		blocks[i] = int(math.Round(float64(m) * sessionLengthHours))
	}
	return blocks
}

// BuildPlan assembles the Markdown session plan: a header followed by
// the seven fixed sections in order. Each non-agenda section picks one
// of two pre-written bullet variants from the derived signals. Missing
// profile fields render as placeholders; there are no failure modes.
func BuildPlan(profile models.ClassProfile, sig Signals, sessionNumber int) string {
	var b strings.Builder

	goal := strings.TrimSpace(profile.Expectation)
	if goal == "" {
		goal = "(no goal set)"
	}
	interests := sig.Interests
	if interests == "" {
		interests = "(none noted)"
	}

	fmt.Fprintf(&b, "# Session %d Plan — %s\n\n", sessionNumber, sig.Theme)
	fmt.Fprintf(&b, "**Class:** %s\n", sig.LevelNote)
	fmt.Fprintf(&b, "**Goal:** %s\n", goal)
	fmt.Fprintf(&b, "**Focus interests:** %s\n\n", interests)

	b.WriteString(agendaSection(profile.SessionLengthHours))
	b.WriteString(warmUpSection(sig))
	b.WriteString(miniLessonSection(sig))
	b.WriteString(guidedPracticeSection(sig))
	b.WriteString(applyCreateSection(sig))
	b.WriteString(reflectSection(sig))
	b.WriteString(extensionSection(sig))

	return b.String()
}

func agendaSection(sessionLengthHours float64) string {
	blocks := TimeBlocks(sessionLengthHours)
	var b strings.Builder
	b.WriteString("## Agenda\n\n")
	for i, name := range blockNames {
		fmt.Fprintf(&b, "- %s — %d min\n", name, blocks[i])
	}
	b.WriteString("\n")
	return b.String()
}

// Warm-up, apply & create and the optional extension key off the
// engagement signal; mini-lesson, guided practice and reflect key off
// the scaffolding signal.

func warmUpSection(sig Signals) string {
	if sig.NeedsMoreEngagement {
		return "## Warm-Up\n\n" +
			fmt.Sprintf("- Open with a fast, playful challenge connected to %s (beat-the-clock, team vs. team)\n", sig.Theme) +
			"- Get everyone moving or talking within the first two minutes\n" +
			"- Let students pick between two warm-up options to build buy-in\n\n"
	}
	return "## Warm-Up\n\n" +
		fmt.Sprintf("- Quick recall round: two or three questions from the last %s session\n", sig.Theme) +
		"- One-minute pair share: what stuck with you from last time?\n\n"
}

func miniLessonSection(sig Signals) string {
	if sig.NeedsMoreScaffold {
		return "## Mini-Lesson\n\n" +
			fmt.Sprintf("- Re-teach the core %s idea with one concrete worked example, step by step\n", sig.Theme) +
			"- Chunk the explanation into small pieces and check understanding after each\n" +
			"- Keep new material minimal; consolidate before moving on\n\n"
	}
	return "## Mini-Lesson\n\n" +
		fmt.Sprintf("- Introduce the next %s concept with a short demonstration\n", sig.Theme) +
		"- Connect it explicitly to what the class already knows\n\n"
}

func guidedPracticeSection(sig Signals) string {
	if sig.NeedsMoreScaffold {
		return "## Guided Practice\n\n" +
			"- Work through two examples together before anyone works alone\n" +
			"- Provide a step-by-step checklist students can follow at their own pace\n" +
			"- Pair stronger and struggling students deliberately\n\n"
	}
	return "## Guided Practice\n\n" +
		"- Students attempt a practice task while the instructor circulates\n" +
		"- Offer one stretch variation for students who finish early\n\n"
}

func applyCreateSection(sig Signals) string {
	if sig.NeedsMoreEngagement {
		return "## Apply & Create\n\n" +
			fmt.Sprintf("- Open-ended build or make task where students choose their own angle on %s\n", sig.Theme) +
			"- Tie the task to stated interests where possible\n" +
			"- Small-group showcase at the end: each group demos one thing\n\n"
	}
	return "## Apply & Create\n\n" +
		fmt.Sprintf("- Individual or pair task applying today's %s concept to a new situation\n", sig.Theme) +
		"- Students record their result to share in the reflection round\n\n"
}

func reflectSection(sig Signals) string {
	if sig.NeedsMoreScaffold {
		return "## Reflect & Share\n\n" +
			"- Guided prompts: \"one thing I understood\", \"one thing still fuzzy\"\n" +
			"- Collect the fuzzy items to open the next session with\n\n"
	}
	return "## Reflect & Share\n\n" +
		"- Each student shares one takeaway in a quick round\n" +
		"- Preview what the next session builds toward\n\n"
}

func extensionSection(sig Signals) string {
	if sig.NeedsMoreEngagement {
		return "## Optional Extension\n\n" +
			fmt.Sprintf("- Take-home mini challenge: find one real-world example of %s and bring it next time\n", sig.Theme)
	}
	return "## Optional Extension\n\n" +
		fmt.Sprintf("- Optional deeper-dive exercise on today's %s concept for students who want more\n", sig.Theme)
}
