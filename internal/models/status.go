package models

// Run lifecycle states. A run moves forward only: profile-incomplete
// until a subject is set, then plan generation and feedback alternate
// until every configured session has a plan.
const (
	StateProfileIncomplete = "profile_incomplete"
	StateAwaitingFirstPlan = "awaiting_first_plan"
	StateAwaitingFeedback  = "awaiting_feedback"
	StateCompleted         = "completed"
)

// State derives the lifecycle state from the run's current contents.
func (r *ClassRun) State() string {
	if r.Profile.Subject == "" {
		return StateProfileIncomplete
	}
	if len(r.Sessions) == 0 {
		return StateAwaitingFirstPlan
	}
	if r.Profile.TotalSessions > 0 && len(r.Sessions) >= r.Profile.TotalSessions {
		return StateCompleted
	}
	return StateAwaitingFeedback
}

// StateDisplayInfo contains display information for a run state badge.
type StateDisplayInfo struct {
	DisplayName string
	BgColor     string
	TextColor   string
	BorderColor string
}

// GetStateDisplayInfo returns display information for a given state.
func GetStateDisplayInfo(state string) StateDisplayInfo {
	stateMap := map[string]StateDisplayInfo{
		StateProfileIncomplete: {
			DisplayName: "Profile Incomplete",
			BgColor:     "#E6E6E6",
			TextColor:   "#333",
			BorderColor: "#8C8C8C",
		},
		StateAwaitingFirstPlan: {
			DisplayName: "Ready for First Plan",
			BgColor:     "#FFF4E6",
			TextColor:   "#8B6914",
			BorderColor: "#FFA500",
		},
		StateAwaitingFeedback: {
			DisplayName: "Awaiting Feedback",
			BgColor:     "#E6F3FF",
			TextColor:   "#0066CC",
			BorderColor: "#4EC6E0",
		},
		StateCompleted: {
			DisplayName: "Completed",
			BgColor:     "#E6FFE6",
			TextColor:   "#006600",
			BorderColor: "#28a745",
		},
	}

	if info, ok := stateMap[state]; ok {
		return info
	}

	// Default for unknown state
	return StateDisplayInfo{
		DisplayName: state,
		BgColor:     "#E6E6E6",
		TextColor:   "#333",
		BorderColor: "#8C8C8C",
	}
}

// GetNextAction returns the short "what to do next" label shown on
// the class list for a run in the given state.
func GetNextAction(state string) string {
	actions := map[string]string{
		StateProfileIncomplete: "Fill in class profile",
		StateAwaitingFirstPlan: "Generate first plan",
		StateAwaitingFeedback:  "Record session feedback",
		StateCompleted:         "All sessions planned",
	}
	if action, ok := actions[state]; ok {
		return action
	}
	return "Review"
}
