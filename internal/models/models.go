package models

import (
	"time"

	"github.com/google/uuid"
)

// StudentDetail holds the optional per-student notes the instructor
// fills in on the class profile. Every field is free text; list order
// is display order only.
type StudentDetail struct {
	Name     string `json:"name,omitempty"`
	Age      string `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Interest string `json:"interest,omitempty"`
	Energy   string `json:"energy,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// ClassProfile describes one class as entered by the instructor.
type ClassProfile struct {
	Subject            string          `json:"subject"`
	Expectation        string          `json:"expectation"`
	TotalSessions      int             `json:"total_sessions"`
	SessionLengthHours float64         `json:"session_length_hours"`
	NumStudents        int             `json:"num_students"`
	AgeRange           string          `json:"age_range"`
	Students           []StudentDetail `json:"students,omitempty"`
}

// SessionFeedback is the instructor's report after running a session.
// ExcitedCount is nil when the instructor left it blank; an absent
// count is treated as zero by the signal deriver.
type SessionFeedback struct {
	ExcitedCount   *int   `json:"excited_count,omitempty"`
	Digestible     string `json:"digestible,omitempty"` // "yes", "some", "no" or ""
	OtherInterests string `json:"other_interests,omitempty"`
	NotGoodEnough  string `json:"not_good_enough,omitempty"`
}

// SessionRecord is one generated session plan. Immutable once created
// except for the single feedback attachment.
type SessionRecord struct {
	SessionNumber int              `json:"session_number"` // 1-based, contiguous
	GeneratedAt   time.Time        `json:"generated_at"`
	PlanMd        string           `json:"plan_md"`
	Feedback      *SessionFeedback `json:"feedback,omitempty"`
}

// ClassRun is one class's profile plus its accumulated session
// history. Sessions is append-only and never exceeds
// Profile.TotalSessions; the pre-generation guard enforces that.
type ClassRun struct {
	ID        uuid.UUID       `json:"id"`
	Profile   ClassProfile    `json:"profile"`
	Sessions  []SessionRecord `json:"sessions,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LatestFeedback returns the most recent recorded feedback across the
// run's sessions, or nil when none has been recorded yet.
func (r *ClassRun) LatestFeedback() *SessionFeedback {
	for i := len(r.Sessions) - 1; i >= 0; i-- {
		if r.Sessions[i].Feedback != nil {
			return r.Sessions[i].Feedback
		}
	}
	return nil
}

// LastSession returns the most recently generated session, or nil.
func (r *ClassRun) LastSession() *SessionRecord {
	if len(r.Sessions) == 0 {
		return nil
	}
	return &r.Sessions[len(r.Sessions)-1]
}

// SessionByNumber returns the session with the given 1-based number,
// or nil when it does not exist.
func (r *ClassRun) SessionByNumber(n int) *SessionRecord {
	if n < 1 || n > len(r.Sessions) {
		return nil
	}
	return &r.Sessions[n-1]
}
