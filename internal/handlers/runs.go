package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lessonloop/internal/config"
	"lessonloop/internal/models"
	"lessonloop/internal/store"

	"github.com/google/uuid"
)

type RunsHandler struct {
	cfg   *config.Config
	store store.Store
}

func NewRunsHandler(cfg *config.Config, st store.Store) *RunsHandler {
	return &RunsHandler{cfg: cfg, store: st}
}

// RunListItem bundles a run with the derived display fields the class
// list needs.
type RunListItem struct {
	Run        models.ClassRun
	State      string
	Display    models.StateDisplayInfo
	NextAction string
}

// pathParts splits a URL path into its non-empty segments.
func pathParts(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// runIDFromPath parses the run ID from paths shaped /runs/{id}/...
func runIDFromPath(path string) (uuid.UUID, error) {
	parts := pathParts(path)
	if len(parts) < 2 || parts[0] != "runs" {
		return uuid.Nil, fmt.Errorf("invalid runs path: %s", path)
	}
	return uuid.Parse(parts[1])
}

// List renders the class list with state badges and next-action labels.
func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	runs, err := h.store.Load()
	if err != nil {
		log.Printf("ERROR: Failed to load runs: %v", err)
		http.Error(w, "Failed to load classes", http.StatusInternalServerError)
		return
	}

	// Newest first.
	items := make([]RunListItem, 0, len(runs))
	for i := len(runs) - 1; i >= 0; i-- {
		state := runs[i].State()
		items = append(items, RunListItem{
			Run:        runs[i],
			State:      state,
			Display:    models.GetStateDisplayInfo(state),
			NextAction: models.GetNextAction(state),
		})
	}

	flashMessage := ""
	if r.URL.Query().Get("created") == "1" {
		flashMessage = "Class created"
	}
	if r.URL.Query().Get("deleted") == "1" {
		flashMessage = "Class deleted"
	}

	data := map[string]interface{}{
		"Title":        "Classes – LessonLoop",
		"Items":        items,
		"FlashMessage": flashMessage,
	}
	renderTemplate(w, r, "runs_list.html", data)
}

// NewForm renders the empty class profile form.
func (h *RunsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title": "New Class – LessonLoop",
	}
	renderTemplate(w, r, "run_new.html", data)
}

// Create adds a new class run from the profile form and jumps straight
// to its detail page.
func (h *RunsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	profile := parseProfileForm(r)
	now := time.Now()
	run := models.ClassRun{
		ID:        uuid.New(),
		Profile:   profile,
		CreatedAt: now,
		UpdatedAt: now,
	}

	runs, err := h.store.Load()
	if err != nil {
		log.Printf("ERROR: Failed to load runs: %v", err)
		http.Error(w, "Failed to load classes", http.StatusInternalServerError)
		return
	}
	runs = store.UpsertRun(runs, run)
	if err := h.store.Save(runs); err != nil {
		log.Printf("ERROR: Failed to save runs: %v", err)
		http.Error(w, "Failed to save class", http.StatusInternalServerError)
		return
	}

	h.cfg.Debugf("Created run %s (%s)", run.ID, profile.Subject)
	http.Redirect(w, r, "/runs/"+run.ID.String()+"?saved=1", http.StatusFound)
}

// Detail renders one run: profile form, session history, feedback
// form for the latest session, and any pending alert.
func (h *RunsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	runID, err := runIDFromPath(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	runs, err := h.store.Load()
	if err != nil {
		log.Printf("ERROR: Failed to load runs: %v", err)
		http.Error(w, "Failed to load classes", http.StatusInternalServerError)
		return
	}
	run := store.FindRun(runs, runID)
	if run == nil {
		http.NotFound(w, r)
		return
	}

	state := run.State()

	// The latest session can still take feedback when none is attached.
	var feedbackSession *models.SessionRecord
	if last := run.LastSession(); last != nil && last.Feedback == nil {
		feedbackSession = last
	}

	// The two guard conditions surface as blocking alerts.
	alertMessage := ""
	switch r.URL.Query().Get("alert") {
	case "subject_required":
		alertMessage = "Please set a class subject before generating a plan."
	case "run_completed":
		alertMessage = "All sessions for this class have already been generated."
	}

	flashMessage := ""
	if r.URL.Query().Get("saved") == "1" {
		flashMessage = "Profile saved"
	}
	if r.URL.Query().Get("feedback") == "1" {
		if state == models.StateCompleted {
			flashMessage = "Feedback recorded. All sessions are now planned."
		} else {
			flashMessage = "Feedback recorded and next plan generated"
		}
	}

	data := map[string]interface{}{
		"Title":           run.Profile.Subject + " – LessonLoop",
		"Run":             run,
		"State":           state,
		"Display":         models.GetStateDisplayInfo(state),
		"NextAction":      models.GetNextAction(state),
		"StudentRows":     studentRows(run.Profile),
		"FeedbackSession": feedbackSession,
		"CanGenerate":     state != models.StateCompleted,
		"AlertMessage":    alertMessage,
		"FlashMessage":    flashMessage,
	}
	renderTemplate(w, r, "run_detail.html", data)
}

// UpdateProfile saves profile edits. Only presence checks apply; the
// session history is left untouched.
func (h *RunsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	runID, err := runIDFromPath(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	runs, err := h.store.Load()
	if err != nil {
		log.Printf("ERROR: Failed to load runs: %v", err)
		http.Error(w, "Failed to load classes", http.StatusInternalServerError)
		return
	}
	run := store.FindRun(runs, runID)
	if run == nil {
		http.NotFound(w, r)
		return
	}

	run.Profile = parseProfileForm(r)
	run.UpdatedAt = time.Now()

	if err := h.store.Save(runs); err != nil {
		log.Printf("ERROR: Failed to save runs: %v", err)
		http.Error(w, "Failed to save class", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/runs/"+runID.String()+"?saved=1", http.StatusFound)
}

// Delete removes a run and everything under it.
func (h *RunsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	runID, err := runIDFromPath(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	runs, err := h.store.Load()
	if err != nil {
		log.Printf("ERROR: Failed to load runs: %v", err)
		http.Error(w, "Failed to load classes", http.StatusInternalServerError)
		return
	}
	runs = store.RemoveRun(runs, runID)
	if err := h.store.Save(runs); err != nil {
		log.Printf("ERROR: Failed to save runs: %v", err)
		http.Error(w, "Failed to delete class", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/runs?deleted=1", http.StatusFound)
}

// parseProfileForm reads the class profile form. Numeric fields fall
// back to sane defaults instead of erroring; the app intentionally has
// no validation beyond presence checks.
func parseProfileForm(r *http.Request) models.ClassProfile {
	if err := r.ParseForm(); err != nil {
		log.Printf("ERROR: Failed to parse profile form: %v", err)
	}

	totalSessions, err := strconv.Atoi(r.FormValue("total_sessions"))
	if err != nil || totalSessions < 1 {
		totalSessions = 8
	}
	hours, err := strconv.ParseFloat(r.FormValue("session_length_hours"), 64)
	if err != nil || hours <= 0 {
		hours = 1
	}
	numStudents, err := strconv.Atoi(r.FormValue("num_students"))
	if err != nil || numStudents < 0 {
		numStudents = 0
	}

	return models.ClassProfile{
		Subject:            strings.TrimSpace(r.FormValue("subject")),
		Expectation:        strings.TrimSpace(r.FormValue("expectation")),
		TotalSessions:      totalSessions,
		SessionLengthHours: hours,
		NumStudents:        numStudents,
		AgeRange:           strings.TrimSpace(r.FormValue("age_range")),
		Students:           parseStudentRows(r),
	}
}

// parseStudentRows collects the indexed student inputs. Rows where
// every field is blank are dropped.
func parseStudentRows(r *http.Request) []models.StudentDetail {
	names := r.Form["student_name"]
	ages := r.Form["student_age"]
	genders := r.Form["student_gender"]
	interests := r.Form["student_interest"]
	energies := r.Form["student_energy"]
	notes := r.Form["student_notes"]

	at := func(vals []string, i int) string {
		if i < len(vals) {
			return strings.TrimSpace(vals[i])
		}
		return ""
	}

	n := len(names)
	var students []models.StudentDetail
	for i := 0; i < n; i++ {
		s := models.StudentDetail{
			Name:     at(names, i),
			Age:      at(ages, i),
			Gender:   at(genders, i),
			Interest: at(interests, i),
			Energy:   at(energies, i),
			Notes:    at(notes, i),
		}
		if s.Name == "" && s.Age == "" && s.Gender == "" && s.Interest == "" && s.Energy == "" && s.Notes == "" {
			continue
		}
		students = append(students, s)
	}
	return students
}

// studentRows pads the student list out to NumStudents so the profile
// form always shows one row per expected student.
func studentRows(profile models.ClassProfile) []models.StudentDetail {
	rows := make([]models.StudentDetail, 0, profile.NumStudents)
	rows = append(rows, profile.Students...)
	for len(rows) < profile.NumStudents {
		rows = append(rows, models.StudentDetail{})
	}
	return rows
}
