package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"lessonloop/internal/config"
	"lessonloop/internal/models"
	"lessonloop/internal/planner"
	"lessonloop/internal/store"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

type SessionsHandler struct {
	cfg   *config.Config
	store store.Store
}

func NewSessionsHandler(cfg *config.Config, st store.Store) *SessionsHandler {
	return &SessionsHandler{cfg: cfg, store: st}
}

// sessionFromPath parses paths shaped /runs/{id}/sessions/{n}[/...].
func sessionFromPath(path string) (uuid.UUID, int, error) {
	parts := pathParts(path)
	if len(parts) < 4 || parts[0] != "runs" || parts[2] != "sessions" {
		return uuid.Nil, 0, fmt.Errorf("invalid session path: %s", path)
	}
	runID, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, 0, err
	}
	n, err := strconv.Atoi(parts[3])
	if err != nil || n < 1 {
		return uuid.Nil, 0, fmt.Errorf("invalid session number in path: %s", path)
	}
	return runID, n, nil
}

func (h *SessionsHandler) loadRun(w http.ResponseWriter, r *http.Request, runID uuid.UUID) ([]models.ClassRun, *models.ClassRun, bool) {
	runs, err := h.store.Load()
	if err != nil {
		log.Printf("ERROR: Failed to load runs: %v", err)
		http.Error(w, "Failed to load classes", http.StatusInternalServerError)
		return nil, nil, false
	}
	run := store.FindRun(runs, runID)
	if run == nil {
		http.NotFound(w, r)
		return nil, nil, false
	}
	return runs, run, true
}

// Generate appends the next session plan. The two guard conditions
// redirect back to the detail page as blocking alerts; nothing is
// appended in those cases.
func (h *SessionsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	runID, err := runIDFromPath(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	runs, run, ok := h.loadRun(w, r, runID)
	if !ok {
		return
	}

	rec, err := planner.GenerateNext(run, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, planner.ErrSubjectRequired):
			http.Redirect(w, r, "/runs/"+runID.String()+"?alert=subject_required", http.StatusFound)
		case errors.Is(err, planner.ErrRunCompleted):
			http.Redirect(w, r, "/runs/"+runID.String()+"?alert=run_completed", http.StatusFound)
		default:
			log.Printf("ERROR: Failed to generate plan: %v", err)
			http.Error(w, "Failed to generate plan", http.StatusInternalServerError)
		}
		return
	}

	if err := h.store.Save(runs); err != nil {
		log.Printf("ERROR: Failed to save runs: %v", err)
		http.Error(w, "Failed to save plan", http.StatusInternalServerError)
		return
	}

	h.cfg.Debugf("Generated session %d for run %s", rec.SessionNumber, runID)
	http.Redirect(w, r, fmt.Sprintf("/runs/%s/sessions/%d", runID, rec.SessionNumber), http.StatusFound)
}

// PlanView renders one generated plan on a print-friendly page.
// Printing itself is delegated to the browser.
func (h *SessionsHandler) PlanView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	runID, n, err := sessionFromPath(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	_, run, ok := h.loadRun(w, r, runID)
	if !ok {
		return
	}
	rec := run.SessionByNumber(n)
	if rec == nil {
		http.NotFound(w, r)
		return
	}

	data := map[string]interface{}{
		"Title":   fmt.Sprintf("Session %d – %s", n, run.Profile.Subject),
		"Run":     run,
		"Session": rec,
	}
	renderTemplate(w, r, "session_plan.html", data)
}

// Feedback records the instructor's session feedback (no validation,
// always accepted) and immediately generates the next plan from it.
func (h *SessionsHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	runID, n, err := sessionFromPath(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	runs, run, ok := h.loadRun(w, r, runID)
	if !ok {
		return
	}

	fb := models.SessionFeedback{
		Digestible:     r.FormValue("digestible"),
		OtherInterests: r.FormValue("other_interests"),
		NotGoodEnough:  r.FormValue("not_good_enough"),
	}
	if raw := r.FormValue("excited_count"); raw != "" {
		if count, err := strconv.Atoi(raw); err == nil && count >= 0 {
			fb.ExcitedCount = &count
		}
	}

	if err := planner.RecordFeedback(run, n, fb, time.Now()); err != nil {
		if errors.Is(err, planner.ErrSubjectRequired) {
			http.Redirect(w, r, "/runs/"+runID.String()+"?alert=subject_required", http.StatusFound)
			return
		}
		log.Printf("ERROR: Failed to record feedback: %v", err)
		http.Error(w, "Failed to record feedback", http.StatusInternalServerError)
		return
	}

	if err := h.store.Save(runs); err != nil {
		log.Printf("ERROR: Failed to save runs: %v", err)
		http.Error(w, "Failed to save feedback", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/runs/"+runID.String()+"?feedback=1", http.StatusFound)
}

// Download serves one plan as a Markdown attachment named
// Session_<n>.md.
func (h *SessionsHandler) Download(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	runID, n, err := sessionFromPath(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	_, run, ok := h.loadRun(w, r, runID)
	if !ok {
		return
	}
	rec := run.SessionByNumber(n)
	if rec == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=Session_%d.md", n))
	if _, err := w.Write([]byte(rec.PlanMd)); err != nil {
		log.Printf("ERROR: Failed to write plan download: %v", err)
	}
}

// Export serves the whole class run (profile, roster, session and
// feedback history) as an .xlsx workbook.
func (h *SessionsHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	runID, err := runIDFromPath(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	_, run, ok := h.loadRun(w, r, runID)
	if !ok {
		return
	}

	f, err := buildRunWorkbook(run)
	if err != nil {
		log.Printf("ERROR: Failed to build workbook: %v", err)
		http.Error(w, "Failed to build export", http.StatusInternalServerError)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("ERROR: Failed to close workbook: %v", err)
		}
	}()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=class_run.xlsx")
	if err := f.Write(w); err != nil {
		log.Printf("ERROR: Failed to write workbook: %v", err)
	}
}

func buildRunWorkbook(run *models.ClassRun) (*excelize.File, error) {
	f := excelize.NewFile()

	const profileSheet = "Profile"
	if err := f.SetSheetName("Sheet1", profileSheet); err != nil {
		return nil, err
	}
	profileRows := [][]interface{}{
		{"Subject", run.Profile.Subject},
		{"Goal", run.Profile.Expectation},
		{"Total sessions", run.Profile.TotalSessions},
		{"Session length (hours)", run.Profile.SessionLengthHours},
		{"Students", run.Profile.NumStudents},
		{"Age range", run.Profile.AgeRange},
	}
	for i, row := range profileRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(profileSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	const studentSheet = "Students"
	if _, err := f.NewSheet(studentSheet); err != nil {
		return nil, err
	}
	header := []interface{}{"Name", "Age", "Gender", "Interest", "Energy", "Notes"}
	if err := f.SetSheetRow(studentSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, s := range run.Profile.Students {
		row := []interface{}{s.Name, s.Age, s.Gender, s.Interest, s.Energy, s.Notes}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(studentSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	const sessionSheet = "Sessions"
	if _, err := f.NewSheet(sessionSheet); err != nil {
		return nil, err
	}
	header = []interface{}{"Session", "Generated", "Excited count", "Digestible", "Other interests", "Needs work"}
	if err := f.SetSheetRow(sessionSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, rec := range run.Sessions {
		excited := ""
		digestible := ""
		otherInterests := ""
		notGoodEnough := ""
		if rec.Feedback != nil {
			if rec.Feedback.ExcitedCount != nil {
				excited = strconv.Itoa(*rec.Feedback.ExcitedCount)
			}
			digestible = rec.Feedback.Digestible
			otherInterests = rec.Feedback.OtherInterests
			notGoodEnough = rec.Feedback.NotGoodEnough
		}
		row := []interface{}{
			rec.SessionNumber,
			rec.GeneratedAt.Format("2006-01-02 15:04"),
			excited,
			digestible,
			otherInterests,
			notGoodEnough,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sessionSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
