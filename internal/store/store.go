package store

import (
	"encoding/json"

	"lessonloop/internal/models"

	"github.com/google/uuid"
)

// slotKey names the single persistence slot holding the serialized
// run list. Every backend stores one blob under this key.
const slotKey = "class_runs"

// Store persists the full list of class runs as one serialized blob.
// Load never fails on malformed content: anything that does not decode
// degrades silently to an empty starting state. Writes are
// last-write-wins; the app is single-user and fully synchronous.
type Store interface {
	Load() ([]models.ClassRun, error)
	Save(runs []models.ClassRun) error
	Close() error
}

func encodeRuns(runs []models.ClassRun) ([]byte, error) {
	return json.Marshal(runs)
}

// decodeRuns turns a stored blob back into the run list. Malformed or
// empty content is treated as an empty list, not an error.
func decodeRuns(data []byte) []models.ClassRun {
	if len(data) == 0 {
		return nil
	}
	var runs []models.ClassRun
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil
	}
	return runs
}

// FindRun returns the run with the given ID, or nil.
func FindRun(runs []models.ClassRun, id uuid.UUID) *models.ClassRun {
	for i := range runs {
		if runs[i].ID == id {
			return &runs[i]
		}
	}
	return nil
}

// UpsertRun replaces the run with a matching ID, or appends it.
func UpsertRun(runs []models.ClassRun, run models.ClassRun) []models.ClassRun {
	for i := range runs {
		if runs[i].ID == run.ID {
			runs[i] = run
			return runs
		}
	}
	return append(runs, run)
}

// RemoveRun drops the run with the given ID, preserving order.
func RemoveRun(runs []models.ClassRun, id uuid.UUID) []models.ClassRun {
	out := runs[:0]
	for i := range runs {
		if runs[i].ID != id {
			out = append(out, runs[i])
		}
	}
	return out
}
