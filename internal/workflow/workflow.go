// Package workflow implements the exercise edit state machine.
//
// Every exercise starts in the viewing state. An explicit start moves it to
// editing, where prescription fields may be written directly to the live
// exercise. Committing records a dated history entry and returns the
// exercise to viewing. Only one exercise per routine may be in editing;
// starting a second one auto-commits the first.
package workflow

import (
	"errors"
	"math"
	"strings"

	"github.com/marcus/p75/internal/models"
)

// State of a single exercise
type State string

const (
	StateViewing State = "viewing"
	StateEditing State = "editing"
)

var (
	// ErrNotEditing is returned when a field write or commit targets an
	// exercise that is not open for editing
	ErrNotEditing = errors.New("exercise is not in edit mode")
)

// Machine tracks which exercise, if any, is open in each routine
type Machine struct {
	editing models.EditingState
}

// New creates a machine from persisted editing state
func New(state models.EditingState) *Machine {
	m := &Machine{editing: make(models.EditingState, len(state))}
	for routine, exercise := range state {
		if exercise != "" {
			m.editing[routine] = exercise
		}
	}
	return m
}

// State returns the state of an exercise
func (m *Machine) State(routineID models.RoutineID, exerciseID string) State {
	if m.editing[routineID] == exerciseID && exerciseID != "" {
		return StateEditing
	}
	return StateViewing
}

// Editing returns the exercise open in a routine
func (m *Machine) Editing(routineID models.RoutineID) (string, bool) {
	id, ok := m.editing[routineID]
	return id, ok
}

// Start opens exerciseID for editing. If another exercise in the same
// routine was open, its id is returned as pending and the caller must commit
// it. Starting an exercise that is already open is a no-op.
func (m *Machine) Start(routineID models.RoutineID, exerciseID string) (pending string) {
	current, open := m.editing[routineID]
	if open && current == exerciseID {
		return ""
	}
	m.editing[routineID] = exerciseID
	if open {
		return current
	}
	return ""
}

// Finish closes the edit session of exerciseID. It returns ErrNotEditing if
// the exercise was not open.
func (m *Machine) Finish(routineID models.RoutineID, exerciseID string) error {
	if m.State(routineID, exerciseID) != StateEditing {
		return ErrNotEditing
	}
	delete(m.editing, routineID)
	return nil
}

// Abandon closes the edit session of exerciseID without requiring it to be
// open. Used when the exercise's movement is swapped.
func (m *Machine) Abandon(routineID models.RoutineID, exerciseID string) {
	if m.editing[routineID] == exerciseID {
		delete(m.editing, routineID)
	}
}

// Snapshot returns a copy of the editing state for persistence
func (m *Machine) Snapshot() models.EditingState {
	out := make(models.EditingState, len(m.editing))
	for k, v := range m.editing {
		out[k] = v
	}
	return out
}

// CommitEntry returns ex's history with today's entry built from its live
// weight and reps. Any existing entry for date is replaced; entries from
// other days are kept in order.
func CommitEntry(ex models.Exercise, date string) []models.ExerciseHistoryEntry {
	history := make([]models.ExerciseHistoryEntry, 0, len(ex.History)+1)
	for _, h := range ex.History {
		if h.Date != date {
			history = append(history, h)
		}
	}
	return append(history, models.ExerciseHistoryEntry{
		Date:   date,
		Weight: ex.Weight,
		Reps:   ex.Reps,
	})
}

// Fields are the prescription values writable while editing
type Fields struct {
	Sets   *int
	Reps   *string
	Weight *float64
	Notes  *string
}

// Empty reports whether no field is set
func (f Fields) Empty() bool {
	return f.Sets == nil && f.Reps == nil && f.Weight == nil && f.Notes == nil
}

// FieldError reports an invalid field write
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

// Validate checks field values before they reach the live exercise
func (f Fields) Validate() error {
	if f.Sets != nil && *f.Sets <= 0 {
		return &FieldError{Field: "sets", Reason: "must be greater than zero"}
	}
	if f.Reps != nil && strings.TrimSpace(*f.Reps) == "" {
		return &FieldError{Field: "reps", Reason: "required"}
	}
	if f.Weight != nil {
		if math.IsNaN(*f.Weight) || math.IsInf(*f.Weight, 0) {
			return &FieldError{Field: "weight", Reason: "must be a finite number"}
		}
		if *f.Weight < 0 {
			return &FieldError{Field: "weight", Reason: "must not be negative"}
		}
	}
	return nil
}
