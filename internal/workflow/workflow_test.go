package workflow

import (
	"errors"
	"math"
	"testing"

	"github.com/marcus/p75/internal/models"
)

func TestNewExercisesAreViewing(t *testing.T) {
	m := New(nil)
	if got := m.State(models.RoutineA, "a1"); got != StateViewing {
		t.Errorf("State = %s, want viewing", got)
	}
	if _, ok := m.Editing(models.RoutineA); ok {
		t.Error("no routine should be editing")
	}
}

func TestStartAndFinish(t *testing.T) {
	m := New(nil)
	if pending := m.Start(models.RoutineA, "a1"); pending != "" {
		t.Errorf("pending = %q, want none", pending)
	}
	if got := m.State(models.RoutineA, "a1"); got != StateEditing {
		t.Fatalf("State = %s, want editing", got)
	}
	if err := m.Finish(models.RoutineA, "a1"); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if got := m.State(models.RoutineA, "a1"); got != StateViewing {
		t.Errorf("State after finish = %s", got)
	}
	if err := m.Finish(models.RoutineA, "a1"); !errors.Is(err, ErrNotEditing) {
		t.Errorf("second Finish = %v, want ErrNotEditing", err)
	}
}

func TestStartSecondExerciseReturnsPending(t *testing.T) {
	m := New(nil)
	m.Start(models.RoutineA, "a1")

	if pending := m.Start(models.RoutineA, "a1"); pending != "" {
		t.Errorf("restarting same exercise pending = %q", pending)
	}
	if pending := m.Start(models.RoutineA, "a2"); pending != "a1" {
		t.Errorf("pending = %q, want a1", pending)
	}
	if m.State(models.RoutineA, "a1") != StateViewing || m.State(models.RoutineA, "a2") != StateEditing {
		t.Error("only a2 should be editing")
	}

	// other routines are independent
	if pending := m.Start(models.RoutineB, "b1"); pending != "" {
		t.Errorf("routine B pending = %q", pending)
	}
	if m.State(models.RoutineA, "a2") != StateEditing {
		t.Error("routine A edit closed by routine B")
	}
}

func TestAbandon(t *testing.T) {
	m := New(models.EditingState{models.RoutineA: "a1"})
	m.Abandon(models.RoutineA, "a2")
	if m.State(models.RoutineA, "a1") != StateEditing {
		t.Error("abandoning another exercise closed a1")
	}
	m.Abandon(models.RoutineA, "a1")
	if m.State(models.RoutineA, "a1") != StateViewing {
		t.Error("a1 still editing")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	m := New(models.EditingState{models.RoutineC: "c2", models.RoutineD: ""})
	snap := m.Snapshot()
	if len(snap) != 1 || snap[models.RoutineC] != "c2" {
		t.Fatalf("Snapshot = %v", snap)
	}
	snap[models.RoutineC] = "zz"
	if m.State(models.RoutineC, "c2") != StateEditing {
		t.Error("mutating the snapshot changed the machine")
	}
}

func TestCommitEntryReplacesSameDay(t *testing.T) {
	ex := models.Exercise{
		ID: "a1", Weight: 55, Reps: "10",
		History: []models.ExerciseHistoryEntry{{Date: "2024-01-01", Weight: 50, Reps: "10"}},
	}
	history := CommitEntry(ex, "2024-01-01")
	if len(history) != 1 {
		t.Fatalf("len(history) = %d, want 1", len(history))
	}
	want := models.ExerciseHistoryEntry{Date: "2024-01-01", Weight: 55, Reps: "10"}
	if history[0] != want {
		t.Errorf("history[0] = %+v, want %+v", history[0], want)
	}
	if ex.History[0].Weight != 50 {
		t.Error("input history mutated")
	}
}

func TestCommitEntryKeepsPriorDays(t *testing.T) {
	ex := models.Exercise{
		Weight: 60, Reps: "8",
		History: []models.ExerciseHistoryEntry{
			{Date: "2024-01-01", Weight: 50, Reps: "10"},
			{Date: "2024-01-03", Weight: 57, Reps: "9"},
			{Date: "2024-01-05", Weight: 58, Reps: "9"},
		},
	}
	history := CommitEntry(ex, "2024-01-03")
	wantDates := []string{"2024-01-01", "2024-01-05", "2024-01-03"}
	if len(history) != len(wantDates) {
		t.Fatalf("len(history) = %d", len(history))
	}
	for i, d := range wantDates {
		if history[i].Date != d {
			t.Errorf("history[%d].Date = %s, want %s", i, history[i].Date, d)
		}
	}
	if history[2].Weight != 60 {
		t.Errorf("committed weight = %v", history[2].Weight)
	}
}

func TestFieldsValidate(t *testing.T) {
	zero, neg := 0, -1.0
	nan, inf, negInf := math.NaN(), math.Inf(1), math.Inf(-1)
	blank := "  "
	tests := []struct {
		name   string
		fields Fields
		field  string
	}{
		{"zero sets", Fields{Sets: &zero}, "sets"},
		{"blank reps", Fields{Reps: &blank}, "reps"},
		{"negative weight", Fields{Weight: &neg}, "weight"},
		{"NaN weight", Fields{Weight: &nan}, "weight"},
		{"infinite weight", Fields{Weight: &inf}, "weight"},
		{"negative infinite weight", Fields{Weight: &negInf}, "weight"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ferr *FieldError
			if err := tt.fields.Validate(); !errors.As(err, &ferr) || ferr.Field != tt.field {
				t.Errorf("Validate = %v, want %s error", err, tt.field)
			}
		})
	}
	four, reps, w := 4, "Failure", 0.0
	if err := (Fields{Sets: &four, Reps: &reps, Weight: &w}).Validate(); err != nil {
		t.Errorf("valid fields rejected: %v", err)
	}
}
