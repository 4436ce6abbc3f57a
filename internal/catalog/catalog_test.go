package catalog

import (
	"testing"
	"time"

	"github.com/marcus/p75/internal/models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestDefaultsShape(t *testing.T) {
	routines := Defaults()
	if len(routines) != 5 {
		t.Fatalf("len(Defaults) = %d, want 5", len(routines))
	}
	seen := map[string]bool{}
	for _, r := range routines {
		if n := len(r.Exercises); n < 3 || n > 4 {
			t.Errorf("routine %s has %d exercises, want 3-4", r.ID, n)
		}
		for _, ex := range r.Exercises {
			if seen[ex.ID] {
				t.Errorf("duplicate exercise id %s", ex.ID)
			}
			seen[ex.ID] = true
			if ex.Sets <= 0 {
				t.Errorf("exercise %s has %d sets", ex.ID, ex.Sets)
			}
		}
	}
}

func TestUpdateExerciseTouchesOnlyTarget(t *testing.T) {
	routines := Defaults()
	out := UpdateExercise(routines, models.RoutineA, "a2", Patch{Weight: floatPtr(65), Sets: intPtr(5)})

	ex, _, _ := FindExercise(out, "a2")
	if ex.Weight != 65 || ex.Sets != 5 {
		t.Errorf("a2 = %+v, want weight 65 sets 5", ex)
	}
	if ex.Reps != "8-10" {
		t.Errorf("unpatched field changed: reps = %q", ex.Reps)
	}

	other, _, _ := FindExercise(out, "a1")
	if other.Weight != 20 {
		t.Errorf("a1 weight = %v, want 20", other.Weight)
	}
	orig, _, _ := FindExercise(routines, "a2")
	if orig.Weight != 60 {
		t.Error("input catalog mutated")
	}
}

func TestUpdateExerciseUnknownIDsAreNoOps(t *testing.T) {
	routines := Defaults()
	tests := []struct {
		name     string
		routine  models.RoutineID
		exercise string
	}{
		{"unknown exercise", models.RoutineA, "zz"},
		{"exercise in other routine", models.RoutineA, "b1"},
		{"unknown routine", "Z", "a1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := UpdateExercise(routines, tt.routine, tt.exercise, Patch{Weight: floatPtr(999)})
			for _, r := range out {
				for _, ex := range r.Exercises {
					if ex.Weight == 999 {
						t.Errorf("exercise %s was patched", ex.ID)
					}
				}
			}
		})
	}
}

func TestReplaceExerciseResetsWeightKeepsIdentity(t *testing.T) {
	history := []models.ExerciseHistoryEntry{{Date: "2024-01-01", Weight: 60, Reps: "10"}}
	routines := UpdateExercise(Defaults(), models.RoutineA, "a2", Patch{History: history, Notes: strPtr("elbows in")})

	def, ok := LookupLibrary("High Cable Crossover")
	if !ok {
		t.Fatal("library entry missing")
	}
	out := ReplaceExercise(routines, models.RoutineA, "a2", def)

	ex, _, _ := FindExercise(out, "a2")
	if ex.ID != "a2" {
		t.Errorf("id changed to %q", ex.ID)
	}
	if ex.Weight != 0 {
		t.Errorf("weight = %v, want 0", ex.Weight)
	}
	if ex.Name != def.Name || ex.TargetMuscles != def.TargetMuscles || ex.GifURL != def.GifURL || ex.Description != def.Description {
		t.Errorf("definition not applied: %+v", ex)
	}
	if len(ex.History) != 1 || ex.History[0] != history[0] {
		t.Errorf("history not preserved: %+v", ex.History)
	}
	if ex.Notes != "elbows in" || ex.Sets != 3 || ex.Reps != "8-10" {
		t.Errorf("prescription not preserved: %+v", ex)
	}
}

func TestAppendExerciseGeneratesUniqueIDs(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	routines := Defaults()

	out, id1 := AppendExercise(routines, models.RoutineB, models.Exercise{Name: "Shrug", Sets: 3, Reps: "10-12"}, now)
	out, id2 := AppendExercise(out, models.RoutineB, models.Exercise{Name: "Curl", Sets: 3, Reps: "10-12"}, now)

	if id1 != "B-1700000000000" {
		t.Errorf("id1 = %q", id1)
	}
	if id2 == id1 || id2 == "" {
		t.Errorf("id2 = %q collides with %q", id2, id1)
	}
	r, _ := FindRoutine(out, models.RoutineB)
	if len(r.Exercises) != 6 {
		t.Fatalf("routine B has %d exercises, want 6", len(r.Exercises))
	}
	if r.Exercises[4].ID != id1 || r.Exercises[5].ID != id2 {
		t.Error("exercises not appended at the end in order")
	}
}

func TestAppendExerciseUnknownRoutine(t *testing.T) {
	out, id := AppendExercise(Defaults(), "Z", models.Exercise{Name: "x"}, time.Now())
	if id != "" {
		t.Errorf("id = %q, want empty", id)
	}
	if len(out) != 5 {
		t.Errorf("catalog changed size")
	}
}
