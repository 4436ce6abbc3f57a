// Package catalog holds the fixed set of workout routines and the operations
// that edit their exercises. All operations return a new routine slice and
// leave their input untouched. Stale routine or exercise ids are no-ops.
package catalog

import (
	"fmt"
	"net/url"
	"time"

	"github.com/marcus/p75/internal/models"
)

// Patch is a partial update of an exercise. Nil fields are left unchanged.
type Patch struct {
	Name          *string
	Sets          *int
	Reps          *string
	Weight        *float64
	Description   *string
	TargetMuscles *string
	GifURL        *string
	Notes         *string
	LastUpdated   *int64
	History       []models.ExerciseHistoryEntry
	SetHistory    bool // apply History even when it is nil
}

// Definition describes the movement an exercise performs, independent of
// its prescription and history.
type Definition struct {
	Name          string
	Description   string
	TargetMuscles string
	GifURL        string
}

func (p Patch) apply(ex models.Exercise) models.Exercise {
	if p.Name != nil {
		ex.Name = *p.Name
	}
	if p.Sets != nil {
		ex.Sets = *p.Sets
	}
	if p.Reps != nil {
		ex.Reps = *p.Reps
	}
	if p.Weight != nil {
		ex.Weight = *p.Weight
	}
	if p.Description != nil {
		ex.Description = *p.Description
	}
	if p.TargetMuscles != nil {
		ex.TargetMuscles = *p.TargetMuscles
	}
	if p.GifURL != nil {
		ex.GifURL = *p.GifURL
	}
	if p.Notes != nil {
		ex.Notes = *p.Notes
	}
	if p.LastUpdated != nil {
		ex.LastUpdated = *p.LastUpdated
	}
	if p.History != nil || p.SetHistory {
		ex.History = append([]models.ExerciseHistoryEntry(nil), p.History...)
	}
	return ex
}

// Clone deep-copies a routine slice
func Clone(routines []models.WorkoutRoutine) []models.WorkoutRoutine {
	out := make([]models.WorkoutRoutine, len(routines))
	for i, r := range routines {
		out[i] = r.Clone()
	}
	return out
}

// FindRoutine returns the routine with the given id
func FindRoutine(routines []models.WorkoutRoutine, routineID models.RoutineID) (models.WorkoutRoutine, bool) {
	for _, r := range routines {
		if r.ID == routineID {
			return r.Clone(), true
		}
	}
	return models.WorkoutRoutine{}, false
}

// FindExercise looks an exercise up by id across every routine and returns
// it with the id of the routine that owns it.
func FindExercise(routines []models.WorkoutRoutine, exerciseID string) (models.Exercise, models.RoutineID, bool) {
	for _, r := range routines {
		for _, ex := range r.Exercises {
			if ex.ID == exerciseID {
				return ex.Clone(), r.ID, true
			}
		}
	}
	return models.Exercise{}, "", false
}

// UpdateExercise applies patch to exactly the exercise matching exerciseID
// inside routineID.
func UpdateExercise(routines []models.WorkoutRoutine, routineID models.RoutineID, exerciseID string, patch Patch) []models.WorkoutRoutine {
	out := Clone(routines)
	for i := range out {
		if out[i].ID != routineID {
			continue
		}
		for j := range out[i].Exercises {
			if out[i].Exercises[j].ID == exerciseID {
				out[i].Exercises[j] = patch.apply(out[i].Exercises[j])
			}
		}
	}
	return out
}

// ReplaceExercise swaps the movement of an exercise for def. The load
// baseline is reset to zero; id, prescription, notes and history are kept.
func ReplaceExercise(routines []models.WorkoutRoutine, routineID models.RoutineID, exerciseID string, def Definition) []models.WorkoutRoutine {
	zero := 0.0
	return UpdateExercise(routines, routineID, exerciseID, Patch{
		Name:          &def.Name,
		Description:   &def.Description,
		TargetMuscles: &def.TargetMuscles,
		GifURL:        &def.GifURL,
		Weight:        &zero,
	})
}

// AppendExercise adds ex to the end of the routine with a freshly generated
// id. The returned id is empty when the routine does not exist.
func AppendExercise(routines []models.WorkoutRoutine, routineID models.RoutineID, ex models.Exercise, now time.Time) ([]models.WorkoutRoutine, string) {
	out := Clone(routines)
	for i := range out {
		if out[i].ID != routineID {
			continue
		}
		ex = ex.Clone()
		ex.ID = newExerciseID(out, routineID, now)
		out[i].Exercises = append(out[i].Exercises, ex)
		return out, ex.ID
	}
	return out, ""
}

// newExerciseID builds "<routine>-<unix millis>", stepping forward a
// millisecond at a time until the id is unused.
func newExerciseID(routines []models.WorkoutRoutine, routineID models.RoutineID, now time.Time) string {
	ms := now.UnixMilli()
	for {
		id := fmt.Sprintf("%s-%d", routineID, ms)
		if _, _, taken := FindExercise(routines, id); !taken {
			return id
		}
		ms++
	}
}

// PlaceholderGif returns the placeholder illustration URL for an exercise
// that has no bundled visual.
func PlaceholderGif(name string) string {
	return "https://placehold.co/600x250/171717/333333?text=" + url.QueryEscape(name)
}
