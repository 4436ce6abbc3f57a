package session

import (
	"strings"

	"github.com/marcus/p75/internal/catalog"
	"github.com/marcus/p75/internal/db"
	"github.com/marcus/p75/internal/models"
	"github.com/marcus/p75/internal/workflow"

	log "github.com/sirupsen/logrus"
)

// Manual additions start from this prescription
const (
	DefaultSets = 3
	DefaultReps = "10-12"
)

// Workouts returns a copy of every routine
func (s *Session) Workouts() []models.WorkoutRoutine {
	var out []models.WorkoutRoutine
	s.read(func() { out = catalog.Clone(s.workouts) })
	return out
}

// Routine returns one routine
func (s *Session) Routine(id models.RoutineID) (models.WorkoutRoutine, bool) {
	var r models.WorkoutRoutine
	var ok bool
	s.read(func() { r, ok = catalog.FindRoutine(s.workouts, id) })
	return r, ok
}

// Exercise looks an exercise up by id in any routine
func (s *Session) Exercise(exerciseID string) (models.Exercise, models.RoutineID, bool) {
	var ex models.Exercise
	var routineID models.RoutineID
	var ok bool
	s.read(func() { ex, routineID, ok = catalog.FindExercise(s.workouts, exerciseID) })
	return ex, routineID, ok
}

// EditState returns whether an exercise is being viewed or edited
func (s *Session) EditState(routineID models.RoutineID, exerciseID string) workflow.State {
	var st workflow.State
	s.read(func() { st = s.edits.State(routineID, exerciseID) })
	return st
}

// Editing returns the exercise open for editing in a routine
func (s *Session) Editing(routineID models.RoutineID) (string, bool) {
	var id string
	var ok bool
	s.read(func() { id, ok = s.edits.Editing(routineID) })
	return id, ok
}

func (s *Session) exerciseIn(routineID models.RoutineID, exerciseID string) (models.Exercise, bool) {
	ex, owner, ok := catalog.FindExercise(s.workouts, exerciseID)
	return ex, ok && owner == routineID
}

// StartEdit opens an exercise for editing. If another exercise in the same
// routine was open it is committed first and its id returned. Unknown ids
// report ok=false and change nothing.
func (s *Session) StartEdit(routineID models.RoutineID, exerciseID string) (committed string, ok bool) {
	s.update(func() []string {
		if _, ok = s.exerciseIn(routineID, exerciseID); !ok {
			return nil
		}
		pending := s.edits.Start(routineID, exerciseID)
		if pending == "" {
			return []string{db.KeyEditing}
		}
		if _, exists := s.exerciseIn(routineID, pending); exists {
			s.commit(routineID, pending)
			committed = pending
		}
		return []string{db.KeyWorkouts, db.KeyEditing}
	})
	return committed, ok
}

// SetFields writes prescription fields to an exercise open for editing.
// History is not touched.
func (s *Session) SetFields(routineID models.RoutineID, exerciseID string, fields workflow.Fields) error {
	if err := fields.Validate(); err != nil {
		return err
	}
	var err error
	s.update(func() []string {
		if s.edits.State(routineID, exerciseID) != workflow.StateEditing {
			err = workflow.ErrNotEditing
			return nil
		}
		if fields.Empty() {
			return nil
		}
		if fields.Reps != nil {
			reps := strings.TrimSpace(*fields.Reps)
			fields.Reps = &reps
		}
		s.workouts = catalog.UpdateExercise(s.workouts, routineID, exerciseID, catalog.Patch{
			Sets:   fields.Sets,
			Reps:   fields.Reps,
			Weight: fields.Weight,
			Notes:  fields.Notes,
		})
		return []string{db.KeyWorkouts}
	})
	return err
}

// Commit records today's history entry from the live weight and reps and
// returns the exercise to viewing
func (s *Session) Commit(routineID models.RoutineID, exerciseID string) (models.Exercise, error) {
	var ex models.Exercise
	var err error
	s.update(func() []string {
		if s.edits.State(routineID, exerciseID) != workflow.StateEditing {
			err = workflow.ErrNotEditing
			return nil
		}
		s.commit(routineID, exerciseID)
		ex, _ = s.exerciseIn(routineID, exerciseID)
		return []string{db.KeyWorkouts, db.KeyEditing}
	})
	return ex, err
}

// commit must be called with the lock held
func (s *Session) commit(routineID models.RoutineID, exerciseID string) {
	ex, ok := s.exerciseIn(routineID, exerciseID)
	if ok {
		s.workouts = catalog.UpdateExercise(s.workouts, routineID, exerciseID, catalog.Patch{
			History: workflow.CommitEntry(ex, s.Today()),
		})
		log.WithFields(log.Fields{
			"exercise": exerciseID,
			"weight":   ex.Weight,
			"reps":     ex.Reps,
		}).Debug("session: committed exercise")
	}
	s.edits.Abandon(routineID, exerciseID)
}

// SwapExercise replaces the movement of an exercise with def. The weight
// baseline resets to zero and any edit session closes without committing.
func (s *Session) SwapExercise(routineID models.RoutineID, exerciseID string, def catalog.Definition) bool {
	var ok bool
	s.update(func() []string {
		ok = s.swap(routineID, exerciseID, def, 0)
		if !ok {
			return nil
		}
		return []string{db.KeyWorkouts, db.KeyEditing}
	})
	return ok
}

// swap must be called with the lock held. A non-zero stamp sets lastUpdated.
func (s *Session) swap(routineID models.RoutineID, exerciseID string, def catalog.Definition, stamp int64) bool {
	if _, ok := s.exerciseIn(routineID, exerciseID); !ok {
		return false
	}
	if def.GifURL == "" {
		def.GifURL = catalog.PlaceholderGif(def.Name)
	}
	s.workouts = catalog.ReplaceExercise(s.workouts, routineID, exerciseID, def)
	if stamp != 0 {
		s.workouts = catalog.UpdateExercise(s.workouts, routineID, exerciseID, catalog.Patch{LastUpdated: &stamp})
	}
	s.edits.Abandon(routineID, exerciseID)
	return true
}

// AddExercise appends ex to a routine and returns its generated id, or ""
// if the routine does not exist
func (s *Session) AddExercise(routineID models.RoutineID, ex models.Exercise) string {
	if ex.Sets <= 0 {
		ex.Sets = DefaultSets
	}
	if strings.TrimSpace(ex.Reps) == "" {
		ex.Reps = DefaultReps
	}
	if ex.GifURL == "" {
		ex.GifURL = catalog.PlaceholderGif(ex.Name)
	}
	ex.History = nil

	var id string
	s.update(func() []string {
		s.workouts, id = catalog.AppendExercise(s.workouts, routineID, ex, s.now())
		if id == "" {
			return nil
		}
		return []string{db.KeyWorkouts}
	})
	return id
}
