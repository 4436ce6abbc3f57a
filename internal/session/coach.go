package session

import (
	"context"
	"strconv"

	"github.com/marcus/p75/internal/assistant"
	"github.com/marcus/p75/internal/catalog"
	"github.com/marcus/p75/internal/db"
	"github.com/marcus/p75/internal/ledger"
	"github.com/marcus/p75/internal/models"
	"github.com/marcus/p75/internal/progress"

	log "github.com/sirupsen/logrus"
)

// AIEnabled reports whether the collaborator can reach a model
func (s *Session) AIEnabled() bool {
	return s.ai.Enabled()
}

// ScanMeal asks the collaborator to itemize free text and appends the
// result to the log for the date the request was made. Items that fail
// validation are dropped.
func (s *Session) ScanMeal(ctx context.Context, text string) ([]models.FoodItem, error) {
	date := s.Today()
	target := "meal:" + date
	gen := s.beginRequest(target)

	items := s.ai.ParseMealText(ctx, text)

	valid := items[:0:0]
	for _, item := range items {
		if err := ledger.Validate(item); err != nil {
			log.Warnf("session: drop scanned item %q: %s", item.Name, err)
			continue
		}
		valid = append(valid, item)
	}
	if len(valid) == 0 {
		return nil, ErrNoSuggestion
	}

	var err error
	s.update(func() []string {
		if !s.current(target, gen) {
			err = ErrStale
			return nil
		}
		s.logs.Put(date, ledger.AddItems(s.logs.Get(date, s.user.CurrentWeight), valid...))
		return []string{db.KeyLogs}
	})
	if err != nil {
		return nil, err
	}
	return valid, nil
}

// SwapExerciseAI replaces an exercise with the collaborator's alternative
func (s *Session) SwapExerciseAI(ctx context.Context, routineID models.RoutineID, exerciseID string) (models.Exercise, error) {
	var current models.Exercise
	var ok bool
	s.read(func() { current, ok = s.exerciseIn(routineID, exerciseID) })
	if !ok {
		return models.Exercise{}, ErrNoSuggestion
	}

	target := "swap:" + exerciseID
	gen := s.beginRequest(target)
	alt := s.ai.SuggestAlternative(ctx, current.Name, current.TargetMuscles)
	if alt == nil {
		return models.Exercise{}, ErrNoSuggestion
	}

	var out models.Exercise
	var err error
	s.update(func() []string {
		if !s.current(target, gen) {
			err = ErrStale
			return nil
		}
		def := catalog.Definition{
			Name:          alt.Name,
			Description:   alt.Description,
			TargetMuscles: current.TargetMuscles,
		}
		if !s.swap(routineID, exerciseID, def, s.now().UnixMilli()) {
			err = ErrNoSuggestion
			return nil
		}
		out, _ = s.exerciseIn(routineID, exerciseID)
		return []string{db.KeyWorkouts, db.KeyEditing}
	})
	return out, err
}

// SuggestExercise asks the collaborator for an exercise that complements a
// routine and appends it
func (s *Session) SuggestExercise(ctx context.Context, routineID models.RoutineID) (models.Exercise, error) {
	routine, ok := s.Routine(routineID)
	if !ok {
		return models.Exercise{}, ErrNoSuggestion
	}
	names := make([]string, len(routine.Exercises))
	for i, ex := range routine.Exercises {
		names[i] = ex.Name
	}

	target := "add:" + string(routineID)
	gen := s.beginRequest(target)
	suggestion := s.ai.SuggestNewExercise(ctx, routine.Name, names)
	if suggestion == nil {
		return models.Exercise{}, ErrNoSuggestion
	}

	ex := models.Exercise{
		Name:          suggestion.Name,
		Sets:          suggestion.Sets,
		Reps:          suggestion.Reps,
		Description:   suggestion.Description,
		TargetMuscles: suggestion.TargetMuscles,
		GifURL:        catalog.PlaceholderGif(suggestion.Name),
	}
	var err error
	s.update(func() []string {
		if !s.current(target, gen) {
			err = ErrStale
			return nil
		}
		workouts, id := catalog.AppendExercise(s.workouts, routineID, ex, s.now())
		if id == "" {
			err = ErrNoSuggestion
			return nil
		}
		s.workouts = workouts
		ex.ID = id
		return []string{db.KeyWorkouts}
	})
	if err != nil {
		return models.Exercise{}, err
	}
	return ex, nil
}

// ChatHistory returns the coach transcript
func (s *Session) ChatHistory() []models.ChatMessage {
	var out []models.ChatMessage
	s.read(func() { out = append([]models.ChatMessage(nil), s.chat...) })
	return out
}

// ClearChat empties the transcript
func (s *Session) ClearChat() {
	s.update(func() []string {
		s.chat = nil
		return []string{db.KeyChat}
	})
}

// Chat appends the user's message, asks the coach, and appends the reply.
// A reply superseded by a newer message is discarded.
func (s *Session) Chat(ctx context.Context, text string) (models.ChatMessage, error) {
	var history []models.ChatMessage
	var profile models.UserProfile
	s.update(func() []string {
		history = append([]models.ChatMessage(nil), s.chat...)
		profile = s.user
		s.chat = append(s.chat, s.newMessage(models.RoleUser, text))
		return []string{db.KeyChat}
	})

	const target = "chat"
	gen := s.beginRequest(target)
	reply := s.ai.Chat(ctx, text, history, assistant.UserContext(profile))

	var msg models.ChatMessage
	var err error
	s.update(func() []string {
		if !s.current(target, gen) {
			err = ErrStale
			return nil
		}
		msg = s.newMessage(models.RoleModel, reply)
		s.chat = append(s.chat, msg)
		return []string{db.KeyChat}
	})
	return msg, err
}

// newMessage must be called with the lock held. Ids are unix millis, bumped
// past the last message so they stay unique and ordered.
func (s *Session) newMessage(role models.Role, text string) models.ChatMessage {
	ts := s.now().UnixMilli()
	if n := len(s.chat); n > 0 && ts <= s.chat[n-1].Timestamp {
		ts = s.chat[n-1].Timestamp + 1
	}
	return models.ChatMessage{
		ID:        strconv.FormatInt(ts, 10),
		Role:      role,
		Text:      text,
		Timestamp: ts,
	}
}

// Progress builds the report for the current aggregates. exerciseID selects
// the load series and may be empty.
func (s *Session) Progress(exerciseID string) progress.Report {
	var in progress.Input
	s.read(func() {
		in = progress.Input{
			Profile:    s.user,
			Logs:       s.logs.List(),
			Routines:   catalog.Clone(s.workouts),
			ExerciseID: exerciseID,
		}
	})
	if s.memo != nil {
		return s.memo.Report(in)
	}
	return progress.Build(in)
}
