package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/marcus/p75/internal/assistant"
	"github.com/marcus/p75/internal/config"
	"github.com/marcus/p75/internal/db"
	"github.com/marcus/p75/internal/ledger"
	"github.com/marcus/p75/internal/logging"
	"github.com/marcus/p75/internal/models"
	"github.com/marcus/p75/internal/output"
	"github.com/marcus/p75/internal/progress"
	"github.com/marcus/p75/internal/session"
	"github.com/marcus/p75/internal/suggest"
	"github.com/marcus/p75/internal/workflow"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// memoSizeMB bounds the progress report cache
const memoSizeMB = 1

// app bundles what a command needs to operate on the tracker
type app struct {
	cfg  *config.Config
	db   *db.DB
	sess *session.Session
	memo *progress.Memo
	logs io.Closer
}

// openApp loads config, starts logging, opens the database and loads the
// session. With create set the database is initialized if missing.
func openApp(create bool) (*app, error) {
	dir := getBaseDir()

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	var database *db.DB
	if create {
		database, err = db.Initialize(dir)
	} else {
		database, err = db.Open(dir)
	}
	if err != nil {
		return nil, err
	}

	closer := logging.Setup(logging.SetupParams{
		LogFileName: cfg.LogPath(dir),
		LogLevel:    cfg.Log.Level,
		LogToStderr: verboseFlag,
	})

	ai := assistant.New(assistant.Options{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	})

	memo := progress.NewMemo(memoSizeMB).WithStore(database)
	sess, err := session.Load(database,
		session.WithCollaborator(ai),
		session.WithMemo(memo),
	)
	if err != nil {
		return nil, multierr.Combine(fmt.Errorf("load session: %w", err), database.Close(), closer.Close())
	}

	log.WithField("dir", dir).Debug("p75: session opened")
	return &app{cfg: cfg, db: database, sess: sess, memo: memo, logs: closer}, nil
}

// Close reports unsaved changes and releases the database and log file
func (a *app) Close() error {
	a.warnUnsaved()
	return multierr.Combine(a.db.Close(), a.logs.Close())
}

// warnUnsaved surfaces persistence failures recorded by the session. The
// in-memory state stays applied; only the write was lost.
func (a *app) warnUnsaved() {
	if err := a.sess.Err(); err != nil {
		output.Warning("some changes were not saved: %v", err)
	}
}

// errorCode maps an error to the JSON error taxonomy
func errorCode(err error) string {
	var verr *ledger.ValidationError
	var ferr *workflow.FieldError
	switch {
	case errors.Is(err, workflow.ErrNotEditing):
		return output.ErrCodeNotEditing
	case errors.Is(err, session.ErrNoSuggestion), errors.Is(err, session.ErrStale):
		return output.ErrCodeAIUnavailable
	case errors.As(err, &verr), errors.As(err, &ferr), errors.Is(err, session.ErrInvalidWeight):
		return output.ErrCodeInvalidInput
	case errors.Is(err, db.ErrNotInitialized), errors.Is(err, errNotFound):
		return output.ErrCodeNotFound
	default:
		return output.ErrCodeDatabaseError
	}
}

var errNotFound = errors.New("not found")

// fail prints err in the requested mode and returns it for cobra
func fail(jsonOut bool, err error) error {
	if jsonOut {
		output.JSONError(errorCode(err), err.Error())
	} else {
		output.Error("%v", err)
	}
	return err
}

// parseRoutine accepts a routine letter in either case
func parseRoutine(s string) (models.RoutineID, error) {
	id := models.RoutineID(strings.ToUpper(strings.TrimSpace(s)))
	switch id {
	case models.RoutineA, models.RoutineB, models.RoutineC, models.RoutineD, models.RoutineE:
		return id, nil
	}
	return "", fmt.Errorf("routine %q: %w (use A-E)", s, errNotFound)
}

// findExercise resolves an exercise id to its owning routine
func findExercise(sess *session.Session, id string) (models.Exercise, models.RoutineID, error) {
	ex, routineID, ok := sess.Exercise(id)
	if !ok {
		err := fmt.Errorf("exercise %q: %w", id, errNotFound)
		var ids []string
		for _, r := range sess.Workouts() {
			for _, e := range r.Exercises {
				ids = append(ids, e.ID)
			}
		}
		if hint := suggest.Hint(suggest.Names(id, ids)); hint != "" {
			err = fmt.Errorf("%w; %s", err, hint)
		}
		return models.Exercise{}, "", err
	}
	return ex, routineID, nil
}

// parseKg parses a positive weight argument
func parseKg(s string) (float64, error) {
	kg, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || kg <= 0 {
		return 0, fmt.Errorf("%q: %w", s, session.ErrInvalidWeight)
	}
	return kg, nil
}
