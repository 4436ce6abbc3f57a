// Package session owns the in-memory aggregates of a running p75 instance.
// Every change goes through one update path that applies the mutation under
// the session lock and then writes the touched aggregates to the store.
package session

import (
	"math"
	"sync"
	"time"

	"github.com/marcus/p75/internal/assistant"
	"github.com/marcus/p75/internal/catalog"
	"github.com/marcus/p75/internal/daylog"
	"github.com/marcus/p75/internal/db"
	"github.com/marcus/p75/internal/models"
	"github.com/marcus/p75/internal/progress"
	"github.com/marcus/p75/internal/workflow"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Store persists whole aggregates by key. *db.DB implements it.
type Store interface {
	db.KV
	// Update runs fn while holding the store's write lock
	Update(fn func(kv db.KV) error) error
}

// Session is the single owner of user, logs, workouts, chat and editing
// state. Other processes may write the same store: every mutation reloads
// the stored aggregates under the store's write lock before applying, so
// changes made elsewhere are never overwritten.
type Session struct {
	mu    sync.Mutex
	store Store
	ai    assistant.Collaborator
	now   func() time.Time
	memo  *progress.Memo

	user     models.UserProfile
	logs     *daylog.Book
	workouts []models.WorkoutRoutine
	chat     []models.ChatMessage
	edits    *workflow.Machine

	// generations counts AI requests per target. It is stored so that a
	// reply is recognized as stale even when the newer request came from
	// another process.
	generations map[string]uint64
	persistErr  error
}

type Option func(*Session)

// WithClock sets the source of "now". Dates are taken in the clock's location.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithCollaborator(c assistant.Collaborator) Option {
	return func(s *Session) { s.ai = c }
}

// WithMemo caches progress reports
func WithMemo(m *progress.Memo) Option {
	return func(s *Session) { s.memo = m }
}

// Load reads every aggregate from store. Missing aggregates start from their
// defaults; nothing is written until the first mutation.
func Load(store Store, opts ...Option) (*Session, error) {
	s := &Session{
		store:       store,
		ai:          assistant.Disabled{},
		now:         time.Now,
		user:        models.DefaultProfile(),
		logs:        daylog.NewBook(nil),
		workouts:    catalog.Defaults(),
		edits:       workflow.New(nil),
		generations: make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.reload(store); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"logs":     s.logs.Len(),
		"routines": len(s.workouts),
		"chat":     len(s.chat),
	}).Debug("session: loaded")
	return s, nil
}

// reload replaces the in-memory aggregates with the stored ones. Keys that
// were never stored keep their current value. Nothing changes on error.
// The caller must hold the lock, except from Load.
func (s *Session) reload(kv db.KV) error {
	user := models.DefaultProfile()
	var logs map[string]models.DailyLog
	var workouts []models.WorkoutRoutine
	var chat []models.ChatMessage
	var editing models.EditingState
	var requests map[string]uint64

	aggregates := []struct {
		key   string
		dst   any
		apply func()
	}{
		{db.KeyUser, &user, func() { s.user = user }},
		{db.KeyLogs, &logs, func() { s.logs = daylog.NewBook(logs) }},
		{db.KeyWorkouts, &workouts, func() {
			if len(workouts) > 0 {
				s.workouts = workouts
			}
		}},
		{db.KeyChat, &chat, func() { s.chat = chat }},
		{db.KeyEditing, &editing, func() { s.edits = workflow.New(editing) }},
		{db.KeyRequests, &requests, func() {
			if requests != nil {
				s.generations = requests
			}
		}},
	}

	var err error
	found := make([]bool, len(aggregates))
	for i, a := range aggregates {
		ok, getErr := kv.Get(a.key, a.dst)
		found[i] = ok
		err = multierr.Append(err, getErr)
	}
	if err != nil {
		return err
	}
	for i, a := range aggregates {
		if found[i] {
			a.apply()
		}
	}
	return nil
}

// update applies fn to freshly reloaded aggregates and writes the ones it
// reports as touched, all under the store's write lock. If the store cannot
// be read or written the change still applies in memory and the failure is
// logged and recorded, never rolled back.
func (s *Session) update(fn func() []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var touched []string
	applied := false
	err := s.store.Update(func(kv db.KV) error {
		if err := s.reload(kv); err != nil {
			return err
		}
		touched = fn()
		applied = true

		var err error
		for _, key := range touched {
			err = multierr.Append(err, kv.Put(key, s.snapshot(key)))
		}
		return err
	})
	if !applied {
		touched = fn()
	}
	if err != nil && len(touched) > 0 {
		perr := &PersistenceError{Keys: touched, Err: err}
		log.Errorf("session: %s", perr)
		s.persistErr = multierr.Append(s.persistErr, perr)
	}
}

func (s *Session) snapshot(key string) any {
	switch key {
	case db.KeyUser:
		return s.user
	case db.KeyLogs:
		return s.logs.Map()
	case db.KeyWorkouts:
		return s.workouts
	case db.KeyChat:
		return s.chat
	case db.KeyEditing:
		return s.edits.Snapshot()
	case db.KeyRequests:
		return s.generations
	}
	return nil
}

// Persist writes every aggregate to the store, including defaults that
// were never mutated. Used once by init to seed a fresh database.
func (s *Session) Persist() error {
	s.update(func() []string {
		return []string{db.KeyUser, db.KeyLogs, db.KeyWorkouts, db.KeyChat, db.KeyEditing}
	})
	return s.Err()
}

// Err returns and clears the persistence failures recorded since the last call
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.persistErr
	s.persistErr = nil
	return err
}

// Today returns the local date key for the session clock
func (s *Session) Today() string {
	return models.FormatDate(s.now())
}

func (s *Session) read(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// beginRequest starts an AI request for target and returns its generation
func (s *Session) beginRequest(target string) uint64 {
	var gen uint64
	s.update(func() []string {
		s.generations[target]++
		gen = s.generations[target]
		return []string{db.KeyRequests}
	})
	return gen
}

// current reports whether gen is still the latest request for target. The
// caller must hold the lock and have reloaded the stored generations.
func (s *Session) current(target string, gen uint64) bool {
	return s.generations[target] == gen
}

func validWeight(kg float64) bool {
	return kg > 0 && !math.IsNaN(kg) && !math.IsInf(kg, 0)
}
