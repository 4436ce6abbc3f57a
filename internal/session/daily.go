package session

import (
	"strings"

	"github.com/marcus/p75/internal/daylog"
	"github.com/marcus/p75/internal/db"
	"github.com/marcus/p75/internal/ledger"
	"github.com/marcus/p75/internal/models"
)

// Profile returns the user profile
func (s *Session) Profile() models.UserProfile {
	var p models.UserProfile
	s.read(func() {
		p = s.user
		if s.user.Height != nil {
			p.Height = models.Float64(*s.user.Height)
		}
	})
	return p
}

// SetCurrentWeight records a new body weight and writes it onto today's log,
// creating the log if needed
func (s *Session) SetCurrentWeight(kg float64) error {
	if !validWeight(kg) {
		return ErrInvalidWeight
	}
	s.update(func() []string {
		s.user.CurrentWeight = kg
		today := s.Today()
		s.logs.Put(today, daylog.SetWeight(s.logs.Get(today, kg), kg))
		return []string{db.KeyUser, db.KeyLogs}
	})
	return nil
}

// SetStartWeight sets the weight progress is measured from
func (s *Session) SetStartWeight(kg float64) error {
	if !validWeight(kg) {
		return ErrInvalidWeight
	}
	s.update(func() []string {
		s.user.StartWeight = kg
		return []string{db.KeyUser}
	})
	return nil
}

// SetTargetWeight changes the goal. Logs are not touched.
func (s *Session) SetTargetWeight(kg float64) error {
	if !validWeight(kg) {
		return ErrInvalidWeight
	}
	s.update(func() []string {
		s.user.TargetWeight = kg
		return []string{db.KeyUser}
	})
	return nil
}

// SetName changes the display name
func (s *Session) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	s.update(func() []string {
		s.user.Name = name
		return []string{db.KeyUser}
	})
}

// SetHeight records height in cm
func (s *Session) SetHeight(cm float64) error {
	if !validWeight(cm) {
		return &ledger.ValidationError{Field: "height", Reason: "must be a positive number"}
	}
	s.update(func() []string {
		s.user.Height = models.Float64(cm)
		return []string{db.KeyUser}
	})
	return nil
}

// Log returns the log for date, synthesizing a default that is not stored
func (s *Session) Log(date string) models.DailyLog {
	var out models.DailyLog
	s.read(func() { out = s.logs.Get(date, s.user.CurrentWeight) })
	return out
}

// TodayLog returns today's log
func (s *Session) TodayLog() models.DailyLog {
	return s.Log(s.Today())
}

// Logs returns every stored log ascending by date
func (s *Session) Logs() []models.DailyLog {
	var out []models.DailyLog
	s.read(func() { out = s.logs.List() })
	return out
}

// updateLog applies fn to the log for date and stores the result
func (s *Session) updateLog(date string, fn func(models.DailyLog) models.DailyLog) models.DailyLog {
	var out models.DailyLog
	s.update(func() []string {
		out = fn(s.logs.Get(date, s.user.CurrentWeight))
		s.logs.Put(date, out)
		return []string{db.KeyLogs}
	})
	return out
}

// AddWater adds taps water increments to today's log
func (s *Session) AddWater(taps int) models.DailyLog {
	if taps < 1 {
		taps = 1
	}
	return s.updateLog(s.Today(), func(l models.DailyLog) models.DailyLog {
		for i := 0; i < taps; i++ {
			l = daylog.AddWater(l)
		}
		return l
	})
}

// AdjustCreatine moves today's creatine by delta grams, never below zero
func (s *Session) AdjustCreatine(delta float64) models.DailyLog {
	return s.updateLog(s.Today(), func(l models.DailyLog) models.DailyLog {
		return daylog.AdjustCreatine(l, delta)
	})
}

// FinishWorkout marks today's workout completed
func (s *Session) FinishWorkout() models.DailyLog {
	return s.updateLog(s.Today(), daylog.CompleteWorkout)
}

// AddMeal validates a manual entry and appends it to today's log. Invalid
// input returns a *ledger.ValidationError and changes nothing.
func (s *Session) AddMeal(name, calories, protein string) (models.DailyLog, error) {
	item, err := ledger.NewManualItem(name, calories, protein)
	if err != nil {
		return s.TodayLog(), err
	}
	return s.AddItems(s.Today(), item), nil
}

// AddItems appends items to the log for date
func (s *Session) AddItems(date string, items ...models.FoodItem) models.DailyLog {
	if len(items) == 0 {
		return s.Log(date)
	}
	return s.updateLog(date, func(l models.DailyLog) models.DailyLog {
		return ledger.AddItems(l, items...)
	})
}

// RemoveMeal removes the meal at index from the log for date. An
// out-of-range index changes nothing.
func (s *Session) RemoveMeal(date string, index int) models.DailyLog {
	var out models.DailyLog
	s.update(func() []string {
		out = s.logs.Get(date, s.user.CurrentWeight)
		if index < 0 || index >= len(out.Meals) {
			return nil
		}
		out = ledger.RemoveItem(out, index)
		s.logs.Put(date, out)
		return []string{db.KeyLogs}
	})
	return out
}
