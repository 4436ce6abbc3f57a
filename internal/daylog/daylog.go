// Package daylog keeps one DailyLog per calendar date and implements the
// tally-counter mutations applied to a day.
package daylog

import (
	"sort"

	"github.com/marcus/p75/internal/models"
)

// Book maps ISO dates to their logs. The zero value is not usable; create one
// with NewBook.
type Book struct {
	logs map[string]models.DailyLog
}

// NewBook wraps an existing date-keyed map. The map is copied.
func NewBook(logs map[string]models.DailyLog) *Book {
	b := &Book{logs: make(map[string]models.DailyLog, len(logs))}
	for date, log := range logs {
		b.logs[date] = log.Clone()
	}
	return b
}

// Default materializes the log used for a date that has never been written.
func Default(date string, currentWeight float64) models.DailyLog {
	return models.DailyLog{
		Date:   date,
		Meals:  []models.FoodItem{},
		Weight: models.Float64(currentWeight),
	}
}

// Get returns the stored log for date, or the default log if none exists.
// The default is not stored.
func (b *Book) Get(date string, currentWeight float64) models.DailyLog {
	if log, ok := b.logs[date]; ok {
		return log.Clone()
	}
	return Default(date, currentWeight)
}

// Has reports whether date has a stored log
func (b *Book) Has(date string) bool {
	_, ok := b.logs[date]
	return ok
}

// Put replaces the log for date wholesale.
func (b *Book) Put(date string, log models.DailyLog) {
	log = log.Clone()
	log.Date = date
	b.logs[date] = log
}

// List returns all stored logs ascending by date.
func (b *Book) List() []models.DailyLog {
	out := make([]models.DailyLog, 0, len(b.logs))
	for _, log := range b.logs {
		out = append(out, log.Clone())
	}
	// ISO dates sort chronologically as strings
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Len returns the number of stored logs
func (b *Book) Len() int {
	return len(b.logs)
}

// Map returns a copy of the underlying date-keyed map for persistence.
func (b *Book) Map() map[string]models.DailyLog {
	out := make(map[string]models.DailyLog, len(b.logs))
	for date, log := range b.logs {
		out[date] = log.Clone()
	}
	return out
}

// AddWater adds one 250 ml tap.
func AddWater(log models.DailyLog) models.DailyLog {
	out := log.Clone()
	out.WaterIntake += models.WaterIncrement
	return out
}

// AdjustCreatine moves the creatine tally by delta grams, never below zero.
func AdjustCreatine(log models.DailyLog, delta float64) models.DailyLog {
	out := log.Clone()
	out.CreatineAmount += delta
	if out.CreatineAmount < 0 {
		out.CreatineAmount = 0
	}
	return out
}

// CompleteWorkout marks the day's workout as done. Completion is one-way.
func CompleteWorkout(log models.DailyLog) models.DailyLog {
	out := log.Clone()
	out.WorkoutCompleted = true
	return out
}

// SetWeight records the body weight for the day.
func SetWeight(log models.DailyLog, weight float64) models.DailyLog {
	out := log.Clone()
	out.Weight = models.Float64(weight)
	return out
}

// WaterProgress returns the percentage of the daily water goal reached,
// capped at 100.
func WaterProgress(log models.DailyLog) int {
	pct := log.WaterIntake * 100 / models.DailyWaterGoal
	if pct > 100 {
		return 100
	}
	return pct
}
