// Package progress derives chart-ready series from the daily logs and the
// workout catalog. Everything here is a pure function of its inputs and is
// recomputed on every call.
package progress

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/marcus/p75/internal/ledger"
	"github.com/marcus/p75/internal/models"
)

const (
	// MaxWeightPoints caps the weight and protein series
	MaxWeightPoints = 14
	// MaxVolumePoints caps the training volume series
	MaxVolumePoints = 10
	// ProteinPerKg is grams of protein per kg of target body weight
	ProteinPerKg = 2

	placeholderStartProtein = 140
	placeholderTodayProtein = 155
)

// WeightPoint is one body-weight sample
type WeightPoint struct {
	Date   string  `json:"date,omitempty"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// ProteinPoint is one day's protein intake with the goal reference line
type ProteinPoint struct {
	Date    string  `json:"date,omitempty"`
	Label   string  `json:"label"`
	Protein float64 `json:"protein"`
	Goal    int     `json:"goal"`
}

// VolumePoint is the summed training volume of one day
type VolumePoint struct {
	Date   string  `json:"date"`
	Label  string  `json:"label"`
	Raw    float64 `json:"raw"`    // kg
	Tonnes float64 `json:"tonnes"` // Raw / 1000
}

// LoadPoint is one history entry of a single exercise
type LoadPoint struct {
	Date   string  `json:"date"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
	Reps   string  `json:"reps"`
}

// Input is everything the aggregator reads
type Input struct {
	Profile    models.UserProfile
	Logs       []models.DailyLog // ascending by date
	Routines   []models.WorkoutRoutine
	ExerciseID string // selects the load series; empty for none
}

// Report bundles every series for one read
type Report struct {
	Weight      []WeightPoint  `json:"weight"`
	Protein     []ProteinPoint `json:"protein"`
	ProteinGoal int            `json:"proteinGoal"`
	Volume      []VolumePoint  `json:"volume"`
	ExerciseID  string         `json:"exerciseId,omitempty"`
	Load        []LoadPoint    `json:"load"`
	RemainingKg float64        `json:"remainingKg"`
	GoalPercent int            `json:"goalPercent"`
}

// Build computes a full report
func Build(in Input) Report {
	return Report{
		Weight:      WeightSeries(in.Profile, in.Logs),
		Protein:     ProteinSeries(in.Profile, in.Logs),
		ProteinGoal: ProteinGoal(in.Profile),
		Volume:      VolumeSeries(in.Routines),
		ExerciseID:  in.ExerciseID,
		Load:        LoadSeries(in.Routines, in.ExerciseID),
		RemainingKg: RemainingKg(in.Profile),
		GoalPercent: GoalPercent(in.Profile),
	}
}

// WeightSeries maps the most recent logs to body weight, falling back to the
// profile's current weight for days without one. With no logs it returns a
// two-point placeholder so charts never render empty.
func WeightSeries(profile models.UserProfile, logs []models.DailyLog) []WeightPoint {
	if len(logs) == 0 {
		return []WeightPoint{
			{Label: "Start", Weight: profile.Start()},
			{Label: "Today", Weight: profile.CurrentWeight},
		}
	}
	logs = recent(logs, MaxWeightPoints)
	out := make([]WeightPoint, len(logs))
	for i, log := range logs {
		w := profile.CurrentWeight
		if log.Weight != nil && *log.Weight != 0 {
			w = *log.Weight
		}
		out[i] = WeightPoint{Date: log.Date, Label: Label(log.Date), Weight: w}
	}
	return out
}

// ProteinGoal is the daily protein target in grams
func ProteinGoal(profile models.UserProfile) int {
	return int(math.Round(profile.TargetWeight * ProteinPerKg))
}

// ProteinSeries shares the weight series' date axis and attaches the goal to
// every point.
func ProteinSeries(profile models.UserProfile, logs []models.DailyLog) []ProteinPoint {
	goal := ProteinGoal(profile)
	if len(logs) == 0 {
		return []ProteinPoint{
			{Label: "Start", Protein: placeholderStartProtein, Goal: goal},
			{Label: "Today", Protein: placeholderTodayProtein, Goal: goal},
		}
	}
	logs = recent(logs, MaxWeightPoints)
	out := make([]ProteinPoint, len(logs))
	for i, log := range logs {
		out[i] = ProteinPoint{
			Date:    log.Date,
			Label:   Label(log.Date),
			Protein: ledger.Totals(log).Protein,
			Goal:    goal,
		}
	}
	return out
}

// VolumeSeries sums sets x reps x weight per date across every exercise's
// history. Sets come from the exercise's current prescription since history
// does not record them. Entries with a non-positive or NaN volume are
// dropped before grouping.
func VolumeSeries(routines []models.WorkoutRoutine) []VolumePoint {
	byDate := make(map[string]float64)
	for _, r := range routines {
		for _, ex := range r.Exercises {
			for _, entry := range ex.History {
				vol := float64(ex.Sets) * RepsToNumber(entry.Reps) * entry.Weight
				if math.IsNaN(vol) || vol <= 0 {
					continue
				}
				byDate[entry.Date] += vol
			}
		}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	if len(dates) > MaxVolumePoints {
		dates = dates[len(dates)-MaxVolumePoints:]
	}

	out := make([]VolumePoint, len(dates))
	for i, d := range dates {
		out[i] = VolumePoint{Date: d, Label: Label(d), Raw: byDate[d], Tonnes: byDate[d] / 1000}
	}
	return out
}

// LoadSeries returns the chronological load history of one exercise. It is
// empty when the exercise is unknown or has no history.
func LoadSeries(routines []models.WorkoutRoutine, exerciseID string) []LoadPoint {
	if exerciseID == "" {
		return []LoadPoint{}
	}
	var history []models.ExerciseHistoryEntry
	for _, r := range routines {
		for _, ex := range r.Exercises {
			if ex.ID == exerciseID {
				history = append(history, ex.History...)
			}
		}
	}
	sort.SliceStable(history, func(i, j int) bool { return history[i].Date < history[j].Date })

	out := make([]LoadPoint, len(history))
	for i, h := range history {
		out[i] = LoadPoint{Date: h.Date, Label: Label(h.Date), Weight: h.Weight, Reps: h.Reps}
	}
	return out
}

// RemainingKg is how far the current weight is from the target
func RemainingKg(profile models.UserProfile) float64 {
	return profile.TargetWeight - profile.CurrentWeight
}

// GoalPercent is progress from the start weight toward the target,
// clamped to [0, 100].
func GoalPercent(profile models.UserProfile) int {
	start := profile.Start()
	span := profile.TargetWeight - start
	if span == 0 {
		if profile.CurrentWeight >= profile.TargetWeight {
			return 100
		}
		return 0
	}
	pct := (profile.CurrentWeight - start) / span * 100
	return int(math.Max(0, math.Min(100, pct)))
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// RepsToNumber converts a rep prescription into a number: "8-12" is the
// mean of the range, "12" or "12 reps" parse as 12, and anything else is 0.
// Ranges are averaged rather than weighted.
func RepsToNumber(reps string) float64 {
	reps = strings.TrimSpace(reps)
	if reps == "" {
		return 0
	}
	if lo, hi, ok := strings.Cut(reps, "-"); ok {
		low, err1 := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		high, err2 := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if err1 != nil || err2 != nil {
			return 0
		}
		return (low + high) / 2
	}
	m := leadingNumber.FindString(reps)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// Label renders an ISO date as a short dd/mm axis label
func Label(date string) string {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("02/01")
}

func recent(logs []models.DailyLog, n int) []models.DailyLog {
	if len(logs) > n {
		return logs[len(logs)-n:]
	}
	return logs
}
