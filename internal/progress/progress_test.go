package progress_test

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/marcus/p75/internal/models"
	"github.com/marcus/p75/internal/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profile() models.UserProfile {
	return models.UserProfile{Name: "User", CurrentWeight: 70, TargetWeight: 75}
}

func dailyLogs(n int, start time.Time) []models.DailyLog {
	logs := make([]models.DailyLog, n)
	for i := range logs {
		logs[i] = models.DailyLog{
			Date:   models.FormatDate(start.AddDate(0, 0, i)),
			Weight: models.Float64(68 + float64(i)/10),
			Meals: []models.FoodItem{
				{Name: "shake", Macros: models.Macros{Protein: float64(100 + i)}},
			},
		}
	}
	return logs
}

func routineWith(sets int, history ...models.ExerciseHistoryEntry) []models.WorkoutRoutine {
	return []models.WorkoutRoutine{{
		ID:   models.RoutineA,
		Name: "Push",
		Exercises: []models.Exercise{
			{ID: "a1", Name: "Press", Sets: sets, Reps: "8-12", History: history},
		},
	}}
}

func TestRepsToNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"8-12", 10},
		{"12", 12},
		{"falha", 0},
		{"Failure", 0},
		{"15-20", 17.5},
		{"12 reps", 12},
		{" 6 - 10 ", 8},
		{"", 0},
		{"8-x", 0},
		{"2.5", 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, progress.RepsToNumber(tt.in))
		})
	}
}

func TestWeightSeries_Placeholder(t *testing.T) {
	p := profile()
	series := progress.WeightSeries(p, nil)

	require.Len(t, series, 2)
	assert.Equal(t, models.InitialWeight, series[0].Weight)
	assert.Equal(t, p.CurrentWeight, series[1].Weight)
}

func TestWeightSeries_CappedToMostRecent(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	logs := dailyLogs(30, start)

	series := progress.WeightSeries(profile(), logs)

	require.Len(t, series, progress.MaxWeightPoints)
	assert.Equal(t, "2024-01-17", series[0].Date)
	assert.Equal(t, "2024-01-30", series[13].Date)
	for i := 1; i < len(series); i++ {
		assert.Less(t, series[i-1].Date, series[i].Date)
	}
	assert.Equal(t, "17/01", series[0].Label)
}

func TestWeightSeries_FallsBackToCurrentWeight(t *testing.T) {
	logs := []models.DailyLog{
		{Date: "2024-01-01"},
		{Date: "2024-01-02", Weight: models.Float64(71)},
		{Date: "2024-01-03", Weight: models.Float64(0)},
	}
	series := progress.WeightSeries(profile(), logs)

	require.Len(t, series, 3)
	assert.Equal(t, 70.0, series[0].Weight)
	assert.Equal(t, 71.0, series[1].Weight)
	assert.Equal(t, 70.0, series[2].Weight)
}

func TestProteinSeries(t *testing.T) {
	p := profile()
	p.TargetWeight = 75.3

	logs := dailyLogs(3, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	logs[1].Meals = append(logs[1].Meals, models.FoodItem{Name: "eggs", Macros: models.Macros{Protein: 18}})

	series := progress.ProteinSeries(p, logs)
	require.Len(t, series, 3)
	assert.Equal(t, 151, progress.ProteinGoal(p))
	for _, pt := range series {
		assert.Equal(t, 151, pt.Goal)
	}
	assert.Equal(t, 100.0, series[0].Protein)
	assert.Equal(t, 119.0, series[1].Protein)

	weights := progress.WeightSeries(p, logs)
	for i := range series {
		assert.Equal(t, weights[i].Date, series[i].Date, "protein and weight share an axis")
	}
}

func TestProteinSeries_Placeholder(t *testing.T) {
	series := progress.ProteinSeries(profile(), nil)
	require.Len(t, series, 2)
	assert.Equal(t, 150, series[0].Goal)
}

func TestVolumeSeries_SingleExercise(t *testing.T) {
	routines := routineWith(4, models.ExerciseHistoryEntry{Date: "2024-01-01", Weight: 50, Reps: "8-12"})

	series := progress.VolumeSeries(routines)

	require.Len(t, series, 1)
	assert.Equal(t, 2000.0, series[0].Raw)
	assert.Equal(t, 2.0, series[0].Tonnes)
}

func TestVolumeSeries_GroupsAcrossRoutinesAndDropsNonPositive(t *testing.T) {
	routines := []models.WorkoutRoutine{
		{ID: models.RoutineA, Exercises: []models.Exercise{
			{ID: "a1", Sets: 3, History: []models.ExerciseHistoryEntry{
				{Date: "2024-01-02", Weight: 100, Reps: "10"},
				{Date: "2024-01-01", Weight: 0, Reps: "10"},
			}},
		}},
		{ID: models.RoutineB, Exercises: []models.Exercise{
			{ID: "b1", Sets: 4, History: []models.ExerciseHistoryEntry{
				{Date: "2024-01-02", Weight: 10, Reps: "Failure"},
				{Date: "2024-01-02", Weight: 20, Reps: "5"},
				{Date: "2024-01-03", Weight: -5, Reps: "5"},
			}},
		}},
	}

	series := progress.VolumeSeries(routines)

	require.Len(t, series, 1, "dates with only dropped entries must not appear")
	assert.Equal(t, "2024-01-02", series[0].Date)
	assert.Equal(t, 3000.0+400.0, series[0].Raw)
}

func TestVolumeSeries_UsesCurrentSets(t *testing.T) {
	entry := models.ExerciseHistoryEntry{Date: "2024-01-01", Weight: 50, Reps: "10"}
	assert.Equal(t, 1500.0, progress.VolumeSeries(routineWith(3, entry))[0].Raw)
	assert.Equal(t, 2500.0, progress.VolumeSeries(routineWith(5, entry))[0].Raw)
}

func TestVolumeSeries_KeepsLastTenDates(t *testing.T) {
	var history []models.ExerciseHistoryEntry
	for i := 1; i <= 15; i++ {
		history = append(history, models.ExerciseHistoryEntry{
			Date: fmt.Sprintf("2024-02-%02d", i), Weight: 10, Reps: "10",
		})
	}
	series := progress.VolumeSeries(routineWith(1, history...))

	require.Len(t, series, progress.MaxVolumePoints)
	assert.Equal(t, "2024-02-06", series[0].Date)
	assert.Equal(t, "2024-02-15", series[9].Date)
}

func TestLoadSeries(t *testing.T) {
	routines := routineWith(4,
		models.ExerciseHistoryEntry{Date: "2024-01-10", Weight: 55, Reps: "10"},
		models.ExerciseHistoryEntry{Date: "2024-01-03", Weight: 50, Reps: "8-12"},
	)

	series := progress.LoadSeries(routines, "a1")
	require.Len(t, series, 2)
	assert.Equal(t, "2024-01-03", series[0].Date)
	assert.Equal(t, 50.0, series[0].Weight)
	assert.Equal(t, "8-12", series[0].Reps)
	assert.Equal(t, "2024-01-10", series[1].Date)

	assert.Empty(t, progress.LoadSeries(routines, "missing"))
	assert.Empty(t, progress.LoadSeries(routineWith(4), "a1"))
}

func TestGoalPercent(t *testing.T) {
	tests := []struct {
		current, target float64
		want            int
	}{
		{68, 75, 0},
		{71.5, 75, 50},
		{75, 75, 100},
		{80, 75, 100},
		{60, 75, 0},
		{68, 68, 100},
	}
	for _, tt := range tests {
		p := models.UserProfile{CurrentWeight: tt.current, TargetWeight: tt.target}
		assert.Equal(t, tt.want, progress.GoalPercent(p), "current=%v target=%v", tt.current, tt.target)
	}
}

func TestGoalPercent_FromRecordedStart(t *testing.T) {
	p := models.UserProfile{StartWeight: 80, CurrentWeight: 80, TargetWeight: 90}
	assert.Equal(t, 0, progress.GoalPercent(p))

	p.CurrentWeight = 85
	assert.Equal(t, 50, progress.GoalPercent(p))

	loss := models.UserProfile{StartWeight: 90, CurrentWeight: 85, TargetWeight: 80}
	assert.Equal(t, 50, progress.GoalPercent(loss))
}

func TestWeightSeries_PlaceholderStartsAtRecordedStart(t *testing.T) {
	p := models.UserProfile{StartWeight: 80, CurrentWeight: 81, TargetWeight: 90}
	series := progress.WeightSeries(p, nil)
	require.Len(t, series, 2)
	assert.Equal(t, 80.0, series[0].Weight)
	assert.Equal(t, 81.0, series[1].Weight)

	legacy := models.UserProfile{CurrentWeight: 70, TargetWeight: 75}
	assert.Equal(t, models.InitialWeight, progress.WeightSeries(legacy, nil)[0].Weight)
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	history := []models.ExerciseHistoryEntry{
		{Date: "2024-01-10", Weight: 55, Reps: "10"},
		{Date: "2024-01-03", Weight: 50, Reps: "10"},
	}
	routines := routineWith(4, history...)
	in := progress.Input{Profile: profile(), Routines: routines, ExerciseID: "a1"}

	report := progress.Build(in)

	assert.Equal(t, "2024-01-10", routines[0].Exercises[0].History[0].Date)
	assert.Len(t, report.Load, 2)
	assert.False(t, math.IsNaN(report.RemainingKg))
	assert.Equal(t, 5.0, report.RemainingKg)
}
