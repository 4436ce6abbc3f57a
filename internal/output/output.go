// Package output provides styled terminal output helpers (success, error,
// warning, day and exercise formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/p75/internal/models"
)

var (
	// Styles
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	editStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Error codes for structured JSON output
const (
	ErrCodeNotFound      = "not_found"
	ErrCodeInvalidInput  = "invalid_input"
	ErrCodeNotEditing    = "not_editing"
	ErrCodeDatabaseError = "database_error"
	ErrCodeAIUnavailable = "ai_unavailable"
)

// JSONError outputs an error as JSON
func JSONError(code, message string) {
	data, _ := json.Marshal(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
	fmt.Println(string(data))
}

// FormatNumber prints v without trailing zeros
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatKg formats a weight with one decimal
func FormatKg(v float64) string {
	return fmt.Sprintf("%.1fkg", v)
}

// Bar renders a horizontal bar for value out of total
func Bar(value, total float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if total > 0 && value > 0 {
		filled = int(math.Round(math.Min(value/total, 1) * float64(width)))
	}
	return barStyle.Render(strings.Repeat("█", filled)) + subtleStyle.Render(strings.Repeat("░", width-filled))
}

// Truncate shortens s to width cells, keeping ANSI sequences intact
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// PadRight pads s with spaces to width cells
func PadRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// DaySummary is everything shown for one day
type DaySummary struct {
	Log         models.DailyLog
	Totals      models.Macros
	ProteinGoal int
}

// FormatDay formats a daily log with its macro totals and counters
func FormatDay(d DaySummary, width int) string {
	var sb strings.Builder
	log := d.Log

	sb.WriteString(titleStyle.Render(log.Date))
	if log.WorkoutCompleted {
		sb.WriteString("  " + successStyle.Render("✓ workout done"))
	}
	sb.WriteString("\n")
	if log.Weight != nil {
		sb.WriteString(fmt.Sprintf("Weight:   %s\n", FormatKg(*log.Weight)))
	}

	barWidth := max(10, min(30, width-40))
	sb.WriteString(fmt.Sprintf("Protein:  %s %sg / %dg\n",
		Bar(d.Totals.Protein, float64(d.ProteinGoal), barWidth), FormatNumber(math.Round(d.Totals.Protein)), d.ProteinGoal))
	sb.WriteString(fmt.Sprintf("Water:    %s %dml / %dml\n",
		Bar(float64(log.WaterIntake), models.DailyWaterGoal, barWidth), log.WaterIntake, models.DailyWaterGoal))
	sb.WriteString(fmt.Sprintf("Creatine: %sg\n", FormatNumber(log.CreatineAmount)))
	sb.WriteString(fmt.Sprintf("Calories: %s kcal  Carbs: %sg  Fats: %sg\n",
		FormatNumber(math.Round(d.Totals.Calories)), FormatNumber(math.Round(d.Totals.Carbs)), FormatNumber(math.Round(d.Totals.Fats))))

	sb.WriteString(SectionHeader("meals"))
	if len(log.Meals) == 0 {
		sb.WriteString(subtleStyle.Render("  nothing logged yet") + "\n")
	}
	nameWidth := max(12, width-36)
	for i, meal := range log.Meals {
		name := PadRight(Truncate(meal.Name, nameWidth), nameWidth)
		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			subtleStyle.Render(fmt.Sprintf("[%d]", i)),
			name,
			subtleStyle.Render(fmt.Sprintf("%4.0f kcal %5.1fg P", meal.Macros.Calories, meal.Macros.Protein))))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatExerciseShort formats one exercise line. editing marks the exercise
// open in edit mode.
func FormatExerciseShort(ex models.Exercise, editing bool) string {
	parts := []string{
		accentStyle.Render(PadRight(ex.ID, 6)),
		ex.Name,
		fmt.Sprintf("%dx%s", ex.Sets, ex.Reps),
	}
	if ex.Weight > 0 {
		parts = append(parts, FormatKg(ex.Weight))
	}
	if editing {
		parts = append(parts, editStyle.Render("[editing]"))
	}
	return strings.Join(parts, "  ")
}

// FormatRoutine formats a routine header and its exercises
func FormatRoutine(r models.WorkoutRoutine, editingID string) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s: %s", r.ID, r.Name)))
	sb.WriteString("\n")
	for _, ex := range r.Exercises {
		sb.WriteString("  " + FormatExerciseShort(ex, ex.ID == editingID) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatExerciseLong formats an exercise with its description, notes and
// load history
func FormatExerciseLong(ex models.Exercise, routineID models.RoutineID, editing bool) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s: %s", ex.ID, ex.Name)))
	if editing {
		sb.WriteString("  " + editStyle.Render("[editing]"))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Routine: %s | Sets: %d | Reps: %s | Weight: %s\n", routineID, ex.Sets, ex.Reps, FormatKg(ex.Weight)))
	if ex.TargetMuscles != "" {
		sb.WriteString(fmt.Sprintf("Targets: %s\n", ex.TargetMuscles))
	}
	if ex.LastUpdated > 0 {
		sb.WriteString(subtleStyle.Render("Swapped "+FormatTimeAgo(time.UnixMilli(ex.LastUpdated))) + "\n")
	}
	if ex.Description != "" {
		sb.WriteString("\n" + ex.Description + "\n")
	}
	if ex.Notes != "" {
		sb.WriteString(SectionHeader("notes"))
		sb.WriteString(IndentString(ex.Notes, 2) + "\n")
	}
	if len(ex.History) > 0 {
		sb.WriteString(SectionHeader("history"))
		for _, h := range ex.History {
			sb.WriteString(fmt.Sprintf("  %s  %s  %s reps\n", h.Date, FormatKg(h.Weight), h.Reps))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ChartRow is one labeled value in a bar chart
type ChartRow struct {
	Label string
	Value float64
	Text  string // shown after the bar; defaults to the value
}

// Chart renders rows as horizontal bars scaled to the largest value. A
// non-zero floor is subtracted first so small changes in large values stay
// visible.
func Chart(rows []ChartRow, floor float64, width int) string {
	if len(rows) == 0 {
		return subtleStyle.Render("  no data")
	}
	labelWidth := 0
	top := 0.0
	for _, r := range rows {
		labelWidth = max(labelWidth, ansi.StringWidth(r.Label))
		top = math.Max(top, r.Value-floor)
	}
	barWidth := max(10, min(40, width-labelWidth-16))

	var sb strings.Builder
	for _, r := range rows {
		text := r.Text
		if text == "" {
			text = FormatNumber(r.Value)
		}
		sb.WriteString(fmt.Sprintf("  %s %s %s\n", PadRight(r.Label, labelWidth), Bar(r.Value-floor, top, barWidth), text))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatChatMessage formats one transcript line
func FormatChatMessage(m models.ChatMessage) string {
	who := accentStyle.Render("you")
	if m.Role == models.RoleModel {
		who = successStyle.Render("coach")
	}
	stamp := subtleStyle.Render(time.UnixMilli(m.Timestamp).Format("Jan 02 15:04"))
	return fmt.Sprintf("%s %s: %s", stamp, who, m.Text)
}

// FormatTimeAgo formats a time as a human-readable "ago" string
func FormatTimeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format(models.DateLayout)
	}
}

// SectionHeader returns a formatted section header for CLI output
// e.g., "\nMEALS:\n"
func SectionHeader(title string) string {
	return fmt.Sprintf("\n%s:\n", strings.ToUpper(title))
}

// IndentString indents each line in a string by the specified number of spaces
func IndentString(s string, spaces int) string {
	if s == "" {
		return ""
	}
	indent := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
