package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/marcus/p75/internal/output"
	"github.com/marcus/p75/internal/progress"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress [weight|protein|volume|load ID]",
	Short: "Chart body weight, protein, training volume or an exercise's load",
	Long: `Without arguments shows every series. 'load' needs an exercise id and charts
the weight of each committed history entry.`,
	Example: `  p75 progress
  p75 progress volume
  p75 progress load a1 --json`,
	Aliases: []string{"stats"},
	GroupID: "insights",
	Args:    cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		series := ""
		if len(args) > 0 {
			series = strings.ToLower(args[0])
		}
		exerciseID := ""
		switch series {
		case "", "weight", "protein", "volume":
			if len(args) > 1 {
				return fail(jsonOut, fmt.Errorf("unexpected argument %q", args[1]))
			}
		case "load":
			if len(args) != 2 {
				return fail(jsonOut, fmt.Errorf("load needs an exercise id"))
			}
			exerciseID = args[1]
		default:
			return fail(jsonOut, fmt.Errorf("unknown series %q (use weight, protein, volume or load)", args[0]))
		}

		a, err := openApp(false)
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		if exerciseID != "" {
			if _, _, err := findExercise(a.sess, exerciseID); err != nil {
				return fail(jsonOut, err)
			}
		}
		report := a.sess.Progress(exerciseID)

		if jsonOut {
			switch series {
			case "weight":
				return output.JSON(report.Weight)
			case "protein":
				return output.JSON(map[string]any{"goal": report.ProteinGoal, "points": report.Protein})
			case "volume":
				return output.JSON(report.Volume)
			case "load":
				return output.JSON(report.Load)
			}
			return output.JSON(report)
		}

		width := output.Width(80)
		var sections []string
		if series == "" || series == "weight" {
			sections = append(sections, weightSection(report, width))
		}
		if series == "" || series == "protein" {
			sections = append(sections, proteinSection(report, width))
		}
		if series == "" || series == "volume" {
			sections = append(sections, volumeSection(report, width))
		}
		if series == "load" {
			sections = append(sections, loadSection(report, width))
		}
		fmt.Println(strings.Join(sections, "\n\n"))
		return nil
	},
}

func weightSection(r progress.Report, width int) string {
	rows := make([]output.ChartRow, len(r.Weight))
	low := math.Inf(1)
	for i, p := range r.Weight {
		rows[i] = output.ChartRow{Label: p.Label, Value: p.Weight, Text: output.FormatKg(p.Weight)}
		low = math.Min(low, p.Weight)
	}
	floor := 0.0
	if len(rows) > 0 {
		floor = math.Floor(low) - 1
	}
	header := fmt.Sprintf("BODY WEIGHT  goal %d%% (%s to go)", r.GoalPercent, output.FormatKg(math.Max(0, r.RemainingKg)))
	return header + "\n" + output.Chart(rows, floor, width)
}

func proteinSection(r progress.Report, width int) string {
	rows := make([]output.ChartRow, len(r.Protein))
	for i, p := range r.Protein {
		text := fmt.Sprintf("%sg", output.FormatNumber(math.Round(p.Protein)))
		if p.Protein >= float64(p.Goal) {
			text += " ✓"
		}
		rows[i] = output.ChartRow{Label: p.Label, Value: p.Protein, Text: text}
	}
	return fmt.Sprintf("PROTEIN  goal %dg/day", r.ProteinGoal) + "\n" + output.Chart(rows, 0, width)
}

func volumeSection(r progress.Report, width int) string {
	rows := make([]output.ChartRow, len(r.Volume))
	for i, p := range r.Volume {
		rows[i] = output.ChartRow{Label: p.Label, Value: p.Raw, Text: fmt.Sprintf("%.1ft", p.Tonnes)}
	}
	return "TRAINING VOLUME\n" + output.Chart(rows, 0, width)
}

func loadSection(r progress.Report, width int) string {
	rows := make([]output.ChartRow, len(r.Load))
	for i, p := range r.Load {
		rows[i] = output.ChartRow{Label: p.Label, Value: p.Weight, Text: fmt.Sprintf("%s x %s", output.FormatKg(p.Weight), p.Reps)}
	}
	return fmt.Sprintf("LOAD %s", r.ExerciseID) + "\n" + output.Chart(rows, 0, width)
}

func init() {
	progressCmd.Flags().Bool("json", false, "JSON output")
	rootCmd.AddCommand(progressCmd)
}
