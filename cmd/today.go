package cmd

import (
	"fmt"

	"github.com/marcus/p75/internal/dateparse"
	"github.com/marcus/p75/internal/daylog"
	"github.com/marcus/p75/internal/ledger"
	"github.com/marcus/p75/internal/models"
	"github.com/marcus/p75/internal/output"
	"github.com/marcus/p75/internal/progress"
	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:     "today",
	Aliases: []string{"day"},
	Short:   "Show a day's meals, water, creatine and totals",
	Long: `Shows the log for today, or for --date. Days with nothing recorded are shown
with defaults but are not saved.`,
	Example: `  p75 today
  p75 today --date yesterday
  p75 today --date -3d --json`,
	GroupID: "daily",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		dateStr, _ := cmd.Flags().GetString("date")

		a, err := openApp(false)
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		date := a.sess.Today()
		if dateStr != "" {
			if date, err = dateparse.ParseDate(dateStr); err != nil {
				return fail(jsonOut, fmt.Errorf("invalid date: %w", err))
			}
		}

		printDay(a, a.sess.Log(date), jsonOut)
		return nil
	},
}

type daySummaryJSON struct {
	Log         models.DailyLog `json:"log"`
	Totals      models.Macros   `json:"totals"`
	ProteinGoal int             `json:"proteinGoal"`
	WaterPct    int             `json:"waterPercent"`
}

// printDay renders a log in text or JSON mode
func printDay(a *app, log models.DailyLog, jsonOut bool) {
	totals := ledger.Totals(log)
	goal := progress.ProteinGoal(a.sess.Profile())

	if jsonOut {
		output.JSON(daySummaryJSON{
			Log:         log,
			Totals:      totals,
			ProteinGoal: goal,
			WaterPct:    daylog.WaterProgress(log),
		})
		return
	}
	fmt.Println(output.FormatDay(output.DaySummary{
		Log:         log,
		Totals:      totals,
		ProteinGoal: goal,
	}, output.Width(80)))
}

func init() {
	todayCmd.Flags().String("date", "", "day to show (YYYY-MM-DD, yesterday, -3d, monday)")
	todayCmd.Flags().Bool("json", false, "JSON output")
	rootCmd.AddCommand(todayCmd)
}
