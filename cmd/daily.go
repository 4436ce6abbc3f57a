package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/marcus/p75/internal/models"
	"github.com/marcus/p75/internal/output"
	"github.com/marcus/p75/internal/progress"
	"github.com/spf13/cobra"
)

var waterCmd = &cobra.Command{
	Use:     "water",
	Short:   "Add water to today's log (250ml per tap)",
	Example: "  p75 water\n  p75 water --taps 2",
	GroupID: "daily",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		taps, _ := cmd.Flags().GetInt("taps")
		if taps < 1 {
			return fail(jsonOut, fmt.Errorf("--taps must be at least 1"))
		}

		a, err := openApp(false)
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		log := a.sess.AddWater(taps)
		if !jsonOut {
			output.Success("WATER +%dml (%dml / %dml)", taps*models.WaterIncrement, log.WaterIntake, models.DailyWaterGoal)
			return nil
		}
		printDay(a, log, true)
		return nil
	},
}

var creatineCmd = &cobra.Command{
	Use:     "creatine [+N|-N]",
	Short:   "Adjust today's creatine in grams",
	Long:    `Moves today's creatine by a relative amount (default +1). The total never goes below zero.`,
	Example: "  p75 creatine\n  p75 creatine +5\n  p75 creatine -1",
	GroupID: "daily",
	// "-1" would otherwise be read as a shorthand flag
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		args, help, err := splitGlobalFlags(args)
		if err != nil {
			return fail(false, err)
		}
		if help {
			return cmd.Help()
		}
		initBaseDir()
		if len(args) > 1 {
			return fail(false, fmt.Errorf("expected at most one amount, got %d", len(args)))
		}
		delta := models.CreatineStep
		if len(args) == 1 {
			if delta, err = parseDelta(args[0]); err != nil {
				return fail(false, err)
			}
		}

		a, err := openApp(false)
		if err != nil {
			return fail(false, err)
		}
		defer a.Close()

		log := a.sess.AdjustCreatine(delta)
		output.Success("CREATINE %sg today", output.FormatNumber(log.CreatineAmount))
		return nil
	},
}

// splitGlobalFlags pulls the root flags and -h out of args for commands
// that parse their own arguments
func splitGlobalFlags(args []string) (rest []string, help bool, err error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			help = true
		case arg == "-v" || arg == "--verbose":
			verboseFlag = true
		case arg == "--dir":
			if i+1 >= len(args) {
				return nil, false, fmt.Errorf("flag needs an argument: --dir")
			}
			i++
			dirFlag = args[i]
		case strings.HasPrefix(arg, "--dir="):
			dirFlag = strings.TrimPrefix(arg, "--dir=")
		default:
			rest = append(rest, arg)
		}
	}
	return rest, help, nil
}

// parseDelta parses a signed relative amount such as "+1", "-2" or "3"
func parseDelta(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid amount %q (use +N or -N)", s)
	}
	return v, nil
}

var weightCmd = &cobra.Command{
	Use:   "weight [KG]",
	Short: "Show or record body weight",
	Long: `With KG, records the current body weight and writes it onto today's log.
With --target, changes the goal weight. Without arguments shows progress to goal.`,
	Example: "  p75 weight\n  p75 weight 69.4\n  p75 weight --target 76",
	GroupID: "daily",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		targetStr, _ := cmd.Flags().GetString("target")

		a, err := openApp(false)
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		if len(args) == 1 {
			kg, err := parseKg(args[0])
			if err != nil {
				return fail(jsonOut, err)
			}
			if err := a.sess.SetCurrentWeight(kg); err != nil {
				return fail(jsonOut, err)
			}
		}
		if cmd.Flags().Changed("target") {
			kg, err := parseKg(targetStr)
			if err != nil {
				return fail(jsonOut, err)
			}
			if err := a.sess.SetTargetWeight(kg); err != nil {
				return fail(jsonOut, err)
			}
		}

		p := a.sess.Profile()
		if jsonOut {
			return output.JSON(map[string]any{
				"profile":     p,
				"goalPercent": progress.GoalPercent(p),
				"remainingKg": progress.RemainingKg(p),
			})
		}
		fmt.Printf("Current: %s  Target: %s\n", output.FormatKg(p.CurrentWeight), output.FormatKg(p.TargetWeight))
		pct := progress.GoalPercent(p)
		fmt.Printf("Goal:    %s %d%% (%s to go)\n",
			output.Bar(float64(pct), 100, 30), pct, output.FormatKg(progress.RemainingKg(p)))
		return nil
	},
}

func init() {
	waterCmd.Flags().Int("taps", 1, "number of 250ml increments")
	waterCmd.Flags().Bool("json", false, "JSON output")
	weightCmd.Flags().String("target", "", "set the goal weight in kg")
	weightCmd.Flags().Bool("json", false, "JSON output")

	rootCmd.AddCommand(waterCmd)
	rootCmd.AddCommand(creatineCmd)
	rootCmd.AddCommand(weightCmd)
}
