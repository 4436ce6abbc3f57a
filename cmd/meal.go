package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/marcus/p75/internal/assistant"
	"github.com/marcus/p75/internal/dateparse"
	"github.com/marcus/p75/internal/input"
	"github.com/marcus/p75/internal/output"
	"github.com/marcus/p75/internal/session"
	"github.com/spf13/cobra"
)

var mealCmd = &cobra.Command{
	Use:     "meal",
	Aliases: []string{"food"},
	Short:   "Log, scan or remove meals",
	GroupID: "daily",
}

var mealAddCmd = &cobra.Command{
	Use:   "add [NAME CALORIES PROTEIN]",
	Short: "Log a meal by hand",
	Long: `Appends a meal to today's log. Calories and protein must be non-negative
numbers. Run without arguments in a terminal to fill in a form.`,
	Example: `  p75 meal add "Greek yogurt" 150 15
  p75 meal add`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 3 {
			return fmt.Errorf("expected NAME CALORIES PROTEIN, got %d argument(s)", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		var name, cal, prot string
		if len(args) == 3 {
			name, cal, prot = args[0], args[1], args[2]
		} else {
			if !output.IsTTY(os.Stdin) {
				return fail(jsonOut, errors.New("NAME CALORIES PROTEIN required when not in a terminal"))
			}
			var err error
			if name, cal, prot, err = runMealForm(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return fail(jsonOut, err)
			}
		}

		a, err := openApp(false)
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		log, err := a.sess.AddMeal(name, cal, prot)
		if err != nil {
			return fail(jsonOut, err)
		}
		if !jsonOut {
			output.Success("LOGGED %s", strings.TrimSpace(name))
		}
		printDay(a, log, jsonOut)
		return nil
	},
}

// runMealForm asks for a meal interactively
func runMealForm() (name, cal, prot string, err error) {
	number := func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || v < 0 {
			return errors.New("enter a non-negative number")
		}
		return nil
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Food").
				Value(&name).
				Placeholder("Chicken breast 200g").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Calories").
				Value(&cal).
				Placeholder("330").
				Validate(number),
			huh.NewInput().
				Title("Protein (g)").
				Value(&prot).
				Placeholder("62").
				Validate(number),
		).Title("Log Meal"),
	)
	form.WithTheme(huh.ThemeDracula())

	err = form.Run()
	return name, cal, prot, err
}

var mealScanCmd = &cobra.Command{
	Use:   "scan TEXT... | - | @FILE",
	Short: "Log a meal described in plain text (AI)",
	Long: `Sends a description to the coach model, which splits it into food items with
estimated macros. Items are appended to today's log. Use - to read the
description from stdin or @FILE to read it from a file.`,
	Example: `  p75 meal scan "2 eggs, toast with butter and a banana"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		text, err := input.ExpandText(args, os.Stdin)
		if err != nil {
			return fail(jsonOut, err)
		}
		if text == "" {
			return fail(jsonOut, errors.New("meal description is empty"))
		}

		a, err := openApp(false)
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		return scanMeal(cmd.Context(), a, text, jsonOut)
	},
}

// scanMeal logs the items the coach finds in text. Nothing found, a
// superseded reply or an offline coach log nothing and are not errors.
func scanMeal(ctx context.Context, a *app, text string, jsonOut bool) error {
	if !a.sess.AIEnabled() {
		if jsonOut {
			output.JSONError(output.ErrCodeAIUnavailable, assistant.DisabledReply)
		} else {
			output.Warning("coach offline, nothing logged. Enable it with: p75 config set ai.api_key KEY")
		}
		return nil
	}

	items, err := a.sess.ScanMeal(ctx, text)
	switch {
	case errors.Is(err, session.ErrNoSuggestion):
		if !jsonOut {
			output.Warning("no food recognized in that description, nothing logged")
		}
	case errors.Is(err, session.ErrStale):
		if !jsonOut {
			output.Warning("scan superseded by a newer one, nothing logged")
		}
	case err != nil:
		return fail(jsonOut, err)
	case !jsonOut:
		for _, item := range items {
			output.Success("LOGGED %s (%s kcal, %sg protein)", item.Name,
				output.FormatNumber(item.Macros.Calories), output.FormatNumber(item.Macros.Protein))
		}
	}
	printDay(a, a.sess.TodayLog(), jsonOut)
	return nil
}

var mealRmCmd = &cobra.Command{
	Use:     "rm INDEX",
	Aliases: []string{"remove"},
	Short:   "Remove a meal by its position",
	Long:    `Removes the meal at INDEX, as numbered by 'p75 today'. Out-of-range indexes change nothing.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		dateStr, _ := cmd.Flags().GetString("date")

		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fail(jsonOut, fmt.Errorf("invalid index %q", args[0]))
		}

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

		before := a.sess.Log(date)
		if index < 0 || index >= len(before.Meals) {
			output.Warning("no meal at index %d on %s", index, date)
			printDay(a, before, jsonOut)
			return nil
		}
		log := a.sess.RemoveMeal(date, index)
		if !jsonOut {
			output.Success("REMOVED %s", before.Meals[index].Name)
		}
		printDay(a, log, jsonOut)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{mealAddCmd, mealScanCmd, mealRmCmd} {
		c.Flags().Bool("json", false, "JSON output")
		mealCmd.AddCommand(c)
	}
	mealRmCmd.Flags().String("date", "", "day to edit (default today)")
	rootCmd.AddCommand(mealCmd)
}
