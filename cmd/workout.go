package cmd

import (
	"fmt"

	"github.com/marcus/p75/internal/output"
	"github.com/spf13/cobra"
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "View routines and finish today's workout",
	GroupID: "training",
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List every routine and its exercises",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		a, err := openApp(false)
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		routines := a.sess.Workouts()
		if jsonOut {
			return output.JSON(routines)
		}
		for i, r := range routines {
			if i > 0 {
				fmt.Println()
			}
			editing, _ := a.sess.Editing(r.ID)
			fmt.Println(output.FormatRoutine(r, editing))
		}
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:     "show ROUTINE",
	Short:   "Show one routine with exercise details",
	Example: "  p75 workout show A",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		routineID, err := parseRoutine(args[0])
		if err != nil {
			return fail(jsonOut, err)
		}

		a, err := openApp(false)
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		r, ok := a.sess.Routine(routineID)
		if !ok {
			return fail(jsonOut, fmt.Errorf("routine %s: %w", routineID, errNotFound))
		}
		if jsonOut {
			return output.JSON(r)
		}

		editing, _ := a.sess.Editing(r.ID)
		fmt.Println(output.FormatRoutine(r, editing))
		for _, ex := range r.Exercises {
			fmt.Println()
			fmt.Println(output.FormatExerciseLong(ex, r.ID, ex.ID == editing))
		}
		return nil
	},
}

var workoutFinishCmd = &cobra.Command{
	Use:     "finish",
	Aliases: []string{"done"},
	Short:   "Mark today's workout as completed",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(false)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer a.Close()

		log := a.sess.FinishWorkout()
		output.Success("WORKOUT DONE %s", log.Date)
		return nil
	},
}

func init() {
	workoutListCmd.Flags().Bool("json", false, "JSON output")
	workoutShowCmd.Flags().Bool("json", false, "JSON output")

	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutFinishCmd)
	rootCmd.AddCommand(workoutCmd)
}
