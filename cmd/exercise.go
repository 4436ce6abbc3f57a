package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marcus/p75/internal/catalog"
	"github.com/marcus/p75/internal/models"
	"github.com/marcus/p75/internal/output"
	"github.com/marcus/p75/internal/session"
	"github.com/marcus/p75/internal/suggest"
	"github.com/marcus/p75/internal/workflow"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Edit, commit, swap and add exercises",
	Long: `Exercises are viewed until opened with 'edit'. While editing, 'set' writes
sets, reps, weight and notes directly. 'commit' records today's weight and reps
in the exercise history and closes the edit. Opening a second exercise in the
same routine commits the first one.`,
	GroupID: "training",
}

var exerciseShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show an exercise with its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		a, err := openApp(false)
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		ex, routineID, err := findExercise(a.sess, args[0])
		if err != nil {
			return fail(jsonOut, err)
		}
		editing := a.sess.EditState(routineID, ex.ID) == workflow.StateEditing
		if jsonOut {
			return output.JSON(map[string]any{"routine": routineID, "exercise": ex, "editing": editing})
		}
		fmt.Println(output.FormatExerciseLong(ex, routineID, editing))
		return nil
	},
}

var exerciseEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Open an exercise for editing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(false)
		if err != nil {
			return fail(false, err)
		}
		defer a.Close()

		_, routineID, err := findExercise(a.sess, args[0])
		if err != nil {
			return fail(false, err)
		}
		committed, _ := a.sess.StartEdit(routineID, args[0])
		if committed != "" {
			output.Success("COMMITTED %s", committed)
		}
		output.Success("EDITING %s", args[0])
		return nil
	},
}

var exerciseSetCmd = &cobra.Command{
	Use:     "set ID",
	Short:   "Change sets, reps, weight or notes of the exercise being edited",
	Example: "  p75 exercise set a1 --weight 62.5 --reps 8-10",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		var fields workflow.Fields
		cmd.Flags().Visit(func(f *pflag.Flag) {
			switch f.Name {
			case "sets":
				v, _ := cmd.Flags().GetInt(f.Name)
				fields.Sets = &v
			case "reps":
				v := f.Value.String()
				fields.Reps = &v
			case "weight":
				v, _ := cmd.Flags().GetFloat64(f.Name)
				fields.Weight = &v
			case "notes":
				v := f.Value.String()
				fields.Notes = &v
			}
		})
		if fields.Empty() {
			return fail(jsonOut, fmt.Errorf("nothing to set: use --sets, --reps, --weight or --notes"))
		}
		return setFields(args[0], fields, jsonOut)
	},
}

var exerciseNotesCmd = &cobra.Command{
	Use:     "notes ID TEXT...",
	Short:   "Replace the notes of the exercise being edited",
	Example: `  p75 exercise notes a1 "slow eccentric, pause at the bottom"`,
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes := strings.Join(args[1:], " ")
		return setFields(args[0], workflow.Fields{Notes: &notes}, false)
	},
}

func setFields(id string, fields workflow.Fields, jsonOut bool) error {
	a, err := openApp(false)
	if err != nil {
		return fail(jsonOut, err)
	}
	defer a.Close()

	_, routineID, err := findExercise(a.sess, id)
	if err != nil {
		return fail(jsonOut, err)
	}
	if err := a.sess.SetFields(routineID, id, fields); err != nil {
		if errors.Is(err, workflow.ErrNotEditing) {
			err = fmt.Errorf("%s: %w (run 'p75 exercise edit %s' first)", id, err, id)
		}
		return fail(jsonOut, err)
	}

	ex, _, _ := a.sess.Exercise(id)
	if jsonOut {
		return output.JSON(ex)
	}
	fmt.Println(output.FormatExerciseShort(ex, true))
	return nil
}

var exerciseCommitCmd = &cobra.Command{
	Use:   "commit ID",
	Short: "Record today's weight and reps and close the edit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		a, err := openApp(false)
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		_, routineID, err := findExercise(a.sess, args[0])
		if err != nil {
			return fail(jsonOut, err)
		}
		ex, err := a.sess.Commit(routineID, args[0])
		if err != nil {
			return fail(jsonOut, err)
		}
		if jsonOut {
			return output.JSON(ex)
		}
		output.Success("COMMITTED %s: %s x %s", ex.ID, output.FormatKg(ex.Weight), ex.Reps)
		return nil
	},
}

var exerciseSwapCmd = &cobra.Command{
	Use:   "swap ID [NAME]",
	Short: "Replace an exercise's movement from the library or the coach",
	Long: `Replaces the movement of an exercise while keeping its id, sets, reps and
history. The working weight resets to zero and any open edit is closed
without committing. Without NAME the library is listed.`,
	Example: `  p75 exercise swap a2 "Dumbbell Fly"
  p75 exercise swap a2 --ai`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(1, 2)(cmd, args); err != nil {
			return err
		}
		useAI, _ := cmd.Flags().GetBool("ai")
		return checkSwapArgs(args, useAI)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		useAI, _ := cmd.Flags().GetBool("ai")

		if len(args) == 1 && !useAI {
			printLibrary()
			return nil
		}

		a, err := openApp(false)
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		before, routineID, err := findExercise(a.sess, args[0])
		if err != nil {
			return fail(jsonOut, err)
		}

		var ex models.Exercise
		if useAI {
			if !a.sess.AIEnabled() {
				return fail(jsonOut, fmt.Errorf("%w: coach offline", session.ErrNoSuggestion))
			}
			if ex, err = a.sess.SwapExerciseAI(cmd.Context(), routineID, before.ID); err != nil {
				return fail(jsonOut, err)
			}
		} else {
			def, ok := catalog.LookupLibrary(args[1])
			if !ok {
				err := fmt.Errorf("%q is not in the library: %w", args[1], errNotFound)
				if hint := suggest.Hint(suggest.Names(args[1], libraryNames())); hint != "" {
					err = fmt.Errorf("%w; %s", err, hint)
				}
				return fail(jsonOut, err)
			}
			a.sess.SwapExercise(routineID, before.ID, def)
			ex, _, _ = a.sess.Exercise(before.ID)
		}

		if jsonOut {
			return output.JSON(ex)
		}
		output.Success("SWAPPED %s: %s -> %s", ex.ID, before.Name, ex.Name)
		return nil
	},
}

// checkSwapArgs rejects a library NAME combined with --ai
func checkSwapArgs(args []string, useAI bool) error {
	if useAI && len(args) > 1 {
		return fmt.Errorf("use either NAME or --ai, not both (got NAME %q)", args[1])
	}
	return nil
}

func libraryNames() []string {
	defs := catalog.Library()
	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = def.Name
	}
	return names
}

func printLibrary() {
	fmt.Print(output.SectionHeader("library"))
	for _, def := range catalog.Library() {
		fmt.Printf("  %s  %s\n", output.PadRight(def.Name, 28), def.TargetMuscles)
	}
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add ROUTINE NAME",
	Short: "Append an exercise to a routine",
	Long: `Appends an exercise to a routine. Library names bring their description and
target muscles along. Sets and reps default to 3 x 10-12.`,
	Example: `  p75 exercise add E "Farmer Walk" --sets 4 --reps 40m`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		sets, _ := cmd.Flags().GetInt("sets")
		reps, _ := cmd.Flags().GetString("reps")
		weight, _ := cmd.Flags().GetFloat64("weight")

		routineID, err := parseRoutine(args[0])
		if err != nil {
			return fail(jsonOut, err)
		}
		name := strings.TrimSpace(args[1])
		if name == "" {
			return fail(jsonOut, &workflow.FieldError{Field: "name", Reason: "required"})
		}
		fields := workflow.Fields{Sets: &sets, Reps: &reps, Weight: &weight}
		if err := fields.Validate(); err != nil {
			return fail(jsonOut, err)
		}

		a, err := openApp(false)
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		ex := models.Exercise{Name: name, Sets: sets, Reps: reps, Weight: weight}
		if def, ok := catalog.LookupLibrary(name); ok {
			ex.Description = def.Description
			ex.TargetMuscles = def.TargetMuscles
			ex.GifURL = def.GifURL
		}
		id := a.sess.AddExercise(routineID, ex)
		if id == "" {
			return fail(jsonOut, fmt.Errorf("routine %s: %w", routineID, errNotFound))
		}

		added, _, _ := a.sess.Exercise(id)
		if jsonOut {
			return output.JSON(added)
		}
		output.Success("ADDED %s to %s", id, routineID)
		fmt.Println(output.FormatExerciseShort(added, false))
		return nil
	},
}

var exerciseSuggestCmd = &cobra.Command{
	Use:   "suggest ROUTINE",
	Short: "Ask the coach for an exercise that complements a routine",
	Args:  cobra.ExactArgs(1),
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

		if !a.sess.AIEnabled() {
			return fail(jsonOut, fmt.Errorf("%w: coach offline", session.ErrNoSuggestion))
		}
		ex, err := a.sess.SuggestExercise(cmd.Context(), routineID)
		if err != nil {
			return fail(jsonOut, err)
		}
		if jsonOut {
			return output.JSON(ex)
		}
		output.Success("ADDED %s to %s", ex.ID, routineID)
		fmt.Println(output.FormatExerciseLong(ex, routineID, false))
		return nil
	},
}

func init() {
	exerciseSetCmd.Flags().Int("sets", 0, "number of sets")
	exerciseSetCmd.Flags().String("reps", "", "rep prescription, e.g. 8-12 or Failure")
	exerciseSetCmd.Flags().Float64("weight", 0, "working weight in kg")
	exerciseSetCmd.Flags().String("notes", "", "free-form notes")

	exerciseAddCmd.Flags().Int("sets", session.DefaultSets, "number of sets")
	exerciseAddCmd.Flags().String("reps", session.DefaultReps, "rep prescription")
	exerciseAddCmd.Flags().Float64("weight", 0, "starting weight in kg")

	exerciseSwapCmd.Flags().Bool("ai", false, "ask the coach for an alternative")

	for _, c := range []*cobra.Command{exerciseShowCmd, exerciseSetCmd, exerciseCommitCmd, exerciseSwapCmd, exerciseAddCmd, exerciseSuggestCmd} {
		c.Flags().Bool("json", false, "JSON output")
	}

	exerciseCmd.AddCommand(
		exerciseShowCmd,
		exerciseEditCmd,
		exerciseSetCmd,
		exerciseNotesCmd,
		exerciseCommitCmd,
		exerciseSwapCmd,
		exerciseAddCmd,
		exerciseSuggestCmd,
	)
	rootCmd.AddCommand(exerciseCmd)
}
