package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/marcus/p75/internal/output"
	"github.com/marcus/p75/internal/tui/rest"
	"github.com/spf13/cobra"
)

const defaultRestSeconds = 90

var restCmd = &cobra.Command{
	Use:   "rest [SECONDS]",
	Short: "Run a rest timer between sets",
	Long:  `Counts down a rest period in the terminal. Space pauses, + adds 15 seconds, r restarts and q quits.`,
	Example: `  p75 rest
  p75 rest 120 --for a1`,
	GroupID: "training",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds := defaultRestSeconds
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				err = fmt.Errorf("invalid rest length %q", args[0])
				output.Error("%v", err)
				return err
			}
			seconds = n
		}

		label, _ := cmd.Flags().GetString("for")
		if label != "" {
			if a, err := openApp(false); err == nil {
				if ex, _, ok := a.sess.Exercise(label); ok {
					label = ex.Name
				}
				a.Close()
			}
		}

		if !output.IsTTY(os.Stdout) {
			err := fmt.Errorf("rest needs an interactive terminal")
			output.Error("%v", err)
			return err
		}

		done, err := rest.Run(time.Duration(seconds)*time.Second, label)
		if err != nil {
			output.Error("rest timer: %v", err)
			return err
		}
		if done {
			fmt.Print("\a")
		}
		return nil
	},
}

func init() {
	restCmd.Flags().String("for", "", "exercise id or label to show")
	rootCmd.AddCommand(restCmd)
}
