package cmd

import (
	"fmt"

	"github.com/marcus/p75/internal/config"
	"github.com/marcus/p75/internal/output"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Initialize the p75 data directory",
	Long:    `Creates the data directory and SQLite database, then seeds the profile and the default workout catalog.`,
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(true)
		if err != nil {
			output.Error("failed to initialize database: %v", err)
			return err
		}
		defer a.Close()

		if err := applyProfileDefaults(a); err != nil {
			output.Error("%v", err)
			return err
		}
		if err := a.sess.Persist(); err != nil {
			output.Error("failed to seed database: %v", err)
			return err
		}

		p := a.sess.Profile()
		fmt.Printf("INITIALIZED %s\n", getBaseDir())
		fmt.Printf("Profile: %s, %s -> %s\n", p.Name, output.FormatKg(p.CurrentWeight), output.FormatKg(p.TargetWeight))
		if !a.sess.AIEnabled() {
			output.Info("Coach offline. Enable it with: p75 config set ai.api_key KEY")
		}
		fmt.Printf("Config: %s\n", config.Path(getBaseDir()))
		return nil
	},
}

// applyProfileDefaults copies profile.* settings onto a fresh profile. An
// existing database keeps its recorded weights.
func applyProfileDefaults(a *app) error {
	if len(a.sess.Logs()) > 0 {
		return nil
	}
	prof := a.cfg.Profile
	if prof.Name != "" {
		a.sess.SetName(prof.Name)
	}
	if prof.InitialWeight > 0 {
		if err := a.sess.SetStartWeight(prof.InitialWeight); err != nil {
			return err
		}
		if err := a.sess.SetCurrentWeight(prof.InitialWeight); err != nil {
			return err
		}
	}
	if prof.TargetWeight > 0 {
		if err := a.sess.SetTargetWeight(prof.TargetWeight); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
