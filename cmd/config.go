package cmd

import (
	"fmt"
	"strings"

	"github.com/marcus/p75/internal/config"
	"github.com/marcus/p75/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Settings live in <data dir>/config.yaml. P75_* environment variables and .env
files override the file, e.g. P75_AI_API_KEY.

Keys: ` + strings.Join(config.Keys(), ", "),
	GroupID: "system",
}

var configSetCmd = &cobra.Command{
	Use:     "set KEY VALUE",
	Short:   "Set a config value",
	Example: "  p75 config set ai.api_key sk-...\n  p75 config set ai.timeout 45s",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Set(getBaseDir(), args[0], args[1]); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("Set %s", args[0])
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a config value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		val, err := config.Get(getBaseDir(), args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		fmt.Println(val)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all config values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		values, err := config.List(getBaseDir())
		if err != nil {
			return fail(jsonOut, err)
		}
		if jsonOut {
			return output.JSON(values)
		}
		for _, k := range config.Keys() {
			fmt.Printf("%s = %s\n", output.PadRight(k, 22), values[k])
		}
		return nil
	},
}

func init() {
	configListCmd.Flags().Bool("json", false, "JSON output")

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}
