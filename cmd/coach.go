package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/marcus/p75/internal/assistant"
	"github.com/marcus/p75/internal/input"
	"github.com/marcus/p75/internal/models"
	"github.com/marcus/p75/internal/output"
	"github.com/marcus/p75/internal/session"
	"github.com/spf13/cobra"
)

var coachCmd = &cobra.Command{
	Use:   "coach MESSAGE...",
	Short: "Ask the AI coach",
	Long: `Sends a message to the coach with the conversation so far and your current
and target weight. Replies are rendered as markdown. Use - to read the message
from stdin or @FILE to read it from a file.`,
	Example: `  p75 coach "how much protein after training?"
  p75 coach history
  p75 coach clear`,
	GroupID: "coach",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		text, err := input.ExpandText(args, os.Stdin)
		if err != nil {
			return fail(jsonOut, err)
		}
		if text == "" {
			return fail(jsonOut, errors.New("message is empty"))
		}

		a, err := openApp(false)
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		if !a.sess.AIEnabled() {
			if jsonOut {
				output.JSONError(output.ErrCodeAIUnavailable, assistant.DisabledReply)
			} else {
				output.Warning("%s", assistant.DisabledReply)
			}
			return nil
		}

		reply, err := a.sess.Chat(cmd.Context(), text)
		if errors.Is(err, session.ErrStale) {
			output.Warning("reply superseded by a newer message")
			return nil
		}
		if err != nil {
			return fail(jsonOut, err)
		}
		if jsonOut {
			return output.JSON(reply)
		}
		printReply(reply)
		return nil
	},
}

func printReply(m models.ChatMessage) {
	fmt.Println(output.FormatReply(m.Text))
}

var coachHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the conversation with the coach",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := openApp(false)
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		history := a.sess.ChatHistory()
		if limit > 0 && len(history) > limit {
			history = history[len(history)-limit:]
		}
		if jsonOut {
			return output.JSON(history)
		}
		if len(history) == 0 {
			fmt.Println("No conversation yet")
			return nil
		}
		for _, m := range history {
			fmt.Println(output.FormatChatMessage(m))
		}
		return nil
	},
}

var coachClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the conversation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(false)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer a.Close()

		a.sess.ClearChat()
		output.Success("CLEARED conversation")
		return nil
	},
}

func init() {
	coachCmd.Flags().Bool("json", false, "JSON output")
	coachHistoryCmd.Flags().Bool("json", false, "JSON output")
	coachHistoryCmd.Flags().IntP("limit", "n", 0, "show only the last N messages")

	coachCmd.AddCommand(coachHistoryCmd)
	coachCmd.AddCommand(coachClearCmd)
	rootCmd.AddCommand(coachCmd)
}
