package output

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// ReplyWidth caps coach replies so long paragraphs stay readable on wide terminals
const ReplyWidth = 100

const narrowest = 20

// IsTTY reports whether f is attached to a terminal
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the stdout column count, then $COLUMNS, then fallback
func Width(fallback int) int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return fallback
}

// colorless reports whether styling should be suppressed on stdout
func colorless() bool {
	_, noColor := os.LookupEnv("NO_COLOR")
	return noColor || !IsTTY(os.Stdout)
}

// FormatReply renders a coach reply for the current stdout. Piped output
// and NO_COLOR get glamour's plain style so the text stays grep-able.
func FormatReply(text string) string {
	style := "auto"
	if colorless() {
		style = "notty"
	}
	return renderReply(text, min(Width(ReplyWidth), ReplyWidth), style)
}

// renderReply falls back to the raw text when glamour cannot render it
func renderReply(text string, width int, style string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	width = max(width, narrowest)

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil || strings.TrimSpace(out) == "" {
		return text
	}
	return strings.Trim(out, "\n")
}
