// Package rest is the between-sets rest timer TUI.
package rest

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Extend is how much "+" adds to a running timer
const Extend = 15 * time.Second

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	clockStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	pauseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model counts down a rest period
type Model struct {
	timer    timer.Model
	bar      progress.Model
	total    time.Duration
	label    string
	done     bool
	quitting bool
}

// New creates a rest timer for d. label names the exercise being rested
// for and may be empty.
func New(d time.Duration, label string) Model {
	return Model{
		timer: timer.NewWithInterval(d, time.Second),
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithoutPercentage()),
		total: d,
		label: label,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.timer.Init()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timer.TickMsg, timer.StartStopMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case timer.TimeoutMsg:
		if msg.ID != m.timer.ID() {
			return m, nil
		}
		m.done = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(msg.Width-4, 60))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ", "p":
			return m, m.timer.Toggle()
		case "+":
			m.timer.Timeout += Extend
			m.total += Extend
			return m, nil
		case "r":
			m.timer.Timeout = m.total
			return m, nil
		}
	}
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	if m.done {
		return clockStyle.Render("Rest over. Next set!") + "\n"
	}
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	title := "Rest"
	if m.label != "" {
		title += " · " + m.label
	}
	sb.WriteString(titleStyle.Render(title) + "\n\n")

	clock := clockStyle.Render(FormatClock(m.timer.Timeout))
	if !m.timer.Running() {
		clock += "  " + pauseStyle.Render("paused")
	}
	sb.WriteString(clock + "\n")
	sb.WriteString(m.bar.ViewAs(m.Elapsed()) + "\n\n")
	sb.WriteString(helpStyle.Render("space pause · + add 15s · r restart · q quit") + "\n")
	return sb.String()
}

// Elapsed is the fraction of the rest period already spent
func (m Model) Elapsed() float64 {
	if m.total <= 0 {
		return 1
	}
	spent := 1 - float64(m.timer.Timeout)/float64(m.total)
	return max(0, min(1, spent))
}

// Done reports whether the countdown reached zero
func (m Model) Done() bool {
	return m.done
}

// Remaining is the time left on the clock
func (m Model) Remaining() time.Duration {
	return m.timer.Timeout
}

// FormatClock renders d as m:ss, rounding up to the next whole second
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Run shows the timer until it finishes or the user quits. It reports
// whether the full rest period elapsed.
func Run(d time.Duration, label string) (bool, error) {
	final, err := tea.NewProgram(New(d, label)).Run()
	if err != nil {
		return false, err
	}
	return final.(Model).Done(), nil
}
