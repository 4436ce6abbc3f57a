package rest

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want rest.Model", next)
	}
	return out, cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFormatClock(t *testing.T) {
	tests := map[time.Duration]string{
		0:                              "0:00",
		-time.Second:                   "0:00",
		90 * time.Second:               "1:30",
		59*time.Second + 100:           "1:00",
		5 * time.Second:                "0:05",
		10*time.Minute + 2*time.Second: "10:02",
	}
	for in, want := range tests {
		if got := FormatClock(in); got != want {
			t.Errorf("FormatClock(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestTickCountsDown(t *testing.T) {
	m := New(90*time.Second, "Bench Press")

	m, _ = update(t, m, timer.TickMsg{ID: m.timer.ID()})

	if m.Remaining() != 89*time.Second {
		t.Errorf("Remaining = %v, want 89s", m.Remaining())
	}
	if e := m.Elapsed(); e <= 0 || e >= 0.05 {
		t.Errorf("Elapsed = %v", e)
	}
	if !strings.Contains(m.View(), "1:29") || !strings.Contains(m.View(), "Bench Press") {
		t.Errorf("View:\n%s", m.View())
	}
}

func TestExtendAndRestart(t *testing.T) {
	m := New(60*time.Second, "")
	m, _ = update(t, m, timer.TickMsg{ID: m.timer.ID()})

	m, _ = update(t, m, key("+"))
	if m.Remaining() != 59*time.Second+Extend {
		t.Errorf("Remaining after + = %v", m.Remaining())
	}

	m, _ = update(t, m, key("r"))
	if m.Remaining() != 60*time.Second+Extend {
		t.Errorf("Remaining after restart = %v", m.Remaining())
	}
	if m.Elapsed() != 0 {
		t.Errorf("Elapsed after restart = %v", m.Elapsed())
	}
}

func TestTimeoutFinishes(t *testing.T) {
	m := New(time.Second, "")

	m, cmd := update(t, m, timer.TimeoutMsg{ID: m.timer.ID()})

	if !m.Done() {
		t.Error("timer should be done")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !strings.Contains(m.View(), "Rest over") {
		t.Errorf("View = %q", m.View())
	}
}

func TestTimeoutFromOtherTimerIgnored(t *testing.T) {
	m := New(time.Second, "")
	m, cmd := update(t, m, timer.TimeoutMsg{ID: m.timer.ID() + 1000})
	if m.Done() || cmd != nil {
		t.Error("foreign timeout should be ignored")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{key("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m, cmd := update(t, New(time.Minute, ""), msg)
		if m.Done() {
			t.Errorf("%s: quitting is not finishing", msg)
		}
		if cmd == nil {
			t.Errorf("%s: expected quit command", msg)
		}
		if m.View() != "" {
			t.Errorf("%s: view after quit = %q", msg, m.View())
		}
	}
}
