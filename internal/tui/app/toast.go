package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/vibeprompt/internal/tui/theme"
)

const toastDuration = 3 * time.Second

// toastDismissMsg hides the toast with the matching sequence number.
type toastDismissMsg struct {
	seq int
}

// Toast is a one-line notice under the modal that dismisses itself.
type Toast struct {
	message string
	isError bool
	seq     int
}

// Show displays msg and schedules its dismissal.
func (t *Toast) Show(msg string, isError bool) tea.Cmd {
	t.message = msg
	t.isError = isError
	t.seq++
	seq := t.seq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastDismissMsg{seq: seq}
	})
}

// Update hides the toast when its dismissal arrives. A newer toast is kept.
func (t *Toast) Update(msg tea.Msg) {
	if m, ok := msg.(toastDismissMsg); ok && m.seq == t.seq {
		t.message = ""
		t.isError = false
	}
}

// Message returns the visible text, if any.
func (t *Toast) Message() string {
	return t.message
}

// View renders the toast or an empty string.
func (t *Toast) View() string {
	if t.message == "" {
		return ""
	}

	th := theme.Current()
	bg := th.Success
	if t.isError {
		bg = th.Warning
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.BgBase)).
		Background(lipgloss.Color(bg)).
		Padding(0, 1).
		Bold(true).
		Render(t.message)
}
