package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/vibeprompt/internal/catalog"
	"github.com/mark3labs/vibeprompt/internal/tui/theme"
)

// ModeStep lists the catalog modes.
type ModeStep struct {
	entries []catalog.Entry
	cursor  int
	width   int
}

// NewModeStep creates the mode list with the cursor on selected.
func NewModeStep(selected catalog.Mode) *ModeStep {
	s := &ModeStep{entries: catalog.All(), width: 60}
	if i := catalog.Index(selected); i >= 0 {
		s.cursor = i
	}
	return s
}

// Update handles navigation. Enter or a digit key chooses a mode.
func (s *ModeStep) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}

	switch key := keyMsg.String(); key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.entries)-1 {
			s.cursor++
		}
	case "enter":
		return s.choose()
	default:
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(s.entries) {
			s.cursor = int(key[0] - '1')
			return s.choose()
		}
	}
	return nil
}

func (s *ModeStep) choose() tea.Cmd {
	mode := s.entries[s.cursor].Mode
	return func() tea.Msg {
		return ModeChosenMsg{Mode: mode}
	}
}

// SetSize updates the available width.
func (s *ModeStep) SetSize(width, height int) {
	s.width = width
}

// View renders the mode list.
func (s *ModeStep) View() string {
	st := theme.Current().S()

	var b strings.Builder
	b.WriteString(st.Text.Render("What are you designing?"))
	b.WriteString("\n\n")

	for i, e := range s.entries {
		marker := "  "
		label := st.Text.Render(fmt.Sprintf("%d. %s", i+1, e.Label))
		if i == s.cursor {
			marker = st.StepActive.Render("▸ ")
			label = st.StepActive.Render(fmt.Sprintf("%d. %s", i+1, e.Label))
		}
		b.WriteString(marker + label + "\n")
		b.WriteString("     " + st.Muted.Render(e.Summary) + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}
