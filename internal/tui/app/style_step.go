package app

import (
	"fmt"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/vibeprompt/internal/gateway"
	"github.com/mark3labs/vibeprompt/internal/tui/theme"
	"github.com/mark3labs/vibeprompt/internal/wizard"
)

// StyleStep shows the proposed styles as cards plus a custom vibe field.
type StyleStep struct {
	styles []gateway.StyleOption
	cursor int // Index into styles; len(styles) means the vibe field
	vibe   textarea.Model
	width  int
}

// NewStyleStep creates an empty style step.
func NewStyleStep() *StyleStep {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Placeholder = "Option D: describe your own vibe (e.g. dark neon glassmorphism)"
	ta.CharLimit = 500
	ta.SetWidth(60)
	ta.SetHeight(2)
	return &StyleStep{vibe: ta, width: 60}
}

// SetStyles shows a new batch and clears the custom vibe.
func (s *StyleStep) SetStyles(styles []gateway.StyleOption) {
	s.styles = styles
	s.cursor = 0
	s.vibe.SetValue("")
	s.vibe.Blur()
}

// VibeFocused reports whether keys go to the custom vibe field.
func (s *StyleStep) VibeFocused() bool {
	return len(s.styles) > 0 && s.cursor == len(s.styles)
}

// Vibe returns the custom vibe text.
func (s *StyleStep) Vibe() string {
	return s.vibe.Value()
}

// ClearVibe empties the custom vibe field.
func (s *StyleStep) ClearVibe() {
	s.vibe.SetValue("")
}

// FocusCards moves focus from the vibe field back to the cards.
func (s *StyleStep) FocusCards() {
	s.vibe.Blur()
	if len(s.styles) > 0 {
		s.cursor = len(s.styles) - 1
	}
}

// Update handles input for the style step.
func (s *StyleStep) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.VibeFocused() {
			var cmd tea.Cmd
			s.vibe, cmd = s.vibe.Update(msg)
			return cmd
		}
		return nil
	}

	if s.VibeFocused() {
		switch keyMsg.String() {
		case "enter", "ctrl+s":
			return emit(ConfirmStyleMsg{})
		case "tab", "shift+tab", "up":
			s.FocusCards()
			return nil
		}
		var cmd tea.Cmd
		s.vibe, cmd = s.vibe.Update(msg)
		return cmd
	}

	switch key := keyMsg.String(); key {
	case "left", "h", "up", "k", "shift+tab":
		if s.cursor > 0 {
			s.cursor--
		}
	case "right", "l", "down", "j":
		if s.cursor < len(s.styles)-1 {
			s.cursor++
		} else {
			return s.focusVibe()
		}
	case "tab", "4", "d":
		return s.focusVibe()
	case "space":
		if s.cursor < len(s.styles) {
			return emit(StylePickedMsg{ID: s.styles[s.cursor].ID})
		}
	case "r":
		return emit(RerollMsg{})
	case "enter":
		return emit(ConfirmStyleMsg{})
	default:
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(s.styles) {
			s.cursor = int(key[0] - '1')
			return emit(StylePickedMsg{ID: s.styles[s.cursor].ID})
		}
	}
	return nil
}

func (s *StyleStep) focusVibe() tea.Cmd {
	s.cursor = len(s.styles)
	return s.vibe.Focus()
}

// SetSize updates the available width.
func (s *StyleStep) SetSize(width, height int) {
	s.width = width
	s.vibe.SetWidth(width - 4)
}

// View renders the cards with the current selection from state.
func (s *StyleStep) View(state wizard.State) string {
	st := theme.Current().S()
	selected, hasSelected := state.Selection.Style()

	cardWidth := s.width
	parts := []string{st.Text.Render("Pick a direction, or describe your own:")}

	for i, style := range s.styles {
		card := st.Card
		marker := fmt.Sprintf("%d", i+1)
		switch {
		case hasSelected && style.ID == selected.ID:
			card = st.CardSelected
			marker = "✓"
		case i == s.cursor:
			card = st.CardFocused
		}
		body := st.CardTitle.Render(fmt.Sprintf("[%s] %s", marker, style.Name)) + "\n" +
			st.Text.Render(style.Description)
		parts = append(parts, card.Width(cardWidth).Render(body))
	}

	box := st.InputBox
	label := st.Label.Render("Option D: custom vibe")
	if _, ok := state.Selection.CustomVibe(); ok {
		box = st.CardSelected
		label = st.Label.Render("✓ Option D: custom vibe")
	} else if s.VibeFocused() {
		box = st.InputBoxFocused
	}
	parts = append(parts, label, box.Width(cardWidth).Render(s.vibe.View()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
