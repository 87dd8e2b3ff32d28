package app

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
)

// FinalStep shows both prompts in a scrollable viewport.
type FinalStep struct {
	final          string
	implementation string
	viewport       viewport.Model
	width          int
}

// NewFinalStep creates an empty final step.
func NewFinalStep() *FinalStep {
	vp := viewport.New(
		viewport.WithWidth(60),
		viewport.WithHeight(12),
	)
	return &FinalStep{viewport: vp, width: 60}
}

// SetPrompts replaces the displayed prompts.
func (s *FinalStep) SetPrompts(final, implementation string) {
	s.final = final
	s.implementation = implementation
	s.render()
	s.viewport.GotoTop()
}

func (s *FinalStep) render() {
	if s.final == "" {
		s.viewport.SetContent("")
		return
	}
	s.viewport.SetContent(RenderMarkdown(PromptsMarkdown(s.final, s.implementation), s.width))
}

// Update handles the copy, save and restart keys and scrolls otherwise.
// The prompts are copied verbatim, never the rendered text.
func (s *FinalStep) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "c":
			return emit(CopyMsg{Label: "Final prompt", Text: s.final})
		case "i":
			return emit(CopyMsg{Label: "Implementation prompt", Text: s.implementation})
		case "s":
			return emit(SaveMsg{})
		case "n":
			return emit(NewPromptMsg{})
		}
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return cmd
}

// SetSize updates the viewport size and re-renders for the new width.
func (s *FinalStep) SetSize(width, height int) {
	h := height - 8
	if h < 6 {
		h = 6
	}
	s.viewport.SetHeight(h)
	s.viewport.SetWidth(width)
	if width != s.width {
		s.width = width
		s.render()
	}
}

// View renders the viewport.
func (s *FinalStep) View() string {
	return s.viewport.View()
}
