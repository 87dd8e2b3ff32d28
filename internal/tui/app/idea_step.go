package app

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/vibeprompt/internal/catalog"
	"github.com/mark3labs/vibeprompt/internal/tui/theme"
)

const (
	focusIdea = iota
	focusImage
)

// IdeaStep collects the idea text and an optional reference image path.
type IdeaStep struct {
	entry    catalog.Entry
	idea     textarea.Model
	image    textinput.Model
	focus    int
	imageTag string // Description of the loaded image, if any
	err      string // Validation error message
	width    int
}

// NewIdeaStep creates the idea step for a mode.
func NewIdeaStep(entry catalog.Entry) *IdeaStep {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 5000
	ta.SetWidth(60)
	ta.SetHeight(6)

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Optional: path to a reference image (png, jpeg, webp, gif, heic)"
	ti.SetWidth(58)

	s := &IdeaStep{idea: ta, image: ti, width: 60}
	s.SetMode(entry)
	s.idea.Focus()
	return s
}

// SetMode updates the placeholder for entry.
func (s *IdeaStep) SetMode(entry catalog.Entry) {
	s.entry = entry
	s.idea.Placeholder = entry.Placeholder
}

// Init starts the cursor blink.
func (s *IdeaStep) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles input for the idea step.
func (s *IdeaStep) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "ctrl+s":
			return s.Submit()
		case "ctrl+e":
			return openEditor(s.idea.Value())
		case "tab", "shift+tab":
			return s.toggleFocus()
		case "enter":
			// Enter in the single-line image field submits the step.
			if s.focus == focusImage {
				return s.Submit()
			}
		}
		if s.err != "" {
			s.err = ""
		}
	}

	var cmd tea.Cmd
	if s.focus == focusImage {
		s.image, cmd = s.image.Update(msg)
	} else {
		s.idea, cmd = s.idea.Update(msg)
	}
	return cmd
}

func (s *IdeaStep) toggleFocus() tea.Cmd {
	if s.focus == focusIdea {
		s.focus = focusImage
		s.idea.Blur()
		return s.image.Focus()
	}
	s.focus = focusIdea
	s.image.Blur()
	return s.idea.Focus()
}

// Submit sends IdeaSubmittedMsg when there is an idea or an image path.
func (s *IdeaStep) Submit() tea.Cmd {
	if !s.Ready() {
		s.err = "Describe your idea or attach a reference image"
		return nil
	}
	s.err = ""
	idea, path := s.Idea(), s.ImagePath()
	return func() tea.Msg {
		return IdeaSubmittedMsg{Idea: idea, ImagePath: path}
	}
}

// Ready reports whether the step has enough input to submit.
func (s *IdeaStep) Ready() bool {
	return strings.TrimSpace(s.idea.Value()) != "" || s.ImagePath() != ""
}

// Idea returns the raw idea text.
func (s *IdeaStep) Idea() string {
	return s.idea.Value()
}

// SetIdea replaces the idea text.
func (s *IdeaStep) SetIdea(text string) {
	s.idea.SetValue(text)
}

// ImagePath returns the trimmed image path.
func (s *IdeaStep) ImagePath() string {
	return strings.TrimSpace(s.image.Value())
}

// SetImageTag shows which image is attached. Empty clears it.
func (s *IdeaStep) SetImageTag(tag string) {
	s.imageTag = tag
}

// SetError shows a validation error under the inputs.
func (s *IdeaStep) SetError(err string) {
	s.err = err
}

// SetSize updates the size of the idea step.
func (s *IdeaStep) SetSize(width, height int) {
	s.width = width
	inner := width - 4
	if inner < 30 {
		inner = 30
	}
	s.idea.SetWidth(inner)
	s.image.SetWidth(inner - 2)

	h := height - 14
	if h < 4 {
		h = 4
	}
	if h > 12 {
		h = 12
	}
	s.idea.SetHeight(h)
}

// View renders the idea step content.
func (s *IdeaStep) View() string {
	st := theme.Current().S()

	box := func(focused bool) lipgloss.Style {
		if focused {
			return st.InputBoxFocused.Width(s.width)
		}
		return st.InputBox.Width(s.width)
	}

	parts := []string{
		st.Label.Render(fmt.Sprintf("Describe your %s", s.entry.Subject)),
		box(s.focus == focusIdea).Render(s.idea.View()),
		st.Label.Render("Reference image"),
		box(s.focus == focusImage).Render(s.image.View()),
	}
	if s.imageTag != "" {
		parts = append(parts, st.Success.Render("✓ attached: "+s.imageTag))
	}
	if s.err != "" {
		parts = append(parts, st.Error.Render("✗ "+s.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
