package app

import (
	"github.com/mark3labs/vibeprompt/internal/catalog"
	"github.com/mark3labs/vibeprompt/internal/wizard"
)

// ModeChosenMsg is sent when the user picks a mode.
type ModeChosenMsg struct {
	Mode catalog.Mode
}

// IdeaSubmittedMsg is sent when the user submits the idea step.
type IdeaSubmittedMsg struct {
	Idea      string
	ImagePath string
}

// IdeaEditedMsg carries the idea text after editing it in $EDITOR.
type IdeaEditedMsg struct {
	Text string
}

// StylePickedMsg is sent when a style card is chosen.
type StylePickedMsg struct {
	ID string
}

// RerollMsg asks for a new style batch.
type RerollMsg struct{}

// ConfirmStyleMsg asks for the final prompts.
type ConfirmStyleMsg struct{}

// CopyMsg asks to copy text to the clipboard.
type CopyMsg struct {
	Label string
	Text  string
}

// SaveMsg asks to export the current prompts.
type SaveMsg struct{}

// NewPromptMsg restarts the wizard.
type NewPromptMsg struct{}

// resultMsg carries a gateway outcome. Results from before the last reset
// carry an older epoch and are dropped.
type resultMsg struct {
	epoch  int
	action wizard.Action
}

type copiedMsg struct {
	label string
	text  string
	err   error
}

type savedMsg struct {
	path string
	err  error
}
