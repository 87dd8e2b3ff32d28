// Package wizard is the state machine behind the prompt wizard.
//
// State changes only through Reduce, a pure function of the current state
// and an action. Actions that need the network return a Request; whoever
// executes it feeds the outcome back as a result action.
package wizard

import (
	"strings"

	"github.com/mark3labs/vibeprompt/internal/catalog"
	"github.com/mark3labs/vibeprompt/internal/gateway"
	"github.com/mark3labs/vibeprompt/internal/refimage"
)

// Step is a wizard step.
type Step int

const (
	StepModeSelect Step = iota
	StepInput
	StepStyleSelection
	StepFinalPrompt
)

// String returns the step name.
func (s Step) String() string {
	switch s {
	case StepModeSelect:
		return "MODE_SELECT"
	case StepInput:
		return "INPUT"
	case StepStyleSelection:
		return "STYLE_SELECTION"
	case StepFinalPrompt:
		return "FINAL_PROMPT"
	default:
		return "UNKNOWN"
	}
}

// User-facing error messages.
const (
	StyleProposalFailed    = "Analysis failed. Please try again."
	PromptGenerationFailed = "Prompt generation failed. Please try again."
)

type activeKind int

const (
	activeNone activeKind = iota
	activeSelected
	activeCustom
)

// ActiveStyle is either a selected proposal or a custom vibe, never both.
// The zero value is "nothing chosen".
type ActiveStyle struct {
	kind   activeKind
	style  gateway.StyleOption
	custom string
}

// Selected returns an ActiveStyle holding s.
func Selected(s gateway.StyleOption) ActiveStyle {
	return ActiveStyle{kind: activeSelected, style: s}
}

// Custom returns an ActiveStyle holding a free-text vibe.
func Custom(text string) ActiveStyle {
	return ActiveStyle{kind: activeCustom, custom: text}
}

// IsNone reports whether nothing is chosen.
func (a ActiveStyle) IsNone() bool { return a.kind == activeNone }

// Style returns the selected proposal, if any.
func (a ActiveStyle) Style() (gateway.StyleOption, bool) {
	return a.style, a.kind == activeSelected
}

// CustomVibe returns the custom vibe text, if any.
func (a ActiveStyle) CustomVibe() (string, bool) {
	return a.custom, a.kind == activeCustom
}

// Ready reports whether the choice can be confirmed.
func (a ActiveStyle) Ready() bool {
	switch a.kind {
	case activeSelected:
		return true
	case activeCustom:
		return strings.TrimSpace(a.custom) != ""
	}
	return false
}

// Descriptor renders the choice for the final prompt instruction.
func (a ActiveStyle) Descriptor() string {
	switch a.kind {
	case activeSelected:
		return gateway.Descriptor(a.style)
	case activeCustom:
		return strings.TrimSpace(a.custom)
	}
	return ""
}

// Label is a short human-readable name for the choice.
func (a ActiveStyle) Label() string {
	switch a.kind {
	case activeSelected:
		return a.style.Name
	case activeCustom:
		return "Custom vibe"
	}
	return ""
}

// Options configures the initial state.
type Options struct {
	// Mode preselects a design mode. Together with SkipModeSelect the wizard
	// starts at StepInput.
	Mode           catalog.Mode
	SkipModeSelect bool
}

// State is the single wizard record.
type State struct {
	Step                 Step
	Mode                 catalog.Mode
	Idea                 string
	Image                *refimage.Image
	Styles               []gateway.StyleOption
	Selection            ActiveStyle
	FinalPrompt          string
	ImplementationPrompt string
	Loading              bool
	Err                  string

	// Batch numbers the style proposals issued since the last reset.
	Batch int

	opts Options
}

// Initial returns the starting state for opts.
func Initial(opts Options) State {
	s := State{Step: StepModeSelect, Mode: catalog.ModeUI, opts: opts}
	if opts.Mode != "" {
		s.Mode = opts.Mode
	}
	if opts.SkipModeSelect {
		s.Step = StepInput
	}
	return s
}

// Options returns the options the state was created with.
func (s State) Options() Options { return s.opts }

// StyleByID looks up a style in the current batch.
func (s State) StyleByID(id string) (gateway.StyleOption, bool) {
	for _, st := range s.Styles {
		if st.ID == id {
			return st, true
		}
	}
	return gateway.StyleOption{}, false
}

// CanSubmit reports whether SubmitIdea would issue a request.
func (s State) CanSubmit() bool {
	return s.Step == StepInput && !s.Loading && (strings.TrimSpace(s.Idea) != "" || s.Image != nil)
}

// CanConfirm reports whether ConfirmStyle would issue a request.
func (s State) CanConfirm() bool {
	return s.Step == StepStyleSelection && !s.Loading && s.Selection.Ready()
}

// CanReroll reports whether Reroll would issue a request.
func (s State) CanReroll() bool {
	return s.Step == StepStyleSelection && !s.Loading
}

func (s State) styleNames() []string {
	names := make([]string, 0, len(s.Styles))
	for _, st := range s.Styles {
		names = append(names, st.Name)
	}
	return names
}
