package wizard

import (
	"strings"

	"github.com/mark3labs/vibeprompt/internal/catalog"
	"github.com/mark3labs/vibeprompt/internal/gateway"
	"github.com/mark3labs/vibeprompt/internal/refimage"
)

// Action is anything Reduce understands.
type Action interface {
	isAction()
}

// SelectMode picks the design domain.
type SelectMode struct{ Mode catalog.Mode }

// SetIdea replaces the idea text.
type SetIdea struct{ Text string }

// SetImage attaches a reference image.
type SetImage struct{ Image *refimage.Image }

// ClearImage removes the reference image.
type ClearImage struct{}

// SubmitIdea asks for a style proposal batch.
type SubmitIdea struct{}

// Reroll asks for a new batch unlike the current one.
type Reroll struct{}

// SelectStyle chooses a proposal from the current batch by ID.
type SelectStyle struct{ ID string }

// SetCustomVibe replaces the choice with free text.
type SetCustomVibe struct{ Text string }

// ConfirmStyle asks for the final prompts.
type ConfirmStyle struct{}

// Back returns to the previous step where that makes sense.
type Back struct{}

// Reset restores the initial state.
type Reset struct{}

// StylesProposed carries a successful proposal.
type StylesProposed struct {
	Batch  int
	Styles []gateway.StyleOption
}

// StylesFailed carries a failed proposal.
type StylesFailed struct {
	Batch int
	Err   error
}

// PromptsBuilt carries the generated prompts.
type PromptsBuilt struct{ Prompts gateway.Prompts }

// PromptsFailed carries a failed prompt generation.
type PromptsFailed struct{ Err error }

func (SelectMode) isAction()     {}
func (SetIdea) isAction()        {}
func (SetImage) isAction()       {}
func (ClearImage) isAction()     {}
func (SubmitIdea) isAction()     {}
func (Reroll) isAction()         {}
func (SelectStyle) isAction()    {}
func (SetCustomVibe) isAction()  {}
func (ConfirmStyle) isAction()   {}
func (Back) isAction()           {}
func (Reset) isAction()          {}
func (StylesProposed) isAction() {}
func (StylesFailed) isAction()   {}
func (PromptsBuilt) isAction()   {}
func (PromptsFailed) isAction()  {}

// Request is a network operation emitted by Reduce. Exactly one of the
// fields is set.
type Request struct {
	Propose *gateway.ProposeRequest
	Final   *gateway.FinalRequest
}

// Empty reports whether there is nothing to execute.
func (r Request) Empty() bool { return r.Propose == nil && r.Final == nil }

// Reduce applies a to s. Invalid actions for the current step leave the
// state unchanged and return an empty Request.
func Reduce(s State, a Action) (State, Request) {
	switch a := a.(type) {
	case SelectMode:
		if s.Step != StepModeSelect {
			return s, Request{}
		}
		if _, ok := catalog.Lookup(a.Mode); !ok {
			return s, Request{}
		}
		s.Mode = a.Mode
		s.Step = StepInput
		s.Err = ""
		return s, Request{}

	case SetIdea:
		if s.Step != StepInput || s.Loading {
			return s, Request{}
		}
		s.Idea = a.Text
		return s, Request{}

	case SetImage:
		if s.Step != StepInput || s.Loading || a.Image == nil {
			return s, Request{}
		}
		s.Image = a.Image
		return s, Request{}

	case ClearImage:
		if s.Step != StepInput || s.Loading {
			return s, Request{}
		}
		s.Image = nil
		return s, Request{}

	case SubmitIdea:
		if !s.CanSubmit() {
			return s, Request{}
		}
		return s.propose(false)

	case Reroll:
		if !s.CanReroll() {
			return s, Request{}
		}
		return s.propose(true)

	case SelectStyle:
		if s.Step != StepStyleSelection || s.Loading {
			return s, Request{}
		}
		st, ok := s.StyleByID(a.ID)
		if !ok {
			return s, Request{}
		}
		s.Selection = Selected(st)
		return s, Request{}

	case SetCustomVibe:
		if s.Step != StepStyleSelection || s.Loading {
			return s, Request{}
		}
		if strings.TrimSpace(a.Text) == "" {
			// Clearing the text only clears a custom choice.
			if _, ok := s.Selection.CustomVibe(); ok {
				s.Selection = ActiveStyle{}
			}
			return s, Request{}
		}
		s.Selection = Custom(a.Text)
		return s, Request{}

	case ConfirmStyle:
		if !s.CanConfirm() {
			return s, Request{}
		}
		s.Loading = true
		s.Err = ""
		return s, Request{Final: &gateway.FinalRequest{
			Idea:  s.Idea,
			Mode:  s.Mode,
			Style: s.Selection.Descriptor(),
		}}

	case Back:
		if s.Loading {
			return s, Request{}
		}
		switch s.Step {
		case StepInput:
			if s.opts.SkipModeSelect {
				return s, Request{}
			}
			s.Step = StepModeSelect
		case StepStyleSelection:
			s.Step = StepInput
			s.Styles = nil
			s.Selection = ActiveStyle{}
		case StepFinalPrompt:
			s.Step = StepStyleSelection
			s.FinalPrompt = ""
			s.ImplementationPrompt = ""
		default:
			return s, Request{}
		}
		s.Err = ""
		return s, Request{}

	case Reset:
		return Initial(s.opts), Request{}

	case StylesProposed:
		if !s.Loading || a.Batch != s.Batch || (s.Step != StepInput && s.Step != StepStyleSelection) {
			return s, Request{}
		}
		s.Loading = false
		s.Err = ""
		s.Styles = append([]gateway.StyleOption(nil), a.Styles...)
		s.Selection = ActiveStyle{}
		s.Step = StepStyleSelection
		return s, Request{}

	case StylesFailed:
		if !s.Loading || a.Batch != s.Batch || (s.Step != StepInput && s.Step != StepStyleSelection) {
			return s, Request{}
		}
		s.Loading = false
		s.Err = StyleProposalFailed
		return s, Request{}

	case PromptsBuilt:
		if !s.Loading || s.Step != StepStyleSelection {
			return s, Request{}
		}
		s.Loading = false
		s.Err = ""
		s.FinalPrompt = a.Prompts.Final
		s.ImplementationPrompt = a.Prompts.Implementation
		s.Step = StepFinalPrompt
		return s, Request{}

	case PromptsFailed:
		if !s.Loading || s.Step != StepStyleSelection {
			return s, Request{}
		}
		s.Loading = false
		s.Err = PromptGenerationFailed
		return s, Request{}
	}

	return s, Request{}
}

func (s State) propose(reroll bool) (State, Request) {
	var avoid []string
	if reroll {
		avoid = s.styleNames()
	}
	s.Batch++
	s.Loading = true
	s.Err = ""
	return s, Request{Propose: &gateway.ProposeRequest{
		Idea:   s.Idea,
		Mode:   s.Mode,
		Image:  s.Image,
		Reroll: reroll,
		Avoid:  avoid,
		Batch:  s.Batch,
	}}
}
