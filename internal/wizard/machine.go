package wizard

import (
	"context"

	"github.com/mark3labs/vibeprompt/internal/gateway"
	"github.com/mark3labs/vibeprompt/internal/logger"
)

// Gateway is the part of gateway.Gateway the wizard needs.
type Gateway interface {
	ProposeStyles(ctx context.Context, req gateway.ProposeRequest) ([]gateway.StyleOption, error)
	BuildFinalPrompt(ctx context.Context, req gateway.FinalRequest) (gateway.Prompts, error)
}

// Execute performs req and returns the result action to feed back into
// Reduce. It returns nil for an empty request.
func Execute(ctx context.Context, gw Gateway, req Request) Action {
	switch {
	case req.Propose != nil:
		styles, err := gw.ProposeStyles(ctx, *req.Propose)
		if err != nil {
			logger.Error("Style proposal failed: %v", err)
			return StylesFailed{Batch: req.Propose.Batch, Err: err}
		}
		return StylesProposed{Batch: req.Propose.Batch, Styles: styles}
	case req.Final != nil:
		prompts, err := gw.BuildFinalPrompt(ctx, *req.Final)
		if err != nil {
			logger.Error("Prompt generation failed: %v", err)
			return PromptsFailed{Err: err}
		}
		return PromptsBuilt{Prompts: prompts}
	}
	return nil
}

// Machine owns one State and runs requests synchronously. It is meant for
// headless use; the TUI runs Execute from a command instead.
type Machine struct {
	gw    Gateway
	state State
}

// NewMachine creates a machine in the initial state.
func NewMachine(gw Gateway, opts Options) *Machine {
	return &Machine{gw: gw, state: Initial(opts)}
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	return m.state
}

// Dispatch applies a and, if it issued a request, executes it and applies
// the result. The returned error is the gateway error of a failed request;
// the state already holds the user-facing message.
func (m *Machine) Dispatch(ctx context.Context, a Action) (State, error) {
	next, req := Reduce(m.state, a)
	m.state = next
	if req.Empty() {
		return m.state, nil
	}

	result := Execute(ctx, m.gw, req)
	m.state, _ = Reduce(m.state, result)

	switch r := result.(type) {
	case StylesFailed:
		return m.state, r.Err
	case PromptsFailed:
		return m.state, r.Err
	}
	return m.state, nil
}
