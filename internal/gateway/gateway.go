// Package gateway builds generation requests for the style proposal and
// final prompt operations and validates what comes back.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/vibeprompt/internal/catalog"
	"github.com/mark3labs/vibeprompt/internal/logger"
	"github.com/mark3labs/vibeprompt/internal/refimage"
	"google.golang.org/genai"
)

// StylesPerBatch is the number of styles every proposal must contain.
const StylesPerBatch = 3

// DefaultTimeout bounds a single remote call when none is configured.
const DefaultTimeout = 60 * time.Second

// ErrGenerationFailed wraps every failure surfaced by the gateway: transport
// errors, refused requests and responses that do not match the contract.
var ErrGenerationFailed = errors.New("generation failed")

// StyleOption is one proposed visual direction.
type StyleOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Request is a single instruction sent to a Generator.
type Request struct {
	System      string          // Role and mode context
	Instruction string          // The user-turn instruction text
	Image       *refimage.Image // Optional inline image
}

// Generator performs the remote calls. GeminiGenerator is the production
// implementation.
type Generator interface {
	// GenerateJSON asks for application/json constrained by schema.
	GenerateJSON(ctx context.Context, req Request, schema *genai.Schema) (json.RawMessage, error)
	// GenerateText asks for plain text.
	GenerateText(ctx context.Context, req Request) (string, error)
}

// ProposeRequest holds the inputs for one style proposal batch.
type ProposeRequest struct {
	Idea   string
	Mode   catalog.Mode
	Image  *refimage.Image
	Reroll bool
	Avoid  []string // Style names from the previous batch
	Batch  int      // Batch sequence number, used for style IDs
}

// FinalRequest holds the inputs for final prompt generation.
type FinalRequest struct {
	Idea  string
	Mode  catalog.Mode
	Style string // Style descriptor: "Name (description)" or a custom vibe
}

// Prompts is the result of BuildFinalPrompt.
type Prompts struct {
	Final          string `json:"final_prompt"`
	Implementation string `json:"implementation_prompt"`
}

// Gateway turns wizard inputs into generation requests.
type Gateway struct {
	gen     Generator
	timeout time.Duration
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithTimeout bounds each remote call. Zero or negative disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		g.timeout = d
	}
}

// New creates a gateway on top of gen.
func New(gen Generator, opts ...Option) *Gateway {
	g := &Gateway{gen: gen, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ProposeStyles asks for exactly StylesPerBatch styles.
func (g *Gateway) ProposeStyles(ctx context.Context, req ProposeRequest) ([]StyleOption, error) {
	entry, ok := catalog.Lookup(req.Mode)
	if !ok {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrGenerationFailed, req.Mode)
	}
	if strings.TrimSpace(req.Idea) == "" && req.Image == nil {
		return nil, fmt.Errorf("%w: idea or reference image required", ErrGenerationFailed)
	}

	ctx, cancel := g.callContext(ctx)
	defer cancel()

	logger.Debug("Proposing styles: mode=%s batch=%d reroll=%v image=%v", req.Mode, req.Batch, req.Reroll, req.Image != nil)

	raw, err := g.gen.GenerateJSON(ctx, Request{
		System:      entry.Context,
		Instruction: proposeInstruction(entry, req),
		Image:       req.Image,
	}, StyleSchema())
	if err != nil {
		return nil, fmt.Errorf("%w: proposing styles: %v", ErrGenerationFailed, err)
	}

	styles, err := ParseStyles(raw, req.Batch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if req.Reroll {
		if repeated := Overlap(styles, req.Avoid); len(repeated) > 0 {
			logger.Warn("Reroll repeated previous styles: %s", strings.Join(repeated, ", "))
		}
	}

	logger.Info("Proposed %d styles for batch %d", len(styles), req.Batch)
	return styles, nil
}

// BuildFinalPrompt produces the final prompt and the implementation prompt.
// Either call failing fails the whole operation.
func (g *Gateway) BuildFinalPrompt(ctx context.Context, req FinalRequest) (Prompts, error) {
	entry, ok := catalog.Lookup(req.Mode)
	if !ok {
		return Prompts{}, fmt.Errorf("%w: unknown mode %q", ErrGenerationFailed, req.Mode)
	}
	if strings.TrimSpace(req.Style) == "" {
		return Prompts{}, fmt.Errorf("%w: style required", ErrGenerationFailed)
	}

	logger.Debug("Building final prompt: mode=%s", req.Mode)

	final, err := g.generateText(ctx, Request{
		System:      entry.Context,
		Instruction: finalInstruction(entry, req),
	})
	if err != nil {
		return Prompts{}, fmt.Errorf("%w: final prompt: %v", ErrGenerationFailed, err)
	}
	final = strings.TrimSpace(final)
	if final == "" {
		return Prompts{}, fmt.Errorf("%w: final prompt is empty", ErrGenerationFailed)
	}
	if n := CountItems(final); n < entry.MinItems || n > entry.MaxItems {
		logger.Warn("Final prompt lists %d items, expected %d-%d", n, entry.MinItems, entry.MaxItems)
	}

	var impl string
	switch entry.Implementation {
	case catalog.ImplementationDerived:
		impl, err = g.generateText(ctx, Request{
			System:      entry.Context,
			Instruction: implementationInstruction(entry, req),
		})
		if err != nil {
			return Prompts{}, fmt.Errorf("%w: implementation prompt: %v", ErrGenerationFailed, err)
		}
		impl = strings.TrimSpace(impl)
		if impl == "" {
			return Prompts{}, fmt.Errorf("%w: implementation prompt is empty", ErrGenerationFailed)
		}
	case catalog.ImplementationFixed:
		impl = assetSpecification
	default:
		impl = genericImplementation
	}

	return Prompts{Final: final, Implementation: impl}, nil
}

// generateText runs one text call under its own deadline.
func (g *Gateway) generateText(ctx context.Context, req Request) (string, error) {
	ctx, cancel := g.callContext(ctx)
	defer cancel()
	return g.gen.GenerateText(ctx, req)
}

func (g *Gateway) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}
