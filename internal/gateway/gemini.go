package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/vibeprompt/internal/logger"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

var (
	// ErrEmptyResponse is returned when the model produced no candidates.
	ErrEmptyResponse = errors.New("gemini: empty response")
	// ErrBlocked is returned when the service declined the request.
	ErrBlocked = errors.New("gemini: request blocked")
)

// GeminiGenerator is a thin wrapper around the official genai client.
type GeminiGenerator struct {
	cli   *genai.Client
	model string
}

// NewGeminiGenerator creates a client for the Gemini API backend.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}
	return &GeminiGenerator{cli: cli, model: model}, nil
}

// Name identifies the backend in logs.
func (g *GeminiGenerator) Name() string { return "Gemini:" + g.model }

// GenerateJSON requests application/json output constrained by schema.
func (g *GeminiGenerator) GenerateJSON(ctx context.Context, req Request, schema *genai.Schema) (json.RawMessage, error) {
	cfg := generateConfig(req)
	cfg.ResponseMIMEType = "application/json"
	cfg.ResponseSchema = schema

	text, err := g.generate(ctx, req, cfg)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(text), nil
}

// GenerateText requests plain text output.
func (g *GeminiGenerator) GenerateText(ctx context.Context, req Request) (string, error) {
	return g.generate(ctx, req, generateConfig(req))
}

func (g *GeminiGenerator) generate(ctx context.Context, req Request, cfg *genai.GenerateContentConfig) (string, error) {
	contents := buildContents(req)
	imageBytes := 0
	if req.Image != nil {
		imageBytes = req.Image.Size()
	}
	logger.Debug("LLM request (%s): %d bytes instruction, %d bytes image", g.Name(), len(req.Instruction), imageBytes)

	resp, err := g.cli.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		logger.Error("LLM request failed (%s): %v", g.Name(), err)
		return "", err
	}
	return responseText(resp)
}

func generateConfig(req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	return cfg
}

// buildContents places the image (if any) before the instruction text in a
// single user turn.
func buildContents(req Request) []*genai.Content {
	parts := make([]*genai.Part, 0, 2)
	if req.Image != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Image.Data, req.Image.MIMEType))
	}
	parts = append(parts, genai.NewPartFromText(req.Instruction))
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrEmptyResponse
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: %s", ErrBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}
