package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/vibeprompt/internal/catalog"
	"github.com/mark3labs/vibeprompt/internal/gateway"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// scriptedGenerator replays JSON batches in order and answers every text
// call with the next queued text.
type scriptedGenerator struct {
	batches []string
	texts   []string
	jsonErr error
	textErr error

	jsonCalls int
	textCalls int
}

func (g *scriptedGenerator) GenerateJSON(_ context.Context, _ gateway.Request, _ *genai.Schema) (json.RawMessage, error) {
	if g.jsonErr != nil {
		return nil, g.jsonErr
	}
	i := g.jsonCalls
	g.jsonCalls++
	if i >= len(g.batches) {
		i = len(g.batches) - 1
	}
	return json.RawMessage(g.batches[i]), nil
}

func (g *scriptedGenerator) GenerateText(_ context.Context, _ gateway.Request) (string, error) {
	if g.textErr != nil {
		return "", g.textErr
	}
	i := g.textCalls
	g.textCalls++
	if i >= len(g.texts) {
		return "", nil
	}
	return g.texts[i], nil
}

const firstBatch = `[
 {"name": "Zen Minimal", "description": "Soft whites and generous spacing."},
 {"name": "Organic Calm", "description": "Sage greens and paper textures."},
 {"name": "Night Breath", "description": "Deep navy with glowing gradients."}
]`

const secondBatch = `[
 {"name": "Retro Cassette", "description": "Warm oranges and tape wheel motifs."},
 {"name": "Brutalist Mono", "description": "Raw grids and heavy monospace type."},
 {"name": "Aurora Glass", "description": "Frosted panels over northern lights."}
]`

const meditationFinal = `设计一款Breathe的UI。
风格: 极简, 米白与鼠尾草绿.
包含页面:
1. 首页 (今日练习卡片);
2. 呼吸练习 (动态圆环引导);
3. 课程库 (分类网格);
4. 个人中心 (统计与提醒).`

const meditationImpl = "Build a React + TypeScript + Tailwind meditation app with four screens..."

func TestMachine_MeditationScenario(t *testing.T) {
	gen := &scriptedGenerator{
		batches: []string{firstBatch, secondBatch},
		texts:   []string{meditationFinal, meditationImpl},
	}
	m := NewMachine(gateway.New(gen), Options{})
	ctx := context.Background()

	s, err := m.Dispatch(ctx, SelectMode{Mode: catalog.ModeUI})
	require.NoError(t, err)
	require.Equal(t, StepInput, s.Step)

	_, err = m.Dispatch(ctx, SetIdea{Text: "a minimalist meditation app"})
	require.NoError(t, err)

	s, err = m.Dispatch(ctx, SubmitIdea{})
	require.NoError(t, err)
	require.Equal(t, StepStyleSelection, s.Step)
	require.Len(t, s.Styles, 3)
	require.False(t, s.Loading)
	first := s.Styles

	s, err = m.Dispatch(ctx, Reroll{})
	require.NoError(t, err)
	require.Len(t, s.Styles, 3)
	ids := map[string]bool{}
	for _, st := range first {
		ids[st.ID] = true
	}
	for _, st := range s.Styles {
		require.False(t, ids[st.ID])
	}

	s, err = m.Dispatch(ctx, SelectStyle{ID: s.Styles[1].ID})
	require.NoError(t, err)
	picked, ok := s.Selection.Style()
	require.True(t, ok)
	require.Equal(t, "Brutalist Mono", picked.Name)

	s, err = m.Dispatch(ctx, ConfirmStyle{})
	require.NoError(t, err)
	require.Equal(t, StepFinalPrompt, s.Step)
	n := gateway.CountItems(s.FinalPrompt)
	require.GreaterOrEqual(t, n, 4)
	require.LessOrEqual(t, n, 5)
	require.NotEmpty(t, s.ImplementationPrompt)

	s, err = m.Dispatch(ctx, Reset{})
	require.NoError(t, err)
	require.Equal(t, Initial(Options{}), s)
}

func TestMachine_ProposalFailure(t *testing.T) {
	gen := &scriptedGenerator{jsonErr: errors.New("quota exceeded")}
	m := NewMachine(gateway.New(gen), Options{SkipModeSelect: true})
	ctx := context.Background()

	_, _ = m.Dispatch(ctx, SetIdea{Text: "idea"})
	s, err := m.Dispatch(ctx, SubmitIdea{})
	require.ErrorIs(t, err, gateway.ErrGenerationFailed)
	require.Equal(t, StepInput, s.Step)
	require.False(t, s.Loading)
	require.Equal(t, StyleProposalFailed, s.Err)
}

func TestMachine_MalformedProposal(t *testing.T) {
	gen := &scriptedGenerator{batches: []string{`[{"name": "Only", "description": "one"}]`}}
	m := NewMachine(gateway.New(gen), Options{SkipModeSelect: true})
	ctx := context.Background()

	_, _ = m.Dispatch(ctx, SetIdea{Text: "idea"})
	s, err := m.Dispatch(ctx, SubmitIdea{})
	require.Error(t, err)
	require.Equal(t, StepInput, s.Step)
	require.Empty(t, s.Styles)
}

func TestMachine_PromptFailure(t *testing.T) {
	gen := &scriptedGenerator{
		batches: []string{firstBatch},
		textErr: errors.New("deadline exceeded"),
	}
	m := NewMachine(gateway.New(gen), Options{SkipModeSelect: true})
	ctx := context.Background()

	_, _ = m.Dispatch(ctx, SetIdea{Text: "idea"})
	_, err := m.Dispatch(ctx, SubmitIdea{})
	require.NoError(t, err)
	_, _ = m.Dispatch(ctx, SetCustomVibe{Text: "neon noir"})

	s, err := m.Dispatch(ctx, ConfirmStyle{})
	require.ErrorIs(t, err, gateway.ErrGenerationFailed)
	require.Equal(t, StepStyleSelection, s.Step)
	require.Equal(t, PromptGenerationFailed, s.Err)
	require.Empty(t, s.FinalPrompt)
	require.Empty(t, s.ImplementationPrompt)
}

func TestMachine_ConfirmWithoutChoiceMakesNoCall(t *testing.T) {
	gen := &scriptedGenerator{batches: []string{firstBatch}}
	m := NewMachine(gateway.New(gen), Options{SkipModeSelect: true})
	ctx := context.Background()

	_, _ = m.Dispatch(ctx, SetIdea{Text: "idea"})
	before, _ := m.Dispatch(ctx, SubmitIdea{})

	after, err := m.Dispatch(ctx, ConfirmStyle{})
	require.NoError(t, err)
	require.Equal(t, before, after)
	require.Zero(t, gen.textCalls)
}

func TestExecute_EmptyRequest(t *testing.T) {
	require.Nil(t, Execute(context.Background(), gateway.New(&scriptedGenerator{}), Request{}))
}
