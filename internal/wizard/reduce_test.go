package wizard

import (
	"errors"
	"testing"

	"github.com/mark3labs/vibeprompt/internal/catalog"
	"github.com/mark3labs/vibeprompt/internal/gateway"
	"github.com/mark3labs/vibeprompt/internal/refimage"
	"github.com/stretchr/testify/require"
)

func batch(n int) []gateway.StyleOption {
	names := []string{"Zen Minimal", "Organic Calm", "Night Breath"}
	out := make([]gateway.StyleOption, 0, len(names))
	for i, name := range names {
		out = append(out, gateway.StyleOption{
			ID:          gateway.StyleID(n, i),
			Name:        name,
			Description: name + " description",
		})
	}
	return out
}

// atStyleSelection drives a fresh state to STYLE_SELECTION with batch 1.
func atStyleSelection(t *testing.T) State {
	t.Helper()
	s := Initial(Options{})
	s, _ = Reduce(s, SelectMode{Mode: catalog.ModeUI})
	s, _ = Reduce(s, SetIdea{Text: "a minimalist meditation app"})
	s, req := Reduce(s, SubmitIdea{})
	require.NotNil(t, req.Propose)
	s, _ = Reduce(s, StylesProposed{Batch: req.Propose.Batch, Styles: batch(req.Propose.Batch)})
	require.Equal(t, StepStyleSelection, s.Step)
	return s
}

func TestInitial(t *testing.T) {
	s := Initial(Options{})
	require.Equal(t, StepModeSelect, s.Step)
	require.Equal(t, catalog.ModeUI, s.Mode)
	require.Empty(t, s.Styles)
	require.True(t, s.Selection.IsNone())

	s = Initial(Options{Mode: catalog.ModeAsset, SkipModeSelect: true})
	require.Equal(t, StepInput, s.Step)
	require.Equal(t, catalog.ModeAsset, s.Mode)
}

func TestSelectMode(t *testing.T) {
	s := Initial(Options{})

	next, req := Reduce(s, SelectMode{Mode: "video"})
	require.Equal(t, s, next, "unknown mode is ignored")
	require.True(t, req.Empty())

	next, _ = Reduce(s, SelectMode{Mode: catalog.ModePhoto})
	require.Equal(t, StepInput, next.Step)
	require.Equal(t, catalog.ModePhoto, next.Mode)

	// Only valid from MODE_SELECT.
	again, _ := Reduce(next, SelectMode{Mode: catalog.ModeUI})
	require.Equal(t, next, again)
}

func TestSubmitIdea_RequiresIdeaOrImage(t *testing.T) {
	s := Initial(Options{SkipModeSelect: true})

	next, req := Reduce(s, SubmitIdea{})
	require.Equal(t, s, next)
	require.True(t, req.Empty())

	s, _ = Reduce(s, SetIdea{Text: "   "})
	next, req = Reduce(s, SubmitIdea{})
	require.Equal(t, s, next)
	require.True(t, req.Empty())

	img := &refimage.Image{Name: "a.png", MIMEType: "image/png", Data: []byte{1}}
	s, _ = Reduce(s, SetImage{Image: img})
	next, req = Reduce(s, SubmitIdea{})
	require.NotNil(t, req.Propose)
	require.Same(t, img, req.Propose.Image)
	require.True(t, next.Loading)
}

func TestSubmitIdea_Success(t *testing.T) {
	s := Initial(Options{SkipModeSelect: true})
	s, _ = Reduce(s, SetIdea{Text: "a minimalist meditation app"})

	s, req := Reduce(s, SubmitIdea{})
	require.True(t, s.Loading)
	require.Equal(t, StepInput, s.Step)
	require.NotNil(t, req.Propose)
	require.False(t, req.Propose.Reroll)
	require.Equal(t, 1, req.Propose.Batch)
	require.Equal(t, "a minimalist meditation app", req.Propose.Idea)

	// A second submission while loading is ignored.
	again, req2 := Reduce(s, SubmitIdea{})
	require.Equal(t, s, again)
	require.True(t, req2.Empty())

	s, _ = Reduce(s, StylesProposed{Batch: 1, Styles: batch(1)})
	require.False(t, s.Loading)
	require.Equal(t, StepStyleSelection, s.Step)
	require.Len(t, s.Styles, 3)
	require.True(t, s.Selection.IsNone())
}

func TestSubmitIdea_Failure(t *testing.T) {
	s := Initial(Options{SkipModeSelect: true})
	s, _ = Reduce(s, SetIdea{Text: "idea"})
	s, _ = Reduce(s, SubmitIdea{})

	s, _ = Reduce(s, StylesFailed{Batch: 1, Err: errors.New("boom")})
	require.Equal(t, StepInput, s.Step)
	require.False(t, s.Loading)
	require.Equal(t, StyleProposalFailed, s.Err)
	require.Empty(t, s.Styles)

	// Retrying clears the error.
	s, req := Reduce(s, SubmitIdea{})
	require.NotNil(t, req.Propose)
	require.Empty(t, s.Err)
}

func TestReroll_ReplacesBatch(t *testing.T) {
	s := atStyleSelection(t)
	s, _ = Reduce(s, SelectStyle{ID: s.Styles[0].ID})
	old := s.Styles

	s, req := Reduce(s, Reroll{})
	require.NotNil(t, req.Propose)
	require.True(t, req.Propose.Reroll)
	require.Equal(t, []string{"Zen Minimal", "Organic Calm", "Night Breath"}, req.Propose.Avoid)
	require.Equal(t, 2, req.Propose.Batch)

	s, _ = Reduce(s, StylesProposed{Batch: 2, Styles: batch(2)})
	require.Len(t, s.Styles, 3)
	require.True(t, s.Selection.IsNone(), "reroll clears the selection")

	oldIDs := map[string]bool{}
	for _, st := range old {
		oldIDs[st.ID] = true
	}
	for _, st := range s.Styles {
		require.False(t, oldIDs[st.ID], "id %s reused from the previous batch", st.ID)
	}
}

func TestReroll_FailureKeepsBatch(t *testing.T) {
	s := atStyleSelection(t)
	styles := s.Styles

	s, _ = Reduce(s, Reroll{})
	s, _ = Reduce(s, StylesFailed{Batch: 2, Err: errors.New("boom")})
	require.Equal(t, StepStyleSelection, s.Step)
	require.Equal(t, StyleProposalFailed, s.Err)
	require.Equal(t, styles, s.Styles)
}

func TestReroll_OnlyFromStyleSelection(t *testing.T) {
	s := Initial(Options{SkipModeSelect: true})
	s, _ = Reduce(s, SetIdea{Text: "idea"})

	next, req := Reduce(s, Reroll{})
	require.Equal(t, s, next)
	require.True(t, req.Empty())
}

func TestSelectStyleAndCustomVibe_MutuallyExclusive(t *testing.T) {
	s := atStyleSelection(t)

	s, _ = Reduce(s, SelectStyle{ID: s.Styles[1].ID})
	st, ok := s.Selection.Style()
	require.True(t, ok)
	require.Equal(t, "Organic Calm", st.Name)

	s, _ = Reduce(s, SetCustomVibe{Text: "dark neon glassmorphism"})
	_, ok = s.Selection.Style()
	require.False(t, ok, "custom vibe clears the selected style")
	vibe, ok := s.Selection.CustomVibe()
	require.True(t, ok)
	require.Equal(t, "dark neon glassmorphism", vibe)

	s, _ = Reduce(s, SelectStyle{ID: s.Styles[2].ID})
	_, ok = s.Selection.CustomVibe()
	require.False(t, ok, "selecting a style clears the custom vibe")
	st, _ = s.Selection.Style()
	require.Equal(t, "Night Breath", st.Name)
}

func TestSelectStyle_UnknownOrStaleID(t *testing.T) {
	s := atStyleSelection(t)

	next, _ := Reduce(s, SelectStyle{ID: "b99-s1"})
	require.Equal(t, s, next)
}

func TestSetCustomVibe_Blank(t *testing.T) {
	s := atStyleSelection(t)

	s, _ = Reduce(s, SetCustomVibe{Text: "neon"})
	s, _ = Reduce(s, SetCustomVibe{Text: "  "})
	require.True(t, s.Selection.IsNone())

	// Blank text does not clear a selected style.
	s, _ = Reduce(s, SelectStyle{ID: s.Styles[0].ID})
	s, _ = Reduce(s, SetCustomVibe{Text: ""})
	_, ok := s.Selection.Style()
	require.True(t, ok)
}

func TestConfirmStyle_NoopWithoutChoice(t *testing.T) {
	s := atStyleSelection(t)

	next, req := Reduce(s, ConfirmStyle{})
	require.Equal(t, s, next)
	require.True(t, req.Empty())
}

func TestConfirmStyle_SelectedStyle(t *testing.T) {
	s := atStyleSelection(t)
	s, _ = Reduce(s, SelectStyle{ID: s.Styles[1].ID})

	s, req := Reduce(s, ConfirmStyle{})
	require.NotNil(t, req.Final)
	require.True(t, s.Loading)
	require.Equal(t, `"Organic Calm" (Organic Calm description)`, req.Final.Style)
	require.Equal(t, catalog.ModeUI, req.Final.Mode)

	s, _ = Reduce(s, PromptsBuilt{Prompts: gateway.Prompts{Final: "final", Implementation: "impl"}})
	require.Equal(t, StepFinalPrompt, s.Step)
	require.Equal(t, "final", s.FinalPrompt)
	require.Equal(t, "impl", s.ImplementationPrompt)
	require.False(t, s.Loading)
}

func TestConfirmStyle_CustomVibe(t *testing.T) {
	s := atStyleSelection(t)
	s, _ = Reduce(s, SetCustomVibe{Text: "  warm brutalism  "})

	_, req := Reduce(s, ConfirmStyle{})
	require.NotNil(t, req.Final)
	require.Equal(t, "warm brutalism", req.Final.Style)
}

func TestConfirmStyle_Failure(t *testing.T) {
	s := atStyleSelection(t)
	s, _ = Reduce(s, SelectStyle{ID: s.Styles[0].ID})
	s, _ = Reduce(s, ConfirmStyle{})

	s, _ = Reduce(s, PromptsFailed{Err: errors.New("boom")})
	require.Equal(t, StepStyleSelection, s.Step)
	require.False(t, s.Loading)
	require.Equal(t, PromptGenerationFailed, s.Err)
	require.Empty(t, s.FinalPrompt)
}

func TestReset_FromEveryStep(t *testing.T) {
	for _, opts := range []Options{{}, {Mode: catalog.ModeAsset, SkipModeSelect: true}} {
		initial := Initial(opts)

		states := []State{initial}

		s := initial
		if s.Step == StepModeSelect {
			s, _ = Reduce(s, SelectMode{Mode: catalog.ModeInterior})
			states = append(states, s)
		}
		s, _ = Reduce(s, SetIdea{Text: "idea"})
		s, _ = Reduce(s, SubmitIdea{})
		states = append(states, s) // loading
		s, _ = Reduce(s, StylesProposed{Batch: s.Batch, Styles: batch(s.Batch)})
		s, _ = Reduce(s, SetCustomVibe{Text: "vibe"})
		states = append(states, s)
		s, _ = Reduce(s, ConfirmStyle{})
		s, _ = Reduce(s, PromptsBuilt{Prompts: gateway.Prompts{Final: "f", Implementation: "i"}})
		states = append(states, s)

		for _, st := range states {
			got, req := Reduce(st, Reset{})
			require.Equal(t, initial, got, "reset from %s", st.Step)
			require.True(t, req.Empty())
		}
	}
}

func TestStaleResultsAreDropped(t *testing.T) {
	s := Initial(Options{SkipModeSelect: true})
	s, _ = Reduce(s, SetIdea{Text: "idea"})
	s, _ = Reduce(s, SubmitIdea{})
	s, _ = Reduce(s, Reset{})

	next, _ := Reduce(s, StylesProposed{Batch: 1, Styles: batch(1)})
	require.Equal(t, s, next, "result after reset is ignored")

	next, _ = Reduce(s, PromptsBuilt{Prompts: gateway.Prompts{Final: "f"}})
	require.Equal(t, s, next)

	// A result for an older batch is ignored while a newer one is pending.
	s = atStyleSelection(t)
	s, _ = Reduce(s, Reroll{})
	next, _ = Reduce(s, StylesProposed{Batch: 1, Styles: batch(1)})
	require.Equal(t, s, next)
}

func TestBack(t *testing.T) {
	s := Initial(Options{})
	s, _ = Reduce(s, SelectMode{Mode: catalog.ModeUI})
	s, _ = Reduce(s, Back{})
	require.Equal(t, StepModeSelect, s.Step)

	s = atStyleSelection(t)
	s, _ = Reduce(s, Back{})
	require.Equal(t, StepInput, s.Step)
	require.Empty(t, s.Styles, "styles only exist from STYLE_SELECTION on")
	require.Equal(t, "a minimalist meditation app", s.Idea)

	fixed := Initial(Options{SkipModeSelect: true})
	next, _ := Reduce(fixed, Back{})
	require.Equal(t, fixed, next, "no mode step to return to")
}

func TestImageActions(t *testing.T) {
	s := Initial(Options{SkipModeSelect: true})
	img := &refimage.Image{Name: "a.png", MIMEType: "image/png", Data: []byte{1}}

	s, _ = Reduce(s, SetImage{Image: img})
	require.Same(t, img, s.Image)
	s, _ = Reduce(s, ClearImage{})
	require.Nil(t, s.Image)

	next, _ := Reduce(s, SetImage{Image: nil})
	require.Equal(t, s, next)
}

func TestActiveStyle(t *testing.T) {
	var none ActiveStyle
	require.True(t, none.IsNone())
	require.False(t, none.Ready())
	require.Empty(t, none.Descriptor())
	require.Empty(t, none.Label())

	require.False(t, Custom("  ").Ready())
	require.True(t, Custom("neon").Ready())
	require.Equal(t, "Custom vibe", Custom("neon").Label())

	sel := Selected(gateway.StyleOption{ID: "b1-s1", Name: "Zen", Description: "calm"})
	require.True(t, sel.Ready())
	require.Equal(t, "Zen", sel.Label())
}

func TestStepString(t *testing.T) {
	require.Equal(t, "MODE_SELECT", StepModeSelect.String())
	require.Equal(t, "INPUT", StepInput.String())
	require.Equal(t, "STYLE_SELECTION", StepStyleSelection.String())
	require.Equal(t, "FINAL_PROMPT", StepFinalPrompt.String())
	require.Equal(t, "UNKNOWN", Step(9).String())
}
