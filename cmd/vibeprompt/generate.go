package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/vibeprompt/internal/catalog"
	"github.com/mark3labs/vibeprompt/internal/export"
	"github.com/mark3labs/vibeprompt/internal/gateway"
	"github.com/mark3labs/vibeprompt/internal/logger"
	"github.com/mark3labs/vibeprompt/internal/refimage"
	"github.com/mark3labs/vibeprompt/internal/tui/app"
	"github.com/mark3labs/vibeprompt/internal/wizard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var generateFlags struct {
	idea   string
	mode   string
	image  string
	style  int
	vibe   string
	reroll int
	out    string
	json   bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a prompt without the interactive wizard",
	Long: `Run the whole wizard in one shot.

The idea (and optional reference image) is analyzed, three styles are
proposed, and the final prompt is written with the style picked by --style
or with the free-text --vibe. Proposals are printed to stderr so stdout
carries only the prompts.`,
	Example: `  vibeprompt generate --idea "A meditation app" --style 2
  vibeprompt generate -m interior --image room.jpg --vibe "warm japandi" --json
  vibeprompt generate --idea "A plant shop" --reroll 1 --out prompts`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateFlags.idea, "idea", "i", "", "Idea to turn into a prompt")
	generateCmd.Flags().StringVarP(&generateFlags.mode, "mode", "m", "", "Design mode (ui, interior, photo, asset)")
	generateCmd.Flags().StringVar(&generateFlags.image, "image", "", "Reference image path")
	generateCmd.Flags().IntVarP(&generateFlags.style, "style", "s", 1, "Proposed style to use (1-3)")
	generateCmd.Flags().StringVar(&generateFlags.vibe, "vibe", "", "Custom vibe to use instead of a proposed style")
	generateCmd.Flags().IntVar(&generateFlags.reroll, "reroll", 0, "Number of times to reroll the proposals before choosing")
	generateCmd.Flags().StringVarP(&generateFlags.out, "out", "o", "", "Also save the prompts as markdown in this directory")
	generateCmd.Flags().BoolVar(&generateFlags.json, "json", false, "Print the result as JSON")
}

// generateResult is the --json output.
type generateResult struct {
	Mode                 catalog.Mode          `json:"mode"`
	Styles               []gateway.StyleOption `json:"styles"`
	Style                string                `json:"style"`
	FinalPrompt          string                `json:"final_prompt"`
	ImplementationPrompt string                `json:"implementation_prompt"`
	SavedTo              string                `json:"saved_to,omitempty"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(generateFlags.idea) == "" && generateFlags.image == "" {
		return fmt.Errorf("provide --idea, --image or both")
	}
	if generateFlags.reroll < 0 {
		return fmt.Errorf("--reroll must be >= 0")
	}
	useVibe := strings.TrimSpace(generateFlags.vibe) != ""
	if !useVibe && (generateFlags.style < 1 || generateFlags.style > gateway.StylesPerBatch) {
		return fmt.Errorf("--style must be between 1 and %d", gateway.StylesPerBatch)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	modeName := cfg.DefaultMode
	if generateFlags.mode != "" {
		modeName = generateFlags.mode
	}
	mode, err := catalog.Parse(modeName)
	if err != nil {
		return fmt.Errorf("invalid mode: %w", err)
	}

	gw, err := newGateway(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	m := wizard.NewMachine(gw, wizard.Options{Mode: mode, SkipModeSelect: true})
	_, _ = m.Dispatch(ctx, wizard.SetIdea{Text: generateFlags.idea})

	if generateFlags.image != "" {
		img, err := refimage.Load(generateFlags.image, cfg.MaxImageBytes)
		if err != nil {
			return err
		}
		logger.Info("Attached reference image %s", img)
		_, _ = m.Dispatch(ctx, wizard.SetImage{Image: img})
	}

	errOut := cmd.ErrOrStderr()
	if _, err := m.Dispatch(ctx, wizard.SubmitIdea{}); err != nil {
		return fmt.Errorf("%s: %w", wizard.StyleProposalFailed, err)
	}
	for i := 0; i < generateFlags.reroll; i++ {
		if _, err := m.Dispatch(ctx, wizard.Reroll{}); err != nil {
			return fmt.Errorf("%s: %w", wizard.StyleProposalFailed, err)
		}
	}

	state := m.State()
	printStyles(errOut, state.Styles)

	if useVibe {
		state, _ = m.Dispatch(ctx, wizard.SetCustomVibe{Text: generateFlags.vibe})
	} else {
		if generateFlags.style > len(state.Styles) {
			return fmt.Errorf("only %d styles were proposed", len(state.Styles))
		}
		state, _ = m.Dispatch(ctx, wizard.SelectStyle{ID: state.Styles[generateFlags.style-1].ID})
	}
	fmt.Fprintf(errOut, "\nUsing %s\n\n", state.Selection.Label())

	styles := state.Styles
	state, err = m.Dispatch(ctx, wizard.ConfirmStyle{})
	if err != nil {
		return fmt.Errorf("%s: %w", wizard.PromptGenerationFailed, err)
	}

	res := generateResult{
		Mode:                 state.Mode,
		Styles:               styles,
		Style:                state.Selection.Descriptor(),
		FinalPrompt:          state.FinalPrompt,
		ImplementationPrompt: state.ImplementationPrompt,
	}

	if generateFlags.out != "" {
		style := state.Selection.Label()
		if vibe, ok := state.Selection.CustomVibe(); ok {
			style = strings.TrimSpace(vibe)
		}
		path, err := export.Save(generateFlags.out, export.Document{
			Mode:           string(state.Mode),
			Style:          style,
			Idea:           state.Idea,
			Final:          state.FinalPrompt,
			Implementation: state.ImplementationPrompt,
			Created:        time.Now(),
		})
		if err != nil {
			return err
		}
		res.SavedTo = path
		fmt.Fprintf(errOut, "Saved to %s\n", path)
	}

	return printResult(cmd.OutOrStdout(), res)
}

func printStyles(w io.Writer, styles []gateway.StyleOption) {
	fmt.Fprintln(w, "Proposed styles:")
	for i, s := range styles {
		fmt.Fprintf(w, "  %d. %s: %s\n", i+1, s.Name, s.Description)
	}
}

// printResult writes JSON, rendered markdown on a terminal, or the raw
// prompts when piped.
func printResult(w io.Writer, res generateResult) error {
	if generateFlags.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(res)
	}

	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		width, _, err := term.GetSize(int(f.Fd()))
		if err != nil {
			width = 80
		}
		_, err = fmt.Fprint(w, app.RenderMarkdown(app.PromptsMarkdown(res.FinalPrompt, res.ImplementationPrompt), width))
		return err
	}

	_, err := fmt.Fprintf(w, "%s\n\n---\n\n%s\n", res.FinalPrompt, res.ImplementationPrompt)
	return err
}
