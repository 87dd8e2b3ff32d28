// Package app is the interactive prompt wizard.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/vibeprompt/internal/catalog"
	"github.com/mark3labs/vibeprompt/internal/export"
	"github.com/mark3labs/vibeprompt/internal/logger"
	"github.com/mark3labs/vibeprompt/internal/refimage"
	"github.com/mark3labs/vibeprompt/internal/tui/theme"
	"github.com/mark3labs/vibeprompt/internal/wizard"
)

// Options configures the wizard program.
type Options struct {
	Wizard        wizard.Options
	ExportDir     string
	MaxImageBytes int64
	Clipboard     ClipboardWriter // Defaults to the system clipboard
}

// Model is the BubbleTea model for the prompt wizard.
type Model struct {
	ctx   context.Context
	gw    wizard.Gateway
	opts  Options
	state wizard.State

	// epoch increments on every reset; in-flight results from an older
	// epoch are dropped.
	epoch int

	modeStep  *ModeStep
	ideaStep  *IdeaStep
	styleStep *StyleStep
	finalStep *FinalStep
	spinner   spinner.Model
	toast     Toast

	// imagePath is the path the attached image was loaded from.
	imagePath string

	// inFlight is the request currently running, if any.
	inFlight wizard.Request

	width  int
	height int
}

// New creates the wizard model. ctx bounds every gateway call.
func New(ctx context.Context, gw wizard.Gateway, opts Options) *Model {
	if opts.Clipboard == nil {
		opts.Clipboard = systemClipboard
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Primary))

	m := &Model{
		ctx:     ctx,
		gw:      gw,
		opts:    opts,
		spinner: sp,
		width:   100,
		height:  40,
	}
	m.resetSteps()
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, gw wizard.Gateway, opts Options) error {
	p := tea.NewProgram(New(ctx, gw, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}
	return nil
}

// State returns the current wizard state.
func (m *Model) State() wizard.State {
	return m.state
}

func (m *Model) resetSteps() {
	m.state = wizard.Initial(m.opts.Wizard)
	m.modeStep = NewModeStep(m.state.Mode)
	m.ideaStep = NewIdeaStep(catalog.MustLookup(m.state.Mode))
	m.styleStep = NewStyleStep()
	m.finalStep = NewFinalStep()
	m.imagePath = ""
	m.inFlight = wizard.Request{}
	m.updateSizes()
}

// Init initializes the wizard model.
func (m *Model) Init() tea.Cmd {
	return m.ideaStep.Init()
}

// Update handles messages for the wizard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case toastDismissMsg:
		m.toast.Update(msg)
		return m, nil

	case resultMsg:
		if msg.epoch != m.epoch {
			logger.Debug("Dropping result from epoch %d (current %d)", msg.epoch, m.epoch)
			return m, nil
		}
		return m, m.dispatch(msg.action)

	case ModeChosenMsg:
		return m, m.dispatch(wizard.SelectMode{Mode: msg.Mode})

	case IdeaSubmittedMsg:
		return m, m.submitIdea(msg)

	case IdeaEditedMsg:
		text := strings.TrimRight(msg.Text, "\n")
		m.ideaStep.SetIdea(text)
		return m, m.dispatch(wizard.SetIdea{Text: text})

	case StylePickedMsg:
		m.styleStep.ClearVibe()
		return m, m.dispatch(wizard.SelectStyle{ID: msg.ID})

	case RerollMsg:
		return m, m.dispatch(wizard.Reroll{})

	case ConfirmStyleMsg:
		return m, m.dispatch(wizard.ConfirmStyle{})

	case CopyMsg:
		if msg.Text == "" {
			return m, nil
		}
		return m, copyCmd(m.opts.Clipboard, msg.Label, msg.Text)

	case copiedMsg:
		return m, m.handleCopied(msg)

	case SaveMsg:
		return m, m.save()

	case savedMsg:
		if msg.err != nil {
			logger.Error("Export failed: %v", msg.err)
			return m, m.toast.Show("Save failed: "+msg.err.Error(), true)
		}
		return m, m.toast.Show("Saved to "+msg.path, false)

	case NewPromptMsg:
		return m, m.dispatch(wizard.Reset{})
	}

	return m, m.forward(msg)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "ctrl+r":
		return m.dispatch(wizard.Reset{})
	case "esc":
		if m.state.Step == wizard.StepStyleSelection && m.styleStep.VibeFocused() {
			m.styleStep.FocusCards()
			return nil
		}
		if m.state.Loading {
			return nil
		}
		if m.atFirstStep() {
			return tea.Quit
		}
		return m.dispatch(wizard.Back{})
	}

	// Steps get no input while a request is in flight.
	if m.state.Loading {
		return nil
	}
	return m.forward(msg)
}

func (m *Model) atFirstStep() bool {
	return m.state.Step == wizard.StepModeSelect ||
		(m.state.Step == wizard.StepInput && m.opts.Wizard.SkipModeSelect)
}

// forward passes msg to the current step and mirrors text edits into the
// wizard state.
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	switch m.state.Step {
	case wizard.StepModeSelect:
		return m.modeStep.Update(msg)

	case wizard.StepInput:
		cmd := m.ideaStep.Update(msg)
		if idea := m.ideaStep.Idea(); idea != m.state.Idea {
			m.dispatch(wizard.SetIdea{Text: idea})
		}
		return cmd

	case wizard.StepStyleSelection:
		before := m.styleStep.Vibe()
		cmd := m.styleStep.Update(msg)
		if after := m.styleStep.Vibe(); after != before {
			m.dispatch(wizard.SetCustomVibe{Text: after})
		}
		return cmd

	case wizard.StepFinalPrompt:
		return m.finalStep.Update(msg)
	}
	return nil
}

// submitIdea attaches or clears the reference image, then submits.
func (m *Model) submitIdea(msg IdeaSubmittedMsg) tea.Cmd {
	m.dispatch(wizard.SetIdea{Text: msg.Idea})

	switch {
	case msg.ImagePath == "":
		m.imagePath = ""
		m.ideaStep.SetImageTag("")
		m.dispatch(wizard.ClearImage{})
	case msg.ImagePath != m.imagePath || m.state.Image == nil:
		img, err := refimage.Load(msg.ImagePath, m.opts.MaxImageBytes)
		if err != nil {
			logger.Warn("Loading reference image: %v", err)
			m.ideaStep.SetError(err.Error())
			return nil
		}
		m.imagePath = msg.ImagePath
		m.ideaStep.SetImageTag(img.String())
		m.dispatch(wizard.SetImage{Image: img})
	}

	return m.dispatch(wizard.SubmitIdea{})
}

// dispatch applies a to the state, keeps the step components in sync and
// turns any emitted request into a command.
func (m *Model) dispatch(a wizard.Action) tea.Cmd {
	if _, ok := a.(wizard.Reset); ok {
		m.epoch++
		m.resetSteps()
		logger.Info("Wizard reset")
		return m.ideaStep.Init()
	}

	prev := m.state
	next, req := wizard.Reduce(m.state, a)
	m.state = next

	if prev.Step != next.Step {
		logger.Debug("Step %s -> %s", prev.Step, next.Step)
	}

	switch a.(type) {
	case wizard.SelectMode:
		if next.Mode != prev.Mode || prev.Step != next.Step {
			m.ideaStep.SetMode(catalog.MustLookup(next.Mode))
		}
	case wizard.StylesProposed:
		if prev.Loading && !next.Loading {
			m.styleStep.SetStyles(next.Styles)
		}
	case wizard.PromptsBuilt:
		if next.Step == wizard.StepFinalPrompt {
			m.finalStep.SetPrompts(next.FinalPrompt, next.ImplementationPrompt)
		}
	case wizard.Back:
		if prev.Step == wizard.StepStyleSelection {
			m.styleStep.SetStyles(nil)
		}
	}

	if req.Empty() {
		return nil
	}
	m.inFlight = req
	return tea.Batch(m.spinner.Tick, m.execute(req))
}

func (m *Model) execute(req wizard.Request) tea.Cmd {
	ctx, gw, epoch := m.ctx, m.gw, m.epoch
	return func() tea.Msg {
		return resultMsg{epoch: epoch, action: wizard.Execute(ctx, gw, req)}
	}
}

func (m *Model) save() tea.Cmd {
	if m.state.Step != wizard.StepFinalPrompt {
		return nil
	}
	doc := export.Document{
		Mode:           string(m.state.Mode),
		Style:          styleLabel(m.state.Selection),
		Idea:           m.state.Idea,
		Final:          m.state.FinalPrompt,
		Implementation: m.state.ImplementationPrompt,
		Created:        time.Now(),
	}
	dir := m.opts.ExportDir
	return func() tea.Msg {
		path, err := export.Save(dir, doc)
		return savedMsg{path: path, err: err}
	}
}

// styleLabel names the chosen style for the export index.
func styleLabel(a wizard.ActiveStyle) string {
	if vibe, ok := a.CustomVibe(); ok {
		return strings.TrimSpace(vibe)
	}
	return a.Label()
}

// updateSizes updates the size of every step component.
func (m *Model) updateSizes() {
	w, h := m.contentSize()
	m.modeStep.SetSize(w, h)
	m.ideaStep.SetSize(w, h)
	m.styleStep.SetSize(w, h)
	m.finalStep.SetSize(w, h)
}

func (m *Model) contentSize() (int, int) {
	w := m.modalWidth() - 6 // border and padding
	h := m.height - 10
	if h < 10 {
		h = 10
	}
	return w, h
}

func (m *Model) modalWidth() int {
	w := m.width - 10
	if w < 60 {
		w = 60
	}
	if w > 100 {
		w = 100
	}
	return w
}

// View renders the wizard UI.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	content := m.render()

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// render builds the centered modal as a string.
func (m *Model) render() string {
	st := theme.Current().S()

	sections := []string{
		st.ModalTitle.Render(m.title()),
		m.stepIndicator(),
		"",
		m.body(),
		"",
	}

	if m.state.Loading {
		sections = append(sections, m.spinner.View()+" "+st.Muted.Render(m.loadingText()))
	} else if m.state.Err != "" {
		sections = append(sections, st.Error.Render("✗ "+m.state.Err))
	}

	bar := NewButtonBar(m.buttons())
	bar.SetWidth(m.modalWidth() - 6)
	sections = append(sections, bar.Render(), "", m.hints())

	if t := m.toast.View(); t != "" {
		sections = append(sections, "", t)
	}

	modal := st.ModalContainer.Width(m.modalWidth()).Render(strings.Join(sections, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m *Model) title() string {
	entry := catalog.MustLookup(m.state.Mode)
	if m.state.Step == wizard.StepModeSelect {
		return "vibeprompt"
	}
	return "vibeprompt · " + entry.Label
}

var stepNames = []string{"Mode", "Idea", "Style", "Prompt"}

// stepIndicator renders "1 Mode › 2 Idea › 3 Style › 4 Prompt" with the
// current step highlighted.
func (m *Model) stepIndicator() string {
	st := theme.Current().S()
	current := int(m.state.Step)

	parts := make([]string, 0, len(stepNames))
	for i, name := range stepNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		switch {
		case i == current:
			parts = append(parts, st.StepActive.Render(label))
		case i < current:
			parts = append(parts, st.StepDone.Render(label))
		default:
			parts = append(parts, st.StepPending.Render(label))
		}
	}
	return strings.Join(parts, st.StepArrow.Render(" › "))
}

func (m *Model) body() string {
	switch m.state.Step {
	case wizard.StepModeSelect:
		return m.modeStep.View()
	case wizard.StepInput:
		return m.ideaStep.View()
	case wizard.StepStyleSelection:
		return m.styleStep.View(m.state)
	case wizard.StepFinalPrompt:
		return m.finalStep.View()
	}
	return ""
}

func (m *Model) loadingText() string {
	switch p := m.inFlight.Propose; {
	case p != nil && p.Reroll:
		return "Finding new styles..."
	case p != nil:
		return "Analyzing your idea..."
	}
	return "Writing your prompt..."
}

func (m *Model) buttons() []Button {
	idle := !m.state.Loading
	switch m.state.Step {
	case wizard.StepModeSelect:
		return []Button{
			{Label: "Quit", State: ButtonNormal},
			{Label: "Next →", State: ButtonFocused},
		}
	case wizard.StepInput:
		return []Button{
			{Label: "← Back", State: normal(idle && !m.opts.Wizard.SkipModeSelect)},
			{Label: "Analyze →", State: primary(idle && m.ideaStep.Ready())},
		}
	case wizard.StepStyleSelection:
		return []Button{
			{Label: "← Back", State: normal(idle)},
			{Label: "↻ Reroll", State: normal(m.state.CanReroll())},
			{Label: "Generate →", State: primary(m.state.CanConfirm())},
		}
	case wizard.StepFinalPrompt:
		return []Button{
			{Label: "Copy Prompt", State: ButtonFocused},
			{Label: "Copy Implementation", State: normal(m.state.ImplementationPrompt != "")},
			{Label: "Save", State: ButtonNormal},
			{Label: "New Prompt", State: ButtonNormal},
		}
	}
	return nil
}

func (m *Model) hints() string {
	switch m.state.Step {
	case wizard.StepModeSelect:
		return renderHintBar("↑↓", "navigate", "1-4/enter", "select", "esc", "quit")
	case wizard.StepInput:
		return renderHintBar("tab", "switch field", "ctrl+e", "editor", "ctrl+s", "analyze", "ctrl+r", "reset", "esc", "back")
	case wizard.StepStyleSelection:
		if m.styleStep.VibeFocused() {
			return renderHintBar("enter", "generate", "tab/esc", "styles", "ctrl+r", "reset")
		}
		return renderHintBar("1-3", "select", "d", "custom vibe", "r", "reroll", "enter", "generate", "esc", "back")
	case wizard.StepFinalPrompt:
		return renderHintBar("↑↓", "scroll", "c", "copy prompt", "i", "copy implementation", "s", "save", "n", "new", "esc", "back")
	}
	return ""
}
