package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	ModalContainer lipgloss.Style
	ModalTitle     lipgloss.Style

	StepActive  lipgloss.Style
	StepDone    lipgloss.Style
	StepPending lipgloss.Style
	StepArrow   lipgloss.Style

	Text    lipgloss.Style
	Muted   lipgloss.Style
	Label   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style

	Card         lipgloss.Style
	CardFocused  lipgloss.Style
	CardSelected lipgloss.Style
	CardTitle    lipgloss.Style

	InputBox        lipgloss.Style
	InputBoxFocused lipgloss.Style

	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	c := lipgloss.Color
	button := lipgloss.NewStyle().Padding(0, 2).MarginLeft(1).MarginRight(1)
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c(t.BorderDefault)).
		Padding(0, 1)
	box := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c(t.BorderDefault))

	return &Styles{
		ModalContainer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.BorderFocused)).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(c(t.Primary)).
			Bold(true),

		StepActive:  lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),
		StepDone:    lipgloss.NewStyle().Foreground(c(t.Success)),
		StepPending: lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		StepArrow:   lipgloss.NewStyle().Foreground(c(t.BorderDefault)),

		Text:    lipgloss.NewStyle().Foreground(c(t.FgBase)),
		Muted:   lipgloss.NewStyle().Foreground(c(t.FgMuted)).Italic(true),
		Label:   lipgloss.NewStyle().Foreground(c(t.Secondary)).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(c(t.Error)).Bold(true),
		Success: lipgloss.NewStyle().Foreground(c(t.Success)),

		Card:         card,
		CardFocused:  card.BorderForeground(c(t.Secondary)),
		CardSelected: card.BorderForeground(c(t.Primary)).BorderStyle(lipgloss.ThickBorder()),
		CardTitle:    lipgloss.NewStyle().Foreground(c(t.FgBright)).Bold(true),

		InputBox:        box,
		InputBoxFocused: box.BorderForeground(c(t.BorderFocused)),

		ButtonNormal: button.
			Foreground(c(t.FgBase)).
			Background(c(t.BgSurface0)),
		ButtonDisabled: button.
			Foreground(c(t.FgMuted)).
			Background(c(t.BgMantle)),
		ButtonFocused: button.
			Foreground(c(t.BgBase)).
			Background(c(t.Secondary)).
			Bold(true),

		HintKey:       lipgloss.NewStyle().Foreground(c(t.FgSubtle)).Bold(true),
		HintDesc:      lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		HintSeparator: lipgloss.NewStyle().Foreground(c(t.BorderDefault)),
	}
}
