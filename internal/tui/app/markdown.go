package app

import (
	"strings"

	"charm.land/glamour/v2"
	"charm.land/lipgloss/v2"
)

// RenderMarkdown renders markdown with glamour's dark style wrapped at
// width. Falls back to plain wrapped text if rendering fails.
func RenderMarkdown(content string, width int) string {
	if width > 120 {
		width = 120
	}
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return lipgloss.NewStyle().Width(width).Render(content)
	}

	rendered, err := r.Render(content)
	if err != nil {
		return lipgloss.NewStyle().Width(width).Render(content)
	}

	// Remove trailing newline that glamour adds
	return strings.TrimSuffix(rendered, "\n")
}

// PromptsMarkdown lays out both prompts as one document. The prompts are
// kept in fenced blocks so glamour does not reflow their numbered lists.
func PromptsMarkdown(final, implementation string) string {
	var b strings.Builder
	b.WriteString("## Final Prompt\n\n```text\n")
	b.WriteString(strings.TrimSpace(final))
	b.WriteString("\n```\n\n## Implementation Prompt\n\n```text\n")
	b.WriteString(strings.TrimSpace(implementation))
	b.WriteString("\n```\n")
	return b.String()
}
