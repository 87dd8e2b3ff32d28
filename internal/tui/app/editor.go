package app

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/vibeprompt/internal/logger"
)

// openEditor launches $EDITOR on a temp file holding text and returns the
// edited text as IdeaEditedMsg. Failures keep the current text.
func openEditor(text string) tea.Cmd {
	tmpfile, err := os.CreateTemp("", "vibeprompt_idea_*.md")
	if err != nil {
		logger.Warn("Creating temp file for editor: %v", err)
		return nil
	}
	if _, err := tmpfile.WriteString(text); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return nil
	}
	_ = tmpfile.Close()

	cmd, err := editor.Command("vibeprompt", tmpfile.Name())
	if err != nil {
		logger.Warn("Resolving editor: %v", err)
		_ = os.Remove(tmpfile.Name())
		return nil
	}

	path := tmpfile.Name()
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer func() { _ = os.Remove(path) }()
		if err != nil {
			logger.Warn("Editor exited with error: %v", err)
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		return IdeaEditedMsg{Text: string(content)}
	})
}
