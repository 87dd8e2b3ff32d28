package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/mark3labs/vibeprompt/internal/logger"
)

// ClipboardWriter copies text to the system clipboard.
type ClipboardWriter func(text string) error

// systemClipboard uses xclip/xsel/wl-copy, pbcopy or the Windows API.
func systemClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// copyCmd writes text with write off the update loop.
func copyCmd(write ClipboardWriter, label, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{label: label, text: text, err: write(text)}
	}
}

// handleCopied reports the copy and falls back to OSC52 when the system
// clipboard is unavailable (SSH sessions, headless Linux).
func (m *Model) handleCopied(msg copiedMsg) tea.Cmd {
	if msg.err != nil {
		logger.Warn("System clipboard unavailable, falling back to OSC52: %v", msg.err)
		return tea.Batch(
			tea.SetClipboard(msg.text),
			m.toast.Show(msg.label+" sent to terminal clipboard", false),
		)
	}
	return m.toast.Show(msg.label+" copied", false)
}
