package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/vibeprompt/internal/logger"
	"github.com/mark3labs/vibeprompt/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█ █ █ █▄▄ █▀▀ █▀█ █▀█ █▀█ █▀▄▀█ █▀█ ▀█▀"
	logoText2 = "▀▄▀ █ █▄█ ██▄ █▀▀ █▀▄ █▄█ █ ▀ █ █▀▀  █ "
)

// Version set via ldflags during build
var version = "dev"

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vibeprompt",
	Short: "Turn a rough idea into a styled image-generation prompt",
	Args:  cobra.NoArgs,
	RunE:  runWizard,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

vibeprompt walks you from a rough idea to a polished prompt in four steps:
pick what you are designing, describe it (optionally with a reference
image), choose one of three AI-proposed styles or your own vibe, and copy
the final prompt together with an implementation prompt.

Prompts are generated with Gemini. Set GEMINI_API_KEY or run
'vibeprompt auth set' to store a key in the system keychain.`

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(mcpCmd)
}
