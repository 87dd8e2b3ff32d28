package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/vibeprompt/internal/catalog"
	"github.com/mark3labs/vibeprompt/internal/config"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project bool
	force   bool
	model   string
	mode    string
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create vibeprompt configuration file",
	Long: `Create a vibeprompt configuration file with sensible defaults.

By default, creates a global config at ~/.config/vibeprompt/vibeprompt.yml.
Use --project to create a project-local config in the current directory.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().StringVar(&setupFlags.model, "model", "", "Gemini model to write into the config")
	setupCmd.Flags().StringVarP(&setupFlags.mode, "mode", "m", "", "Default design mode to write into the config")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := config.Defaults()
	if setupFlags.model != "" {
		cfg.Model = setupFlags.model
	}
	if setupFlags.mode != "" {
		mode, err := catalog.Parse(setupFlags.mode)
		if err != nil {
			return fmt.Errorf("invalid mode: %w", err)
		}
		cfg.DefaultMode = string(mode)
	}

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config written to: %s\n\n", targetPath)
	fmt.Fprintln(out, "Run 'vibeprompt auth set' to store your Gemini API key, then 'vibeprompt' to get started.")
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
