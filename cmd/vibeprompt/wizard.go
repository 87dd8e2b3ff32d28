package main

import (
	"fmt"

	"github.com/mark3labs/vibeprompt/internal/catalog"
	"github.com/mark3labs/vibeprompt/internal/logger"
	"github.com/mark3labs/vibeprompt/internal/tui/app"
	"github.com/mark3labs/vibeprompt/internal/wizard"
	"github.com/spf13/cobra"
)

var wizardFlags struct {
	mode     string
	skipMode bool
}

func init() {
	rootCmd.Flags().StringVarP(&wizardFlags.mode, "mode", "m", "", "Design mode to start with (ui, interior, photo, asset)")
	rootCmd.Flags().BoolVar(&wizardFlags.skipMode, "skip-mode-select", false, "Start at the idea step with the chosen mode")
}

func runWizard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	modeName := cfg.DefaultMode
	skip := cfg.SkipModeSelect
	if cmd.Flags().Changed("mode") {
		modeName = wizardFlags.mode
		skip = true
	}
	if cmd.Flags().Changed("skip-mode-select") {
		skip = wizardFlags.skipMode
	}
	mode, err := catalog.Parse(modeName)
	if err != nil {
		return fmt.Errorf("invalid mode: %w", err)
	}

	gw, err := newGateway(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if hint := firstRunHint(); hint != "" {
		logger.Info("Running without a config file")
		fmt.Fprintln(cmd.ErrOrStderr(), hint)
	}

	return app.Run(cmd.Context(), gw, app.Options{
		Wizard:        wizard.Options{Mode: mode, SkipModeSelect: skip},
		ExportDir:     cfg.ExportDir,
		MaxImageBytes: cfg.MaxImageBytes,
	})
}
