package main

import (
	"fmt"

	"github.com/mark3labs/vibeprompt/internal/catalog"
	"github.com/spf13/cobra"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the available design modes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, e := range catalog.All() {
			fmt.Fprintf(out, "%-9s %s\n", e.Mode, e.Label)
			fmt.Fprintf(out, "          %s\n", e.Summary)
		}
		return nil
	},
}
