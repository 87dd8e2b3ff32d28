package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/vibeprompt/internal/logger"
	"github.com/mark3labs/vibeprompt/internal/mcptools"
	"github.com/spf13/cobra"
)

var mcpFlags struct {
	http string
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the prompt tools over MCP",
	Long: `Serve list-modes, propose-styles, build-final-prompt and export-prompt
as MCP tools so coding agents can drive the wizard.

Serves over stdio by default. Use --http to serve streamable HTTP at /mcp.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpFlags.http, "http", "", "Serve over HTTP on this address (e.g. 127.0.0.1:8765)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gw, err := newGateway(ctx, cfg)
	if err != nil {
		return err
	}

	srv := mcptools.New(gw, mcptools.Options{
		Version:       version,
		MaxImageBytes: cfg.MaxImageBytes,
		ExportDir:     cfg.ExportDir,
	})

	if mcpFlags.http == "" {
		return srv.ServeStdio(ctx, os.Stdin, os.Stdout)
	}

	if _, err := srv.Start(mcpFlags.http); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening at %s\n", srv.URL())

	<-ctx.Done()
	logger.Info("Shutting down MCP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
