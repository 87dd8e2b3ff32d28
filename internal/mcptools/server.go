// Package mcptools exposes the wizard operations as MCP tools so an agent
// can run the style and prompt steps without the TUI.
package mcptools

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mark3labs/vibeprompt/internal/logger"
	"github.com/mark3labs/vibeprompt/internal/wizard"
)

// Options configures the tool handlers.
type Options struct {
	Version       string
	MaxImageBytes int64  // Limit for image_path arguments
	ExportDir     string // Default directory for export-prompt
}

// Server owns the MCP server and its transports.
type Server struct {
	gw   wizard.Gateway
	opts Options

	// batch numbers proposals across calls so style IDs never repeat.
	batch atomic.Int64

	mcpServer *server.MCPServer
	stdServer *http.Server
	port      int
	mu        sync.Mutex
}

// New creates the server and registers its tools.
func New(gw wizard.Gateway, opts Options) *Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	s := &Server{gw: gw, opts: opts}
	s.mcpServer = server.NewMCPServer(
		"vibeprompt",
		opts.Version,
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// ServeStdio serves MCP over in and out until ctx is done or in closes.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	logger.Info("Serving MCP tools over stdio")
	return server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
}

// Start serves MCP over streamable HTTP on addr ("127.0.0.1:0" picks a free
// port). Returns the bound port.
func (s *Server) Start(addr string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return 0, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	))
	s.stdServer = &http.Server{Handler: mux}

	logger.Debug("Starting MCP server on port %d", s.port)

	// Capture stdServer for the goroutine to avoid racing Stop
	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("MCP server error: %v", err)
		}
	}()

	return s.port, nil
}

// Stop shuts down the HTTP transport.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil
	}

	logger.Debug("Stopping MCP server")
	if err := s.stdServer.Shutdown(ctx); err != nil {
		logger.Warn("Error stopping MCP server: %v", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}
	s.stdServer = nil
	return nil
}

// URL returns the HTTP endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://127.0.0.1:%d/mcp", s.port)
}
