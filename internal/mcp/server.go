// Package mcp exposes the find-in-files search over the Model Context
// Protocol so that editors and agents can query a directory tree on stdio.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/scribe/internal/config"
	"github.com/spf13/afero"
)

// ServerConfig configures the MCP server.
type ServerConfig struct {
	// Root resolves relative paths passed by clients. Defaults to the working directory.
	Root string
	// Search supplies defaults for arguments a client omits.
	Search config.SearchSettings
	// Fs is the filesystem tools read from. Defaults to the OS filesystem.
	Fs afero.Fs
	// Version is reported during the MCP handshake.
	Version string
}

// DefaultServerConfig returns a config rooted at the working directory with default search settings.
func DefaultServerConfig() *ServerConfig {
	root, err := os.Getwd()
	if err != nil {
		root = "."
	}
	return &ServerConfig{
		Root:    root,
		Search:  config.Default().Search,
		Fs:      afero.NewOsFs(),
		Version: "dev",
	}
}

// Server manages the MCP server lifecycle.
type Server struct {
	config *ServerConfig
	mcp    *server.MCPServer
}

// NewServer creates an MCP server with the find_in_files and read_file tools registered.
func NewServer(cfg *ServerConfig) (*Server, error) {
	if cfg == nil {
		cfg = DefaultServerConfig()
	}
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}
	cfg.Root = root

	mcpServer := server.NewMCPServer(
		"scribe",
		cfg.Version,
		server.WithToolCapabilities(true),
	)

	AddFindInFilesTool(mcpServer, cfg)
	AddReadFileTool(mcpServer, cfg)

	return &Server{config: cfg, mcp: mcpServer}, nil
}

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio (root: %s)...", s.config.Root)
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resolvePath makes a client-supplied path absolute against root.
func resolvePath(root, path string) string {
	if path == "" {
		return root
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
