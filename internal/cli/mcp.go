package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mvp-joe/scribe/internal/mcp"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var mcpRoot string

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for find in files",
	Long: `Start the Model Context Protocol (MCP) server so coding assistants can
search this directory tree.

The MCP server:
- Provides find_in_files (substring or regex search with context lines)
- Provides read_file (lines around a location, same encoding detection)
- Uses your saved search settings as defaults for omitted arguments
- Communicates via stdio (standard MCP transport)

Example:
  scribe mcp --root ~/notes`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpRoot, "root", "", "directory relative paths resolve against (default: current directory)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	settings, _, err := loadSettings()
	if err != nil {
		return err
	}

	root := mcpRoot
	if root == "" {
		root, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Scribe MCP Server %s\n", Version)
	fmt.Fprintf(os.Stderr, "Root: %s\n\n", root)

	server, err := mcp.NewServer(&mcp.ServerConfig{
		Root:    root,
		Search:  settings.Search,
		Fs:      afero.NewOsFs(),
		Version: Version,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	if err := server.Serve(context.Background()); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
