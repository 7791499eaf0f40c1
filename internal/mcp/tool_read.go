package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/scribe/internal/document"
	"github.com/mvp-joe/scribe/internal/search"
)

const (
	defaultReadContext = 10
	maxReadContext     = 500
)

// ReadFileResponse is the JSON payload returned by the read_file tool.
type ReadFileResponse struct {
	Path      string         `json:"path"`
	Encoding  string         `json:"encoding"`
	Line      int            `json:"line"`
	LineCount int            `json:"line_count"`
	Lines     []NumberedLine `json:"lines"`
}

// NumberedLine is one line of a read_file window.
type NumberedLine struct {
	Number int    `json:"n"`
	Text   string `json:"text"`
}

// AddReadFileTool registers the read_file tool with an MCP server.
// It is the jump-to-location companion of find_in_files.
func AddReadFileTool(s *server.MCPServer, cfg *ServerConfig) {
	tool := mcp.NewTool(
		"read_file",
		mcp.WithDescription(`Read lines around a location in a file, decoding it the same way find_in_files does.

Use with a path and line_no from a find_in_files match to see more of the surrounding text.`),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File to read, absolute or relative to the server root")),
		mcp.WithNumber("line",
			mcp.Description("1-based line to center on (default: 1)")),
		mcp.WithNumber("context",
			mcp.Description(fmt.Sprintf("Lines to include before and after the target line (0-%d, default: %d)", maxReadContext, defaultReadContext))),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createReadFileHandler(cfg))
}

// createReadFileHandler creates the handler function for the read_file tool.
func createReadFileHandler(cfg *ServerConfig) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		pathArg, err := parseStringArg(argsMap, "path", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		line := parseIntArg(argsMap, "line", 1)
		size := parseClampedInt(argsMap, "context", defaultReadContext, 0, maxReadContext)

		path := resolvePath(cfg.Root, pathArg)
		doc, err := document.Open(cfg.Fs, path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return mcp.NewToolResultError(fmt.Sprintf("file not found: %s", pathArg)), nil
			}
			return mcp.NewToolResultError(err.Error()), nil
		}

		if _, err := doc.GoToLine(line); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		lines := doc.Lines()
		if len(lines) == 0 {
			lines = []string{""}
		}
		index := line - 1
		pre, post := search.ContextWindow(lines, index, size)

		first := line - len(pre)
		window := make([]NumberedLine, 0, len(pre)+1+len(post))
		for i, text := range pre {
			window = append(window, NumberedLine{Number: first + i, Text: text})
		}
		window = append(window, NumberedLine{Number: line, Text: lines[index]})
		for i, text := range post {
			window = append(window, NumberedLine{Number: line + 1 + i, Text: text})
		}

		return marshalToolResponse(&ReadFileResponse{
			Path:      path,
			Encoding:  string(doc.Encoding()),
			Line:      line,
			LineCount: doc.LineCount(),
			Lines:     window,
		})
	}
}
