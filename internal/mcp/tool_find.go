package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/scribe/internal/search"
)

const maxContextLines = 50

// FindInFilesResponse is the JSON payload returned by the find_in_files tool.
type FindInFilesResponse struct {
	Pattern      string         `json:"pattern"`
	Root         string         `json:"root"`
	Matches      []search.Match `json:"matches"`
	TotalMatches int            `json:"total_matches"`
	FilesScanned int            `json:"files_scanned"`
	Skipped      []string       `json:"skipped,omitempty"`
	Metadata     FindMetadata   `json:"metadata"`
}

// FindMetadata contains timing information.
type FindMetadata struct {
	TookMs int64 `json:"took_ms"`
}

// AddFindInFilesTool registers the find_in_files tool with an MCP server.
func AddFindInFilesTool(s *server.MCPServer, cfg *ServerConfig) {
	tool := mcp.NewTool(
		"find_in_files",
		mcp.WithDescription(`Search every file under a directory for a substring or regular expression, line by line.

Returns each matching line with its 1-based line number, the matched text and surrounding context lines.
Files that are not valid UTF-8 are read as Latin-1. Unreadable files are skipped and listed.

Examples:
- {"pattern": "TODO"} - case-insensitive substring search from the server root
- {"pattern": "func \\w+Handler", "regex": true, "extensions": [".go"]}
- {"pattern": "Error", "ignore_case": false, "root": "docs", "recursive": false}`),
		mcp.WithString("pattern",
			mcp.Required(),
			mcp.Description("Text or regular expression (RE2 syntax) to search for")),
		mcp.WithString("root",
			mcp.Description("Directory to search, absolute or relative to the server root (default: server root)")),
		mcp.WithBoolean("regex",
			mcp.Description("Treat pattern as a regular expression")),
		mcp.WithBoolean("ignore_case",
			mcp.Description("Case-insensitive matching")),
		mcp.WithArray("extensions",
			mcp.Description(`File suffixes to include, e.g. [".py", ".md"]; empty searches all files`),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithBoolean("recursive",
			mcp.Description("Descend into subdirectories")),
		mcp.WithNumber("context_lines",
			mcp.Description(fmt.Sprintf("Lines of context before and after each match (0-%d)", maxContextLines))),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createFindInFilesHandler(cfg))
}

// createFindInFilesHandler creates the handler function for the find_in_files tool.
func createFindInFilesHandler(cfg *ServerConfig) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	searcher := search.NewSearcher(search.WithFs(cfg.Fs))

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startTime := time.Now()

		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		pattern, err := parseStringArg(argsMap, "pattern", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		rootArg, err := parseStringArg(argsMap, "root", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		defaults := cfg.Search
		extensions := parseListArg(argsMap, "extensions")
		if extensions == nil {
			extensions = defaults.Extensions
		}

		q := search.Query{
			Pattern:      pattern,
			IsRegex:      parseBoolArg(argsMap, "regex", defaults.Regex),
			IgnoreCase:   parseBoolArg(argsMap, "ignore_case", defaults.IgnoreCase),
			Extensions:   search.NormalizeExtensions(extensions),
			Recursive:    parseBoolArg(argsMap, "recursive", defaults.Recursive),
			ContextLines: parseClampedInt(argsMap, "context_lines", defaults.ContextLines, 0, maxContextLines),
			Ignore:       defaults.Ignore,
		}

		root := resolvePath(cfg.Root, rootArg)
		result, err := searcher.Run(root, q)
		if err != nil {
			if isUserError(err) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return nil, fmt.Errorf("search failed: %w", err)
		}

		response := &FindInFilesResponse{
			Pattern:      pattern,
			Root:         root,
			Matches:      result.Matches,
			TotalMatches: len(result.Matches),
			FilesScanned: result.FilesScanned,
			Metadata: FindMetadata{
				TookMs: time.Since(startTime).Milliseconds(),
			},
		}
		for _, skipped := range result.Skipped {
			response.Skipped = append(response.Skipped, skipped.Path)
		}

		return marshalToolResponse(response)
	}
}
