package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mvp-joe/scribe/internal/search"
)

// parseToolArguments extracts the arguments map from an MCP tool request.
// A request without arguments yields an empty map.
func parseToolArguments(request mcp.CallToolRequest) (map[string]interface{}, *mcp.CallToolResult) {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}, nil
	}
	argsMap, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, mcp.NewToolResultError("invalid arguments format")
	}
	return argsMap, nil
}

// marshalToolResponse marshals a response object to JSON and returns it as an MCP tool result.
func marshalToolResponse(response interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// isUserError reports whether err describes bad input rather than a server fault.
// User errors are returned as tool errors so the client can correct the call.
func isUserError(err error) bool {
	return errors.Is(err, search.ErrRootNotFound) || errors.Is(err, search.ErrInvalidPattern)
}
