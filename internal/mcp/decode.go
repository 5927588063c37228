package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// decode round-trips the tool call arguments through JSON into a typed
// request struct, so handlers never touch the raw argument map.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	raw, err := json.Marshal(req.GetArguments())
	if err != nil {
		return result, fmt.Errorf("encode arguments: %w", err)
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return result, fmt.Errorf("decode arguments: %w", err)
	}
	return result, nil
}
