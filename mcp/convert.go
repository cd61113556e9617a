package mcp

import (
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	ai "github.com/swingAnt/mcpchat"
)

// FromServerTool converts an MCP tool descriptor to a chat client tool.
// The declared input schema is forwarded unmodified: the raw schema is
// preferred when the server sent one, otherwise the structured schema is
// re-marshalled.
func FromServerTool(t mcp.Tool) ai.Tool {
	var schema json.RawMessage

	if len(t.RawInputSchema) > 0 {
		schema = t.RawInputSchema
	} else if data, err := json.Marshal(t.InputSchema); err == nil {
		schema = data
	}

	return ai.Tool{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  schema,
	}
}

// FromServerTools converts a slice of MCP tool descriptors.
func FromServerTools(tools []mcp.Tool) []ai.Tool {
	result := make([]ai.Tool, len(tools))
	for i, t := range tools {
		result[i] = FromServerTool(t)
	}
	return result
}

// ToCallToolRequest converts a tool call to an MCP invocation request.
// Arguments are parsed as JSON so numbers stay numbers and strings stay
// strings on the wire; unparseable arguments yield a
// [mcpchat.MalformedToolArgumentsError].
func ToCallToolRequest(call ai.ToolCall) (mcp.CallToolRequest, error) {
	var args any
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return mcp.CallToolRequest{}, &ai.MalformedToolArgumentsError{
				Name:      call.Name,
				Arguments: call.Arguments,
				Err:       err,
			}
		}
	}

	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      call.Name,
			Arguments: args,
		},
	}, nil
}

// FromCallToolResult converts an MCP invocation result to a tool result
// correlated with callID. Text content blocks are concatenated; non-text
// blocks and structured content are included as JSON.
func FromCallToolResult(callID string, result *mcp.CallToolResult) ai.ToolResult {
	if result == nil {
		return ai.ToolResult{
			ToolCallID: callID,
			Content:    "",
			IsError:    true,
		}
	}

	var textParts []string
	for _, c := range result.Content {
		switch content := c.(type) {
		case mcp.TextContent:
			textParts = append(textParts, content.Text)
		case *mcp.TextContent:
			textParts = append(textParts, content.Text)
		default:
			if data, err := json.Marshal(content); err == nil {
				textParts = append(textParts, string(data))
			}
		}
	}

	if result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			textParts = append(textParts, string(data))
		}
	}

	return ai.ToolResult{
		ToolCallID: callID,
		Content:    strings.Join(textParts, "\n"),
		IsError:    result.IsError,
	}
}
