package mcpadapter

import (
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/failure"
)

// toolError reports err as a tool-level failure (isError=true) rather than a protocol
// error, so the calling model sees the structured payload.
func (h *Handlers) toolError(tool string, err error) (*mcp.CallToolResult, any, error) {
	payload := failure.From(err)

	event := h.logger.Warn()
	if payload.Kind == failure.KindInternal || payload.Kind == failure.KindUpstream {
		event = h.logger.Error()
	}
	event.Err(err).Str("tool", tool).Str("kind", string(payload.Kind)).Msg("tool call failed")

	text, merr := json.Marshal(payload)
	if merr != nil {
		text = []byte(payload.Message)
	}

	return &mcp.CallToolResult{
		IsError:           true,
		Content:           []mcp.Content{&mcp.TextContent{Text: string(text)}},
		StructuredContent: payload,
	}, nil, nil
}
