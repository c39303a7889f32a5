package contract

import (
	"github.com/goodfoods/concierge/reservation"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleAgent      Role = "agent"
	RoleToolResult Role = "tool_result"
)

// Turn is one entry of the conversation history. Agent turns may carry the
// tool calls the model requested; tool-result turns carry the call id they
// answer so the model can correlate results within a batch.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content,omitempty"`

	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	CallID   string `json:"call_id,omitempty"`
	ToolName string `json:"tool_name,omitempty"`
}

// ToolCall is a structured invocation request emitted by the model.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ToolResult is the uniform envelope returned across the dispatcher boundary.
// Exactly one of Result or Error is set; validation and conflict failures are
// data here, never Go errors, so the model can react to them.
type ToolResult struct {
	CallID string `json:"call_id"`
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`

	// Venues is set when this result should be surfaced to the
	// presentation layer as a structured attachment (a non-empty search
	// result list).
	Venues []reservation.Venue `json:"-"`
}

// ModelResponse is the parsed gateway reply: either final text or a batch of
// tool calls, never both.
type ModelResponse struct {
	FinalText string
	ToolCalls []ToolCall
}

// TurnResult is the presentation-boundary payload for one completed user
// turn.
type TurnResult struct {
	Text   string              `json:"text"`
	Venues []reservation.Venue `json:"structuredAttachment,omitempty"`
}

// ToolSpec describes one dispatcher operation to the model: a JSON-schema
// parameter object in the chat-completions function format.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}
