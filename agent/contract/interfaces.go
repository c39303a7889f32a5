package contract

import "context"

// ModelGateway abstracts the language-model provider. Generate sends the
// system instructions, the ordered history, and the published tool schema,
// and returns either final text or a tool-call batch.
type ModelGateway interface {
	Generate(ctx context.Context, history []Turn) (ModelResponse, error)
}

// ToolGateway executes one schema-validated tool invocation against the
// reservation engine. Implementations must return failures as envelope data,
// never as a Go error.
type ToolGateway interface {
	Execute(ctx context.Context, call ToolCall) ToolResult
	Specs() []ToolSpec
}
