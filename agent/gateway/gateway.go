package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"

	contractx "github.com/goodfoods/concierge/agent/contract"
	openrouterx "github.com/goodfoods/concierge/pkg/openrouter"
)

// Gateway drives the OpenAI-compatible chat-completions API with the
// concierge tool schema attached. It is the sole suspension point of a
// conversation turn, so every call runs under an enforced timeout.
type Gateway struct {
	client       *openaisdk.Client
	model        string
	temperature  float64
	maxTokens    int64
	timeout      time.Duration
	systemPrompt string
	tools        []openaisdk.ChatCompletionToolParam
}

var _ contractx.ModelGateway = (*Gateway)(nil)

func New(client *openaisdk.Client, cfg openrouterx.Config, systemPrompt string, specs []contractx.ToolSpec) (*Gateway, error) {
	if client == nil {
		return nil, errors.New("openai client is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, errors.New("system prompt is required")
	}

	return &Gateway{
		client:       client,
		model:        strings.TrimSpace(cfg.Model),
		temperature:  cfg.Temperature,
		maxTokens:    int64(cfg.MaxCompletionToken),
		timeout:      cfg.Timeout,
		systemPrompt: systemPrompt,
		tools:        toolParams(specs),
	}, nil
}

func (g *Gateway) Generate(ctx context.Context, history []contractx.Turn) (contractx.ModelResponse, error) {
	messages, err := g.wireMessages(history)
	if err != nil {
		return contractx.ModelResponse{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	completion, err := g.client.Chat.Completions.New(callCtx, openaisdk.ChatCompletionNewParams{
		Model:       openaisdk.ChatModel(g.model),
		Messages:    messages,
		Tools:       g.tools,
		Temperature: openaisdk.Float(g.temperature),
		MaxTokens:   openaisdk.Int(g.maxTokens),
	})
	if err != nil {
		return contractx.ModelResponse{}, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	if len(completion.Choices) == 0 {
		return contractx.ModelResponse{}, fmt.Errorf("%w: completion has no choices", contractx.ErrSchemaViolation)
	}

	return parseMessage(completion.Choices[0].Message)
}

func (g *Gateway) wireMessages(history []contractx.Turn) ([]openaisdk.ChatCompletionMessageParamUnion, error) {
	messages := make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(history)+1)
	messages = append(messages, openaisdk.SystemMessage(g.systemPrompt))

	for _, turn := range history {
		switch turn.Role {
		case contractx.RoleUser:
			messages = append(messages, openaisdk.UserMessage(turn.Content))

		case contractx.RoleAgent:
			if len(turn.ToolCalls) == 0 {
				messages = append(messages, openaisdk.AssistantMessage(turn.Content))
				continue
			}
			assistant := openaisdk.ChatCompletionAssistantMessageParam{}
			if turn.Content != "" {
				assistant.Content.OfString = openaisdk.String(turn.Content)
			}
			for _, call := range turn.ToolCalls {
				args, err := json.Marshal(call.Arguments)
				if err != nil {
					return nil, fmt.Errorf("%w: marshal arguments for tool=%s: %v", contractx.ErrValidation, call.Name, err)
				}
				assistant.ToolCalls = append(assistant.ToolCalls, openaisdk.ChatCompletionMessageToolCallParam{
					ID: call.ID,
					Function: openaisdk.ChatCompletionMessageToolCallFunctionParam{
						Name:      call.Name,
						Arguments: string(args),
					},
				})
			}
			messages = append(messages, openaisdk.ChatCompletionMessageParamUnion{OfAssistant: &assistant})

		case contractx.RoleToolResult:
			messages = append(messages, openaisdk.ToolMessage(turn.Content, turn.CallID))

		default:
			return nil, fmt.Errorf("%w: unknown turn role %q", contractx.ErrValidation, turn.Role)
		}
	}

	return messages, nil
}

func parseMessage(msg openaisdk.ChatCompletionMessage) (contractx.ModelResponse, error) {
	if len(msg.ToolCalls) == 0 {
		return contractx.ModelResponse{FinalText: strings.TrimSpace(msg.Content)}, nil
	}

	calls := make([]contractx.ToolCall, 0, len(msg.ToolCalls))
	for _, tc := range msg.ToolCalls {
		name := strings.TrimSpace(tc.Function.Name)
		if name == "" {
			return contractx.ModelResponse{}, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
		}

		args := map[string]any{}
		if raw := strings.TrimSpace(tc.Function.Arguments); raw != "" {
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				return contractx.ModelResponse{}, fmt.Errorf("%w: invalid arguments for tool=%s: %v", contractx.ErrSchemaViolation, name, err)
			}
		}

		calls = append(calls, contractx.ToolCall{
			ID:        tc.ID,
			Name:      name,
			Arguments: args,
		})
	}

	return contractx.ModelResponse{ToolCalls: calls}, nil
}

func toolParams(specs []contractx.ToolSpec) []openaisdk.ChatCompletionToolParam {
	out := make([]openaisdk.ChatCompletionToolParam, 0, len(specs))
	for _, spec := range specs {
		out = append(out, openaisdk.ChatCompletionToolParam{
			Function: openaisdk.FunctionDefinitionParam{
				Name:        spec.Name,
				Description: openaisdk.String(spec.Description),
				Parameters:  openaisdk.FunctionParameters(spec.Parameters),
			},
		})
	}
	return out
}
