package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/goodfoods/concierge/agent/contract"
	statex "github.com/goodfoods/concierge/agent/state"
	"github.com/goodfoods/concierge/reservation"
)

// DefaultMaxRoundTrips bounds model round-trips per user turn. The cap is the
// only cancellation mechanism for runaway tool loops.
const DefaultMaxRoundTrips = 8

// Fixed user-visible fallbacks. Both abort only the current turn; committed
// history stays intact for the next message.
const (
	loopFallbackText    = "I'm having trouble connecting to the database right now. Please try again in a moment."
	gatewayFallbackText = "I encountered a technical issue connecting to the GoodFoods network. Please try again."
)

type Config struct {
	MaxRoundTrips int
}

// Orchestrator drives one bounded request/response loop per user message:
// send history to the gateway, execute any requested tool batch, feed results
// back, repeat until the model emits final text or the round-trip cap hits.
type Orchestrator struct {
	sessions *statex.SessionStore
	gateway  contractx.ModelGateway
	tools    contractx.ToolGateway

	maxRoundTrips int
}

func New(sessions *statex.SessionStore, gateway contractx.ModelGateway, tools contractx.ToolGateway, cfg Config) (*Orchestrator, error) {
	if sessions == nil {
		return nil, errors.New("session store is required")
	}
	if gateway == nil {
		return nil, errors.New("model gateway is required")
	}
	if tools == nil {
		return nil, errors.New("tool gateway is required")
	}

	maxRoundTrips := cfg.MaxRoundTrips
	if maxRoundTrips <= 0 {
		maxRoundTrips = DefaultMaxRoundTrips
	}

	return &Orchestrator{
		sessions:      sessions,
		gateway:       gateway,
		tools:         tools,
		maxRoundTrips: maxRoundTrips,
	}, nil
}

// HandleMessage runs one complete user turn. Gateway failures and loop
// exhaustion resolve to fixed fallback text, not errors: the turn aborts but
// the session stays usable. The returned error is reserved for caller
// mistakes (empty session id or message).
func (o *Orchestrator) HandleMessage(ctx context.Context, sessionID, text string) (contractx.TurnResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return contractx.TurnResult{}, fmt.Errorf("%w: message is empty", contractx.ErrValidation)
	}

	conv, err := o.sessions.LoadOrCreate(strings.TrimSpace(sessionID))
	if err != nil {
		return contractx.TurnResult{}, err
	}

	conv.Append(contractx.Turn{Role: contractx.RoleUser, Content: text})

	// The most recent non-empty search result of this turn becomes the
	// structured attachment of the final reply.
	var attachment []reservation.Venue

	for trip := 0; trip < o.maxRoundTrips; trip++ {
		resp, err := o.gateway.Generate(ctx, conv.Turns())
		if err != nil {
			log.Warn().
				Err(err).
				Str("session_id", sessionID).
				Int("round_trip", trip+1).
				Msg("gateway call failed, aborting turn")
			return contractx.TurnResult{Text: gatewayFallbackText}, nil
		}

		if len(resp.ToolCalls) == 0 {
			reply := resp.FinalText
			if reply == "" {
				reply = "I processed that, but I'm not sure what to say."
			}
			conv.Append(contractx.Turn{Role: contractx.RoleAgent, Content: reply})
			return contractx.TurnResult{Text: reply, Venues: attachment}, nil
		}

		conv.Append(contractx.Turn{
			Role:      contractx.RoleAgent,
			Content:   resp.FinalText,
			ToolCalls: resp.ToolCalls,
		})

		// Calls within a batch are independent; order is preserved and
		// each result is tagged with its originating call id.
		for _, call := range resp.ToolCalls {
			result := o.tools.Execute(ctx, call)
			if len(result.Venues) > 0 {
				attachment = result.Venues
			}
			conv.Append(toolResultTurn(result))
		}
	}

	log.Warn().
		Str("session_id", sessionID).
		Int("max_round_trips", o.maxRoundTrips).
		Msg("round-trip limit reached, aborting turn")
	return contractx.TurnResult{Text: loopFallbackText}, nil
}

// toolResultTurn serializes the dispatcher envelope into a history turn the
// model can read back.
func toolResultTurn(result contractx.ToolResult) contractx.Turn {
	payload := map[string]any{}
	if result.Error != "" {
		payload["error"] = result.Error
	} else {
		payload["result"] = result.Result
	}

	content, err := json.Marshal(payload)
	if err != nil {
		content = []byte(`{"error":"tool result could not be encoded"}`)
	}

	return contractx.Turn{
		Role:     contractx.RoleToolResult,
		Content:  string(content),
		CallID:   result.CallID,
		ToolName: result.Tool,
	}
}
