package tool

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	contractx "github.com/goodfoods/concierge/agent/contract"
	"github.com/goodfoods/concierge/reservation"
)

// Dispatcher maps a named, schema-validated tool invocation to exactly one
// reservation engine operation. Every failure mode is normalized into the
// result envelope so the orchestrator can forward it to the model instead of
// aborting the turn.
type Dispatcher struct {
	engine *reservation.Engine
}

var _ contractx.ToolGateway = (*Dispatcher)(nil)

func NewDispatcher(engine *reservation.Engine) (*Dispatcher, error) {
	if engine == nil {
		return nil, errors.New("reservation engine is required")
	}
	return &Dispatcher{engine: engine}, nil
}

func (d *Dispatcher) Specs() []contractx.ToolSpec {
	return Specs()
}

func (d *Dispatcher) Execute(ctx context.Context, call contractx.ToolCall) contractx.ToolResult {
	log.Debug().
		Str("tool", call.Name).
		Str("call_id", call.ID).
		Interface("args", call.Arguments).
		Msg("executing tool call")

	switch call.Name {
	case ToolSearchRestaurants:
		return d.searchRestaurants(call)
	case ToolCheckAvailability:
		return d.checkAvailability(call)
	case ToolBookTable:
		return d.bookTable(call)
	case ToolCancelReservation:
		return d.cancelReservation(call)
	case ToolGetMyReservations:
		return d.getMyReservations(call)
	default:
		return errorResult(call, fmt.Sprintf("Tool %s not found", call.Name))
	}
}

func (d *Dispatcher) searchRestaurants(call contractx.ToolCall) contractx.ToolResult {
	args := argReader{call: call}
	req := reservation.SearchRequest{
		Location: args.optionalString("location"),
		Cuisine:  args.optionalString("cuisine"),
		Query:    args.optionalString("query"),
	}
	if args.err != nil {
		return errorResult(call, args.err.Error())
	}

	venues := d.engine.Search(req)
	result := resultFor(call, venues)
	// Only a non-empty search result is promoted to the presentation
	// layer as a structured attachment.
	if len(venues) > 0 {
		result.Venues = venues
	}
	return result
}

func (d *Dispatcher) checkAvailability(call contractx.ToolCall) contractx.ToolResult {
	args := argReader{call: call}
	venueID := args.requiredString("venueId")
	date := args.requiredString("date")
	timeOfDay := args.requiredString("time")
	partySize := args.requiredPositiveInt("partySize")
	if args.err != nil {
		return errorResult(call, args.err.Error())
	}

	return resultFor(call, d.engine.CheckAvailability(venueID, date, timeOfDay, partySize))
}

func (d *Dispatcher) bookTable(call contractx.ToolCall) contractx.ToolResult {
	args := argReader{call: call}
	venueID := args.requiredString("venueId")
	date := args.requiredString("date")
	timeOfDay := args.requiredString("time")
	partySize := args.requiredPositiveInt("partySize")
	customerName := args.requiredString("customerName")
	if args.err != nil {
		return errorResult(call, args.err.Error())
	}

	booking, err := d.engine.CreateReservation(venueID, date, timeOfDay, partySize, customerName)
	if err != nil {
		var rejection *reservation.RejectionError
		if errors.As(err, &rejection) {
			return errorResult(call, "Booking Failed: "+rejection.Reason)
		}
		return errorResult(call, "Booking Failed: "+err.Error())
	}
	return resultFor(call, booking)
}

type cancelOutcome struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

func (d *Dispatcher) cancelReservation(call contractx.ToolCall) contractx.ToolResult {
	args := argReader{call: call}
	reservationID := args.requiredString("reservationId")
	if args.err != nil {
		return errorResult(call, args.err.Error())
	}

	success := d.engine.CancelReservation(reservationID)
	status := "NotFound"
	if success {
		status = "Cancelled"
	}
	return resultFor(call, cancelOutcome{Success: success, Status: status})
}

func (d *Dispatcher) getMyReservations(call contractx.ToolCall) contractx.ToolResult {
	args := argReader{call: call}
	customerName := args.requiredString("customerName")
	if args.err != nil {
		return errorResult(call, args.err.Error())
	}

	return resultFor(call, d.engine.ListReservations(customerName))
}

func resultFor(call contractx.ToolCall, payload any) contractx.ToolResult {
	return contractx.ToolResult{
		CallID: call.ID,
		Tool:   call.Name,
		Result: payload,
	}
}

func errorResult(call contractx.ToolCall, message string) contractx.ToolResult {
	return contractx.ToolResult{
		CallID: call.ID,
		Tool:   call.Name,
		Error:  message,
	}
}

// argReader accumulates the first validation failure while reading typed
// arguments out of the duck-typed call payload.
type argReader struct {
	call contractx.ToolCall
	err  error
}

func (a *argReader) optionalString(key string) string {
	if a.err != nil {
		return ""
	}
	raw, ok := a.call.Arguments[key]
	if !ok || raw == nil {
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		a.err = fmt.Errorf("%s must be a string", key)
		return ""
	}
	return s
}

func (a *argReader) requiredString(key string) string {
	if a.err != nil {
		return ""
	}
	raw, ok := a.call.Arguments[key]
	if !ok || raw == nil {
		a.err = fmt.Errorf("%s is required", key)
		return ""
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		a.err = fmt.Errorf("%s must be a non-empty string", key)
		return ""
	}
	return s
}

// requiredPositiveInt accepts JSON numbers (float64 after decoding) and Go
// ints, rejecting fractional or non-positive values.
func (a *argReader) requiredPositiveInt(key string) int {
	if a.err != nil {
		return 0
	}
	raw, ok := a.call.Arguments[key]
	if !ok || raw == nil {
		a.err = fmt.Errorf("%s is required", key)
		return 0
	}

	var n int
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			a.err = fmt.Errorf("%s must be a whole number", key)
			return 0
		}
		n = int(v)
	case int:
		n = v
	default:
		a.err = fmt.Errorf("%s must be a number", key)
		return 0
	}

	if n < 1 {
		a.err = fmt.Errorf("%s must be a positive integer", key)
		return 0
	}
	return n
}
