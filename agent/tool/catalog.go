package tool

import (
	contractx "github.com/goodfoods/concierge/agent/contract"
)

const (
	ToolSearchRestaurants = "searchRestaurants"
	ToolCheckAvailability = "checkAvailability"
	ToolBookTable         = "bookTable"
	ToolCancelReservation = "cancelReservation"
	ToolGetMyReservations = "getMyReservations"
)

// Specs publishes the five concierge operations in the chat-completions
// function format.
func Specs() []contractx.ToolSpec {
	return []contractx.ToolSpec{
		{
			Name:        ToolSearchRestaurants,
			Description: "Search for restaurants by location, cuisine type, or descriptive keywords. Use this to find restaurant options for the user.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"location": map[string]any{"type": "string", "description": "City or neighborhood (e.g., Manhattan, Downtown, Brooklyn)"},
					"cuisine":  map[string]any{"type": "string", "description": "Cuisine type (e.g., Italian, Japanese, Mexican)"},
					"query":    map[string]any{"type": "string", "description": "Descriptive keywords (e.g., romantic, rooftop, cheap, family-friendly)"},
				},
			},
		},
		{
			Name:        ToolCheckAvailability,
			Description: "Check if a restaurant has a table for a given date, time, and party size. ALWAYS use this before booking.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"venueId":   map[string]any{"type": "string", "description": "The exact venue ID (e.g., rest-12)"},
					"date":      map[string]any{"type": "string", "description": "Date in YYYY-MM-DD format"},
					"time":      map[string]any{"type": "string", "description": "Time in HH:MM 24-hour format (e.g., 19:00)"},
					"partySize": map[string]any{"type": "integer", "description": "Number of guests"},
				},
				"required": []string{"venueId", "date", "time", "partySize"},
			},
		},
		{
			Name:        ToolBookTable,
			Description: "Finalize a reservation. Only use this after availability is confirmed and the user has provided a name.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"venueId":      map[string]any{"type": "string", "description": "The venue ID"},
					"date":         map[string]any{"type": "string", "description": "Date in YYYY-MM-DD format"},
					"time":         map[string]any{"type": "string", "description": "Time in HH:MM format"},
					"partySize":    map[string]any{"type": "integer", "description": "Number of guests"},
					"customerName": map[string]any{"type": "string", "description": "Name for the reservation"},
				},
				"required": []string{"venueId", "date", "time", "partySize", "customerName"},
			},
		},
		{
			Name:        ToolCancelReservation,
			Description: "Cancel an existing reservation using its reservation ID.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"reservationId": map[string]any{"type": "string", "description": "The reservation ID to cancel (e.g., res-1b2c...)"},
				},
				"required": []string{"reservationId"},
			},
		},
		{
			Name:        ToolGetMyReservations,
			Description: "Retrieve all confirmed reservations for a customer by their name.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"customerName": map[string]any{"type": "string", "description": "Customer name to look up reservations for"},
				},
				"required": []string{"customerName"},
			},
		},
	}
}
