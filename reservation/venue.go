package reservation

import (
	"encoding/json"
	"fmt"
)

// PriceTier is the ordered price positioning of a venue, rendered as the
// usual dollar-sign symbols on the wire.
type PriceTier int

const (
	PriceLow PriceTier = iota + 1
	PriceMid
	PriceHigh
	PricePremium
)

var priceTierSymbols = map[PriceTier]string{
	PriceLow:     "$",
	PriceMid:     "$$",
	PriceHigh:    "$$$",
	PricePremium: "$$$$",
}

func (p PriceTier) String() string {
	if s, ok := priceTierSymbols[p]; ok {
		return s
	}
	return "unknown"
}

func (p PriceTier) MarshalJSON() ([]byte, error) {
	s, ok := priceTierSymbols[p]
	if !ok {
		return nil, fmt.Errorf("invalid price tier %d", int(p))
	}
	return json.Marshal(s)
}

func (p *PriceTier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for tier, symbol := range priceTierSymbols {
		if symbol == s {
			*p = tier
			return nil
		}
	}
	return fmt.Errorf("invalid price tier %q", s)
}

// Venue is a bookable restaurant with fixed attributes and operating hours.
// OpenHour/CloseHour form the half-open window [OpenHour, CloseHour) in
// 24-hour integers.
type Venue struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Cuisine     string    `json:"cuisine"`
	Location    string    `json:"location"`
	Rating      float64   `json:"rating"`
	PriceRange  PriceTier `json:"priceRange"`
	Capacity    int       `json:"capacity"`
	OpenHour    int       `json:"openHour"`
	CloseHour   int       `json:"closeHour"`
	Description string    `json:"description"`
	Features    []string  `json:"features"`
}

// Validate enforces the venue invariants.
func (v Venue) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("venue id is empty")
	}
	if v.Capacity < 1 {
		return fmt.Errorf("venue %s: capacity must be >= 1", v.ID)
	}
	if v.Rating < 0 || v.Rating > 5 {
		return fmt.Errorf("venue %s: rating %.1f out of range [0,5]", v.ID, v.Rating)
	}
	if _, ok := priceTierSymbols[v.PriceRange]; !ok {
		return fmt.Errorf("venue %s: invalid price tier %d", v.ID, int(v.PriceRange))
	}
	if v.OpenHour < 0 || v.OpenHour > 24 || v.CloseHour < 0 || v.CloseHour > 24 {
		return fmt.Errorf("venue %s: hours out of range [0,24]", v.ID)
	}
	if v.OpenHour >= v.CloseHour {
		return fmt.Errorf("venue %s: openHour %d must be before closeHour %d", v.ID, v.OpenHour, v.CloseHour)
	}
	return nil
}

func (v Venue) hasFeature(name string) bool {
	for _, f := range v.Features {
		if f == name {
			return true
		}
	}
	return false
}

func (v Venue) hasAnyFeature(names []string) bool {
	for _, n := range names {
		if v.hasFeature(n) {
			return true
		}
	}
	return false
}

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a customer reservation against a venue. VenueName is captured at
// booking time so the record survives later venue mutation.
type Booking struct {
	ID           string        `json:"id"`
	VenueID      string        `json:"venueId"`
	VenueName    string        `json:"venueName"`
	CustomerName string        `json:"customerName"`
	Date         string        `json:"date"` // YYYY-MM-DD
	Time         string        `json:"time"` // HH:MM, 24-hour
	PartySize    int           `json:"partySize"`
	Status       BookingStatus `json:"status"`
}
