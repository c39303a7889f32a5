package reservation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DefaultSlotCapacity caps confirmed bookings per venue, date, and hour
// bucket. It stands in for a real table allocator.
const DefaultSlotCapacity = 5

var (
	ErrVenueNotFound   = errors.New("venue not found")
	ErrBookingRejected = errors.New("booking rejected")
)

// RejectionError carries the human-readable reason a reservation was refused.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return "booking rejected: " + e.Reason
}

func (e *RejectionError) Unwrap() error {
	return ErrBookingRejected
}

// Engine owns the venue and booking collections. A single engine is shared by
// all conversation sessions; every check-then-insert runs under the write lock
// so two concurrent creations can never both slip past the slot cap.
type Engine struct {
	mu         sync.RWMutex
	venues     []Venue
	venueIndex map[string]int
	bookings   []*Booking
	bookingIDs map[string]*Booking

	slotCapacity int
	scoring      ScoringConfig
}

type Option func(*Engine)

// WithSlotCapacity overrides the per-hour-bucket booking cap.
func WithSlotCapacity(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.slotCapacity = n
		}
	}
}

// WithScoringConfig overrides the search scoring heuristics.
func WithScoringConfig(cfg ScoringConfig) Option {
	return func(e *Engine) {
		e.scoring = cfg
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		venueIndex:   make(map[string]int),
		bookingIDs:   make(map[string]*Booking),
		slotCapacity: DefaultSlotCapacity,
		scoring:      DefaultScoringConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddVenues validates and appends venues, preserving insertion order for
// search tie-breaks. Feature tags are deduplicated.
func (e *Engine) AddVenues(venues ...Venue) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, v := range venues {
		if err := v.Validate(); err != nil {
			return err
		}
		if _, exists := e.venueIndex[v.ID]; exists {
			return fmt.Errorf("venue %s already registered", v.ID)
		}
		v.Features = dedupeFeatures(v.Features)
		e.venueIndex[v.ID] = len(e.venues)
		e.venues = append(e.venues, v)
	}
	return nil
}

// VenueByID looks up a venue by its stable identifier.
func (e *Engine) VenueByID(id string) (Venue, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	idx, ok := e.venueIndex[id]
	if !ok {
		return Venue{}, false
	}
	return e.venues[idx], true
}

// Availability is the outcome of a slot check. Reason is human-readable so
// the model can relay or react to it.
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// CheckAvailability validates a requested slot against venue hours, capacity,
// and the hour-bucket booking cap. It is a pure read of current state.
func (e *Engine) CheckAvailability(venueID, date, timeOfDay string, partySize int) Availability {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.checkSlotLocked(venueID, date, timeOfDay, partySize)
}

// checkSlotLocked holds the validation order: unknown venue, time format,
// operating window, capacity, slot cap. Callers must hold at least the read
// lock.
func (e *Engine) checkSlotLocked(venueID, date, timeOfDay string, partySize int) Availability {
	idx, ok := e.venueIndex[venueID]
	if !ok {
		return Availability{Available: false, Reason: "Venue ID not found."}
	}
	venue := e.venues[idx]

	hour, err := parseHour(timeOfDay)
	if err != nil {
		return Availability{Available: false, Reason: "Invalid time format. Use HH:MM."}
	}

	if hour < venue.OpenHour || hour >= venue.CloseHour {
		return Availability{
			Available: false,
			Reason:    fmt.Sprintf("Closed at %s. Open hours: %d:00 - %d:00.", timeOfDay, venue.OpenHour, venue.CloseHour),
		}
	}

	if partySize > venue.Capacity {
		return Availability{
			Available: false,
			Reason:    fmt.Sprintf("Party size %d exceeds max capacity (%d).", partySize, venue.Capacity),
		}
	}

	if e.slotBookingsLocked(venueID, date, hour) >= e.slotCapacity {
		return Availability{
			Available: false,
			Reason:    "No tables available at this specific time. Please try +/- 1 hour.",
		}
	}

	return Availability{Available: true}
}

func (e *Engine) slotBookingsLocked(venueID, date string, hour int) int {
	count := 0
	for _, b := range e.bookings {
		if b.Status != BookingConfirmed || b.VenueID != venueID || b.Date != date {
			continue
		}
		if h, err := parseHour(b.Time); err == nil && h == hour {
			count++
		}
	}
	return count
}

// CreateReservation re-runs the availability check under the write lock
// immediately before insertion, closing the check-then-act race between a
// user's "check" step and "book" step across interleaved sessions.
func (e *Engine) CreateReservation(venueID, date, timeOfDay string, partySize int, customerName string) (Booking, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	check := e.checkSlotLocked(venueID, date, timeOfDay, partySize)
	if !check.Available {
		return Booking{}, &RejectionError{Reason: check.Reason}
	}

	venue := e.venues[e.venueIndex[venueID]]
	booking := &Booking{
		ID:           "res-" + uuid.NewString(),
		VenueID:      venueID,
		VenueName:    venue.Name,
		CustomerName: customerName,
		Date:         date,
		Time:         timeOfDay,
		PartySize:    partySize,
		Status:       BookingConfirmed,
	}
	e.bookings = append(e.bookings, booking)
	e.bookingIDs[booking.ID] = booking
	return *booking, nil
}

// CancelReservation marks a booking cancelled. It reports true whenever the
// booking exists, so a retried cancel stays a harmless no-op; cancelled is
// terminal.
func (e *Engine) CancelReservation(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	booking, ok := e.bookingIDs[id]
	if !ok {
		return false
	}
	booking.Status = BookingCancelled
	return true
}

// ListReservations returns confirmed bookings whose customer name contains
// the given name, case-insensitively. An empty name matches nothing.
func (e *Engine) ListReservations(customerName string) []Booking {
	name := strings.ToLower(strings.TrimSpace(customerName))
	if name == "" {
		return []Booking{}
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	out := []Booking{}
	for _, b := range e.bookings {
		if b.Status != BookingConfirmed {
			continue
		}
		if strings.Contains(strings.ToLower(b.CustomerName), name) {
			out = append(out, *b)
		}
	}
	return out
}

func parseHour(timeOfDay string) (int, error) {
	hh, mm, ok := strings.Cut(timeOfDay, ":")
	if !ok {
		return 0, fmt.Errorf("time %q is not HH:MM", timeOfDay)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("time %q has invalid hour", timeOfDay)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q has invalid minute", timeOfDay)
	}
	return hour, nil
}

func dedupeFeatures(features []string) []string {
	if len(features) == 0 {
		return features
	}
	seen := make(map[string]struct{}, len(features))
	out := make([]string, 0, len(features))
	for _, f := range features {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
