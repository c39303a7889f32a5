package reservation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func venueFixture(id string) Venue {
	return Venue{
		ID:          id,
		Name:        "The Golden Spoon",
		Cuisine:     "Italian",
		Location:    "Manhattan",
		Rating:      4.5,
		PriceRange:  PriceHigh,
		Capacity:    40,
		OpenHour:    17,
		CloseHour:   23,
		Description: "Classic Italian dining in the heart of Manhattan.",
		Features:    []string{"Romantic", "Rooftop"},
	}
}

func newTestEngine(t *testing.T, venues ...Venue) *Engine {
	t.Helper()
	e := NewEngine()
	if err := e.AddVenues(venues...); err != nil {
		t.Fatalf("seed venues: %v", err)
	}
	return e
}

func TestAddVenuesRejectsInvalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Venue)
	}{
		{"zero capacity", func(v *Venue) { v.Capacity = 0 }},
		{"rating above five", func(v *Venue) { v.Rating = 5.5 }},
		{"negative rating", func(v *Venue) { v.Rating = -0.1 }},
		{"open after close", func(v *Venue) { v.OpenHour = 22; v.CloseHour = 21 }},
		{"hour out of range", func(v *Venue) { v.CloseHour = 25 }},
		{"empty id", func(v *Venue) { v.ID = "" }},
		{"unset price tier", func(v *Venue) { v.PriceRange = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			v := venueFixture("rest-1")
			tc.mutate(&v)
			if err := NewEngine().AddVenues(v); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestAddVenuesRejectsDuplicateID(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, venueFixture("rest-1"))
	if err := e.AddVenues(venueFixture("rest-1")); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestAddVenuesDedupesFeatures(t *testing.T) {
	t.Parallel()

	v := venueFixture("rest-1")
	v.Features = []string{"Rooftop", "Romantic", "Rooftop"}
	e := newTestEngine(t, v)

	got, ok := e.VenueByID("rest-1")
	if !ok {
		t.Fatal("venue not found")
	}
	if len(got.Features) != 2 {
		t.Fatalf("expected 2 features, got %v", got.Features)
	}
}

func TestCheckAvailabilityValidationOrder(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, venueFixture("rest-1"))

	cases := []struct {
		name      string
		venueID   string
		time      string
		partySize int
		available bool
		reason    string
	}{
		{"unknown venue", "rest-404", "19:00", 2, false, "not found"},
		{"bad time format", "rest-1", "7pm", 2, false, "Invalid time format"},
		{"before opening", "rest-1", "12:00", 2, false, "Closed at"},
		{"at closing hour", "rest-1", "23:00", 2, false, "Closed at"},
		{"over capacity", "rest-1", "19:00", 41, false, "exceeds max capacity"},
		{"open slot", "rest-1", "19:00", 2, true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := e.CheckAvailability(tc.venueID, "2025-11-27", tc.time, tc.partySize)
			if got.Available != tc.available {
				t.Fatalf("available=%v, want %v (reason=%q)", got.Available, tc.available, got.Reason)
			}
			if tc.reason != "" && !strings.Contains(got.Reason, tc.reason) {
				t.Fatalf("reason %q does not contain %q", got.Reason, tc.reason)
			}
		})
	}
}

func TestCheckAvailabilityFormatErrorBeforeClosedHours(t *testing.T) {
	t.Parallel()

	// An unparsable time must be reported as a format problem even when it
	// could also be read as outside the operating window.
	e := newTestEngine(t, venueFixture("rest-1"))
	got := e.CheckAvailability("rest-1", "2025-11-27", "25:99", 2)
	if got.Available {
		t.Fatal("expected unavailable")
	}
	if !strings.Contains(got.Reason, "Invalid time format") {
		t.Fatalf("unexpected reason: %q", got.Reason)
	}
}

func TestCheckAvailabilityIsPure(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, venueFixture("rest-1"))
	first := e.CheckAvailability("rest-1", "2025-11-27", "19:00", 2)
	second := e.CheckAvailability("rest-1", "2025-11-27", "19:00", 2)
	if first != second {
		t.Fatalf("repeated check differs: %+v vs %+v", first, second)
	}
}

func TestSlotCapFillsAfterFiveBookings(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, venueFixture("rest-1"))

	for i := 0; i < 5; i++ {
		booking, err := e.CreateReservation("rest-1", "2025-11-27", "19:30", 2, fmt.Sprintf("Guest %d", i))
		if err != nil {
			t.Fatalf("booking %d failed: %v", i, err)
		}
		if booking.Status != BookingConfirmed {
			t.Fatalf("booking %d status=%s", i, booking.Status)
		}
	}

	_, err := e.CreateReservation("rest-1", "2025-11-27", "19:00", 2, "Guest 6")
	if err == nil {
		t.Fatal("sixth booking in the same hour bucket must fail")
	}
	var rejection *RejectionError
	if !errors.As(err, &rejection) {
		t.Fatalf("expected RejectionError, got %T", err)
	}
	if !strings.Contains(rejection.Reason, "No tables available") {
		t.Fatalf("unexpected reason: %q", rejection.Reason)
	}

	// The neighboring hour bucket is unaffected.
	if _, err := e.CreateReservation("rest-1", "2025-11-27", "20:00", 2, "Guest 7"); err != nil {
		t.Fatalf("adjacent hour booking failed: %v", err)
	}
}

func TestCreateReservationCapturesVenueName(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, venueFixture("rest-1"))
	booking, err := e.CreateReservation("rest-1", "2025-11-27", "19:00", 2, "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.VenueName != "The Golden Spoon" {
		t.Fatalf("venue name not captured: %q", booking.VenueName)
	}
	if booking.ID == "" {
		t.Fatal("booking id is empty")
	}
}

func TestCancelReservationIdempotent(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, venueFixture("rest-1"))

	if e.CancelReservation("res-missing") {
		t.Fatal("cancel of unknown id must return false")
	}

	booking, err := e.CreateReservation("rest-1", "2025-11-27", "19:00", 2, "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !e.CancelReservation(booking.ID) {
		t.Fatal("first cancel must return true")
	}
	if !e.CancelReservation(booking.ID) {
		t.Fatal("repeated cancel must still return true")
	}

	if got := e.ListReservations("Alice"); len(got) != 0 {
		t.Fatalf("cancelled booking still listed: %+v", got)
	}
}

func TestListReservations(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, venueFixture("rest-1"))
	if _, err := e.CreateReservation("rest-1", "2025-11-27", "19:00", 2, "Alice Johnson"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.CreateReservation("rest-1", "2025-11-27", "20:00", 4, "Bob Smith"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := e.ListReservations(""); len(got) != 0 {
		t.Fatalf("empty name must match nothing, got %d", len(got))
	}
	if got := e.ListReservations("alice"); len(got) != 1 || got[0].CustomerName != "Alice Johnson" {
		t.Fatalf("case-insensitive substring lookup failed: %+v", got)
	}
	if got := e.ListReservations("o"); len(got) != 2 {
		t.Fatalf("substring lookup expected 2 bookings, got %d", len(got))
	}
}

func TestConcurrentCreateRespectsSlotCap(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, venueFixture("rest-1"))

	const attempts = 20
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = e.CreateReservation("rest-1", "2025-11-27", "19:00", 2, fmt.Sprintf("Guest %d", i))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		}
	}
	if succeeded != 5 {
		t.Fatalf("expected exactly 5 concurrent winners, got %d", succeeded)
	}
}

func TestSearchCheckBookScenario(t *testing.T) {
	t.Parallel()

	target := Venue{
		ID:          "rest-1",
		Name:        "Velvet Harbor",
		Cuisine:     "Italian",
		Location:    "Manhattan",
		Rating:      4.8,
		PriceRange:  PricePremium,
		Capacity:    30,
		OpenHour:    17,
		CloseHour:   23,
		Description: "Fine dining above the skyline.",
		Features:    []string{"Rooftop", "Private Dining"},
	}
	decoy := venueFixture("rest-2")
	decoy.Features = nil
	decoy.PriceRange = PriceMid

	e := newTestEngine(t, target, decoy)

	results := e.Search(SearchRequest{Location: "Manhattan", Cuisine: "Italian", Query: "romantic"})
	if len(results) == 0 || results[0].ID != "rest-1" {
		t.Fatalf("expected rest-1 as top result, got %+v", results)
	}

	check := e.CheckAvailability("rest-1", "2025-11-27", "19:00", 2)
	if !check.Available {
		t.Fatalf("expected availability, got reason %q", check.Reason)
	}

	booking, err := e.CreateReservation("rest-1", "2025-11-27", "19:00", 2, "Alice")
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if booking.Status != BookingConfirmed {
		t.Fatalf("status=%s", booking.Status)
	}

	// Minute-identical slots keep succeeding until the hour bucket cap.
	for i := 0; i < 4; i++ {
		if got := e.CheckAvailability("rest-1", "2025-11-27", "19:00", 2); !got.Available {
			t.Fatalf("slot closed early at %d bookings: %q", i+1, got.Reason)
		}
		if _, err := e.CreateReservation("rest-1", "2025-11-27", "19:00", 2, "Bob"); err != nil {
			t.Fatalf("booking %d failed: %v", i+2, err)
		}
	}
	if got := e.CheckAvailability("rest-1", "2025-11-27", "19:00", 2); got.Available {
		t.Fatal("slot must be full after five confirmed bookings")
	}
}
