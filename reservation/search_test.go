package reservation

import (
	"fmt"
	"testing"
)

func searchVenue(id, name string, rating float64, tier PriceTier, features ...string) Venue {
	return Venue{
		ID:          id,
		Name:        name,
		Cuisine:     "Italian",
		Location:    "Manhattan",
		Rating:      rating,
		PriceRange:  tier,
		Capacity:    50,
		OpenHour:    17,
		CloseHour:   23,
		Description: "Seasonal plates and a long wine list.",
		Features:    features,
	}
}

func resultIDs(venues []Venue) []string {
	ids := make([]string, len(venues))
	for i, v := range venues {
		ids[i] = v.ID
	}
	return ids
}

func TestSearchFilters(t *testing.T) {
	t.Parallel()

	manhattan := searchVenue("rest-1", "Golden Table", 4.2, PriceMid)
	brooklyn := searchVenue("rest-2", "Harbor Room", 4.6, PriceMid)
	brooklyn.Location = "Brooklyn"
	brooklyn.Cuisine = "Japanese"

	e := newTestEngine(t, manhattan, brooklyn)

	cases := []struct {
		name string
		req  SearchRequest
		want []string
	}{
		{"no filters", SearchRequest{}, []string{"rest-2", "rest-1"}},
		{"any is no filter", SearchRequest{Location: "any", Cuisine: "ANY"}, []string{"rest-2", "rest-1"}},
		{"location substring", SearchRequest{Location: "brook"}, []string{"rest-2"}},
		{"location case-insensitive", SearchRequest{Location: "MANHATTAN"}, []string{"rest-1"}},
		{"cuisine filter", SearchRequest{Cuisine: "italian"}, []string{"rest-1"}},
		{"both filters no match", SearchRequest{Location: "Brooklyn", Cuisine: "Italian"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := resultIDs(e.Search(tc.req))
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestSearchBudgetQueryExcludesPremium(t *testing.T) {
	t.Parallel()

	cheapEats := searchVenue("rest-1", "Corner Diner", 4.0, PriceLow)
	steakhouse := searchVenue("rest-2", "Marble Steakhouse", 4.8, PricePremium)
	middling := searchVenue("rest-3", "Plain Kitchen", 3.0, PriceMid)

	e := newTestEngine(t, cheapEats, steakhouse, middling)

	got := resultIDs(e.Search(SearchRequest{Query: "cheap"}))
	if len(got) != 1 || got[0] != "rest-1" {
		t.Fatalf("budget query should keep only the low-tier venue, got %v", got)
	}
}

func TestSearchRomanticPrefersTaggedVenues(t *testing.T) {
	t.Parallel()

	// Identical venues except for the ambience tags.
	tagged := searchVenue("rest-1", "Velvet Room", 4.5, PriceHigh, "Rooftop", "Private Dining")
	plain := searchVenue("rest-2", "Velvet Hall", 4.5, PriceHigh)

	e := newTestEngine(t, plain, tagged)

	got := resultIDs(e.Search(SearchRequest{Query: "romantic"}))
	if len(got) != 2 {
		t.Fatalf("both venues should pass the score threshold, got %v", got)
	}
	if got[0] != "rest-1" {
		t.Fatalf("tagged venue should rank first, got %v", got)
	}
}

func TestSearchUpscaleQueryStacksMichelinBoost(t *testing.T) {
	t.Parallel()

	starred := searchVenue("rest-1", "Pearl Parlor", 4.0, PricePremium, "Michelin Starred")
	unstarred := searchVenue("rest-2", "Emerald Parlor", 4.9, PricePremium)

	e := newTestEngine(t, unstarred, starred)

	got := resultIDs(e.Search(SearchRequest{Query: "fancy"}))
	if len(got) != 2 || got[0] != "rest-1" {
		t.Fatalf("starred venue should outrank higher-rated peer, got %v", got)
	}
}

func TestSearchScoreThresholdIsExclusive(t *testing.T) {
	t.Parallel()

	// No matches anywhere: score equals the bare rating, which must exceed
	// the threshold to survive.
	atThreshold := searchVenue("rest-1", "Quiet Spot", 3.0, PriceMid)
	aboveThreshold := searchVenue("rest-2", "Louder Spot", 3.1, PriceMid)

	e := newTestEngine(t, atThreshold, aboveThreshold)

	got := resultIDs(e.Search(SearchRequest{Query: "zzz-no-match"}))
	if len(got) != 1 || got[0] != "rest-2" {
		t.Fatalf("exactly the above-threshold venue should survive, got %v", got)
	}
}

func TestSearchTieBreaksOnRating(t *testing.T) {
	t.Parallel()

	lower := searchVenue("rest-1", "Oak Grill", 4.1, PriceMid, "Rooftop")
	higher := searchVenue("rest-2", "Iron Grill", 4.7, PriceMid, "Rooftop")

	e := newTestEngine(t, lower, higher)

	got := resultIDs(e.Search(SearchRequest{Query: "rooftop"}))
	if len(got) != 2 || got[0] != "rest-2" {
		t.Fatalf("equal boosts should fall back to rating order, got %v", got)
	}
}

func TestSearchNoQueryOrdersByRatingAndTier(t *testing.T) {
	t.Parallel()

	premium := searchVenue("rest-1", "Royal Club", 4.5, PricePremium)
	low := searchVenue("rest-2", "Sunset Cafe", 4.5, PriceLow)
	topRated := searchVenue("rest-3", "Grand Hall", 4.9, PriceLow)

	e := newTestEngine(t, low, premium, topRated)

	// The tier bonus lifts the 4.5 premium venue past the 4.9 low-tier one,
	// and among equal ratings the higher tier sorts first.
	got := resultIDs(e.Search(SearchRequest{}))
	want := []string{"rest-1", "rest-3", "rest-2"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSearchTruncatesResults(t *testing.T) {
	t.Parallel()

	venues := make([]Venue, 0, 12)
	for i := 0; i < 12; i++ {
		venues = append(venues, searchVenue(fmt.Sprintf("rest-%d", i+1), fmt.Sprintf("Spot %d", i+1), 4.0, PriceMid))
	}
	e := newTestEngine(t, venues...)

	if got := e.Search(SearchRequest{}); len(got) != DefaultScoringConfig().MaxResults {
		t.Fatalf("expected %d results, got %d", DefaultScoringConfig().MaxResults, len(got))
	}

	custom := DefaultScoringConfig()
	custom.MaxResults = 3
	e2 := NewEngine(WithScoringConfig(custom))
	if err := e2.AddVenues(venues...); err != nil {
		t.Fatalf("seed venues: %v", err)
	}
	if got := e2.Search(SearchRequest{}); len(got) != 3 {
		t.Fatalf("expected 3 results with custom config, got %d", len(got))
	}
}
