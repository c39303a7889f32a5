package reservation

import (
	"sort"
	"strings"
)

// ScoringConfig names every heuristic constant of the search ranking so the
// behavior is tunable and testable in isolation.
type ScoringConfig struct {
	NameMatch        float64
	DescriptionMatch float64
	FeatureMatch     float64

	BudgetTierBoost   float64
	BudgetTierPenalty float64

	RomanceFeatureBoost float64
	RomanceTierBoost    float64

	FamilyFeatureBoost   float64
	FamilyCapacityBoost  float64
	FamilyCapacityFloor  int
	BusinessFeatureBoost float64

	UpscaleTierBoost float64
	MichelinBoost    float64

	OutdoorFeatureBoost float64

	// PremiumSortWeight weights the price tier into the no-query ordering.
	PremiumSortWeight float64

	// MinScore is the exclusive cutoff: a venue must score above it to
	// survive a keyword query.
	MinScore float64

	MaxResults int
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		NameMatch:            3,
		DescriptionMatch:     2,
		FeatureMatch:         2,
		BudgetTierBoost:      5,
		BudgetTierPenalty:    3,
		RomanceFeatureBoost:  4,
		RomanceTierBoost:     2,
		FamilyFeatureBoost:   5,
		FamilyCapacityBoost:  2,
		FamilyCapacityFloor:  100,
		BusinessFeatureBoost: 4,
		UpscaleTierBoost:     5,
		MichelinBoost:        8,
		OutdoorFeatureBoost:  6,
		PremiumSortWeight:    0.3,
		MinScore:             3,
		MaxResults:           8,
	}
}

// Keyword groups that trigger contextual boosts.
var (
	budgetTerms   = []string{"cheap", "budget", "affordable"}
	romanceTerms  = []string{"romantic", "date", "anniversary"}
	familyTerms   = []string{"family", "kids"}
	businessTerms = []string{"business", "corporate", "meeting"}
	upscaleTerms  = []string{"fancy", "upscale", "fine dining"}
	outdoorTerms  = []string{"rooftop", "outdoor", "view"}

	romanceFeatures  = []string{"Romantic", "Private Dining", "Rooftop", "Waterfront View"}
	businessFeatures = []string{"Business Dining", "Private Dining", "Quiet"}
	outdoorFeatures  = []string{"Rooftop", "Outdoor Seating", "Waterfront View"}
)

const michelinFeature = "Michelin Starred"
const familyFeature = "Family Friendly"

// SearchRequest carries the optional search filters. Location and cuisine are
// case-insensitive substring filters; "any" means no filter. Query triggers
// keyword scoring.
type SearchRequest struct {
	Location string
	Cuisine  string
	Query    string
}

// Search filters and ranks venues, returning at most MaxResults. With a
// keyword query, venues are scored and low scorers dropped; without one,
// ordering is rating plus a small premium-tier bonus. Ties keep insertion
// order.
func (e *Engine) Search(req SearchRequest) []Venue {
	e.mu.RLock()
	candidates := make([]Venue, len(e.venues))
	copy(candidates, e.venues)
	cfg := e.scoring
	e.mu.RUnlock()

	candidates = filterBy(candidates, req.Location, func(v Venue) string { return v.Location })
	candidates = filterBy(candidates, req.Cuisine, func(v Venue) string { return v.Cuisine })

	query := strings.ToLower(strings.TrimSpace(req.Query))
	if query != "" {
		candidates = rankByQuery(candidates, query, cfg)
	} else {
		sort.SliceStable(candidates, func(i, j int) bool {
			return premiumSortKey(candidates[i], cfg) > premiumSortKey(candidates[j], cfg)
		})
	}

	if len(candidates) > cfg.MaxResults {
		candidates = candidates[:cfg.MaxResults]
	}
	return candidates
}

func filterBy(venues []Venue, filter string, field func(Venue) string) []Venue {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" || filter == "any" {
		return venues
	}
	out := venues[:0]
	for _, v := range venues {
		if strings.Contains(strings.ToLower(field(v)), filter) {
			out = append(out, v)
		}
	}
	return out
}

func rankByQuery(venues []Venue, query string, cfg ScoringConfig) []Venue {
	type scored struct {
		venue Venue
		score float64
	}

	kept := make([]scored, 0, len(venues))
	for _, v := range venues {
		s := scoreVenue(v, query, cfg)
		if s > cfg.MinScore {
			kept = append(kept, scored{venue: v, score: s})
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].score != kept[j].score {
			return kept[i].score > kept[j].score
		}
		return kept[i].venue.Rating > kept[j].venue.Rating
	})

	out := make([]Venue, len(kept))
	for i, s := range kept {
		out[i] = s.venue
	}
	return out
}

// scoreVenue applies the multi-factor ranking: rating as the base, direct
// substring matches, then contextual keyword boosts.
func scoreVenue(v Venue, query string, cfg ScoringConfig) float64 {
	score := v.Rating

	if strings.Contains(strings.ToLower(v.Name), query) {
		score += cfg.NameMatch
	}
	if strings.Contains(strings.ToLower(v.Description), query) {
		score += cfg.DescriptionMatch
	}
	for _, f := range v.Features {
		if strings.Contains(strings.ToLower(f), query) {
			score += cfg.FeatureMatch
		}
	}

	if containsAny(query, budgetTerms) {
		if v.PriceRange == PriceLow {
			score += cfg.BudgetTierBoost
		}
		if v.PriceRange == PricePremium {
			score -= cfg.BudgetTierPenalty
		}
	}

	if containsAny(query, romanceTerms) {
		if v.hasAnyFeature(romanceFeatures) {
			score += cfg.RomanceFeatureBoost
		}
		if v.PriceRange >= PriceHigh {
			score += cfg.RomanceTierBoost
		}
	}

	if containsAny(query, familyTerms) {
		if v.hasFeature(familyFeature) {
			score += cfg.FamilyFeatureBoost
		}
		if v.Capacity > cfg.FamilyCapacityFloor {
			score += cfg.FamilyCapacityBoost
		}
	}

	if containsAny(query, businessTerms) && v.hasAnyFeature(businessFeatures) {
		score += cfg.BusinessFeatureBoost
	}

	if containsAny(query, upscaleTerms) {
		if v.PriceRange == PricePremium {
			score += cfg.UpscaleTierBoost
		}
		if v.hasFeature(michelinFeature) {
			score += cfg.MichelinBoost
		}
	}

	if containsAny(query, outdoorTerms) && v.hasAnyFeature(outdoorFeatures) {
		score += cfg.OutdoorFeatureBoost
	}

	return score
}

func premiumSortKey(v Venue, cfg ScoringConfig) float64 {
	return v.Rating + tierWeight(v.PriceRange)*cfg.PremiumSortWeight
}

func tierWeight(p PriceTier) float64 {
	switch p {
	case PricePremium:
		return 3
	case PriceHigh:
		return 2
	case PriceMid:
		return 1
	default:
		return 0
	}
}

func containsAny(query string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(query, t) {
			return true
		}
	}
	return false
}
