package reservation

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

var generatorCuisines = []string{
	"Italian", "Japanese", "Mexican", "Indian", "French", "American", "Thai",
	"Mediterranean", "Steakhouse", "Fusion", "Chinese", "Korean", "Vietnamese",
	"Greek", "Spanish", "Middle Eastern", "Brazilian", "Caribbean", "Seafood",
	"Vegan", "Ethiopian", "Peruvian", "German", "British",
}

var generatorLocations = []string{
	"Downtown", "Manhattan", "Brooklyn", "West End", "Seaport", "Uptown",
	"Financial District", "SoHo", "Tribeca", "Chelsea", "Greenwich Village",
	"East Village", "Midtown", "Upper East Side", "Williamsburg", "Queens",
	"Harlem", "Lower Manhattan", "DUMBO", "Park Slope",
}

var generatorFeatures = []string{
	"Rooftop", "Romantic", "Outdoor Seating", "Live Music", "Vegetarian Friendly",
	"Waterfront View", "Private Dining", "Michelin Starred", "Wine Bar", "Craft Cocktails",
	"Farm-to-Table", "Pet Friendly", "Vegan Options", "Gluten-Free Menu", "Happy Hour",
	"Late Night", "Brunch", "Birthday Specials", "Date Night", "Family Friendly",
	"Business Dining", "Chef's Table", "Tasting Menu", "BYOB",
}

var namePrefixes = []string{
	"The", "Golden", "Blue", "Rustic", "Modern", "Urban", "Cozy", "Grand", "Silver",
	"Velvet", "Iron", "Glass", "Royal", "Elegant", "Classic", "Nouveau", "Pearl",
	"Emerald", "Sunset", "Harbor", "Garden", "Oak", "Marble", "Crimson",
}

var nameSuffixes = []string{
	"Spoon", "Fork", "Table", "Kitchen", "Bistro", "Grill", "House", "Garden",
	"Patio", "Social", "Lounge", "Steakhouse", "Tavern", "Cafe", "Eatery",
	"Parlor", "Corner", "Plaza", "Room", "Club", "Diner", "Hall", "Hideaway",
}

// Generator produces synthetic demo venues. The seed is explicit so test
// fixtures and demo runs are reproducible.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Venues generates n venues satisfying the engine invariants: capacity >= 1,
// rating in [0,5], openHour < closeHour.
func (g *Generator) Venues(n int) []Venue {
	venues := make([]Venue, 0, n)
	for i := 0; i < n; i++ {
		cuisine := generatorCuisines[g.rng.Intn(len(generatorCuisines))]
		location := generatorLocations[g.rng.Intn(len(generatorLocations))]
		name := namePrefixes[g.rng.Intn(len(namePrefixes))] + " " + nameSuffixes[g.rng.Intn(len(nameSuffixes))]
		if i >= 10 {
			name = fmt.Sprintf("%s %d", name, i+1)
		}

		// Ratings cluster around 4.0 for realism.
		rating := math.Min(5, 3.5+g.rng.Float64()*1.5)
		rating = math.Round(rating*10) / 10

		// Synthetic cost drives price tier and capacity: pricier venues
		// seat fewer covers.
		cost := 20 + g.rng.Intn(181)
		capacityBase := 80
		if cost > 150 {
			capacityBase = 40
		} else if cost > 80 {
			capacityBase = 60
		}
		capacity := capacityBase + g.rng.Intn(80)

		openHour := 17
		if r := g.rng.Float64(); r > 0.7 {
			openHour = 11
		} else if r > 0.4 {
			openHour = 12
		}
		closeHour := 21
		if r := g.rng.Float64(); r > 0.8 {
			closeHour = 23
		} else if r > 0.5 {
			closeHour = 22
		}

		features := make([]string, 0, 8)
		for _, f := range generatorFeatures {
			if g.rng.Float64() > 0.65 {
				features = append(features, f)
			}
		}

		venues = append(venues, Venue{
			ID:          fmt.Sprintf("rest-%d", i+1),
			Name:        name,
			Cuisine:     cuisine,
			Location:    location,
			Rating:      rating,
			PriceRange:  tierForCost(cost),
			Capacity:    capacity,
			OpenHour:    openHour,
			CloseHour:   closeHour,
			Description: g.describe(cuisine, location, features),
			Features:    features,
		})
	}
	return venues
}

func tierForCost(cost int) PriceTier {
	switch {
	case cost > 150:
		return PricePremium
	case cost > 100:
		return PriceHigh
	case cost > 60:
		return PriceMid
	default:
		return PriceLow
	}
}

func (g *Generator) describe(cuisine, location string, features []string) string {
	highlight := "cozy"
	if len(features) > 0 {
		highlight = strings.ToLower(features[g.rng.Intn(len(features))])
	}
	templates := []string{
		"Experience the finest %[1]s dining in %[2]s. Known for our %[3]s atmosphere.",
		"Authentic %[1]s cuisine in the heart of %[2]s. Perfect for %[3]s occasions.",
		"Award-winning %[1]s restaurant featuring %[3]s. A %[2]s favorite since 2015.",
		"Modern %[1]s fusion with a %[3]s vibe. Located in vibrant %[2]s.",
		"Traditional %[1]s flavors meet contemporary style. Enjoy %[3]s in %[2]s.",
	}
	tpl := templates[g.rng.Intn(len(templates))]
	return fmt.Sprintf(tpl, strings.ToLower(cuisine), location, highlight)
}
