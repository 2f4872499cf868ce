package registry

import "time"

// SeedHomes returns the demo home catalog. Records are immutable; there is no
// mutation API for homes in this prototype.
func SeedHomes() []Home {
	return []Home{
		{
			ID:           "home-100",
			OwnerID:      "seller-1",
			PropertyType: "detached",
			Beds:         4,
			Baths:        2.5,
			Summary:      "Renovated four bedroom craftsman two blocks from the beach, south-facing garden.",
			Photos: []Photo{
				{ID: "ph-100-1", URL: "https://cdn.hearth.homes/photos/home-100/front.jpg"},
				{ID: "ph-100-2", URL: "https://cdn.hearth.homes/photos/home-100/kitchen.jpg"},
				{ID: "ph-100-3", URL: "https://cdn.hearth.homes/photos/home-100/garden.jpg"},
			},
			Address: Address{
				Street:     "2845 W 3rd Ave",
				City:       "Vancouver",
				Province:   "BC",
				PostalCode: "V6K 1N2",
			},
			Neighbourhood: "Kitsilano",
			City:          "Vancouver",
		},
		{
			ID:           "home-101",
			OwnerID:      "seller-1",
			PropertyType: "condo",
			Beds:         2,
			Baths:        2,
			Summary:      "Corner two bedroom with harbour views, concrete building, pets allowed.",
			Photos: []Photo{
				{ID: "ph-101-1", URL: "https://cdn.hearth.homes/photos/home-101/living.jpg"},
			},
			Address: Address{
				Street:     "1211 Melville St",
				Unit:       "1804",
				City:       "Vancouver",
				Province:   "BC",
				PostalCode: "V6E 0A7",
			},
			Neighbourhood: "Coal Harbour",
			City:          "Vancouver",
		},
		{
			ID:           "home-200",
			OwnerID:      "seller-2",
			PropertyType: "townhouse",
			Beds:         3,
			Baths:        1.5,
			Summary:      "End-unit townhouse backing onto the ravine, finished basement, parking for two.",
			Photos: []Photo{
				{ID: "ph-200-1", URL: "https://cdn.hearth.homes/photos/home-200/exterior.jpg"},
				{ID: "ph-200-2", URL: "https://cdn.hearth.homes/photos/home-200/basement.jpg"},
			},
			Address: Address{
				Street:     "77 Pape Ave",
				City:       "Toronto",
				Province:   "ON",
				PostalCode: "M4M 2V5",
			},
			Neighbourhood: "Riverdale",
			City:          "Toronto",
		},
	}
}

// SeedWishlists returns the demo wishlist aggregates and itemized matches.
func SeedWishlists() ([]WishlistSnapshot, map[string][]WishlistMatch) {
	snapshots := []WishlistSnapshot{
		{
			ID:            "wl-1",
			MatchCount:    7,
			BestFitHomeID: "home-100",
			BestFitScore:  0.91,
			NewSince:      time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:            "wl-2",
			MatchCount:    2,
			BestFitHomeID: "home-200",
			BestFitScore:  0.64,
			NewSince:      time.Date(2026, 8, 24, 16, 30, 0, 0, time.UTC),
		},
	}
	matches := map[string][]WishlistMatch{
		"wl-1": {
			{Alias: "Beachside craftsman", MatchPercent: 91, Area: "Kitsilano", PriceBand: "$2.4M-$2.6M"},
			{Alias: "Harbour corner suite", MatchPercent: 78, Area: "Coal Harbour", PriceBand: "$1.2M-$1.4M"},
			{Alias: "Ravine end-unit", MatchPercent: 66, Area: "Riverdale", PriceBand: "$1.0M-$1.1M"},
		},
		"wl-2": {
			{Alias: "Ravine end-unit", MatchPercent: 64, Area: "Riverdale", PriceBand: "$1.0M-$1.1M"},
		},
	}
	return snapshots, matches
}
