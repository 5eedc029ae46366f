package domain

// DefaultCatalog is the bundled launch collection. It seeds an empty backend
// on first boot and serves as the read-only catalog in degraded mode.
func DefaultCatalog() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Tsavorite Rift Ring",
			Price:       450000,
			Category:    CategoryRings,
			Image:       "https://picsum.photos/id/112/800/800",
			Description: "A tribute to the Taita Hills. A rare 2-carat green Tsavorite garnet set in hand-forged 18k Kenyan gold. The band mimics the textures of the Great Rift Valley.",
			Materials:   Materials{"18k Kenyan Gold", "Green Tsavorite"},
			IsNew:       true,
		},
		{
			ID:          "2",
			Name:        "Mara Dawn Pendant",
			Price:       320000,
			Category:    CategoryNecklaces,
			Image:       "https://picsum.photos/id/449/800/800",
			Description: "Inspired by the sunrise over the Masai Mara. A suspended teardrop of orange sapphire, encased in an intricate champagne gold cage.",
			Materials:   Materials{"18k Champagne Gold", "Orange Sapphire"},
		},
		{
			ID:          "3",
			Name:        "Nairobi Chrono Executive",
			Price:       1850000,
			Category:    CategoryWatches,
			Image:       "https://picsum.photos/id/175/800/800",
			Description: "Designed in Westlands, crafted in Switzerland. A titanium skeleton dial revealing the heartbeat of modern African timekeeping.",
			Materials:   Materials{"Titanium", "Sapphire Crystal", "Rift Leather"},
		},
		{
			ID:          "4",
			Name:        "Kilifi Pearl Drops",
			Price:       280000,
			Category:    CategoryEarrings,
			Image:       "https://picsum.photos/id/250/800/800",
			Description: "Cascading chains of gold capturing the fluidity of the Indian Ocean. A statement of coastal elegance.",
			Materials:   Materials{"24k Gold Vermeil", "Freshwater Pearls"},
			IsNew:       true,
		},
		{
			ID:          "5",
			Name:        "Turkana Obsidian Signet",
			Price:       195000,
			Category:    CategoryRings,
			Image:       "https://picsum.photos/id/230/800/800",
			Description: "A modern interpretation of heritage. Black obsidian from the north, set in brushed platinum. Strength in silence.",
			Materials:   Materials{"Platinum", "Black Obsidian"},
		},
		{
			ID:          "6",
			Name:        "Savanna Constellation Cuff",
			Price:       640000,
			Category:    CategoryRings,
			Image:       "https://picsum.photos/id/350/800/800",
			Description: "Structured yet delicate, this cuff wraps the wrist like the starry night sky over the savanna.",
			Materials:   Materials{"18k Rose Gold", "Pave Diamonds"},
		},
	}
}

// DefaultSiteConfig is the bundled launch content for the singleton site
// configuration document.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		HeroTitle:       "The Heart of Kenyan Luxury",
		HeroSubtitle:    "From the depths of the Rift Valley to the atelier in Nairobi. Rare gemstones, architectural precision, eternal brilliance.",
		HeroButtonText:  "Explore the Collection",
		AboutTitle:      "Forged in the Rift, Worn by the World",
		AboutText:       "Every piece begins as a sketch in our Westlands studio. We source Tsavorite from Taita, Sapphires from Turkana, and Gold from the heart of the land. It takes over 200 hours of masterful precision to transform raw earth into the artifacts you see today.",
		ContactEmail:    "concierge@aurum.co.ke",
		ContactPhone:    "+254 700 000 000",
		AnnouncementBar: "Complimentary shipping within Nairobi & Mombasa • Worldwide shipping available",
	}
}

// RevenuePoint is one month of the dashboard revenue series.
type RevenuePoint struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// DefaultRevenueSeries is the dashboard revenue display series.
func DefaultRevenueSeries() []RevenuePoint {
	return []RevenuePoint{
		{Name: "Jan", Revenue: 4500000},
		{Name: "Feb", Revenue: 5200000},
		{Name: "Mar", Revenue: 4800000},
		{Name: "Apr", Revenue: 6100000},
		{Name: "May", Revenue: 5500000},
		{Name: "Jun", Revenue: 6700000},
		{Name: "Jul", Revenue: 7200000},
	}
}
