package portfolio

import (
	"time"

	"creatorlane/internal/store"
)

// FeaturedPortfolios is the starter showcase shown before anyone publishes
// a piece of their own.
func FeaturedPortfolios() []Portfolio {
	created := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	alex := Creator{ID: "creator-alex", Name: "Alex Morgan", Avatar: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?q=80&w=1974&auto=format&fit=crop"}
	sam := Creator{ID: "creator-sam", Name: "Sam Wilson", Avatar: "https://images.unsplash.com/photo-1599566150163-29194dcaad36?q=80&w=1974&auto=format&fit=crop"}
	nina := Creator{ID: "creator-nina", Name: "Nina Chen", Avatar: "https://images.unsplash.com/photo-1580489944761-15a19d654956?q=80&w=1961&auto=format&fit=crop"}
	james := Creator{ID: "creator-james", Name: "James Lee", Avatar: "https://images.unsplash.com/photo-1607990283143-e81e7a2c9349?q=80&w=1941&auto=format&fit=crop"}

	return []Portfolio{
		{ID: "pf-brand-identity", Title: "Minimalist Brand Identity", Category: "Graphic Design", Image: "https://images.unsplash.com/photo-1634986666676-ec8fd927c23d?q=80&w=1974&auto=format&fit=crop", Creator: alex, CreatedAt: created},
		{ID: "pf-architecture", Title: "Modern Architecture Portfolio", Category: "Photography", Image: "https://images.unsplash.com/photo-1600585154340-be6161a56a0c?q=80&w=1770&auto=format&fit=crop", Creator: sam, CreatedAt: created},
		{ID: "pf-illustrations", Title: "Digital Illustrations Collection", Category: "Illustration", Image: "https://images.unsplash.com/photo-1618005198919-d3d4b5a92ead?q=80&w=1974&auto=format&fit=crop", Creator: nina, CreatedAt: created},
		{ID: "pf-ui-components", Title: "Elegant UI Components", Category: "UI/UX Design", Image: "https://images.unsplash.com/photo-1545235617-9465d2a55698?q=80&w=1780&auto=format&fit=crop", Creator: james, CreatedAt: created},
	}
}

// SeedPortfolios loads the starter showcase if the collection is empty.
func SeedPortfolios(s *store.Store) (int, error) {
	col := Portfolios(s)
	existing, err := col.Get()
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	seed := FeaturedPortfolios()
	if err := col.Set(seed); err != nil {
		return 0, err
	}
	return len(seed), nil
}
