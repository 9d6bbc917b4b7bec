package marketplace

import (
	"time"

	"creatorlane/internal/store"
)

// Featured creators used by the seed catalog. Stable ids so reseeding is
// idempotent and profile links keep working.
var (
	alexMorgan = Provider{ID: "creator-alex", Name: "Alex Morgan", Avatar: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?q=80&w=1974&auto=format&fit=crop"}
	samWilson  = Provider{ID: "creator-sam", Name: "Sam Wilson", Avatar: "https://images.unsplash.com/photo-1599566150163-29194dcaad36?q=80&w=1974&auto=format&fit=crop"}
	ninaChen   = Provider{ID: "creator-nina", Name: "Nina Chen", Avatar: "https://images.unsplash.com/photo-1580489944761-15a19d654956?q=80&w=1961&auto=format&fit=crop"}
	jamesLee   = Provider{ID: "creator-james", Name: "James Lee", Avatar: "https://images.unsplash.com/photo-1607990283143-e81e7a2c9349?q=80&w=1941&auto=format&fit=crop"}
)

// FeaturedServices is the starter catalog shown before anyone lists a
// service of their own.
func FeaturedServices() []Service {
	created := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return []Service{
		{ID: "svc-logo-design", Title: "Custom Logo Design", Category: "Graphic Design", Price: 150, Description: "A unique, memorable logo crafted for your brand.", Provider: alexMorgan, CreatedAt: created},
		{ID: "svc-3d-rendering", Title: "Architectural 3D Rendering", Category: "Architecture", Price: 300, Description: "Photorealistic renders of architectural concepts.", Provider: samWilson, CreatedAt: created},
		{ID: "svc-illustration", Title: "Digital Character Illustration", Category: "Illustration", Price: 120, Description: "Custom character art in a distinctive digital style.", Provider: ninaChen, CreatedAt: created},
		{ID: "svc-uiux", Title: "UI/UX Design for Web & Mobile", Category: "UI/UX Design", Price: 250, Description: "Interface design from wireframe to polished handoff.", Provider: jamesLee, CreatedAt: created},
		{ID: "svc-brand-audit", Title: "Brand Strategy Session", Category: "Marketing", FreeOffer: true, Description: "A free introductory audit of your brand presence.", Provider: alexMorgan, CreatedAt: created},
	}
}

// SeedServices loads the starter catalog if the collection is empty.
// Returns how many records were written.
func SeedServices(s *store.Store) (int, error) {
	col := Services(s)
	existing, err := col.Get()
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	seed := FeaturedServices()
	if err := col.Set(seed); err != nil {
		return 0, err
	}
	return len(seed), nil
}
