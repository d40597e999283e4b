package seed

import (
	"context"
	"fmt"

	"needsleads/pkg/types"
)

// DefaultCategorySlug is the catch-all category for needs nothing else fits.
const DefaultCategorySlug = "business-consulting"

// Categories is the fixed catalog every need is classified into. Names and
// slugs are unique, and this list is the only source of either.
var Categories = []types.CategorySeed{
	// Professional services
	{Name: "Legal Services", Slug: "legal-services"},
	{Name: "Accounting & Tax", Slug: "accounting-tax"},
	{Name: "HR & Recruitment", Slug: "hr-recruitment"},
	{Name: "Marketing & Advertising", Slug: "marketing-advertising"},
	{Name: "PR & Communications", Slug: "pr-communications"},
	{Name: "Business Consulting", Slug: "business-consulting"},
	{Name: "IT Services", Slug: "it-services"},
	{Name: "Software Development", Slug: "software-development"},
	{Name: "Web & Mobile Apps", Slug: "web-mobile-apps"},
	{Name: "Cybersecurity", Slug: "cybersecurity"},

	// Health, finance and design
	{Name: "Medical Specialists", Slug: "medical-specialists"},
	{Name: "Traditional Medicine", Slug: "traditional-medicine"},
	{Name: "Mental Health", Slug: "mental-health"},
	{Name: "Dental Services", Slug: "dental-services"},
	{Name: "Architecture & Design", Slug: "architecture-design"},
	{Name: "Engineering", Slug: "engineering"},
	{Name: "Financial Advisory", Slug: "financial-advisory"},
	{Name: "Insurance", Slug: "insurance"},
	{Name: "Banking & Finance", Slug: "banking-finance"},
	{Name: "Investment Services", Slug: "investment-services"},

	// Property
	{Name: "Real Estate Sales", Slug: "real-estate-sales"},
	{Name: "Property Leasing", Slug: "property-leasing"},
	{Name: "Renovation & Fit-out", Slug: "renovation-fitout"},
	{Name: "Construction", Slug: "construction"},
	{Name: "Facilities Management", Slug: "facilities-management"},
	{Name: "Interior Design", Slug: "interior-design"},
	{Name: "Feng Shui Consulting", Slug: "feng-shui-consulting"},

	// Home
	{Name: "Domestic Helpers", Slug: "domestic-helpers"},
	{Name: "Cleaning Services", Slug: "cleaning-services"},
	{Name: "Home Maintenance", Slug: "home-maintenance"},
	{Name: "Solar & Energy", Slug: "solar-energy"},
	{Name: "Water Filtration", Slug: "water-filtration"},
	{Name: "Air Conditioning", Slug: "air-conditioning"},
	{Name: "Security Services", Slug: "security-services"},

	// Transport
	{Name: "Personal Drivers", Slug: "personal-drivers"},
	{Name: "Car Sales & Dealers", Slug: "car-sales-dealers"},
	{Name: "Vehicle Services", Slug: "vehicle-services"},
	{Name: "Logistics & Shipping", Slug: "logistics-shipping"},
	{Name: "International Freight", Slug: "international-freight"},

	// Food and hospitality
	{Name: "Restaurants & Catering", Slug: "restaurants-catering"},
	{Name: "Food Suppliers", Slug: "food-suppliers"},
	{Name: "Hotels & Venues", Slug: "hotels-venues"},
	{Name: "Event Planning", Slug: "event-planning"},
	{Name: "Entertainment & Performers", Slug: "entertainment-performers"},

	// Education
	{Name: "Schools & Education", Slug: "schools-education"},
	{Name: "Coaching & Training", Slug: "coaching-training"},
	{Name: "Language Services", Slug: "language-services"},

	// Government
	{Name: "Immigration & Visas", Slug: "immigration-visas"},
	{Name: "Licensing & Permits", Slug: "licensing-permits"},
	{Name: "Customs & Trade", Slug: "customs-trade"},
}

var categoriesBySlug = func() map[string]types.CategorySeed {
	m := make(map[string]types.CategorySeed, len(Categories))
	for _, c := range Categories {
		m[c.Slug] = c
	}
	return m
}()

// CategoryBySlug looks a slug up in the catalog.
func CategoryBySlug(slug string) (types.CategorySeed, bool) {
	c, ok := categoriesBySlug[slug]
	return c, ok
}

func IsKnownSlug(slug string) bool {
	_, ok := categoriesBySlug[slug]
	return ok
}

type CategoryStore interface {
	InsertCategoryIfAbsent(ctx context.Context, category types.CategorySeed) (bool, error)
}

// SeedCategories inserts every catalog entry that is not already present and
// reports how many were new. Existing rows are left untouched, so running it
// twice is harmless.
func SeedCategories(ctx context.Context, store CategoryStore) (int, error) {
	var inserted int
	for _, category := range Categories {
		created, err := store.InsertCategoryIfAbsent(ctx, category)
		if err != nil {
			return inserted, fmt.Errorf("failed to seed category %s: %w", category.Slug, err)
		}
		if created {
			inserted++
		}
	}

	return inserted, nil
}
