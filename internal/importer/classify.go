package importer

import (
	"regexp"
	"strings"

	"needsleads/internal/seed"
)

// DefaultCategorySlug is used when neither the text nor the legacy label
// identifies a category.
const DefaultCategorySlug = seed.DefaultCategorySlug

type categoryRule struct {
	pattern *regexp.Regexp
	slug    string
}

func rule(expr, slug string) categoryRule {
	return categoryRule{pattern: regexp.MustCompile(`(?i)` + expr), slug: slug}
}

// categoryRules is evaluated top to bottom and the first match wins, so the
// position of a rule decides which category a text mentioning several
// services ends up in.
var categoryRules = []categoryRule{
	// Legal
	rule(`lawyer|solicitor|legal|conveyancing|trademark`, "legal-services"),

	// Medical
	rule(`doctor|oncologist|gastro|neurologist|pediatric|hospital|medical|health`, "medical-specialists"),
	rule(`traditional.*doctor|tcm|chinese.*medicine|shingles`, "traditional-medicine"),

	// HR & recruitment
	rule(`hr\s|recruit|headhunt|payroll|hiring|staff`, "hr-recruitment"),

	// Domestic help; must stay above marketing, whose "agency" also matches maid agencies
	rule(`maid|helper|domestic|cleaning|cleaner`, "domestic-helpers"),

	// Marketing
	rule(`marketing|advertis|agency|telemarket`, "marketing-advertising"),

	// IT & tech
	rule(`software|app|mobile.*app|it\s|tech.*team|developer|coding`, "software-development"),
	rule(`crm|erp|power.*bi|dashboard|sharepoint|teams`, "it-services"),

	// Finance & banking
	rule(`bank|insurance|invest|financial|maybank|uob|standard.*chartered`, "banking-finance"),

	// Real estate
	rule(`property|real.*estate|condo|hotel.*sale|land.*lease`, "real-estate-sales"),
	rule(`leasing|rent.*space|office.*space`, "property-leasing"),
	rule(`feng.*shui`, "feng-shui-consulting"),

	// Construction & renovation
	rule(`renovati|fit.*out|contractor|construction|structural`, "renovation-fitout"),
	rule(`architect`, "architecture-design"),
	rule(`facilities.*management`, "facilities-management"),

	// Home services
	rule(`solar|energy`, "solar-energy"),
	rule(`water.*filter`, "water-filtration"),
	rule(`air.*con|aircond`, "air-conditioning"),

	// Transportation
	rule(`driver`, "personal-drivers"),
	rule(`car.*dealer|sell.*car|buy.*car`, "car-sales-dealers"),
	rule(`logistics|3pl|shipping|freight|delivery`, "logistics-shipping"),
	rule(`customs|clearance|import`, "customs-trade"),

	// Food & hospitality
	rule(`restaurant|catering|food.*vendor|chinese.*restaurant`, "restaurants-catering"),
	rule(`seafood|supplier.*food`, "food-suppliers"),
	rule(`hotel|venue|private.*room`, "hotels-venues"),
	rule(`event|emcee|photographer|entertainer|singer`, "event-planning"),

	// Education
	rule(`school|university|education|tutor`, "schools-education"),
	rule(`coach|training|course`, "coaching-training"),
	rule(`pickle.*ball`, "coaching-training"),

	// Immigration & government
	rule(`visa|immigration|passport|embassy|consulate|employment.*pass|mm2h`, "immigration-visas"),
	rule(`license|permit|dbkl|mppj|bomba|mida`, "licensing-permits"),
	rule(`apec.*card`, "immigration-visas"),

	// Accounting & tax
	rule(`accountant|tax|sst|duty`, "accounting-tax"),
}

// legacyCategories maps the category column of the spreadsheet export onto the
// catalog.
var legacyCategories = map[string]string{
	"Home Services":          "domestic-helpers",
	"Professional Services":  "legal-services",
	"Beauty & Wellness":      "coaching-training",
	"Food & Dining":          "restaurants-catering",
	"Automotive":             "personal-drivers",
	"Education":              "schools-education",
	"Events & Entertainment": "event-planning",
	"Real Estate":            "real-estate-sales",
	"Technology":             "it-services",
	"Travel":                 "hotels-venues",
	"Financial":              "banking-finance",
	"Tech & Electronics":     "software-development",
	"Other":                  "business-consulting",
}

// Classify picks the catalog slug for a need from its free text, falling back
// to the legacy category label and then to DefaultCategorySlug.
func Classify(originalCategory, text string) string {
	for _, r := range categoryRules {
		if r.pattern.MatchString(text) {
			return r.slug
		}
	}

	if slug, ok := legacyCategories[strings.TrimSpace(originalCategory)]; ok {
		return slug
	}

	return DefaultCategorySlug
}
