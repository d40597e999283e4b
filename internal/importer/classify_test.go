package importer

import (
	"testing"

	"needsleads/internal/seed"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		category string
		text     string
		want     string
	}{
		{"first match wins", "Other", "lawyer for marketing agency", "legal-services"},
		{"maid agency", "Home Services", "Hi all, anyone can recommend a good maid agency? thanks!", "domestic-helpers"},
		{"general medical wins over traditional", "", "Traditional Chinese medicine doctor for back pain", "medical-specialists"},
		{"tcm with health", "", "TCM clinic with a good health record", "medical-specialists"},
		{"shingles with health", "", "shingles, any health advice", "medical-specialists"},
		{"chinese medicine doctor", "", "good chinese medicine doctor", "medical-specialists"},
		{"traditional medicine only", "", "TCM acupuncture for back pain", "traditional-medicine"},
		{"general medical", "", "Good pediatric clinic near Mont Kiara", "medical-specialists"},
		{"hiring beats helper", "", "hiring a domestic helper", "hr-recruitment"},
		{"it followed by space", "", "Need an IT vendor for our office", "software-development"},
		{"lowercase it matches too", "Technology", "can someone fix it quickly", "software-development"},
		{"app inside a word", "", "would appreciate a plumber", "software-development"},
		{"agency before apps", "", "Mobile apps agency", "marketing-advertising"},
		{"dashboard", "", "Power BI dashboard consultant", "it-services"},
		{"feng shui", "", "Feng shui master for new office", "feng-shui-consulting"},
		{"customs", "", "Customs clearance agent at Port Klang", "customs-trade"},
		{"pickleball", "", "Pickleball courts for a corporate day", "coaching-training"},
		{"apec card", "", "Renew APEC card", "immigration-visas"},
		{"tax", "", "Accountant for SST", "accounting-tax"},
		{"legacy fallback", "Automotive", "Someone to look at my Proton", "personal-drivers"},
		{"unknown legacy label", "Gardening", "Someone to trim trees", DefaultCategorySlug},
		{"empty everything", "", "", DefaultCategorySlug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.category, tt.text); got != tt.want {
				t.Errorf("Classify(%q, %q) = %q, want %q", tt.category, tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyAlwaysReturnsCatalogSlug(t *testing.T) {
	for _, r := range categoryRules {
		if !seed.IsKnownSlug(r.slug) {
			t.Errorf("rule %q maps to unknown slug %q", r.pattern, r.slug)
		}
	}

	for label, slug := range legacyCategories {
		if !seed.IsKnownSlug(slug) {
			t.Errorf("legacy label %q maps to unknown slug %q", label, slug)
		}
		if got := Classify(label, ""); got != slug {
			t.Errorf("Classify(%q, \"\") = %q, want %q", label, got, slug)
		}
	}

	if !seed.IsKnownSlug(DefaultCategorySlug) {
		t.Errorf("default slug %q is not in the catalog", DefaultCategorySlug)
	}
}
