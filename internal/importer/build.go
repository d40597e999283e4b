package importer

import (
	"fmt"
	"strings"
	"time"

	"needsleads/internal/utils"
	"needsleads/pkg/types"
)

const (
	// DefaultDateOfNeed stands in for a missing or unreadable Date column.
	DefaultDateOfNeed = "2025-01-01"
	// MaxLeadSlots is the number of named lead column groups in the export.
	MaxLeadSlots = 5

	defaultLegacyCategory = "Other"

	columnDate     = "Date"
	columnCategory = "Category"
	columnNeed     = "Need"
)

func leadColumns(slot int) (name, contact, recommendedBy string) {
	return fmt.Sprintf("Lead %d - Name", slot),
		fmt.Sprintf("Lead %d - Contact", slot),
		fmt.Sprintf("Lead %d - Recommended By", slot)
}

// Tally counts leads per provider and remembers the order in which providers
// were first seen.
type Tally struct {
	names  []string
	counts map[string]int
}

func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

func (t *Tally) Add(name string) {
	if _, ok := t.counts[name]; !ok {
		t.names = append(t.names, name)
	}
	t.counts[name]++
}

func (t *Tally) Count(name string) int {
	return t.counts[name]
}

func (t *Tally) Len() int {
	return len(t.names)
}

// Records is the result of folding the export rows into needs and leads.
type Records struct {
	Needs     []types.DatasetNeed
	Leads     []types.DatasetLead
	Providers *Tally

	// Skipped counts rows dropped because their Need column was blank.
	Skipped int
}

// BuildRecords turns rows into needs and their leads, in input order. Need ids
// start at 1 and only advance for rows that produce a need.
func BuildRecords(rows []Row) *Records {
	records := &Records{Providers: NewTally()}

	for _, row := range rows {
		originalNeed := row[columnNeed]
		text := strings.TrimSpace(originalNeed)
		if text == "" {
			records.Skipped++
			continue
		}

		legacyCategory := strings.TrimSpace(row[columnCategory])
		if legacyCategory == "" {
			legacyCategory = defaultLegacyCategory
		}

		status := types.NeedStatusOpen
		if hasLeads(row) {
			status = types.NeedStatusHasLeads
		}

		need := types.DatasetNeed{
			ID:           len(records.Needs) + 1,
			Title:        SimplifyTitle(text),
			OriginalText: originalNeed,
			CategorySlug: Classify(legacyCategory, text),
			DateOfNeed:   dateOfNeed(row[columnDate]),
			Status:       status,
		}
		records.Needs = append(records.Needs, need)

		for slot := 1; slot <= MaxLeadSlots; slot++ {
			nameCol, contactCol, byCol := leadColumns(slot)

			name := strings.TrimSpace(row[nameCol])
			contact := strings.TrimSpace(row[contactCol])
			recommendedBy := strings.TrimSpace(row[byCol])

			if name == "" && contact == "" {
				continue
			}

			records.Leads = append(records.Leads, types.DatasetLead{
				NeedID:      need.ID,
				ContactName: utils.StringPtrOrNil(name),
				ContactInfo: utils.StringPtrOrNil(contact),
				ProvidedBy:  utils.StringPtrOrNil(recommendedBy),
			})

			if recommendedBy != "" {
				records.Providers.Add(recommendedBy)
			}
		}
	}

	return records
}

func hasLeads(row Row) bool {
	for slot := 1; slot <= MaxLeadSlots; slot++ {
		nameCol, contactCol, _ := leadColumns(slot)
		if strings.TrimSpace(row[nameCol]) != "" || strings.TrimSpace(row[contactCol]) != "" {
			return true
		}
	}
	return false
}

// dateOfNeed keeps the date part of a "2025-03-01 10:00" style timestamp.
func dateOfNeed(raw string) string {
	token, _, _ := strings.Cut(raw, " ")

	parsed, err := time.Parse(types.DateLayout, strings.TrimSpace(token))
	if err != nil {
		return DefaultDateOfNeed
	}

	return parsed.Format(types.DateLayout)
}
