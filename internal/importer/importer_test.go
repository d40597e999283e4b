package importer

import (
	"strings"
	"testing"

	"needsleads/pkg/types"
)

func TestRun(t *testing.T) {
	export := strings.Join([]string{
		`Date,Category,Need,Lead 1 - Name,Lead 1 - Contact,Lead 1 - Recommended By`,
		`2025-03-01 10:00,Home Services,"Hi all, anyone can recommend a good maid agency? thanks!",Jane,012-3456789,Tom`,
		`2025-03-02,Professional Services,"Need a lawyer for a tenancy, ""urgent""",,,`,
		`2025-03-03,Other,   ,,,`,
		`short,row`,
	}, "\n")

	dataset, stats, err := Run(strings.NewReader(export))
	if err != nil {
		t.Fatal(err)
	}

	if stats.RowsRead != 3 || stats.RowsSkipped != 1 {
		t.Errorf("stats = %+v, want 3 read and 1 skipped", *stats)
	}

	want := types.DatasetStats{TotalNeeds: 2, TotalLeads: 1, TotalMembers: 1, NeedsWithLeads: 1}
	if dataset.Stats != want {
		t.Errorf("dataset stats = %+v, want %+v", dataset.Stats, want)
	}

	lawyer := dataset.Needs[1]
	if lawyer.ID != 2 || lawyer.CategorySlug != "legal-services" || lawyer.Status != types.NeedStatusOpen {
		t.Errorf("second need = %+v", lawyer)
	}
	if lawyer.OriginalText != `Need a lawyer for a tenancy, "urgent"` {
		t.Errorf("original text = %q", lawyer.OriginalText)
	}
}

func TestRunEmptyExport(t *testing.T) {
	dataset, stats, err := Run(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}

	if stats.RowsRead != 0 || len(dataset.Needs) != 0 || dataset.Needs == nil {
		t.Errorf("expected an empty, non-nil dataset, got %+v", dataset)
	}
}
