package importer

import (
	"fmt"
	"io"

	"needsleads/pkg/types"
)

// ImportStats describes one pass over the export, for the operator.
type ImportStats struct {
	RowsRead    int
	RowsSkipped int
}

// Run parses a CSV export from r and builds the dataset it describes.
func Run(r io.Reader) (*types.Dataset, *ImportStats, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read export: %w", err)
	}

	dataset, stats := Build(ParseCSV(string(content)))
	return dataset, stats, nil
}

// Build runs the parsed rows through the record builder and member ranker and
// bundles the result into a dataset.
func Build(rows []Row) (*types.Dataset, *ImportStats) {
	records := BuildRecords(rows)
	members := RankMembers(records.Providers)

	dataset := &types.Dataset{
		Needs:   nonNil(records.Needs),
		Leads:   nonNil(records.Leads),
		Members: members,
		Stats:   Summarize(records.Needs, records.Leads, members),
	}

	return dataset, &ImportStats{
		RowsRead:    len(rows),
		RowsSkipped: records.Skipped,
	}
}

func Summarize(needs []types.DatasetNeed, leads []types.DatasetLead, members []types.DatasetMember) types.DatasetStats {
	stats := types.DatasetStats{
		TotalNeeds:   len(needs),
		TotalLeads:   len(leads),
		TotalMembers: len(members),
	}

	for _, need := range needs {
		if need.Status == types.NeedStatusHasLeads {
			stats.NeedsWithLeads++
		}
	}

	return stats
}

// nonNil keeps empty collections as [] rather than null in the artifact.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
