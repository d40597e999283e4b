package importer

import (
	"sort"

	"needsleads/pkg/types"
)

// RankMembers orders providers by lead count, highest first. Providers with the
// same count keep the order in which they were first seen. Ids follow rank.
func RankMembers(t *Tally) []types.DatasetMember {
	members := make([]types.DatasetMember, 0, t.Len())
	for _, name := range t.names {
		members = append(members, types.DatasetMember{
			Name:       name,
			LeadsCount: t.counts[name],
		})
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].LeadsCount > members[j].LeadsCount
	})

	for i := range members {
		members[i].ID = i + 1
	}

	return members
}
