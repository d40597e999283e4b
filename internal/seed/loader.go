package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"needsleads/pkg/types"

	"github.com/sirupsen/logrus"
)

// ErrStoreNotEmpty is returned when a load without reset would duplicate rows
// that are already in the store.
var ErrStoreNotEmpty = errors.New("store already holds needs, rerun with reset to replace them")

type SchemaEnsurer interface {
	Ensure(ctx context.Context) error
}

type CategoryLookup interface {
	CategoryStore
	CategoryIDsBySlug(ctx context.Context) (map[string]int64, error)
}

type MemberStore interface {
	CreateMember(ctx context.Context, member *types.Member) (int64, error)
	DeleteAllMembers(ctx context.Context) error
	CountMembers(ctx context.Context) (int, error)
}

type NeedStore interface {
	CreateNeed(ctx context.Context, need *types.Need) (int64, error)
	DeleteAllNeeds(ctx context.Context) error
	CountNeeds(ctx context.Context) (int, error)
}

type LeadStore interface {
	CreateLead(ctx context.Context, lead *types.Lead) (int64, error)
	DeleteAllLeads(ctx context.Context) error
	CountLeads(ctx context.Context) (int, error)
}

type LoadOptions struct {
	// Reset clears leads, needs and members before loading. Categories are kept.
	Reset bool
}

type LoadStats struct {
	CategoriesInserted int
	Members            int
	Needs              int
	Leads              int

	// Row counts read back from the store after the load.
	VerifiedMembers int
	VerifiedNeeds   int
	VerifiedLeads   int
}

// Loader writes a dataset into the relational store, resolving category slugs
// and provider names to the ids the store generates.
type Loader struct {
	logger *logrus.Logger

	schema     SchemaEnsurer
	categories CategoryLookup
	members    MemberStore
	needs      NeedStore
	leads      LeadStore
}

func NewLoader(
	logger *logrus.Logger,
	schema SchemaEnsurer,
	categories CategoryLookup,
	members MemberStore,
	needs NeedStore,
	leads LeadStore,
) *Loader {
	return &Loader{
		logger:     logger,
		schema:     schema,
		categories: categories,
		members:    members,
		needs:      needs,
		leads:      leads,
	}
}

// Load runs every step in order and stops at the first failure. The steps are
// not wrapped in one transaction, so a failure part way leaves the rows
// written so far in place.
func (l *Loader) Load(ctx context.Context, dataset *types.Dataset, opts LoadOptions) (*LoadStats, error) {
	stats := new(LoadStats)

	if err := l.schema.Ensure(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	if opts.Reset {
		if err := l.reset(ctx); err != nil {
			return nil, err
		}
	} else {
		existing, err := l.needs.CountNeeds(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count existing needs: %w", err)
		}
		if existing > 0 {
			return nil, fmt.Errorf("%w (%d needs)", ErrStoreNotEmpty, existing)
		}
	}

	inserted, err := SeedCategories(ctx, l.categories)
	if err != nil {
		return nil, err
	}
	stats.CategoriesInserted = inserted
	l.logger.WithField("inserted", inserted).Info("categories seeded")

	categoryIDs, err := l.categories.CategoryIDsBySlug(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category ids: %w", err)
	}

	defaultCategoryID, ok := categoryIDs[DefaultCategorySlug]
	if !ok {
		return nil, fmt.Errorf("default category %s is missing from the store", DefaultCategorySlug)
	}

	memberIDs := make(map[string]int64, len(dataset.Members))
	for _, m := range dataset.Members {
		id, err := l.members.CreateMember(ctx, &types.Member{Name: m.Name, LeadsCount: m.LeadsCount})
		if err != nil {
			return nil, fmt.Errorf("failed to insert member %q: %w", m.Name, err)
		}
		memberIDs[m.Name] = id
		stats.Members++
	}
	l.logger.WithField("members", stats.Members).Info("members inserted")

	needIDs := make(map[int]int64, len(dataset.Needs))
	for _, n := range dataset.Needs {
		need, err := newNeed(n, categoryIDs, defaultCategoryID)
		if err != nil {
			return nil, err
		}

		id, err := l.needs.CreateNeed(ctx, need)
		if err != nil {
			return nil, fmt.Errorf("failed to insert need %d: %w", n.ID, err)
		}
		needIDs[n.ID] = id
		stats.Needs++
	}
	l.logger.WithField("needs", stats.Needs).Info("needs inserted")

	for i, ld := range dataset.Leads {
		needID, ok := needIDs[ld.NeedID]
		if !ok {
			return nil, fmt.Errorf("lead %d references unknown need %d", i, ld.NeedID)
		}

		lead := &types.Lead{
			NeedID:      needID,
			ContactName: ld.ContactName,
			ContactInfo: ld.ContactInfo,
		}
		if ld.ProvidedBy != nil {
			if memberID, ok := memberIDs[*ld.ProvidedBy]; ok {
				lead.ProvidedByID = &memberID
			}
		}

		if _, err := l.leads.CreateLead(ctx, lead); err != nil {
			return nil, fmt.Errorf("failed to insert lead %d: %w", i, err)
		}
		stats.Leads++
	}
	l.logger.WithField("leads", stats.Leads).Info("leads inserted")

	if err := l.verify(ctx, stats); err != nil {
		return nil, err
	}

	return stats, nil
}

func (l *Loader) reset(ctx context.Context) error {
	if err := l.leads.DeleteAllLeads(ctx); err != nil {
		return fmt.Errorf("failed to clear leads: %w", err)
	}
	if err := l.needs.DeleteAllNeeds(ctx); err != nil {
		return fmt.Errorf("failed to clear needs: %w", err)
	}
	if err := l.members.DeleteAllMembers(ctx); err != nil {
		return fmt.Errorf("failed to clear members: %w", err)
	}

	l.logger.Info("cleared leads, needs and members")
	return nil
}

func (l *Loader) verify(ctx context.Context, stats *LoadStats) error {
	var err error

	if stats.VerifiedNeeds, err = l.needs.CountNeeds(ctx); err != nil {
		return fmt.Errorf("failed to count needs: %w", err)
	}
	if stats.VerifiedLeads, err = l.leads.CountLeads(ctx); err != nil {
		return fmt.Errorf("failed to count leads: %w", err)
	}
	if stats.VerifiedMembers, err = l.members.CountMembers(ctx); err != nil {
		return fmt.Errorf("failed to count members: %w", err)
	}

	l.logger.WithFields(logrus.Fields{
		"needs":   stats.VerifiedNeeds,
		"leads":   stats.VerifiedLeads,
		"members": stats.VerifiedMembers,
	}).Info("verified row counts")

	return nil
}

func newNeed(n types.DatasetNeed, categoryIDs map[string]int64, defaultCategoryID int64) (*types.Need, error) {
	date, err := time.Parse(types.DateLayout, n.DateOfNeed)
	if err != nil {
		return nil, fmt.Errorf("need %d has invalid date_of_need %q: %w", n.ID, n.DateOfNeed, err)
	}

	categoryID, ok := categoryIDs[n.CategorySlug]
	if !ok {
		categoryID = defaultCategoryID
	}

	status := n.Status
	if !status.Valid() {
		status = types.NeedStatusOpen
	}

	original := n.OriginalText
	return &types.Need{
		Title:        n.Title,
		OriginalText: &original,
		CategoryID:   categoryID,
		DateOfNeed:   date,
		Status:       status,
	}, nil
}
