package store

import (
	"context"
	"fmt"

	"needsleads/internal/utils"
	"needsleads/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const leadTableName = "leads"

var leadColumns = utils.StructTagValues(types.Lead{})

type LeadRepository struct {
	pool *pgxpool.Pool
}

func NewLeadRepository(pool *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{pool: pool}
}

func (r *LeadRepository) CreateLead(ctx context.Context, lead *types.Lead) (int64, error) {
	insert := psql().
		Insert(leadTableName).
		SetMap(utils.StructToMapOmit(lead, "id", "created_at"))

	id, err := insertReturningID(ctx, r.pool, insert)
	if err != nil {
		return 0, fmt.Errorf("failed to insert lead: %w", err)
	}

	return id, nil
}

// LeadsByNeed returns the leads of a need in insertion order, with the name of
// the member who provided each one.
func (r *LeadRepository) LeadsByNeed(ctx context.Context, needID int64) ([]*types.LeadWithProvider, error) {
	columns := append(utils.PrefixSliceOfStrings("l", leadColumns), "m.name AS provided_by_name")

	query, args, err := psql().
		Select(columns...).
		From(leadTableName + " l").
		LeftJoin(memberTableName + " m ON l.provided_by_id = m.id").
		Where(sq.Eq{"l.need_id": needID}).
		OrderBy("l.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate leads query: %w", err)
	}

	var leads = make([]*types.LeadWithProvider, 0)
	err = pgxscan.Select(ctx, r.pool, &leads, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leads: %w", err)
	}

	return leads, nil
}

func (r *LeadRepository) DeleteAllLeads(ctx context.Context) error {
	return deleteAllRows(ctx, r.pool, leadTableName)
}

func (r *LeadRepository) CountLeads(ctx context.Context) (int, error) {
	return countRows(ctx, r.pool, leadTableName)
}
