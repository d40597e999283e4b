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

const needTableName = "needs"

var needColumns = utils.StructTagValues(types.Need{})

type NeedRepository struct {
	pool *pgxpool.Pool
}

func NewNeedRepository(pool *pgxpool.Pool) *NeedRepository {
	return &NeedRepository{pool: pool}
}

func (r *NeedRepository) CreateNeed(ctx context.Context, need *types.Need) (int64, error) {
	insert := psql().
		Insert(needTableName).
		SetMap(utils.StructToMapOmit(need, "id", "created_at"))

	id, err := insertReturningID(ctx, r.pool, insert)
	if err != nil {
		return 0, fmt.Errorf("failed to insert need: %w", err)
	}

	return id, nil
}

func summaryQuery() sq.SelectBuilder {
	columns := append(
		utils.PrefixSliceOfStrings("n", needColumns),
		"c.name AS category_name",
		"c.slug AS category_slug",
		"COUNT(l.id)::int AS leads_count",
	)

	return psql().
		Select(columns...).
		From(needTableName + " n").
		LeftJoin(categoryTableName + " c ON n.category_id = c.id").
		LeftJoin(leadTableName + " l ON n.id = l.need_id").
		GroupBy("n.id", "c.name", "c.slug")
}

// needsQuery lists needs, newest first, narrowed by the non-empty filters.
func needsQuery(filters types.NeedFilters) sq.SelectBuilder {
	builder := summaryQuery()

	if filters.Category != "" {
		builder = builder.Where(sq.Eq{"c.slug": filters.Category})
	}
	if filters.Status != "" {
		builder = builder.Where(sq.Eq{"n.status": string(filters.Status)})
	}
	if filters.Search != "" {
		builder = builder.Where(sq.ILike{"n.title": "%" + filters.Search + "%"})
	}

	return builder.
		OrderBy("n.date_of_need DESC", "n.id ASC").
		Limit(filters.Limit).
		Offset(filters.Offset)
}

func (r *NeedRepository) Needs(ctx context.Context, filters types.NeedFilters) ([]*types.NeedSummary, error) {
	query, args, err := needsQuery(filters).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate needs query: %w", err)
	}

	var needs = make([]*types.NeedSummary, 0)
	err = pgxscan.Select(ctx, r.pool, &needs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch needs: %w", err)
	}

	return needs, nil
}

func (r *NeedRepository) NeedSummary(ctx context.Context, needID int64) (*types.NeedSummary, error) {
	query, args, err := summaryQuery().
		Where(sq.Eq{"n.id": needID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate need query: %w", err)
	}

	var need = new(types.NeedSummary)
	err = pgxscan.Get(ctx, r.pool, need, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, fmt.Errorf("failed to fetch need: %w", err)
	}

	if err != nil {
		return nil, types.ErrNeedNotFound
	}

	return need, nil
}

func (r *NeedRepository) DeleteAllNeeds(ctx context.Context) error {
	return deleteAllRows(ctx, r.pool, needTableName)
}

func (r *NeedRepository) CountNeeds(ctx context.Context) (int, error) {
	return countRows(ctx, r.pool, needTableName)
}
