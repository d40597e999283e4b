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

const memberTableName = "members"

var memberColumns = utils.StructTagValues(types.Member{})

type MemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

func (r *MemberRepository) CreateMember(ctx context.Context, member *types.Member) (int64, error) {
	insert := psql().
		Insert(memberTableName).
		SetMap(utils.StructToMapOmit(member, "id", "created_at"))

	id, err := insertReturningID(ctx, r.pool, insert)
	if err != nil {
		return 0, fmt.Errorf("failed to insert member: %w", err)
	}

	return id, nil
}

// Leaderboard lists members who provided at least one lead, most leads first.
func (r *MemberRepository) Leaderboard(ctx context.Context, limit uint64) ([]*types.Member, error) {
	query, args, err := psql().
		Select(memberColumns...).
		From(memberTableName).
		Where(sq.Gt{"leads_count": 0}).
		OrderBy("leads_count DESC", "name ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate leaderboard query: %w", err)
	}

	var members = make([]*types.Member, 0)
	err = pgxscan.Select(ctx, r.pool, &members, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}

	return members, nil
}

func (r *MemberRepository) DeleteAllMembers(ctx context.Context) error {
	return deleteAllRows(ctx, r.pool, memberTableName)
}

func (r *MemberRepository) CountMembers(ctx context.Context) (int, error) {
	return countRows(ctx, r.pool, memberTableName)
}
