package store

import (
	"context"
	"fmt"

	"needsleads/internal/utils"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func countRows(ctx context.Context, pool *pgxpool.Pool, table string) (int, error) {
	query, args, err := psql().Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate %s count query: %w", table, err)
	}

	var count int
	err = pgxscan.Get(ctx, pool, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}

	return count, nil
}

func deleteAllRows(ctx context.Context, pool *pgxpool.Pool, table string) error {
	query, args, err := psql().Delete(table).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate %s delete query: %w", table, err)
	}

	_, err = pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, fmt.Sprintf("failed to delete %s", table))
}

// insertReturningID runs an insert built with a RETURNING id suffix.
func insertReturningID(ctx context.Context, pool *pgxpool.Pool, insert sq.InsertBuilder) (int64, error) {
	query, args, err := insert.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate insert query: %w", err)
	}

	var id int64
	err = pool.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}
