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

const categoryTableName = "categories"

var categoryColumns = utils.StructTagValues(types.Category{})

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) AllCategories(ctx context.Context) ([]*types.Category, error) {
	query, args, err := psql().
		Select(categoryColumns...).
		From(categoryTableName).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate categories query: %w", err)
	}

	var categories = make([]*types.Category, 0)
	err = pgxscan.Select(ctx, r.pool, &categories, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	return categories, nil
}

// CategoryBySlug returns types.ErrCategoryNotFound when no row has the slug.
func (r *CategoryRepository) CategoryBySlug(ctx context.Context, slug string) (*types.Category, error) {
	query, args, err := psql().
		Select(categoryColumns...).
		From(categoryTableName).
		Where(sq.Eq{"slug": slug}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate category query: %w", err)
	}

	var category types.Category
	err = pgxscan.Get(ctx, r.pool, &category, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}

	return &category, nil
}

// CategoryIDsBySlug maps every slug in the table to its id.
func (r *CategoryRepository) CategoryIDsBySlug(ctx context.Context) (map[string]int64, error) {
	categories, err := r.AllCategories(ctx)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]int64, len(categories))
	for _, c := range categories {
		ids[c.Slug] = c.ID
	}

	return ids, nil
}

// InsertCategoryIfAbsent inserts the category unless one with the same name
// exists, and reports whether a row was written.
func (r *CategoryRepository) InsertCategoryIfAbsent(ctx context.Context, category types.CategorySeed) (bool, error) {
	query, args, err := psql().
		Insert(categoryTableName).
		Columns("name", "slug").
		Values(category.Name, category.Slug).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate insert query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to insert category: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
