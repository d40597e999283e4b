package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Tables in creation order. Each statement is a no-op when the table exists.
var schemaStatements = []struct {
	table string
	ddl   string
}{
	{
		table: "categories",
		ddl: `CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) UNIQUE NOT NULL,
			slug VARCHAR(100) UNIQUE NOT NULL
		)`,
	},
	{
		table: "members",
		ddl: `CREATE TABLE IF NOT EXISTS members (
			id SERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			leads_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		table: "needs",
		ddl: `CREATE TABLE IF NOT EXISTS needs (
			id SERIAL PRIMARY KEY,
			title VARCHAR(200) NOT NULL,
			original_text TEXT,
			category_id INTEGER REFERENCES categories(id),
			date_of_need DATE NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'Open'
				CHECK (status IN ('Open', 'Has Leads', 'Resolved')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		table: "leads",
		ddl: `CREATE TABLE IF NOT EXISTS leads (
			id SERIAL PRIMARY KEY,
			need_id INTEGER NOT NULL REFERENCES needs(id) ON DELETE CASCADE,
			contact_name TEXT,
			contact_info TEXT,
			provided_by_id INTEGER REFERENCES members(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		table: "leads",
		ddl:   `CREATE INDEX IF NOT EXISTS leads_need_id_idx ON leads (need_id)`,
	},
	// Free-text columns copied from the export have no length limit; widen
	// tables created with the older VARCHAR bounds.
	{
		table: "members",
		ddl:   `ALTER TABLE members ALTER COLUMN name TYPE TEXT`,
	},
	{
		table: "leads",
		ddl:   `ALTER TABLE leads ALTER COLUMN contact_name TYPE TEXT`,
	},
}

type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Schema creates the directory tables when they are missing.
type Schema struct {
	conn beginner
}

func NewSchema(conn beginner) *Schema {
	return &Schema{conn: conn}
}

// Ensure runs every statement in one transaction.
func (s *Schema) Ensure(ctx context.Context) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, stmt := range schemaStatements {
		if _, err := tx.Exec(ctx, stmt.ddl); err != nil {
			return fmt.Errorf("failed to create %s: %w", stmt.table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}

	return nil
}
