package main

import (
	"fmt"

	"needsleads/internal/db"
	"needsleads/internal/seed"
	"needsleads/internal/store"

	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Create the directory tables and seed the category catalog",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		if err := requireDatabase(cfg); err != nil {
			return err
		}

		logger := newLogger(cfg, false)
		ctx := c.Context

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logger.Info("Connected to database")

		if err := db.NewSchema(pool).Ensure(ctx); err != nil {
			return err
		}
		logger.Info("Schema is up to date")

		inserted, err := seed.SeedCategories(ctx, store.NewCategoryRepository(pool))
		if err != nil {
			return err
		}

		logger.WithField("inserted", inserted).Info("Categories seeded successfully")

		return nil
	},
}
