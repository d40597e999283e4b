package main

import (
	"bytes"
	"context"
	"fmt"

	"needsleads/internal/db"
	"needsleads/internal/importer"
	"needsleads/internal/seed"
	"needsleads/internal/storage"
	"needsleads/internal/store"
	"needsleads/pkg/types"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var loadCommand = &cli.Command{
	Name:  "load",
	Usage: "Load a dataset into Postgres",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "dataset",
			Aliases: []string{"d"},
			Usage:   "Dataset file path or s3://bucket/key url",
			Value:   "~/eomy-import-data.json",
		},
		&cli.BoolFlag{
			Name:  "reset",
			Usage: "Delete existing leads, needs and members before loading",
		},
	},
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

		dataset, err := readDataset(ctx, c.String("dataset"))
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"needs":   len(dataset.Needs),
			"leads":   len(dataset.Leads),
			"members": len(dataset.Members),
		}).Info("read dataset")

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logger.Info("Connected to database")

		categoryRepo := store.NewCategoryRepository(pool)
		loader := seed.NewLoader(
			logger,
			db.NewSchema(pool),
			categoryRepo,
			store.NewMemberRepository(pool),
			store.NewNeedRepository(pool),
			store.NewLeadRepository(pool),
		)

		stats, err := loader.Load(ctx, dataset, seed.LoadOptions{Reset: c.Bool("reset")})
		if err != nil {
			return err
		}

		logger.WithFields(logrus.Fields{
			"categories_inserted": stats.CategoriesInserted,
			"members":             stats.VerifiedMembers,
			"needs":               stats.VerifiedNeeds,
			"leads":               stats.VerifiedLeads,
		}).Info("load complete")

		return nil
	},
}

func readDataset(ctx context.Context, source string) (*types.Dataset, error) {
	if !storage.IsS3URL(source) {
		path, err := expandHome(source)
		if err != nil {
			return nil, err
		}
		return importer.ReadDatasetFile(path)
	}

	bucketName, key, err := storage.ParseS3URL(source)
	if err != nil {
		return nil, err
	}

	format, err := importer.FormatFromPath(key)
	if err != nil {
		return nil, err
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	data, err := storage.NewDatasetBucket(s3.NewFromConfig(awsConfig), bucketName).Download(ctx, key)
	if err != nil {
		return nil, err
	}

	return importer.DecodeDataset(bytes.NewReader(data), format)
}
