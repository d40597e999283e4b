package main

import (
	"fmt"
	"os"
	"time"

	"needsleads/internal/importer"
	"needsleads/internal/storage"
	"needsleads/pkg/types"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/k0kubun/pp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const stdinInput = "-"

var importCommand = &cli.Command{
	Name:  "import",
	Usage: "Convert the needs & leads CSV export into a dataset file",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "CSV export to read, - for stdin",
			Value:   "~/needs_leads_v2.csv",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Dataset file to write",
			Value:   "~/eomy-import-data.json",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Dataset format (json or yaml), inferred from --output when empty",
		},
		&cli.BoolFlag{
			Name:  "upload",
			Usage: "Also upload the dataset to DATASET_BUCKET",
		},
		&cli.IntFlag{
			Name:  "preview",
			Usage: "Print this many simplified needs",
		},
	},
	Action: runImport,
}

func runImport(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, false)

	output, err := expandHome(c.String("output"))
	if err != nil {
		return err
	}

	format, err := datasetFormat(c.String("format"), output)
	if err != nil {
		return err
	}

	dataset, stats, err := readExport(c.String("input"), logger)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"rows":    stats.RowsRead,
		"skipped": stats.RowsSkipped,
	}).Info("processed export")

	logger.WithFields(logrus.Fields{
		"needs":            dataset.Stats.TotalNeeds,
		"leads":            dataset.Stats.TotalLeads,
		"members":          dataset.Stats.TotalMembers,
		"needs_with_leads": dataset.Stats.NeedsWithLeads,
	}).Info("built dataset")

	if n := c.Int("preview"); n > 0 {
		previewNeeds(dataset, n)
	}

	if err := importer.WriteDatasetFile(output, dataset, format); err != nil {
		return err
	}
	logger.WithField("path", output).Info("wrote dataset")

	if !c.Bool("upload") {
		return nil
	}

	if cfg.DatasetBucket == "" {
		return fmt.Errorf("set DATASET_BUCKET to upload")
	}

	awsConfig, err := loadAWSConfig(c.Context)
	if err != nil {
		return err
	}

	body, err := importer.MarshalDataset(dataset, format)
	if err != nil {
		return err
	}

	bucket := storage.NewDatasetBucket(s3.NewFromConfig(awsConfig), cfg.DatasetBucket)
	key := storage.NewDatasetKey(cfg.DatasetPrefix, string(format), time.Now())

	url, err := bucket.Upload(c.Context, key, body, importer.ContentType(format))
	if err != nil {
		return err
	}
	logger.WithField("url", url).Info("uploaded dataset")

	return nil
}

func readExport(input string, logger *logrus.Logger) (*types.Dataset, *importer.ImportStats, error) {
	if input == stdinInput {
		logger.Info("reading export from stdin")
		return importer.Run(os.Stdin)
	}

	path, err := expandHome(input)
	if err != nil {
		return nil, nil, err
	}

	rows, err := importer.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	logger.WithFields(logrus.Fields{"path": path, "rows": len(rows)}).Info("parsed export")

	dataset, stats := importer.Build(rows)
	return dataset, stats, nil
}

func datasetFormat(flag, output string) (types.DatasetFormat, error) {
	if flag != "" {
		return importer.ParseFormat(flag)
	}
	return importer.FormatFromPath(output)
}

func previewNeeds(dataset *types.Dataset, n int) {
	if n > len(dataset.Needs) {
		n = len(dataset.Needs)
	}

	for _, need := range dataset.Needs[:n] {
		pp.Println(need)
	}
}
