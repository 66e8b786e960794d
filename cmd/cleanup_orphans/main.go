package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/product/imagepath"
	"github.com/light-bringer/perfume-catalog/internal/app/product/repo"
	"github.com/light-bringer/perfume-catalog/internal/pkg/clock"
)

// Config for the orphaned image cleanup job.
type Config struct {
	SpannerDB string
	Bucket    string
	MinAge    time.Duration
	BatchSize int
	DryRun    bool
}

// orphanPrefixes are the object path prefixes the storefront writes under.
var orphanPrefixes = []string{"products/", "healthchecks/"}

func main() {
	config := Config{}
	flag.StringVar(&config.SpannerDB, "database", "", "Spanner database (required, format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.StringVar(&config.Bucket, "bucket", imagepath.DefaultBucket, "Image bucket")
	flag.DurationVar(&config.MinAge, "min-age", 24*time.Hour, "Only remove objects last written longer ago than this")
	flag.IntVar(&config.BatchSize, "batch-size", 500, "Objects removed per commit")
	flag.BoolVar(&config.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if config.SpannerDB == "" {
		logger.Fatal("-database flag is required")
	}

	if err := cleanupOrphans(context.Background(), config, logger); err != nil {
		logger.Fatal("cleanup failed", zap.Error(err))
	}

	logger.Info("cleanup completed")
}

func cleanupOrphans(ctx context.Context, config Config, logger *zap.Logger) error {
	client, err := spanner.NewClient(ctx, config.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	clk := clock.NewRealClock()
	gw := repo.NewSpannerGateway(client, "", true, clk)
	cutoff := clk.Now().Add(-config.MinAge)

	logger.Info("starting orphan cleanup",
		zap.String("bucket", config.Bucket),
		zap.Time("cutoff", cutoff),
		zap.Bool("dry_run", config.DryRun),
	)

	var orphans []string
	for _, prefix := range orphanPrefixes {
		paths, err := gw.FindOrphanObjects(ctx, config.Bucket, prefix, cutoff)
		if err != nil {
			return err
		}
		logger.Info("found orphaned objects", zap.String("prefix", prefix), zap.Int("count", len(paths)))
		orphans = append(orphans, paths...)
	}

	if len(orphans) == 0 {
		logger.Info("no orphaned objects to delete")
		return nil
	}

	if config.DryRun {
		for _, p := range orphans {
			logger.Info("would delete", zap.String("path", p))
		}
		logger.Info("DRY RUN: run without -dry-run to actually delete objects", zap.Int("total", len(orphans)))
		return nil
	}

	return performCleanup(ctx, gw, config.Bucket, orphans, config.BatchSize, logger)
}

func performCleanup(ctx context.Context, gw *repo.SpannerGateway, bucket string, paths []string, batchSize int, logger *zap.Logger) error {
	deleted := 0
	for _, batch := range batches(paths, batchSize) {
		if err := gw.RemoveObjects(ctx, bucket, batch); err != nil {
			return fmt.Errorf("deleted %d of %d objects: %w", deleted, len(paths), err)
		}
		deleted += len(batch)
		logger.Info("deleted batch", zap.Int("batch", len(batch)), zap.Int("deleted", deleted))
	}

	logger.Info("successfully deleted orphaned objects", zap.Int("total", deleted))
	return nil
}

// batches splits paths into chunks of at most size. A non-positive size
// yields a single chunk.
func batches(paths []string, size int) [][]string {
	if size <= 0 || len(paths) <= size {
		return [][]string{paths}
	}
	var out [][]string
	for start := 0; start < len(paths); start += size {
		end := start + size
		if end > len(paths) {
			end = len(paths)
		}
		out = append(out, paths[start:end])
	}
	return out
}
