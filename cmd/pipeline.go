package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"ponto/analysis"
	"ponto/config"
	"ponto/importer"
	"ponto/internal/logging"
	"ponto/storage"
)

const defaultDBPath = "./ponto.db"

var errNoDataLoaded = errors.New("no data loaded; run ponto import")

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.New(os.Stderr, cfg.LogOptions())
}

// loadSnapshot reads inputs (or the configured sources when empty) into a new
// snapshot.
func loadSnapshot(ctx context.Context, cfg *config.Config, inputs []string, format string, logger *slog.Logger) (analysis.Snapshot, *importer.LoadResult, error) {
	if len(inputs) == 0 {
		inputs = cfg.Source.Inputs
	}
	if format == "" {
		format = cfg.Source.Format
	}

	started := time.Now()
	loaded, err := importer.Load(ctx, inputs, importer.LoadOptions{
		Format:  format,
		Columns: cfg.Columns,
		Timeout: cfg.Source.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return analysis.Snapshot{}, nil, err
	}
	logger.Info("input loaded",
		slog.Int("sources", len(loaded.Sources)),
		slog.Int("rows", loaded.RowsRead),
		slog.Duration("elapsed", time.Since(started)),
	)

	return analysis.NewSnapshot(loaded.SourceLabel(), loaded.Rows, time.Now()), loaded, nil
}

// refreshSnapshot loads the configured sources and replaces the cache.
func refreshSnapshot(ctx context.Context, cfg *config.Config, store *storage.SQLiteStore, logger *slog.Logger) (analysis.Snapshot, error) {
	snapshot, _, err := loadSnapshot(ctx, cfg, nil, "", logger)
	if err != nil {
		return analysis.Snapshot{}, err
	}
	if err := store.ReplaceSnapshot(snapshot); err != nil {
		return analysis.Snapshot{}, err
	}
	return snapshot, nil
}

// analyse runs the pipeline on the cached snapshot, refreshing it first when
// requested.
func analyse(ctx context.Context, cfg *config.Config, dbPath string, refresh bool, logger *slog.Logger) (*analysis.Result, error) {
	store, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	var snapshot analysis.Snapshot
	if refresh {
		snapshot, err = refreshSnapshot(ctx, cfg, store, logger)
	} else {
		snapshot, err = store.LatestSnapshot()
		if errors.Is(err, storage.ErrNoSnapshot) {
			return nil, errNoDataLoaded
		}
	}
	if err != nil {
		return nil, err
	}

	result := analysis.Run(snapshot, cfg.Tolerances())
	for _, skipped := range result.Skipped {
		logger.Debug("row skipped",
			slog.String("source", skipped.Source),
			slog.Int("row", skipped.RowNumber),
			slog.String("reason", skipped.Reason),
		)
	}
	if len(result.Skipped) > 0 {
		logger.Warn("rows skipped", slog.Int("count", len(result.Skipped)))
	}
	return result, nil
}

// resolvePeriod falls back to the configured default period.
func resolvePeriod(cfg *config.Config, value string) (analysis.Period, error) {
	if value == "" {
		value = cfg.Analysis.DefaultPeriod
	}
	return analysis.ParsePeriod(value, time.Now())
}

// setup loads the config and the logger shared by every data command.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("configure logging: %w", err)
	}
	return cfg, logger, nil
}
