package strata

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/soundprediction/strata"
	"github.com/soundprediction/strata/pkg/config"
	"github.com/soundprediction/strata/pkg/records"
	"github.com/soundprediction/strata/pkg/types"
)

// newLogger builds the process logger from the log configuration.
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.Log.Format) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// newRecordSource assembles the record source from the data
// configuration: built-in demo data, or YAML/Parquet files, optionally
// staged through a local badger store.
func newRecordSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (records.Source, error) {
	var source records.Source
	switch {
	case cfg.Data.Demo:
		source = records.Demo()
	case strings.ToLower(cfg.Data.Format) == "parquet":
		source = records.NewParquetSource(cfg.Data.LayerPaths())
	default:
		source = records.NewFileSource(cfg.Data.LayerPaths())
	}

	if cfg.Data.StorePath == "" {
		return source, nil
	}

	store, err := records.OpenStore(cfg.Data.StorePath, logger)
	if err != nil {
		return nil, err
	}
	if err := store.WarmFrom(ctx, source); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to stage records: %w", err)
	}
	return store, nil
}

// initializeEngine builds the strata client and publishes the first
// snapshot.
func initializeEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*strata.Client, error) {
	source, err := newRecordSource(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create record source: %w", err)
	}

	clientConfig := &strata.Config{
		Search: &types.SearchConfig{
			TopK:     cfg.Search.TopK,
			MinScore: cfg.Search.MinScore,
		},
	}
	client, err := strata.NewClient(source, clientConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create strata client: %w", err)
	}

	if err := client.Build(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}
	return client, nil
}
