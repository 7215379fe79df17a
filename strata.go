package strata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/soundprediction/strata/pkg/crosslink"
	"github.com/soundprediction/strata/pkg/insight"
	"github.com/soundprediction/strata/pkg/layergraph"
	"github.com/soundprediction/strata/pkg/query"
	"github.com/soundprediction/strata/pkg/records"
	"github.com/soundprediction/strata/pkg/scoring"
	"github.com/soundprediction/strata/pkg/snapshot"
	"github.com/soundprediction/strata/pkg/types"
	"github.com/soundprediction/strata/pkg/vectorindex"
)

var (
	// ErrNoSourceData is returned when no layer has any usable record
	// collection at build time.
	ErrNoSourceData = errors.New("no usable source data for any layer")
	// ErrNotBuilt is returned when querying before the first successful build.
	ErrNotBuilt = errors.New("engine not built")
)

// Strata is the main interface for building and querying the
// multi-layer knowledge engine.
type Strata interface {
	// Build constructs all layers from the record source and publishes
	// the first snapshot. Per-layer source problems are isolated and
	// logged; Build fails only when no layer has usable data.
	Build(ctx context.Context) error

	// Rebuild constructs a complete new snapshot off to the side and
	// atomically replaces the current one. In-flight queries keep the
	// snapshot they started with.
	Rebuild(ctx context.Context) error

	// Query answers a weighted multi-layer query against the current
	// snapshot.
	Query(ctx context.Context, text string, layerWeights map[types.LayerID]float64) (*types.QueryResult, error)

	// Stats reports per-layer node/edge counts, corpus sizes and
	// cross-link presence for the current snapshot.
	Stats() (*types.EngineStats, error)

	// Close releases the record source if it holds resources.
	Close() error
}

// Config holds configuration for the strata client.
type Config struct {
	// Search overrides the layer search defaults (top-K, min score).
	Search *types.SearchConfig
	// Scorer derives investment/founder scores; nil uses the
	// deterministic default heuristic.
	Scorer scoring.Scorer
	// Summarizer produces the recommendation text; nil uses the
	// default English policy.
	Summarizer insight.Summarizer
}

// Client is the main implementation of the Strata interface.
type Client struct {
	source records.Source
	scorer scoring.Scorer
	engine *query.Engine
	config *Config
	logger *slog.Logger

	holder snapshot.Holder
	// buildMu serializes rebuilds; queries never take it.
	buildMu sync.Mutex
}

// NewClient creates a new strata client over a record source.
func NewClient(source records.Source, config *Config, logger *slog.Logger) (*Client, error) {
	if source == nil {
		return nil, errors.New("record source is required")
	}
	if config == nil {
		config = &Config{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	scorer := config.Scorer
	if scorer == nil {
		scorer = scoring.DefaultScorer{}
	}

	return &Client{
		source: source,
		scorer: scorer,
		engine: query.NewEngine(config.Summarizer, config.Search, logger),
		config: config,
		logger: logger,
	}, nil
}

// Build implements Strata.
func (c *Client) Build(ctx context.Context) error {
	return c.Rebuild(ctx)
}

// Rebuild implements Strata.
func (c *Client) Rebuild(ctx context.Context) error {
	c.buildMu.Lock()
	defer c.buildMu.Unlock()

	snap, err := c.buildSnapshot(ctx)
	if err != nil {
		return err
	}
	c.holder.Swap(snap)
	c.logger.Info("snapshot published", "built_at", snap.BuiltAt())
	return nil
}

// buildSnapshot builds every layer it has records for. One unit of
// work per layer, failures caught and logged independently, so one
// missing collection does not prevent the other layers from becoming
// queryable.
func (c *Client) buildSnapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	layers := make(map[types.LayerID]*snapshot.Layer)
	for _, id := range types.LayerOrder {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs, err := c.source.Layer(ctx, id)
		if err != nil {
			c.logger.Warn("skipping layer build", "layer", id, "error", err)
			continue
		}

		builder := layergraph.NewBuilder(id, c.scorer, c.logger)
		graph, diag := builder.Build(recs)
		index := vectorindex.Build(id, graph.Nodes(), c.logger)
		layers[id] = snapshot.NewLayer(id, graph, index, diag)
	}

	if len(layers) == 0 {
		return nil, ErrNoSourceData
	}

	crosslink.Link(layers, c.logger)
	return snapshot.New(layers), nil
}

// Query implements Strata.
func (c *Client) Query(ctx context.Context, text string, layerWeights map[types.LayerID]float64) (*types.QueryResult, error) {
	snap := c.holder.Load()
	if snap == nil {
		return nil, ErrNotBuilt
	}
	result, err := c.engine.Query(ctx, snap, text, layerWeights)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return result, nil
}

// Stats implements Strata.
func (c *Client) Stats() (*types.EngineStats, error) {
	snap := c.holder.Load()
	if snap == nil {
		return nil, ErrNotBuilt
	}
	stats := snap.Stats()
	return &stats, nil
}

// Snapshot returns the current snapshot, or nil before the first build.
func (c *Client) Snapshot() *snapshot.Snapshot {
	return c.holder.Load()
}

// Close implements Strata.
func (c *Client) Close() error {
	if closer, ok := c.source.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
