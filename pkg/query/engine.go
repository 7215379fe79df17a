// Package query implements the multi-layer hybrid query algorithm:
// per-layer vector search combined with graph-structure analysis,
// cross-layer aggregation and summary reduction.
package query

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/soundprediction/strata/pkg/insight"
	"github.com/soundprediction/strata/pkg/snapshot"
	"github.com/soundprediction/strata/pkg/types"
)

var (
	// ErrNoSnapshot is returned when querying before any build completed.
	ErrNoSnapshot = errors.New("no snapshot available")
)

// Engine answers weighted multi-layer queries against a snapshot.
// It holds no mutable state, so one engine serves concurrent queries.
type Engine struct {
	summarizer insight.Summarizer
	search     *types.SearchConfig
	logger     *slog.Logger
}

// NewEngine creates a query engine. A nil summarizer falls back to the
// default text policy; a nil search config falls back to the defaults.
func NewEngine(summarizer insight.Summarizer, search *types.SearchConfig, logger *slog.Logger) *Engine {
	if summarizer == nil {
		summarizer = insight.DefaultSummarizer{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		summarizer: summarizer,
		search:     search.WithDefaults(),
		logger:     logger,
	}
}

// Query runs the hybrid query over every layer whose weight is > 0.
// Per-layer failures degrade to a no_data status; the only errors
// returned are an empty query, a missing snapshot or a cancelled
// context.
func (e *Engine) Query(ctx context.Context, snap *snapshot.Snapshot, text string, layerWeights map[types.LayerID]float64) (*types.QueryResult, error) {
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	if strings.TrimSpace(text) == "" {
		return nil, types.ErrEmptyQuery
	}

	// Fixed iteration order keeps tie-breaks and aggregation
	// deterministic across runs.
	var queried []types.LayerID
	for _, id := range types.LayerOrder {
		if layerWeights[id] > 0 {
			queried = append(queried, id)
		}
	}

	result := &types.QueryResult{
		Query:              text,
		PerLayer:           make(map[types.LayerID]types.LayerResult, len(queried)),
		CrossLayerInsights: []types.CrossLayerInsight{},
	}

	// Layer queries share no mutable state given an immutable
	// snapshot, so they fan out one goroutine per weighted layer.
	perLayer := make([]types.LayerResult, len(queried))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range queried {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perLayer[i] = e.queryLayer(snap.Layer(id), text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, id := range queried {
		result.PerLayer[id] = perLayer[i]
	}

	result.CrossLayerInsights = e.aggregateCrossLayer(snap, queried, perLayer)
	result.Summary = e.summarize(queried, perLayer, len(result.CrossLayerInsights))

	e.logger.Debug("query answered",
		"layers", len(queried),
		"total_matches", result.Summary.TotalMatches,
		"cross_layer_connections", result.Summary.CrossLayerConnections)
	return result, nil
}

// queryLayer runs vector search plus graph analysis for one layer.
// A layer that was never built, or built with an empty corpus, reports
// no_data instead of failing.
func (e *Engine) queryLayer(layer *snapshot.Layer, text string) types.LayerResult {
	if layer == nil {
		return types.LayerResult{Matches: []types.Match{}, GraphInsights: []types.GraphInsight{}, Status: types.StatusNoData}
	}

	hits, status := layer.Index.Search(text, e.search)
	if status == types.StatusNoData {
		return types.LayerResult{Matches: []types.Match{}, GraphInsights: []types.GraphInsight{}, Status: types.StatusNoData}
	}

	res := types.LayerResult{
		Matches:       make([]types.Match, 0, len(hits)),
		GraphInsights: make([]types.GraphInsight, 0, len(hits)),
		Status:        types.StatusSuccess,
	}
	for _, hit := range hits {
		node := layer.Graph.Node(hit.NodeID)
		if node == nil {
			continue
		}
		res.Matches = append(res.Matches, types.Match{
			NodeID:     hit.NodeID,
			Similarity: hit.Similarity,
			Attributes: node.Attributes(),
		})
		neighbors := layer.Graph.Neighbors(hit.NodeID)
		res.GraphInsights = append(res.GraphInsights, types.GraphInsight{
			NodeID:           hit.NodeID,
			DegreeCentrality: layer.Graph.DegreeCentrality(hit.NodeID),
			NeighborCount:    len(neighbors),
			ConnectionTypes:  layer.Graph.ConnectionTypes(hit.NodeID),
		})
	}
	return res
}

// aggregateCrossLayer builds one insight per matched node that has a
// cross-link entry. The connected map carries the full attribute set of
// the linked node in every layer the entry references, whether or not
// that layer was queried.
func (e *Engine) aggregateCrossLayer(snap *snapshot.Snapshot, queried []types.LayerID, perLayer []types.LayerResult) []types.CrossLayerInsight {
	insights := []types.CrossLayerInsight{}
	for i, layerID := range queried {
		layer := snap.Layer(layerID)
		if layer == nil {
			continue
		}
		for _, match := range perLayer[i].Matches {
			entry, ok := layer.CrossLinks[match.NodeID]
			if !ok {
				continue
			}
			connected := make(map[types.LayerID]map[string]interface{}, len(entry))
			for _, otherID := range types.LayerOrder {
				linkedNodeID, ok := entry[otherID]
				if !ok {
					continue
				}
				otherLayer := snap.Layer(otherID)
				if otherLayer == nil {
					continue
				}
				if linked := otherLayer.Graph.Node(linkedNodeID); linked != nil {
					connected[otherID] = linked.Attributes()
				}
			}
			if len(connected) == 0 {
				continue
			}
			insights = append(insights, types.CrossLayerInsight{
				PrimaryLayer:      layerID,
				PrimaryNodeID:     match.NodeID,
				PrimaryAttributes: match.Attributes,
				Connected:         connected,
				Relevance:         match.Similarity,
			})
		}
	}
	return insights
}

// summarize computes the headline figures and recommendation text.
// The primary layer is the one with the highest mean similarity among
// its own matches; ties keep the first layer in the fixed order.
func (e *Engine) summarize(queried []types.LayerID, perLayer []types.LayerResult, crossLayerConnections int) types.Summary {
	summary := types.Summary{CrossLayerConnections: crossLayerConnections}

	for i, layerID := range queried {
		matches := perLayer[i].Matches
		summary.TotalMatches += len(matches)
		if len(matches) == 0 {
			continue
		}
		var sum float64
		for _, m := range matches {
			sum += m.Similarity
		}
		mean := sum / float64(len(matches))
		if mean > summary.ConfidenceScore {
			summary.ConfidenceScore = mean
			summary.PrimaryLayer = layerID
		}
	}

	summary.Recommendation = e.summarizer.Summarize(
		summary.TotalMatches, summary.CrossLayerConnections, summary.PrimaryLayer)
	return summary
}
