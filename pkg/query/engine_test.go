package query

import (
	"context"
	"testing"

	"github.com/soundprediction/strata/pkg/crosslink"
	"github.com/soundprediction/strata/pkg/layergraph"
	"github.com/soundprediction/strata/pkg/snapshot"
	"github.com/soundprediction/strata/pkg/types"
	"github.com/soundprediction/strata/pkg/vectorindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLayer(t *testing.T, id types.LayerID, records []*types.Record) *snapshot.Layer {
	t.Helper()
	graph, diag := layergraph.NewBuilder(id, nil, nil).Build(records)
	return snapshot.NewLayer(id, graph, vectorindex.Build(id, graph.Nodes(), nil), diag)
}

// fullSnapshot builds three linked layers around researcher R1.
func fullSnapshot(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	layers := map[types.LayerID]*snapshot.Layer{
		types.LayerResearch: buildLayer(t, types.LayerResearch, []*types.Record{
			{Type: types.PaperRecord, SourceID: "A", Title: "Alpha Methods", Category: "systems"},
			{Type: types.PaperRecord, SourceID: "B", Title: "Beta Benchmarks", Category: "systems"},
			{Type: types.PaperRecord, SourceID: "C", Title: "Gamma Analysis", Category: "systems"},
			{Type: types.CitationRecord, CitingID: "A", CitedID: "B"},
			{Type: types.CitationRecord, CitingID: "B", CitedID: "C"},
			{Type: types.ResearcherRecord, SourceID: "R1", Name: "Grace Hopper", HIndex: 15, TotalCitations: 800, PrimaryField: "compilers"},
		}),
		types.LayerInvestor: buildLayer(t, types.LayerInvestor, []*types.Record{
			{Type: types.InvestmentTargetRecord, SourceID: "R1", Name: "Hopper Lab", Sector: "devtools"},
		}),
		types.LayerFounder: buildLayer(t, types.LayerFounder, []*types.Record{
			{Type: types.PotentialFounderRecord, SourceID: "R1", Name: "Grace Hopper", Expertise: "compilers"},
		}),
	}
	crosslink.Link(layers, nil)
	return snapshot.New(layers)
}

func allWeights(w float64) map[types.LayerID]float64 {
	return map[types.LayerID]float64{
		types.LayerResearch: w,
		types.LayerInvestor: w,
		types.LayerFounder:  w,
	}
}

func TestQueryZeroWeights(t *testing.T) {
	engine := NewEngine(nil, nil, nil)
	snap := fullSnapshot(t)

	result, err := engine.Query(context.Background(), snap, "anything", allWeights(0))
	require.NoError(t, err)
	assert.Empty(t, result.PerLayer)
	assert.Zero(t, result.Summary.TotalMatches)
	assert.Zero(t, result.Summary.ConfidenceScore)
	assert.Empty(t, result.CrossLayerInsights)
}

func TestQueryGraphInsights(t *testing.T) {
	// Scenario: A cites B, B cites C; querying "Beta" must surface B
	// with two neighbors over citation edges.
	engine := NewEngine(nil, nil, nil)
	snap := fullSnapshot(t)

	result, err := engine.Query(context.Background(), snap,
		"Beta Benchmarks", map[types.LayerID]float64{types.LayerResearch: 1.0})
	require.NoError(t, err)

	research := result.PerLayer[types.LayerResearch]
	require.Equal(t, types.StatusSuccess, research.Status)
	require.NotEmpty(t, research.Matches)
	assert.Equal(t, "paper_B", research.Matches[0].NodeID)

	insight := research.GraphInsights[0]
	assert.Equal(t, "paper_B", insight.NodeID)
	assert.Equal(t, 2, insight.NeighborCount)
	assert.Equal(t, []string{"citation"}, insight.ConnectionTypes)
	assert.InDelta(t, 2.0/3.0, insight.DegreeCentrality, 1e-9)
}

func TestQueryCrossLayerInsights(t *testing.T) {
	// Scenario: researcher R1 has linked investment-target and founder
	// nodes; matching R1 in one layer yields a fully connected insight.
	engine := NewEngine(nil, nil, nil)
	snap := fullSnapshot(t)

	result, err := engine.Query(context.Background(), snap,
		"Grace Hopper compilers", map[types.LayerID]float64{types.LayerResearch: 0.8})
	require.NoError(t, err)
	require.NotEmpty(t, result.CrossLayerInsights)

	ci := result.CrossLayerInsights[0]
	assert.Equal(t, types.LayerResearch, ci.PrimaryLayer)
	assert.Equal(t, "researcher_R1", ci.PrimaryNodeID)
	assert.Contains(t, ci.Connected, types.LayerInvestor)
	assert.Contains(t, ci.Connected, types.LayerFounder)
	assert.Equal(t, "Hopper Lab", ci.Connected[types.LayerInvestor]["name"])
	assert.Greater(t, ci.Relevance, 0.0)
	assert.Equal(t, result.PerLayer[types.LayerResearch].Matches[0].Similarity, ci.Relevance)

	assert.Greater(t, result.Summary.CrossLayerConnections, 0)
	assert.Contains(t, result.Summary.Recommendation, "Multi-layer analysis recommended")
}

func TestQueryCrossLinkCompleteness(t *testing.T) {
	engine := NewEngine(nil, nil, nil)
	snap := fullSnapshot(t)

	result, err := engine.Query(context.Background(), snap, "Grace Hopper compilers", allWeights(1))
	require.NoError(t, err)

	for _, ci := range result.CrossLayerInsights {
		layer := snap.Layer(ci.PrimaryLayer)
		entry := layer.CrossLinks[ci.PrimaryNodeID]
		require.NotEmpty(t, entry)
		for linkedLayer := range entry {
			assert.Contains(t, ci.Connected, linkedLayer,
				"connected map must cover every layer in the cross-link entry")
		}
	}
}

func TestQueryEmptyLayerDegradesToNoData(t *testing.T) {
	// Scenario: the investor layer has zero records; the research layer
	// still answers and drives the summary alone.
	engine := NewEngine(nil, nil, nil)
	layers := map[types.LayerID]*snapshot.Layer{
		types.LayerResearch: buildLayer(t, types.LayerResearch, []*types.Record{
			{Type: types.PaperRecord, SourceID: "P1", Title: "Sparse Retrieval", Category: "search"},
		}),
		types.LayerInvestor: buildLayer(t, types.LayerInvestor, nil),
	}
	snap := snapshot.New(layers)

	result, err := engine.Query(context.Background(), snap, "sparse retrieval",
		map[types.LayerID]float64{types.LayerResearch: 0.5, types.LayerInvestor: 0.5})
	require.NoError(t, err)

	assert.Equal(t, types.StatusNoData, result.PerLayer[types.LayerInvestor].Status)
	assert.Empty(t, result.PerLayer[types.LayerInvestor].Matches)

	research := result.PerLayer[types.LayerResearch]
	assert.Equal(t, types.StatusSuccess, research.Status)
	require.NotEmpty(t, research.Matches)
	assert.Equal(t, types.LayerResearch, result.Summary.PrimaryLayer)
	assert.Equal(t, len(research.Matches), result.Summary.TotalMatches)
}

func TestQueryUnbuiltLayerDegradesToNoData(t *testing.T) {
	engine := NewEngine(nil, nil, nil)
	layers := map[types.LayerID]*snapshot.Layer{
		types.LayerResearch: buildLayer(t, types.LayerResearch, []*types.Record{
			{Type: types.PaperRecord, SourceID: "P1", Title: "Sparse Retrieval"},
		}),
	}
	snap := snapshot.New(layers)

	result, err := engine.Query(context.Background(), snap, "sparse",
		map[types.LayerID]float64{types.LayerResearch: 1, types.LayerFounder: 1})
	require.NoError(t, err)
	assert.Equal(t, types.StatusNoData, result.PerLayer[types.LayerFounder].Status)
}

func TestQueryOutOfVocabulary(t *testing.T) {
	engine := NewEngine(nil, nil, nil)
	snap := fullSnapshot(t)

	result, err := engine.Query(context.Background(), snap, "xylophone zeitgeist",
		map[types.LayerID]float64{types.LayerResearch: 1})
	require.NoError(t, err)

	research := result.PerLayer[types.LayerResearch]
	assert.Equal(t, types.StatusSuccess, research.Status)
	assert.Empty(t, research.Matches)
	assert.Contains(t, result.Summary.Recommendation, "refining the query")
}

func TestQueryValidation(t *testing.T) {
	engine := NewEngine(nil, nil, nil)

	_, err := engine.Query(context.Background(), nil, "text", allWeights(1))
	assert.ErrorIs(t, err, ErrNoSnapshot)

	_, err = engine.Query(context.Background(), fullSnapshot(t), "   ", allWeights(1))
	assert.ErrorIs(t, err, types.ErrEmptyQuery)
}

func TestQueryCancelledContext(t *testing.T) {
	engine := NewEngine(nil, nil, nil)
	snap := fullSnapshot(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Query(ctx, snap, "Grace Hopper", allWeights(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQueryPrimaryLayerTieBreak(t *testing.T) {
	// Identical corpora in research and founder layers produce equal
	// mean similarities; the fixed layer order keeps research first.
	engine := NewEngine(nil, nil, nil)
	layers := map[types.LayerID]*snapshot.Layer{
		types.LayerResearch: buildLayer(t, types.LayerResearch, []*types.Record{
			{Type: types.ResearcherRecord, SourceID: "R1", Name: "Grace Hopper"},
		}),
		types.LayerFounder: buildLayer(t, types.LayerFounder, []*types.Record{
			{Type: types.PotentialFounderRecord, SourceID: "F1", Name: "Grace Hopper"},
		}),
	}
	snap := snapshot.New(layers)

	result, err := engine.Query(context.Background(), snap, "Grace Hopper", allWeights(1))
	require.NoError(t, err)
	assert.Equal(t, types.LayerResearch, result.Summary.PrimaryLayer)
}

func TestQueryIsDeterministic(t *testing.T) {
	engine := NewEngine(nil, nil, nil)
	snap := fullSnapshot(t)

	first, err := engine.Query(context.Background(), snap, "Grace Hopper compilers", allWeights(1))
	require.NoError(t, err)
	second, err := engine.Query(context.Background(), snap, "Grace Hopper compilers", allWeights(1))
	require.NoError(t, err)

	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.CrossLayerInsights, second.CrossLayerInsights)
	assert.Equal(t, first.PerLayer, second.PerLayer)
}
