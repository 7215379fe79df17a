package crosslink

import (
	"testing"

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

func threeLayers(t *testing.T) map[types.LayerID]*snapshot.Layer {
	t.Helper()
	return map[types.LayerID]*snapshot.Layer{
		types.LayerResearch: buildLayer(t, types.LayerResearch, []*types.Record{
			{Type: types.ResearcherRecord, SourceID: "R1", Name: "Grace Hopper", HIndex: 15, TotalCitations: 800},
			{Type: types.ResearcherRecord, SourceID: "R2", Name: "Alan Turing"},
			{Type: types.PaperRecord, SourceID: "P1", Title: "Compiler Design"},
		}),
		types.LayerInvestor: buildLayer(t, types.LayerInvestor, []*types.Record{
			{Type: types.InvestmentTargetRecord, SourceID: "R1", Name: "Hopper Lab"},
		}),
		types.LayerFounder: buildLayer(t, types.LayerFounder, []*types.Record{
			{Type: types.PotentialFounderRecord, SourceID: "R1", Name: "Grace Hopper"},
		}),
	}
}

func TestLinkAcrossThreeLayers(t *testing.T) {
	layers := threeLayers(t)
	linked := Link(layers, nil)
	assert.Equal(t, 1, linked)

	research := layers[types.LayerResearch]
	entry, ok := research.CrossLinks["researcher_R1"]
	require.True(t, ok)
	assert.Equal(t, map[types.LayerID]string{
		types.LayerInvestor: "investment_target_R1",
		types.LayerFounder:  "potential_founder_R1",
	}, entry)

	investor := layers[types.LayerInvestor]
	entry, ok = investor.CrossLinks["investment_target_R1"]
	require.True(t, ok)
	assert.Equal(t, map[types.LayerID]string{
		types.LayerResearch: "researcher_R1",
		types.LayerFounder:  "potential_founder_R1",
	}, entry)

	founder := layers[types.LayerFounder]
	entry, ok = founder.CrossLinks["potential_founder_R1"]
	require.True(t, ok)
	assert.Len(t, entry, 2)
}

func TestUnlinkedNodesHaveNoEntry(t *testing.T) {
	layers := threeLayers(t)
	Link(layers, nil)

	research := layers[types.LayerResearch]
	_, ok := research.CrossLinks["researcher_R2"]
	assert.False(t, ok, "absence, not a placeholder entry")
	_, ok = research.CrossLinks["paper_P1"]
	assert.False(t, ok)
}

func TestLinkSkipsUnbuiltLayers(t *testing.T) {
	layers := threeLayers(t)
	delete(layers, types.LayerFounder)

	linked := Link(layers, nil)
	assert.Equal(t, 1, linked)

	entry := layers[types.LayerResearch].CrossLinks["researcher_R1"]
	assert.Equal(t, map[types.LayerID]string{types.LayerInvestor: "investment_target_R1"}, entry)
}

func TestLinkSingleLayerProducesNothing(t *testing.T) {
	layers := map[types.LayerID]*snapshot.Layer{
		types.LayerResearch: buildLayer(t, types.LayerResearch, []*types.Record{
			{Type: types.ResearcherRecord, SourceID: "R1", Name: "Grace Hopper"},
		}),
	}
	assert.Equal(t, 0, Link(layers, nil))
	assert.Empty(t, layers[types.LayerResearch].CrossLinks)
}

func TestLinkIsDeterministic(t *testing.T) {
	first := threeLayers(t)
	second := threeLayers(t)
	Link(first, nil)
	Link(second, nil)
	assert.Equal(t, first[types.LayerResearch].CrossLinks, second[types.LayerResearch].CrossLinks)
	assert.Equal(t, first[types.LayerInvestor].CrossLinks, second[types.LayerInvestor].CrossLinks)
}
