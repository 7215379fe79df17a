package layergraph

import (
	"testing"

	"github.com/soundprediction/strata/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func researchRecords() []*types.Record {
	return []*types.Record{
		{Type: types.PaperRecord, SourceID: "P1", Title: "Graph Retrieval", Category: "information retrieval"},
		{Type: types.PaperRecord, SourceID: "P2", Title: "Sparse Indexing", Category: "information retrieval"},
		{Type: types.ResearcherRecord, SourceID: "R1", Name: "Grace Hopper", Institution: "Yale"},
		{Type: types.InstitutionRecord, SourceID: "I1", Name: "Yale", Country: "USA"},
		{Type: types.CitationRecord, CitingID: "P1", CitedID: "P2", Context: "builds on"},
	}
}

func TestBuilderBuildsNodesAndEdges(t *testing.T) {
	builder := NewBuilder(types.LayerResearch, nil, nil)
	graph, diag := builder.Build(researchRecords())

	assert.Equal(t, 4, graph.NodeCount())
	// One citation plus one derived affiliation edge.
	assert.Equal(t, 2, graph.EdgeCount())
	assert.Equal(t, 0, diag.DanglingEdges)
	assert.Equal(t, 0, diag.InvalidRecords)

	paper := graph.Node("paper_P1")
	require.NotNil(t, paper)
	assert.Equal(t, "Graph Retrieval", paper.Title)
	assert.Equal(t, types.LayerResearch, paper.Layer)
	assert.Equal(t, "P1", paper.SourceID)

	assert.Equal(t, []string{"affiliation"}, graph.ConnectionTypes("institution_I1"))
}

func TestBuilderDeterminism(t *testing.T) {
	builder := NewBuilder(types.LayerResearch, nil, nil)

	first, firstDiag := builder.Build(researchRecords())
	second, secondDiag := builder.Build(researchRecords())

	assert.Equal(t, first.NodeCount(), second.NodeCount())
	assert.Equal(t, first.EdgeCount(), second.EdgeCount())
	assert.Equal(t, firstDiag, secondDiag)
	assert.Equal(t, first.NodeIDs(), second.NodeIDs())
}

func TestBuilderDropsDanglingCitations(t *testing.T) {
	records := []*types.Record{
		{Type: types.PaperRecord, SourceID: "P1", Title: "Graph Retrieval"},
		{Type: types.CitationRecord, CitingID: "P1", CitedID: "P404"},
		{Type: types.CitationRecord, CitingID: "P404", CitedID: "P1"},
	}
	builder := NewBuilder(types.LayerResearch, nil, nil)
	graph, diag := builder.Build(records)

	assert.Equal(t, 1, graph.NodeCount())
	assert.Equal(t, 0, graph.EdgeCount())
	assert.Equal(t, 2, diag.DanglingEdges)
}

func TestBuilderEdgeBeforeNodesStillMaterializes(t *testing.T) {
	records := []*types.Record{
		{Type: types.CitationRecord, CitingID: "P1", CitedID: "P2"},
		{Type: types.PaperRecord, SourceID: "P1", Title: "Graph Retrieval"},
		{Type: types.PaperRecord, SourceID: "P2", Title: "Sparse Indexing"},
	}
	builder := NewBuilder(types.LayerResearch, nil, nil)
	graph, diag := builder.Build(records)

	assert.Equal(t, 1, graph.EdgeCount())
	assert.Equal(t, 0, diag.DanglingEdges)
}

func TestBuilderSkipsInvalidRecords(t *testing.T) {
	records := []*types.Record{
		{Type: types.PaperRecord, SourceID: "P1", Title: "Graph Retrieval"},
		{Type: types.PaperRecord, SourceID: "P2"}, // no title
		{Type: "satellite", SourceID: "S1", Name: "x"},
	}
	builder := NewBuilder(types.LayerResearch, nil, nil)
	graph, diag := builder.Build(records)

	assert.Equal(t, 1, graph.NodeCount())
	assert.Equal(t, 2, diag.InvalidRecords)
}

func TestBuilderFillsDerivedScores(t *testing.T) {
	records := []*types.Record{
		{Type: types.InvestmentTargetRecord, SourceID: "R1", Name: "Hopper Lab", FundingStage: "seed", Sector: "devtools"},
		{Type: types.InvestmentTargetRecord, SourceID: "R2", Name: "Turing Lab", MarketPotential: 0.93},
		{Type: types.PotentialFounderRecord, SourceID: "R1", Name: "Grace Hopper", YearsActive: 8, Expertise: "compilers"},
	}
	builder := NewBuilder(types.LayerInvestor, nil, nil)
	graph, _ := builder.Build(records)

	derived := graph.Node("investment_target_R1")
	require.NotNil(t, derived)
	assert.Greater(t, derived.MarketPotential, 0.0)

	supplied := graph.Node("investment_target_R2")
	require.NotNil(t, supplied)
	assert.Equal(t, 0.93, supplied.MarketPotential, "record-supplied score wins")

	founder := graph.Node("potential_founder_R1")
	require.NotNil(t, founder)
	assert.Greater(t, founder.SuccessProbability, 0.0)
}

func TestBuilderLinkRecords(t *testing.T) {
	records := []*types.Record{
		{Type: types.InvestmentTargetRecord, SourceID: "R1", Name: "Hopper Lab"},
		{Type: types.MarketTrendRecord, SourceID: "T1", Name: "AI tooling", Description: "developer AI tools"},
		{
			Type:         types.LinkRecord,
			SourceNodeID: "investment_target_R1",
			TargetNodeID: "market_trend_T1",
			EdgeType:     types.MarketSignalEdgeType,
			Strength:     0.8,
		},
	}
	builder := NewBuilder(types.LayerInvestor, nil, nil)
	graph, diag := builder.Build(records)

	assert.Equal(t, 1, graph.EdgeCount())
	assert.Equal(t, 0, diag.DanglingEdges)
	assert.Equal(t, []string{"market_signal"}, graph.ConnectionTypes("investment_target_R1"))
}
