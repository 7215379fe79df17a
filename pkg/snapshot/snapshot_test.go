package snapshot

import (
	"sync"
	"testing"

	"github.com/soundprediction/strata/pkg/layergraph"
	"github.com/soundprediction/strata/pkg/types"
	"github.com/soundprediction/strata/pkg/vectorindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtLayer(t *testing.T, id types.LayerID, records []*types.Record) *Layer {
	t.Helper()
	builder := layergraph.NewBuilder(id, nil, nil)
	graph, diag := builder.Build(records)
	index := vectorindex.Build(id, graph.Nodes(), nil)
	return NewLayer(id, graph, index, diag)
}

func TestLayerStats(t *testing.T) {
	layer := builtLayer(t, types.LayerResearch, []*types.Record{
		{Type: types.PaperRecord, SourceID: "P1", Title: "Graph Retrieval"},
		{Type: types.PaperRecord, SourceID: "P2", Title: "Sparse Indexing"},
		{Type: types.CitationRecord, CitingID: "P1", CitedID: "P2"},
		{Type: types.CitationRecord, CitingID: "P1", CitedID: "P404"},
	})

	stats := layer.Stats()
	assert.Equal(t, types.LayerResearch, stats.Layer)
	assert.Equal(t, "Research Foundation", stats.Name)
	assert.Equal(t, 2, stats.NodeCount)
	assert.Equal(t, 1, stats.EdgeCount)
	assert.Equal(t, 2, stats.CorpusSize)
	assert.Equal(t, 1, stats.DanglingEdges)
	assert.Equal(t, map[types.NodeType]int{types.PaperNodeType: 2}, stats.NodesByType)
	assert.False(t, stats.HasCrossLinks)

	layer.CrossLinks["paper_P1"] = map[types.LayerID]string{types.LayerInvestor: "investment_target_P1"}
	assert.True(t, layer.Stats().HasCrossLinks)
}

func TestSnapshotStatsSkipsUnbuiltLayers(t *testing.T) {
	research := builtLayer(t, types.LayerResearch, []*types.Record{
		{Type: types.PaperRecord, SourceID: "P1", Title: "Graph Retrieval"},
	})
	snap := New(map[types.LayerID]*Layer{types.LayerResearch: research})

	require.NotNil(t, snap.Layer(types.LayerResearch))
	assert.Nil(t, snap.Layer(types.LayerInvestor))

	stats := snap.Stats()
	assert.Len(t, stats.Layers, 1)
	assert.NotEmpty(t, stats.BuiltAt)
}

func TestHolderAtomicSwap(t *testing.T) {
	var holder Holder
	assert.Nil(t, holder.Load())

	first := New(nil)
	assert.Nil(t, holder.Swap(first))
	assert.Same(t, first, holder.Load())

	second := New(nil)
	assert.Same(t, first, holder.Swap(second))
	assert.Same(t, second, holder.Load())
}

func TestHolderConcurrentReaders(t *testing.T) {
	var holder Holder
	holder.Swap(New(nil))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				// Readers must always observe a complete snapshot.
				assert.NotNil(t, holder.Load())
			}
		}()
	}
	for i := 0; i < 100; i++ {
		holder.Swap(New(nil))
	}
	wg.Wait()
}
