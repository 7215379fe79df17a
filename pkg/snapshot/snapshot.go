// Package snapshot bundles built layers into an immutable unit and
// publishes it through an atomic pointer, so queries always observe
// either a fully-old or fully-new engine state, never a mix.
package snapshot

import (
	"sync/atomic"
	"time"

	"github.com/soundprediction/strata/pkg/layergraph"
	"github.com/soundprediction/strata/pkg/types"
	"github.com/soundprediction/strata/pkg/vectorindex"
)

// Layer pairs one layer's graph with its vector index and cross-link
// table. After the snapshot is published the layer is read-only.
type Layer struct {
	ID    types.LayerID
	Name  string
	Graph *layergraph.Graph
	Index *vectorindex.Index

	// CrossLinks maps a node id of this layer to the node ids
	// representing the same real-world entity in other layers.
	// Nodes without correspondents have no entry.
	CrossLinks map[string]map[types.LayerID]string

	Diagnostics layergraph.Diagnostics
}

// NewLayer creates a layer bundle with an empty cross-link table.
func NewLayer(id types.LayerID, graph *layergraph.Graph, index *vectorindex.Index, diag layergraph.Diagnostics) *Layer {
	return &Layer{
		ID:          id,
		Name:        types.LayerName(id),
		Graph:       graph,
		Index:       index,
		CrossLinks:  make(map[string]map[types.LayerID]string),
		Diagnostics: diag,
	}
}

// Stats projects the layer into the statistics contract.
func (l *Layer) Stats() types.LayerStats {
	return types.LayerStats{
		Layer:         l.ID,
		Name:          l.Name,
		NodesByType:   l.Graph.NodesByType(),
		EdgesByType:   l.Graph.EdgesByType(),
		NodeCount:     l.Graph.NodeCount(),
		EdgeCount:     l.Graph.EdgeCount(),
		CorpusSize:    l.Index.CorpusSize(),
		HasCrossLinks: len(l.CrossLinks) > 0,
		DanglingEdges: l.Diagnostics.DanglingEdges,
	}
}

// Snapshot is one complete, immutable engine state.
type Snapshot struct {
	layers  map[types.LayerID]*Layer
	builtAt time.Time
}

// New assembles a snapshot from built layers.
func New(layers map[types.LayerID]*Layer) *Snapshot {
	return &Snapshot{layers: layers, builtAt: time.Now().UTC()}
}

// Layer returns the layer with the given id, or nil if that layer was
// not built (missing source data).
func (s *Snapshot) Layer(id types.LayerID) *Layer { return s.layers[id] }

// BuiltAt returns when the snapshot was assembled.
func (s *Snapshot) BuiltAt() time.Time { return s.builtAt }

// Stats aggregates per-layer statistics across the snapshot.
func (s *Snapshot) Stats() types.EngineStats {
	stats := types.EngineStats{
		Layers:  make(map[types.LayerID]types.LayerStats, len(s.layers)),
		BuiltAt: s.builtAt.Format(time.RFC3339),
	}
	for id, layer := range s.layers {
		stats.Layers[id] = layer.Stats()
	}
	return stats
}

// Holder publishes snapshots. Load is wait-free; Swap atomically
// replaces the current snapshot for all subsequent loads.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// Load returns the current snapshot, or nil before the first Swap.
func (h *Holder) Load() *Snapshot { return h.current.Load() }

// Swap publishes a new snapshot and returns the previous one.
func (h *Holder) Swap(s *Snapshot) *Snapshot { return h.current.Swap(s) }
