// Package crosslink resolves which nodes in different layers represent
// the same real-world entity and records the linkage in each layer's
// cross-link table.
//
// Linkage is keyed by the originating source id captured at ingestion,
// a first-class cross-reference table rather than string parsing on the
// query path. It runs once, after all layers are built and before the
// snapshot is published, and never creates graph edges.
package crosslink

import (
	"log/slog"

	"github.com/soundprediction/strata/pkg/snapshot"
	"github.com/soundprediction/strata/pkg/types"
)

// Link populates the cross-link tables of all given layers and returns
// the number of linked entities. Layers are visited in the fixed layer
// order; within a layer, the first node carrying a source id wins, so
// linkage is deterministic across rebuilds.
func Link(layers map[types.LayerID]*snapshot.Layer, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}

	// source id -> layer -> node id
	bySource := make(map[string]map[types.LayerID]string)
	for _, layerID := range types.LayerOrder {
		layer := layers[layerID]
		if layer == nil {
			continue
		}
		for _, node := range layer.Graph.Nodes() {
			if node.SourceID == "" {
				continue
			}
			perLayer, ok := bySource[node.SourceID]
			if !ok {
				perLayer = make(map[types.LayerID]string)
				bySource[node.SourceID] = perLayer
			}
			if _, taken := perLayer[layerID]; !taken {
				perLayer[layerID] = node.ID
			}
		}
	}

	linked := 0
	for sourceID, perLayer := range bySource {
		if len(perLayer) < 2 {
			continue
		}
		linked++
		for layerID, nodeID := range perLayer {
			layer := layers[layerID]
			entry := make(map[types.LayerID]string, len(perLayer)-1)
			for otherLayer, otherNode := range perLayer {
				if otherLayer == layerID {
					continue
				}
				entry[otherLayer] = otherNode
			}
			layer.CrossLinks[nodeID] = entry
		}
		logger.Debug("cross-layer entity linked", "source_id", sourceID, "layers", len(perLayer))
	}

	logger.Info("cross-layer linkage computed", "linked_entities", linked)
	return linked
}
