package layergraph

import (
	"log/slog"

	"github.com/soundprediction/strata/pkg/scoring"
	"github.com/soundprediction/strata/pkg/types"
)

// Diagnostics reports what happened during a layer build.
type Diagnostics struct {
	Layer          types.LayerID
	NodeCount      int
	EdgeCount      int
	DanglingEdges  int
	InvalidRecords int
}

// Builder turns normalized records into a layer graph.
type Builder struct {
	layer  types.LayerID
	scorer scoring.Scorer
	logger *slog.Logger
}

// NewBuilder creates a builder for the given layer.
func NewBuilder(layer types.LayerID, scorer scoring.Scorer, logger *slog.Logger) *Builder {
	if scorer == nil {
		scorer = scoring.DefaultScorer{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{layer: layer, scorer: scorer, logger: logger}
}

// Build constructs a graph from the record sequence. Node records are
// materialized first, then edge records, so edge materialization does
// not depend on record ordering. Edge records whose endpoints are
// absent are dropped silently and counted in the diagnostics.
func (b *Builder) Build(records []*types.Record) (*Graph, Diagnostics) {
	graph := NewGraph(b.layer)
	diag := Diagnostics{Layer: b.layer}

	// institutionsByName resolves researcher affiliations to
	// institution nodes after the node pass.
	institutionsByName := make(map[string]string)

	for _, rec := range records {
		if rec.IsEdge() {
			continue
		}
		if err := rec.Validate(); err != nil {
			diag.InvalidRecords++
			b.logger.Warn("skipping invalid record",
				"layer", b.layer, "type", rec.Type, "source_id", rec.SourceID, "error", err)
			continue
		}
		node := b.recordToNode(rec)
		if !graph.AddNode(node) {
			b.logger.Debug("duplicate node id ignored", "layer", b.layer, "id", node.ID)
			continue
		}
		if node.Type == types.InstitutionNodeType {
			if _, exists := institutionsByName[node.Name]; !exists {
				institutionsByName[node.Name] = node.ID
			}
		}
	}

	for _, rec := range records {
		if !rec.IsEdge() {
			continue
		}
		if err := rec.Validate(); err != nil {
			diag.InvalidRecords++
			b.logger.Warn("skipping invalid record",
				"layer", b.layer, "type", rec.Type, "error", err)
			continue
		}
		edge := b.recordToEdge(rec)
		if !graph.AddEdge(edge) {
			diag.DanglingEdges++
		}
	}

	// Affiliation edges are derived from researcher records whose
	// institution name resolves to an institution node in this layer.
	for _, node := range graph.Nodes() {
		if node.Type != types.ResearcherNodeType || node.Institution == "" {
			continue
		}
		instID, ok := institutionsByName[node.Institution]
		if !ok {
			continue
		}
		graph.AddEdge(&types.Edge{
			Source: node.ID,
			Target: instID,
			Type:   types.AffiliationEdgeType,
		})
	}

	diag.NodeCount = graph.NodeCount()
	diag.EdgeCount = graph.EdgeCount()
	b.logger.Info("layer graph built",
		"layer", b.layer,
		"nodes", diag.NodeCount,
		"edges", diag.EdgeCount,
		"dangling_edges", diag.DanglingEdges,
		"invalid_records", diag.InvalidRecords)
	return graph, diag
}

func (b *Builder) recordToNode(rec *types.Record) *types.Node {
	nodeType, _ := rec.NodeType() // already validated
	node := &types.Node{
		ID:       types.NodeID(nodeType, rec.SourceID),
		Type:     nodeType,
		Layer:    b.layer,
		SourceID: rec.SourceID,

		Title:         rec.Title,
		Authors:       rec.Authors,
		Year:          rec.Year,
		Venue:         rec.Venue,
		CitationCount: rec.CitationCount,
		Methodology:   rec.Methodology,
		Category:      rec.Category,

		Name:           rec.Name,
		Institution:    rec.Institution,
		HIndex:         rec.HIndex,
		TotalCitations: rec.TotalCitations,
		PrimaryField:   rec.PrimaryField,
		YearsActive:    rec.YearsActive,

		Country:        rec.Country,
		Ranking:        rec.Ranking,
		ResearchOutput: rec.ResearchOutput,

		Sector:          rec.Sector,
		FundingStage:    rec.FundingStage,
		MarketPotential: rec.MarketPotential,
		Thesis:          rec.Thesis,

		Description: rec.Description,
		Momentum:    rec.Momentum,
		Domain:      rec.Domain,

		Expertise:          rec.Expertise,
		Background:         rec.Background,
		SuccessProbability: rec.SuccessProbability,

		Metadata: rec.Metadata,
	}

	// Record-supplied scores win; the scorer only fills gaps.
	switch node.Type {
	case types.InvestmentTargetNodeType:
		if node.MarketPotential == 0 {
			node.MarketPotential = b.scorer.MarketPotential(node)
		}
	case types.PotentialFounderNodeType:
		if node.SuccessProbability == 0 {
			node.SuccessProbability = b.scorer.SuccessProbability(node)
		}
	}
	return node
}

func (b *Builder) recordToEdge(rec *types.Record) *types.Edge {
	if rec.Type == types.CitationRecord {
		return &types.Edge{
			Source:       types.NodeID(types.PaperNodeType, rec.CitingID),
			Target:       types.NodeID(types.PaperNodeType, rec.CitedID),
			Type:         types.CitationEdgeType,
			Context:      rec.Context,
			Sentiment:    rec.Sentiment,
			SelfCitation: rec.SelfCitation,
		}
	}
	edgeType := rec.EdgeType
	if edgeType == "" {
		edgeType = types.EdgeType("link")
	}
	return &types.Edge{
		Source:   rec.SourceNodeID,
		Target:   rec.TargetNodeID,
		Type:     edgeType,
		Strength: rec.Strength,
	}
}
