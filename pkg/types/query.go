package types

import "errors"

// Query errors
var (
	ErrEmptyQuery   = errors.New("query cannot be empty")
	ErrInvalidTopK  = errors.New("top_k must be positive")
	ErrInvalidScore = errors.New("min_score must be in [0, 1]")
)

// LayerStatus reports the outcome of querying a single layer.
type LayerStatus string

const (
	// StatusSuccess means the layer was searchable, even if nothing matched.
	StatusSuccess LayerStatus = "success"
	// StatusNoData means the layer built with an empty corpus or was never built.
	StatusNoData LayerStatus = "no_data"
)

// SearchConfig holds configuration for a layer vector search.
type SearchConfig struct {
	// TopK is the maximum number of matches to return.
	TopK int
	// MinScore is the minimum cosine similarity for a match.
	MinScore float64
}

// Validate checks if the SearchConfig has valid values.
func (c *SearchConfig) Validate() error {
	if c.TopK < 0 {
		return ErrInvalidTopK
	}
	if c.MinScore < 0 || c.MinScore > 1 {
		return ErrInvalidScore
	}
	return nil
}

// WithDefaults returns a copy of the config with default values applied.
func (c *SearchConfig) WithDefaults() *SearchConfig {
	if c == nil {
		return &SearchConfig{TopK: 5, MinScore: 0.1}
	}
	result := *c
	if result.TopK == 0 {
		result.TopK = 5
	}
	if result.MinScore == 0 {
		result.MinScore = 0.1
	}
	return &result
}

// Match is a single vector-search hit within a layer.
type Match struct {
	NodeID     string                 `json:"node_id"`
	Similarity float64                `json:"similarity"`
	Attributes map[string]interface{} `json:"attributes"`
}

// GraphInsight carries the graph-structure signals computed for a match.
type GraphInsight struct {
	NodeID           string   `json:"node_id"`
	DegreeCentrality float64  `json:"degree_centrality"`
	NeighborCount    int      `json:"neighbor_count"`
	ConnectionTypes  []string `json:"connection_types"`
}

// LayerResult is the per-layer portion of a query result.
type LayerResult struct {
	Matches       []Match        `json:"matches"`
	GraphInsights []GraphInsight `json:"graph_insights"`
	Status        LayerStatus    `json:"status"`
}

// CrossLayerInsight correlates one matched node with its representations
// in other layers. Relevance is the originating match's similarity.
type CrossLayerInsight struct {
	PrimaryLayer      LayerID                            `json:"primary_layer"`
	PrimaryNodeID     string                             `json:"primary_node_id"`
	PrimaryAttributes map[string]interface{}             `json:"primary_attributes"`
	Connected         map[LayerID]map[string]interface{} `json:"connected"`
	Relevance         float64                            `json:"relevance"`
}

// Summary is the reduction of a query result into headline figures and a
// recommendation string.
type Summary struct {
	TotalMatches          int     `json:"total_matches"`
	CrossLayerConnections int     `json:"cross_layer_connections"`
	PrimaryLayer          LayerID `json:"primary_layer,omitempty"`
	ConfidenceScore       float64 `json:"confidence_score"`
	Recommendation        string  `json:"recommendation"`
}

// QueryResult is the full response of a multi-layer query.
type QueryResult struct {
	Query              string                  `json:"query"`
	PerLayer           map[LayerID]LayerResult `json:"per_layer"`
	CrossLayerInsights []CrossLayerInsight     `json:"cross_layer_insights"`
	Summary            Summary                 `json:"summary"`
}

// LayerStats describes one built layer for the statistics contract.
type LayerStats struct {
	Layer         LayerID          `json:"layer"`
	Name          string           `json:"name"`
	NodesByType   map[NodeType]int `json:"nodes_by_type"`
	EdgesByType   map[EdgeType]int `json:"edges_by_type"`
	NodeCount     int              `json:"node_count"`
	EdgeCount     int              `json:"edge_count"`
	CorpusSize    int              `json:"corpus_size"`
	HasCrossLinks bool             `json:"has_cross_links"`
	DanglingEdges int              `json:"dangling_edges"`
}

// EngineStats aggregates per-layer statistics for the health endpoint.
type EngineStats struct {
	Layers  map[LayerID]LayerStats `json:"layers"`
	BuiltAt string                 `json:"built_at,omitempty"`
}
