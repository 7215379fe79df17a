package types

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors
var (
	ErrEmptySourceID   = errors.New("source_id cannot be empty")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrUnknownLayer    = errors.New("unknown layer")
	ErrUnknownRecord   = errors.New("unknown record type")
	ErrMissingEndpoint = errors.New("link record requires source and target ids")
)

// LayerID identifies one of the three knowledge layers.
type LayerID string

const (
	// LayerResearch holds papers, researchers, institutions and citations.
	LayerResearch LayerID = "research"
	// LayerInvestor holds derived investment targets and market trends.
	LayerInvestor LayerID = "investor"
	// LayerFounder holds potential founders and startup archetypes.
	LayerFounder LayerID = "founder"
)

// LayerOrder is the fixed, deterministic iteration sequence over layers.
// Summary tie-breaks and build ordering always follow this sequence.
var LayerOrder = []LayerID{LayerResearch, LayerInvestor, LayerFounder}

// LayerName returns the human-readable name of a layer.
func LayerName(id LayerID) string {
	switch id {
	case LayerResearch:
		return "Research Foundation"
	case LayerInvestor:
		return "Investor Intelligence"
	case LayerFounder:
		return "Founder & Startup"
	default:
		return string(id)
	}
}

// ValidLayer reports whether id names a known layer.
func ValidLayer(id LayerID) bool {
	switch id {
	case LayerResearch, LayerInvestor, LayerFounder:
		return true
	}
	return false
}

// NodeType represents the type of a node within a layer.
type NodeType string

const (
	PaperNodeType            NodeType = "paper"
	ResearcherNodeType       NodeType = "researcher"
	InstitutionNodeType      NodeType = "institution"
	InvestmentTargetNodeType NodeType = "investment_target"
	MarketTrendNodeType      NodeType = "market_trend"
	PotentialFounderNodeType NodeType = "potential_founder"
	StartupArchetypeNodeType NodeType = "startup_archetype"
)

// EdgeType represents the type of an edge within a layer.
type EdgeType string

const (
	// CitationEdgeType connects a citing paper to a cited paper.
	CitationEdgeType EdgeType = "citation"
	// AffiliationEdgeType connects a researcher to an institution.
	AffiliationEdgeType EdgeType = "affiliation"
	// MarketSignalEdgeType connects an investment target to a market trend.
	MarketSignalEdgeType EdgeType = "market_signal"
	// ArchetypeFitEdgeType connects a potential founder to a startup archetype.
	ArchetypeFitEdgeType EdgeType = "archetype_fit"
)

// NodeID builds the stable node identifier for a node type and source id.
func NodeID(t NodeType, sourceID string) string {
	return fmt.Sprintf("%s_%s", t, sourceID)
}

// Node represents a typed entity within a single layer's graph.
// The shared base is {ID, Type, Layer, SourceID}; the remaining fields
// form the per-type payload and are only populated for the matching type.
type Node struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Layer    LayerID  `json:"layer"`
	SourceID string   `json:"source_id"`

	// Paper fields
	Title         string   `json:"title,omitempty"`
	Authors       []string `json:"authors,omitempty"`
	Year          int      `json:"year,omitempty"`
	Venue         string   `json:"venue,omitempty"`
	CitationCount int      `json:"citation_count,omitempty"`
	Methodology   string   `json:"methodology,omitempty"`
	Category      string   `json:"category,omitempty"`

	// Researcher fields
	Name           string `json:"name,omitempty"`
	Institution    string `json:"institution,omitempty"`
	HIndex         int    `json:"h_index,omitempty"`
	TotalCitations int    `json:"total_citations,omitempty"`
	PrimaryField   string `json:"primary_field,omitempty"`
	YearsActive    int    `json:"years_active,omitempty"`

	// Institution fields
	Country        string `json:"country,omitempty"`
	Ranking        int    `json:"ranking,omitempty"`
	ResearchOutput int    `json:"research_output,omitempty"`

	// Investment target fields
	Sector          string  `json:"sector,omitempty"`
	FundingStage    string  `json:"funding_stage,omitempty"`
	MarketPotential float64 `json:"market_potential,omitempty"`
	Thesis          string  `json:"thesis,omitempty"`

	// Market trend / archetype fields
	Description string `json:"description,omitempty"`
	Momentum    string `json:"momentum,omitempty"`
	Domain      string `json:"domain,omitempty"`

	// Potential founder fields
	Expertise          string  `json:"expertise,omitempty"`
	Background         string  `json:"background,omitempty"`
	SuccessProbability float64 `json:"success_probability,omitempty"`

	// Metadata carries source fields with no typed home.
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Validate checks if the Node has all required fields set.
func (n *Node) Validate() error {
	if n.SourceID == "" {
		return ErrEmptySourceID
	}
	if !ValidLayer(n.Layer) {
		return fmt.Errorf("%w: %q", ErrUnknownLayer, n.Layer)
	}
	return nil
}

// DisplayName returns the node's primary label for summaries and logs.
func (n *Node) DisplayName() string {
	if n.Title != "" {
		return n.Title
	}
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// SearchText returns the concatenation of the node's designated text
// fields for vector indexing. An empty string marks the node as
// non-text-bearing and excludes it from the layer's corpus.
func (n *Node) SearchText() string {
	var parts []string
	switch n.Type {
	case PaperNodeType:
		parts = append(parts, n.Title)
		parts = append(parts, n.Authors...)
		parts = append(parts, n.Category)
	case ResearcherNodeType:
		parts = append(parts, n.Name, n.Institution, n.PrimaryField)
	case InstitutionNodeType:
		parts = append(parts, n.Name, n.Country)
	case InvestmentTargetNodeType:
		parts = append(parts, n.Name, n.Sector, n.Thesis)
	case MarketTrendNodeType:
		parts = append(parts, n.Name, n.Description, n.Sector)
	case PotentialFounderNodeType:
		parts = append(parts, n.Name, n.Expertise, n.Background)
	case StartupArchetypeNodeType:
		parts = append(parts, n.Name, n.Description, n.Domain)
	}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// Attributes projects the populated payload fields into a map for the
// query result contract. The shared base fields are not included.
func (n *Node) Attributes() map[string]interface{} {
	attrs := make(map[string]interface{})
	put := func(key string, v interface{}) {
		switch val := v.(type) {
		case string:
			if val != "" {
				attrs[key] = val
			}
		case int:
			if val != 0 {
				attrs[key] = val
			}
		case float64:
			if val != 0 {
				attrs[key] = val
			}
		case []string:
			if len(val) > 0 {
				attrs[key] = val
			}
		}
	}
	put("title", n.Title)
	put("authors", n.Authors)
	put("year", n.Year)
	put("venue", n.Venue)
	put("citation_count", n.CitationCount)
	put("methodology", n.Methodology)
	put("category", n.Category)
	put("name", n.Name)
	put("institution", n.Institution)
	put("h_index", n.HIndex)
	put("total_citations", n.TotalCitations)
	put("primary_field", n.PrimaryField)
	put("years_active", n.YearsActive)
	put("country", n.Country)
	put("ranking", n.Ranking)
	put("research_output", n.ResearchOutput)
	put("sector", n.Sector)
	put("funding_stage", n.FundingStage)
	put("market_potential", n.MarketPotential)
	put("thesis", n.Thesis)
	put("description", n.Description)
	put("momentum", n.Momentum)
	put("domain", n.Domain)
	put("expertise", n.Expertise)
	put("background", n.Background)
	put("success_probability", n.SuccessProbability)
	for k, v := range n.Metadata {
		attrs[k] = v
	}
	return attrs
}

// Edge represents a typed, directed connection between two nodes of the
// same layer. Source and Target are node ids, not source ids.
type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type"`

	// Citation fields
	Context      string `json:"context,omitempty"`
	Sentiment    string `json:"sentiment,omitempty"`
	SelfCitation bool   `json:"self_citation,omitempty"`

	// Weighted link fields
	Strength float64 `json:"strength,omitempty"`
}
