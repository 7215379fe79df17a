package types

import "fmt"

// RecordType tags a normalized input record.
type RecordType string

const (
	PaperRecord            RecordType = "paper"
	ResearcherRecord       RecordType = "researcher"
	InstitutionRecord      RecordType = "institution"
	CitationRecord         RecordType = "citation"
	InvestmentTargetRecord RecordType = "investment_target"
	MarketTrendRecord      RecordType = "market_trend"
	PotentialFounderRecord RecordType = "potential_founder"
	StartupArchetypeRecord RecordType = "startup_archetype"
	// LinkRecord is a generic typed edge between two node ids of a layer.
	LinkRecord RecordType = "link"
)

// Record is a single normalized input record as supplied by the record
// normalizer collaborator. The Type tag determines which fields are
// read; everything else is ignored.
type Record struct {
	Type     RecordType `json:"type" yaml:"type"`
	SourceID string     `json:"source_id" yaml:"source_id"`

	// Paper fields
	Title         string   `json:"title,omitempty" yaml:"title,omitempty"`
	Authors       []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Year          int      `json:"year,omitempty" yaml:"year,omitempty"`
	Venue         string   `json:"venue,omitempty" yaml:"venue,omitempty"`
	CitationCount int      `json:"citation_count,omitempty" yaml:"citation_count,omitempty"`
	Methodology   string   `json:"methodology,omitempty" yaml:"methodology,omitempty"`
	Category      string   `json:"category,omitempty" yaml:"category,omitempty"`

	// Researcher fields
	Name           string `json:"name,omitempty" yaml:"name,omitempty"`
	Institution    string `json:"institution,omitempty" yaml:"institution,omitempty"`
	HIndex         int    `json:"h_index,omitempty" yaml:"h_index,omitempty"`
	TotalCitations int    `json:"total_citations,omitempty" yaml:"total_citations,omitempty"`
	PrimaryField   string `json:"primary_field,omitempty" yaml:"primary_field,omitempty"`
	YearsActive    int    `json:"years_active,omitempty" yaml:"years_active,omitempty"`

	// Institution fields
	Country        string `json:"country,omitempty" yaml:"country,omitempty"`
	Ranking        int    `json:"ranking,omitempty" yaml:"ranking,omitempty"`
	ResearchOutput int    `json:"research_output,omitempty" yaml:"research_output,omitempty"`

	// Investment / trend / founder / archetype fields
	Sector             string  `json:"sector,omitempty" yaml:"sector,omitempty"`
	FundingStage       string  `json:"funding_stage,omitempty" yaml:"funding_stage,omitempty"`
	MarketPotential    float64 `json:"market_potential,omitempty" yaml:"market_potential,omitempty"`
	Thesis             string  `json:"thesis,omitempty" yaml:"thesis,omitempty"`
	Description        string  `json:"description,omitempty" yaml:"description,omitempty"`
	Momentum           string  `json:"momentum,omitempty" yaml:"momentum,omitempty"`
	Domain             string  `json:"domain,omitempty" yaml:"domain,omitempty"`
	Expertise          string  `json:"expertise,omitempty" yaml:"expertise,omitempty"`
	Background         string  `json:"background,omitempty" yaml:"background,omitempty"`
	SuccessProbability float64 `json:"success_probability,omitempty" yaml:"success_probability,omitempty"`

	// Citation fields. CitingID and CitedID are paper source ids.
	CitingID     string `json:"citing_id,omitempty" yaml:"citing_id,omitempty"`
	CitedID      string `json:"cited_id,omitempty" yaml:"cited_id,omitempty"`
	Context      string `json:"context,omitempty" yaml:"context,omitempty"`
	Sentiment    string `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
	SelfCitation bool   `json:"self_citation,omitempty" yaml:"self_citation,omitempty"`

	// Link fields. SourceNodeID and TargetNodeID are full node ids.
	SourceNodeID string   `json:"source_node_id,omitempty" yaml:"source_node_id,omitempty"`
	TargetNodeID string   `json:"target_node_id,omitempty" yaml:"target_node_id,omitempty"`
	EdgeType     EdgeType `json:"edge_type,omitempty" yaml:"edge_type,omitempty"`
	Strength     float64  `json:"strength,omitempty" yaml:"strength,omitempty"`

	Metadata map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// IsEdge reports whether the record describes an edge rather than a node.
func (r *Record) IsEdge() bool {
	return r.Type == CitationRecord || r.Type == LinkRecord
}

// NodeType returns the node type a non-edge record materializes as.
func (r *Record) NodeType() (NodeType, error) {
	switch r.Type {
	case PaperRecord:
		return PaperNodeType, nil
	case ResearcherRecord:
		return ResearcherNodeType, nil
	case InstitutionRecord:
		return InstitutionNodeType, nil
	case InvestmentTargetRecord:
		return InvestmentTargetNodeType, nil
	case MarketTrendRecord:
		return MarketTrendNodeType, nil
	case PotentialFounderRecord:
		return PotentialFounderNodeType, nil
	case StartupArchetypeRecord:
		return StartupArchetypeNodeType, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRecord, r.Type)
	}
}

// Validate checks the record carries the fields its type requires.
func (r *Record) Validate() error {
	switch r.Type {
	case CitationRecord:
		if r.CitingID == "" || r.CitedID == "" {
			return ErrMissingEndpoint
		}
		return nil
	case LinkRecord:
		if r.SourceNodeID == "" || r.TargetNodeID == "" {
			return ErrMissingEndpoint
		}
		return nil
	case PaperRecord:
		if r.SourceID == "" {
			return ErrEmptySourceID
		}
		if r.Title == "" {
			return ErrEmptyTitle
		}
		return nil
	default:
		if _, err := r.NodeType(); err != nil {
			return err
		}
		if r.SourceID == "" {
			return ErrEmptySourceID
		}
		if r.Name == "" {
			return ErrEmptyName
		}
		return nil
	}
}
