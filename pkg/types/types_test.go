package types

import (
	"errors"
	"testing"
)

func TestNodeValidation(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		wantErr error
	}{
		{
			name:    "valid node",
			node:    Node{ID: "paper_P1", Type: PaperNodeType, Layer: LayerResearch, SourceID: "P1"},
			wantErr: nil,
		},
		{
			name:    "empty source id",
			node:    Node{ID: "paper_P1", Type: PaperNodeType, Layer: LayerResearch},
			wantErr: ErrEmptySourceID,
		},
		{
			name:    "unknown layer",
			node:    Node{ID: "paper_P1", Type: PaperNodeType, Layer: "galactic", SourceID: "P1"},
			wantErr: ErrUnknownLayer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Node.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNodeID(t *testing.T) {
	if got := NodeID(PaperNodeType, "P1"); got != "paper_P1" {
		t.Errorf("NodeID() = %q, want %q", got, "paper_P1")
	}
	if got := NodeID(InvestmentTargetNodeType, "R7"); got != "investment_target_R7" {
		t.Errorf("NodeID() = %q, want %q", got, "investment_target_R7")
	}
}

func TestNodeSearchText(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "paper concatenates title, authors, category",
			node: Node{
				Type:     PaperNodeType,
				Title:    "Sparse Retrieval",
				Authors:  []string{"Ada Lovelace", "Alan Turing"},
				Category: "information retrieval",
			},
			want: "Sparse Retrieval Ada Lovelace Alan Turing information retrieval",
		},
		{
			name: "researcher concatenates name, institution, field",
			node: Node{
				Type:         ResearcherNodeType,
				Name:         "Grace Hopper",
				Institution:  "Yale",
				PrimaryField: "compilers",
			},
			want: "Grace Hopper Yale compilers",
		},
		{
			name: "empty fields are skipped",
			node: Node{Type: ResearcherNodeType, Name: "Grace Hopper"},
			want: "Grace Hopper",
		},
		{
			name: "untyped node has no text",
			node: Node{Type: "mystery"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.SearchText(); got != tt.want {
				t.Errorf("SearchText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNodeAttributesOmitsZeroValues(t *testing.T) {
	node := Node{
		ID:       "researcher_R1",
		Type:     ResearcherNodeType,
		Layer:    LayerResearch,
		SourceID: "R1",
		Name:     "Grace Hopper",
		HIndex:   15,
		Metadata: map[string]interface{}{"orcid": "0000-0001"},
	}

	attrs := node.Attributes()
	if attrs["name"] != "Grace Hopper" {
		t.Errorf("attrs[name] = %v", attrs["name"])
	}
	if attrs["h_index"] != 15 {
		t.Errorf("attrs[h_index] = %v", attrs["h_index"])
	}
	if attrs["orcid"] != "0000-0001" {
		t.Errorf("attrs[orcid] = %v", attrs["orcid"])
	}
	if _, ok := attrs["title"]; ok {
		t.Error("zero-valued title should be omitted")
	}
	if _, ok := attrs["total_citations"]; ok {
		t.Error("zero-valued total_citations should be omitted")
	}
}

func TestRecordValidation(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr error
	}{
		{
			name:    "valid paper",
			record:  Record{Type: PaperRecord, SourceID: "P1", Title: "Sparse Retrieval"},
			wantErr: nil,
		},
		{
			name:    "paper without title",
			record:  Record{Type: PaperRecord, SourceID: "P1"},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "valid researcher",
			record:  Record{Type: ResearcherRecord, SourceID: "R1", Name: "Grace Hopper"},
			wantErr: nil,
		},
		{
			name:    "researcher without name",
			record:  Record{Type: ResearcherRecord, SourceID: "R1"},
			wantErr: ErrEmptyName,
		},
		{
			name:    "valid citation",
			record:  Record{Type: CitationRecord, CitingID: "P1", CitedID: "P2"},
			wantErr: nil,
		},
		{
			name:    "citation missing endpoint",
			record:  Record{Type: CitationRecord, CitingID: "P1"},
			wantErr: ErrMissingEndpoint,
		},
		{
			name:    "link missing endpoint",
			record:  Record{Type: LinkRecord, SourceNodeID: "investment_target_R1"},
			wantErr: ErrMissingEndpoint,
		},
		{
			name:    "unknown record type",
			record:  Record{Type: "satellite", SourceID: "S1", Name: "x"},
			wantErr: ErrUnknownRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Record.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSearchConfigWithDefaults(t *testing.T) {
	var nilConfig *SearchConfig
	cfg := nilConfig.WithDefaults()
	if cfg.TopK != 5 || cfg.MinScore != 0.1 {
		t.Errorf("nil config defaults = %+v", cfg)
	}

	partial := (&SearchConfig{TopK: 12}).WithDefaults()
	if partial.TopK != 12 || partial.MinScore != 0.1 {
		t.Errorf("partial config defaults = %+v", partial)
	}
}

func TestValidLayer(t *testing.T) {
	for _, id := range LayerOrder {
		if !ValidLayer(id) {
			t.Errorf("ValidLayer(%q) = false", id)
		}
	}
	if ValidLayer("galactic") {
		t.Error("ValidLayer(galactic) = true")
	}
}
