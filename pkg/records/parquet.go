package records

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/soundprediction/strata/pkg/types"
)

// parquetRecord is the flat columnar schema for a normalized record.
// Slice and map fields are carried as JSON strings.
type parquetRecord struct {
	Type     string `parquet:"type"`
	SourceID string `parquet:"source_id"`

	Title         string `parquet:"title"`
	Authors       string `parquet:"authors"` // JSON string
	Year          int32  `parquet:"year"`
	Venue         string `parquet:"venue"`
	CitationCount int32  `parquet:"citation_count"`
	Methodology   string `parquet:"methodology"`
	Category      string `parquet:"category"`

	Name           string `parquet:"name"`
	Institution    string `parquet:"institution"`
	HIndex         int32  `parquet:"h_index"`
	TotalCitations int32  `parquet:"total_citations"`
	PrimaryField   string `parquet:"primary_field"`
	YearsActive    int32  `parquet:"years_active"`

	Country        string `parquet:"country"`
	Ranking        int32  `parquet:"ranking"`
	ResearchOutput int32  `parquet:"research_output"`

	Sector             string  `parquet:"sector"`
	FundingStage       string  `parquet:"funding_stage"`
	MarketPotential    float64 `parquet:"market_potential"`
	Thesis             string  `parquet:"thesis"`
	Description        string  `parquet:"description"`
	Momentum           string  `parquet:"momentum"`
	Domain             string  `parquet:"domain"`
	Expertise          string  `parquet:"expertise"`
	Background         string  `parquet:"background"`
	SuccessProbability float64 `parquet:"success_probability"`

	CitingID     string `parquet:"citing_id"`
	CitedID      string `parquet:"cited_id"`
	Context      string `parquet:"context"`
	Sentiment    string `parquet:"sentiment"`
	SelfCitation bool   `parquet:"self_citation"`

	SourceNodeID string  `parquet:"source_node_id"`
	TargetNodeID string  `parquet:"target_node_id"`
	EdgeType     string  `parquet:"edge_type"`
	Strength     float64 `parquet:"strength"`

	Metadata string `parquet:"metadata"` // JSON string
}

// ParquetSource loads one Parquet file per layer.
type ParquetSource struct {
	Paths map[types.LayerID]string
}

// NewParquetSource creates a parquet source over the given paths.
func NewParquetSource(paths map[types.LayerID]string) *ParquetSource {
	return &ParquetSource{Paths: paths}
}

// Layer implements Source.
func (s *ParquetSource) Layer(ctx context.Context, id types.LayerID) ([]*types.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, ok := s.Paths[id]
	if !ok || path == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingCollection, id)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s (%s)", ErrMissingCollection, id, path)
	}

	rows, err := parquet.ReadFile[parquetRecord](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet records for layer %s: %w", id, err)
	}

	recs := make([]*types.Record, 0, len(rows))
	for i := range rows {
		rec, err := rows[i].toRecord()
		if err != nil {
			return nil, fmt.Errorf("failed to decode parquet record %d for layer %s: %w", i, id, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// WriteParquetFile writes a record collection as a Parquet file, the
// inverse of ParquetSource.Layer.
func WriteParquetFile(path string, recs []*types.Record) error {
	rows := make([]parquetRecord, 0, len(recs))
	for _, rec := range recs {
		row, err := fromRecord(rec)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("failed to write parquet records: %w", err)
	}
	return nil
}

func (p *parquetRecord) toRecord() (*types.Record, error) {
	rec := &types.Record{
		Type:     types.RecordType(p.Type),
		SourceID: p.SourceID,

		Title:         p.Title,
		Year:          int(p.Year),
		Venue:         p.Venue,
		CitationCount: int(p.CitationCount),
		Methodology:   p.Methodology,
		Category:      p.Category,

		Name:           p.Name,
		Institution:    p.Institution,
		HIndex:         int(p.HIndex),
		TotalCitations: int(p.TotalCitations),
		PrimaryField:   p.PrimaryField,
		YearsActive:    int(p.YearsActive),

		Country:        p.Country,
		Ranking:        int(p.Ranking),
		ResearchOutput: int(p.ResearchOutput),

		Sector:             p.Sector,
		FundingStage:       p.FundingStage,
		MarketPotential:    p.MarketPotential,
		Thesis:             p.Thesis,
		Description:        p.Description,
		Momentum:           p.Momentum,
		Domain:             p.Domain,
		Expertise:          p.Expertise,
		Background:         p.Background,
		SuccessProbability: p.SuccessProbability,

		CitingID:     p.CitingID,
		CitedID:      p.CitedID,
		Context:      p.Context,
		Sentiment:    p.Sentiment,
		SelfCitation: p.SelfCitation,

		SourceNodeID: p.SourceNodeID,
		TargetNodeID: p.TargetNodeID,
		EdgeType:     types.EdgeType(p.EdgeType),
		Strength:     p.Strength,
	}
	if p.Authors != "" {
		if err := json.Unmarshal([]byte(p.Authors), &rec.Authors); err != nil {
			return nil, fmt.Errorf("bad authors column: %w", err)
		}
	}
	if p.Metadata != "" {
		if err := json.Unmarshal([]byte(p.Metadata), &rec.Metadata); err != nil {
			return nil, fmt.Errorf("bad metadata column: %w", err)
		}
	}
	return rec, nil
}

func fromRecord(rec *types.Record) (parquetRecord, error) {
	row := parquetRecord{
		Type:     string(rec.Type),
		SourceID: rec.SourceID,

		Title:         rec.Title,
		Year:          int32(rec.Year),
		Venue:         rec.Venue,
		CitationCount: int32(rec.CitationCount),
		Methodology:   rec.Methodology,
		Category:      rec.Category,

		Name:           rec.Name,
		Institution:    rec.Institution,
		HIndex:         int32(rec.HIndex),
		TotalCitations: int32(rec.TotalCitations),
		PrimaryField:   rec.PrimaryField,
		YearsActive:    int32(rec.YearsActive),

		Country:        rec.Country,
		Ranking:        int32(rec.Ranking),
		ResearchOutput: int32(rec.ResearchOutput),

		Sector:             rec.Sector,
		FundingStage:       rec.FundingStage,
		MarketPotential:    rec.MarketPotential,
		Thesis:             rec.Thesis,
		Description:        rec.Description,
		Momentum:           rec.Momentum,
		Domain:             rec.Domain,
		Expertise:          rec.Expertise,
		Background:         rec.Background,
		SuccessProbability: rec.SuccessProbability,

		CitingID:     rec.CitingID,
		CitedID:      rec.CitedID,
		Context:      rec.Context,
		Sentiment:    rec.Sentiment,
		SelfCitation: rec.SelfCitation,

		SourceNodeID: rec.SourceNodeID,
		TargetNodeID: rec.TargetNodeID,
		EdgeType:     string(rec.EdgeType),
		Strength:     rec.Strength,
	}
	if len(rec.Authors) > 0 {
		data, err := json.Marshal(rec.Authors)
		if err != nil {
			return row, fmt.Errorf("failed to marshal authors: %w", err)
		}
		row.Authors = string(data)
	}
	if len(rec.Metadata) > 0 {
		data, err := json.Marshal(rec.Metadata)
		if err != nil {
			return row, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		row.Metadata = string(data)
	}
	return row, nil
}
