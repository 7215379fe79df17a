package records

import "github.com/soundprediction/strata/pkg/types"

// Demo returns a small deterministic record set covering all three
// layers, with researchers R1 and R2 represented in every layer. Used
// by the demo server mode and integration tests.
func Demo() StaticSource {
	return StaticSource{
		types.LayerResearch: {
			{Type: types.PaperRecord, SourceID: "P1", Title: "Attention-Free Sequence Models", Authors: []string{"Mei Tanaka"}, Year: 2023, Venue: "NeurIPS", CitationCount: 412, Methodology: "empirical", Category: "machine learning"},
			{Type: types.PaperRecord, SourceID: "P2", Title: "Sparse Retrieval at Scale", Authors: []string{"Omar Haddad", "Mei Tanaka"}, Year: 2024, Venue: "SIGIR", CitationCount: 128, Methodology: "systems", Category: "information retrieval"},
			{Type: types.PaperRecord, SourceID: "P3", Title: "Protein Structure Search", Authors: []string{"Lena Fischer"}, Year: 2022, Venue: "Nature Methods", CitationCount: 89, Methodology: "empirical", Category: "computational biology"},
			{Type: types.ResearcherRecord, SourceID: "R1", Name: "Mei Tanaka", Institution: "ETH Zurich", HIndex: 34, TotalCitations: 5200, PrimaryField: "machine learning", YearsActive: 12},
			{Type: types.ResearcherRecord, SourceID: "R2", Name: "Omar Haddad", Institution: "MIT", HIndex: 21, TotalCitations: 1800, PrimaryField: "information retrieval", YearsActive: 8},
			{Type: types.InstitutionRecord, SourceID: "I1", Name: "ETH Zurich", Country: "Switzerland", Ranking: 9, ResearchOutput: 4300},
			{Type: types.InstitutionRecord, SourceID: "I2", Name: "MIT", Country: "USA", Ranking: 1, ResearchOutput: 6100},
			{Type: types.CitationRecord, CitingID: "P2", CitedID: "P1", Context: "extends the sequence model", Sentiment: "positive"},
			{Type: types.CitationRecord, CitingID: "P3", CitedID: "P1", Context: "applies to structure search", Sentiment: "neutral"},
		},
		types.LayerInvestor: {
			{Type: types.InvestmentTargetRecord, SourceID: "R1", Name: "Tanaka Dynamics", Sector: "AI infrastructure", FundingStage: "series_a", Thesis: "efficient sequence models for edge devices"},
			{Type: types.InvestmentTargetRecord, SourceID: "R2", Name: "Haddad Search", Sector: "enterprise search", FundingStage: "seed", Thesis: "sparse retrieval for private corpora"},
			{Type: types.MarketTrendRecord, SourceID: "T1", Name: "Edge AI", Description: "inference moving onto devices", Sector: "AI infrastructure", Momentum: "rising"},
			{Type: types.LinkRecord, SourceNodeID: "investment_target_R1", TargetNodeID: "market_trend_T1", EdgeType: types.MarketSignalEdgeType, Strength: 0.8},
		},
		types.LayerFounder: {
			{Type: types.PotentialFounderRecord, SourceID: "R1", Name: "Mei Tanaka", Expertise: "machine learning", Background: "led two research labs", YearsActive: 12},
			{Type: types.PotentialFounderRecord, SourceID: "R2", Name: "Omar Haddad", Expertise: "information retrieval", Background: "built production search systems", YearsActive: 8},
			{Type: types.StartupArchetypeRecord, SourceID: "S1", Name: "Deep Tech Spinout", Description: "research-driven company with long product cycles", Domain: "deep tech"},
			{Type: types.LinkRecord, SourceNodeID: "potential_founder_R1", TargetNodeID: "startup_archetype_S1", EdgeType: types.ArchetypeFitEdgeType, Strength: 0.7},
		},
	}
}
