package strata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soundprediction/strata/pkg/config"
	"github.com/soundprediction/strata/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Run a one-shot multi-layer query",
	Long: `Run a single weighted query against the knowledge engine and print the
result as JSON.

Layer weights control how much each layer contributes to the analysis.
A layer with weight zero is skipped entirely.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

var (
	researchWeight float64
	investorWeight float64
	founderWeight  float64
)

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().Float64Var(&researchWeight, "research-weight", 1.0, "Weight for the research layer")
	queryCmd.Flags().Float64Var(&investorWeight, "investor-weight", 1.0, "Weight for the investor layer")
	queryCmd.Flags().Float64Var(&founderWeight, "founder-weight", 1.0, "Weight for the founder layer")

	queryCmd.Flags().Bool("demo", false, "Query the built-in demo record set")
	queryCmd.Flags().String("data-format", "yaml", "Record file format (yaml, parquet)")
	queryCmd.Flags().String("research-records", "", "Path to the research layer record file")
	queryCmd.Flags().String("investor-records", "", "Path to the investor layer record file")
	queryCmd.Flags().String("founder-records", "", "Path to the founder layer record file")
	queryCmd.Flags().String("store-path", "", "Path to the local record staging store (optional)")
	queryCmd.Flags().Int("top-k", 5, "Maximum matches per layer")
	queryCmd.Flags().Float64("min-score", 0.1, "Minimum similarity for a match")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	overrideConfigWithFlags(cmd, cfg)

	if !cfg.Data.Demo && cfg.Data.Research == "" && cfg.Data.Investor == "" && cfg.Data.Founder == "" {
		return fmt.Errorf("no record files configured; pass --demo or at least one *-records flag")
	}

	logger := newLogger(cfg)

	ctx := context.Background()
	engine, err := initializeEngine(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize strata: %w", err)
	}
	defer engine.Close()

	weights := map[types.LayerID]float64{
		types.LayerResearch: researchWeight,
		types.LayerInvestor: investorWeight,
		types.LayerFounder:  founderWeight,
	}

	result, err := engine.Query(ctx, args[0], weights)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
