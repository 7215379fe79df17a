// Package scoring derives investment and founder signal scores for
// nodes whose source records do not carry them.
//
// Scores are always computed from observable input metrics so that a
// rebuild from the same records produces the same snapshot. Callers
// that want a different policy (for example, a model-backed scorer)
// supply their own Scorer implementation.
package scoring

import (
	"strings"

	"github.com/soundprediction/strata/pkg/types"
)

// Scorer produces derived signal scores in [0, 1] for a node.
type Scorer interface {
	// MarketPotential scores an investment-target node.
	MarketPotential(n *types.Node) float64
	// SuccessProbability scores a potential-founder node.
	SuccessProbability(n *types.Node) float64
}

// stageWeight ranks funding stages by maturity.
var stageWeight = map[string]float64{
	"pre-seed": 0.05,
	"seed":     0.15,
	"series_a": 0.25,
	"series_b": 0.35,
	"growth":   0.45,
}

// DefaultScorer is the deterministic reference heuristic.
//
// Market potential starts from a 0.3 floor, adds the funding-stage
// weight and small bonuses for a declared sector and an articulated
// thesis. Success probability starts from a 0.3 floor and rewards
// years of activity (capped at ten), declared expertise and a
// documented background. Both are clamped to [0, 1].
type DefaultScorer struct{}

// MarketPotential implements Scorer.
func (DefaultScorer) MarketPotential(n *types.Node) float64 {
	score := 0.3
	score += stageWeight[strings.ToLower(strings.TrimSpace(n.FundingStage))]
	if n.Sector != "" {
		score += 0.1
	}
	if n.Thesis != "" {
		score += 0.1
	}
	return clamp01(score)
}

// SuccessProbability implements Scorer.
func (DefaultScorer) SuccessProbability(n *types.Node) float64 {
	score := 0.3
	years := n.YearsActive
	if years > 10 {
		years = 10
	}
	score += 0.03 * float64(years)
	if n.Expertise != "" {
		score += 0.15
	}
	if n.Background != "" {
		score += 0.1
	}
	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
