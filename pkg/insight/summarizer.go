// Package insight reduces query results into a compact recommendation.
// The text policy lives behind an interface so it can be swapped (for
// example, localized messages) without touching query logic.
package insight

import (
	"fmt"

	"github.com/soundprediction/strata/pkg/types"
)

// Summarizer turns the headline summary figures into a recommendation
// string. Implementations must be deterministic in the three inputs.
type Summarizer interface {
	Summarize(totalMatches, crossLayerConnections int, primaryLayer types.LayerID) string
}

// DefaultSummarizer is the reference English text policy.
type DefaultSummarizer struct{}

// Summarize implements Summarizer.
func (DefaultSummarizer) Summarize(totalMatches, crossLayerConnections int, primaryLayer types.LayerID) string {
	switch {
	case crossLayerConnections > 0:
		return fmt.Sprintf(
			"Found %d cross-layer connection(s) anchored in the %s layer across %d total match(es). Multi-layer analysis recommended.",
			crossLayerConnections, types.LayerName(primaryLayer), totalMatches)
	case totalMatches > 0:
		return fmt.Sprintf(
			"Found %d match(es), strongest in the %s layer, but no cross-layer connections. Consider broadening the search to other layers.",
			totalMatches, types.LayerName(primaryLayer))
	default:
		return "No significant matches found. Consider refining the query with more specific terms."
	}
}
