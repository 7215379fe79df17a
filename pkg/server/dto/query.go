// Package dto defines the request/response contracts of the HTTP API
// and the validation that runs at the transport boundary.
package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/soundprediction/strata/pkg/types"
)

// Validation errors
var (
	ErrEmptyQuery       = errors.New("query field is required and cannot be empty")
	ErrNoLayerWeights   = errors.New("layer_weights field is required")
	ErrUnknownLayerID   = errors.New("unknown layer id")
	ErrWeightOutOfRange = errors.New("layer weight must be in [0, 1]")
)

// QueryRequest is the body of POST /api/v1/query.
type QueryRequest struct {
	Query        string             `json:"query"`
	LayerWeights map[string]float64 `json:"layer_weights"`
}

// Validate checks the request and converts the weights to typed layer
// ids. Unknown layer ids and out-of-range weights are rejected here,
// before the engine is ever invoked.
func (r *QueryRequest) Validate() (map[types.LayerID]float64, error) {
	if strings.TrimSpace(r.Query) == "" {
		return nil, ErrEmptyQuery
	}
	if len(r.LayerWeights) == 0 {
		return nil, ErrNoLayerWeights
	}

	weights := make(map[types.LayerID]float64, len(r.LayerWeights))
	for key, weight := range r.LayerWeights {
		id := types.LayerID(key)
		if !types.ValidLayer(id) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLayerID, key)
		}
		if weight < 0 || weight > 1 {
			return nil, fmt.Errorf("%w: %s=%v", ErrWeightOutOfRange, key, weight)
		}
		weights[id] = weight
	}
	return weights, nil
}

// QueryResponse wraps a query result with the request id assigned by
// the server.
type QueryResponse struct {
	RequestID string `json:"request_id"`
	*types.QueryResult
}

// StatsResponse wraps the engine statistics.
type StatsResponse struct {
	RequestID string `json:"request_id"`
	*types.EngineStats
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}
