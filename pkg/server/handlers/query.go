// Package handlers implements the HTTP request handlers of the API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/strata"
	"github.com/soundprediction/strata/pkg/server/dto"
)

// QueryHandler handles query and rebuild requests
type QueryHandler struct {
	engine strata.Strata
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(engine strata.Strata) *QueryHandler {
	return &QueryHandler{engine: engine}
}

// Query handles POST /api/v1/query
func (h *QueryHandler) Query(c *gin.Context) {
	var req dto.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "invalid_request", Error: err.Error()})
		return
	}

	weights, err := req.Validate()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "invalid_request", Error: err.Error()})
		return
	}

	result, err := h.engine.Query(c.Request.Context(), req.Query, weights)
	if err != nil {
		if errors.Is(err, strata.ErrNotBuilt) {
			c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Code: "not_built", Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: "query_failed", Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.QueryResponse{
		RequestID:   requestID(c),
		QueryResult: result,
	})
}

// Rebuild handles POST /api/v1/rebuild
func (h *QueryHandler) Rebuild(c *gin.Context) {
	if err := h.engine.Rebuild(c.Request.Context()); err != nil {
		if errors.Is(err, strata.ErrNoSourceData) {
			c.JSON(http.StatusConflict, dto.ErrorResponse{Code: "no_source_data", Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: "rebuild_failed", Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rebuilt", "request_id": requestID(c)})
}

func requestID(c *gin.Context) string {
	return c.GetString("request_id")
}
