package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/strata"
	"github.com/soundprediction/strata/pkg/server/dto"
)

// HealthHandler handles health, readiness and statistics requests
type HealthHandler struct {
	engine strata.Strata
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(engine strata.Strata) *HealthHandler {
	return &HealthHandler{engine: engine}
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// LivenessCheck handles GET /live
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// ReadinessCheck handles GET /ready. The server is ready once the
// first snapshot has been published.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	if _, err := h.engine.Stats(); err != nil {
		if errors.Is(err, strata.ErrNotBuilt) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "reason": "engine not built"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "reason": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Stats handles GET /api/v1/stats
func (h *HealthHandler) Stats(c *gin.Context) {
	stats, err := h.engine.Stats()
	if err != nil {
		if errors.Is(err, strata.ErrNotBuilt) {
			c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Code: "not_built", Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: "stats_failed", Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.StatsResponse{
		RequestID:   requestID(c),
		EngineStats: stats,
	})
}
