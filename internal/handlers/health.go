package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandlers serves liveness and readiness probes.
type HealthHandlers struct {
	db *sql.DB
}

// NewHealthHandlers creates health check handlers.
func NewHealthHandlers(db *sql.DB) *HealthHandlers {
	return &HealthHandlers{db: db}
}

// Health handles GET /health
func (h *HealthHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "comandas-service",
	})
}

// Ready handles GET /ready. The service is ready once the database
// answers a ping.
func (h *HealthHandlers) Ready(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "database unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Metrics exposes Prometheus metrics on GET /metrics.
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
