package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StatsReporter is implemented by background workers
type StatsReporter interface {
	Stats() map[string]interface{}
}

type HealthHandler struct {
	startedAt time.Time
	workers   map[string]StatsReporter
}

func NewHealthHandler(workers map[string]StatsReporter) *HealthHandler {
	return &HealthHandler{
		startedAt: time.Now(),
		workers:   workers,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "storefront-service",
		"uptime":  time.Since(h.startedAt).String(),
	})
}

// Ready handles GET /ready, including worker stats
func (h *HealthHandler) Ready(c *gin.Context) {
	workers := make(map[string]interface{}, len(h.workers))
	for name, w := range h.workers {
		workers[name] = w.Stats()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"workers": workers,
	})
}
