// Package http implements the JSON API handlers.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/boxfs/boxfs/internal/logging"
	"github.com/boxfs/boxfs/internal/monitoring"
	"github.com/boxfs/boxfs/internal/service"
	"go.uber.org/zap"
)

// Version is the API version reported by the banner endpoint.
const Version = "1.0.0"

// Handlers carries the dependencies the API endpoints need.
type Handlers struct {
	registry *service.Registry
	metrics  *monitoring.Metrics
	log      *logging.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(registry *service.Registry, metrics *monitoring.Metrics, log *logging.Logger) *Handlers {
	return &Handlers{
		registry: registry,
		metrics:  metrics,
		log:      log,
	}
}

// executeRequest is the body of POST /tools/execute.
type executeRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params"`
}

// Root returns the service banner.
func (h *Handlers) Root(c *gin.Context) {
	stats := h.registry.Stats()
	c.JSON(http.StatusOK, gin.H{
		"service":  "boxfs",
		"version":  Version,
		"status":   "running",
		"services": stats["total_services"],
		"tools":    stats["total_tools"],
	})
}

// Health reports liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"uptime_seconds": h.metrics.UptimeSeconds(),
	})
}

// ListTools returns every advertised service definition. Tools gated
// off by permissions never appear here.
func (h *Handlers) ListTools(c *gin.Context) {
	services := h.registry.List(nil)
	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"count":    len(services),
	})
}

// DiscoverTools ranks services against a free-text intent.
func (h *Handlers) DiscoverTools(c *gin.Context) {
	var req struct {
		Intent string `json:"intent" binding:"required"`
		Limit  int    `json:"limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "intent is required"})
		return
	}
	if req.Limit <= 0 {
		req.Limit = 5
	}

	services := h.registry.Discover(req.Intent, req.Limit)
	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"count":    len(services),
	})
}

// ExecuteTool runs a single tool call. Expected operation failures come
// back as 200 with success=false; only a malformed body is a 400.
func (h *Handlers) ExecuteTool(c *gin.Context) {
	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tool_id is required"})
		return
	}
	if req.Params == nil {
		req.Params = map[string]interface{}{}
	}

	serviceID := serviceOf(req.ToolID)
	timer := monitoring.NewTimer(h.metrics, serviceID, req.ToolID)

	start := time.Now()
	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params)
	if err != nil {
		timer.Stop("error")
		h.metrics.RecordToolError(serviceID, req.ToolID)
		h.log.Error("tool execution failed",
			zap.String("tool_id", req.ToolID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.Success {
		timer.Stop("ok")
	} else {
		timer.Stop("failure")
		h.metrics.RecordToolError(serviceID, req.ToolID)
	}

	h.log.Debug("tool executed",
		zap.String("tool_id", req.ToolID),
		zap.Bool("success", result.Success),
		zap.Duration("duration", time.Since(start)),
	)

	c.JSON(http.StatusOK, result)
}

// Stats returns registry and request counters as JSON.
func (h *Handlers) Stats(c *gin.Context) {
	snapshot := h.metrics.Snapshot()

	avgDuration := 0.0
	if snapshot.RequestCount > 0 {
		avgDuration = snapshot.TotalDuration / float64(snapshot.RequestCount)
	}

	c.JSON(http.StatusOK, gin.H{
		"registry": h.registry.Stats(),
		"requests": gin.H{
			"total":            snapshot.TotalRequests,
			"errors":           snapshot.TotalErrors,
			"avg_duration_sec": avgDuration,
		},
		"uptime_seconds": h.metrics.UptimeSeconds(),
	})
}

// serviceOf extracts the service part of a tool ID.
func serviceOf(toolID string) string {
	for i := 0; i < len(toolID); i++ {
		if toolID[i] == '.' {
			return toolID[:i]
		}
	}
	return toolID
}
