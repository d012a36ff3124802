package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartclaim/internal/port"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db      Pinger
	storage port.ObjectStorage
	bucket  string
}

// NewHealthHandler creates a new HealthHandler. storage may be nil when uploads
// are not configured.
func NewHealthHandler(db Pinger, storage port.ObjectStorage, bucket string) *HealthHandler {
	return &HealthHandler{db: db, storage: storage, bucket: bucket}
}

// Welcome handles GET /
func (h *HealthHandler) Welcome(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to SmartClaim-AI Backend!")
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		log.Printf("healthHandler.Readiness: database ping failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database not reachable"})
		return
	}
	if h.storage != nil {
		if err := h.storage.Ping(c.Request.Context(), h.bucket); err != nil {
			log.Printf("healthHandler.Readiness: storage ping failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "storage not reachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
