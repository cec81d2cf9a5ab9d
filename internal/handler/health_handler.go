package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	vocabularyVersion int
	limitsVersion     int
}

// NewHealthHandler creates a new HealthHandler reporting the loaded resource versions.
func NewHealthHandler(vocabularyVersion, limitsVersion int) *HealthHandler {
	return &HealthHandler{vocabularyVersion: vocabularyVersion, limitsVersion: limitsVersion}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":             "ok",
		"vocabulary_version": h.vocabularyVersion,
		"limits_version":     h.limitsVersion,
	})
}
