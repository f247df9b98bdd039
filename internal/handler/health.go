package handler

import (
	"net/http"

	"krypto-backend/pkg/tracing"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health check
// @Description  Reports liveness, the build version and the cache backend in use
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"cache":   h.cacheBackend,
		"version": tracing.Version,
	})
}
