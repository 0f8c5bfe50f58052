package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slomo31/nba-q1-system/internal/model"
	"github.com/slomo31/nba-q1-system/internal/store"
)

type HealthHandler struct {
	Games store.GameStore
	// Model returns the currently loaded predictor, nil before first load.
	Model func() *model.Artifact
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)
	r.GET("/readyz", h.ready)
}

func (h *HealthHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) ready(c *gin.Context) {
	if h.Games == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "store_missing"})
		return
	}
	if _, err := h.Games.All(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "store_unreadable"})
		return
	}
	if h.Model == nil || h.Model() == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "model_missing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
