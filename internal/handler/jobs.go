package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JobFunc is one manually triggerable pipeline job.
type JobFunc func(ctx context.Context) error

// JobsHandler exposes the scheduled jobs for manual runs. Jobs execute
// inline; the handler returns once the run finishes.
type JobsHandler struct {
	Ingest JobFunc
	Score  JobFunc
	Track  JobFunc
	Train  JobFunc
	Logger *zap.Logger
}

func (h *JobsHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/jobs")
	group.POST("/ingest", h.run("ingest", h.Ingest))
	group.POST("/score", h.run("score", h.Score))
	group.POST("/track", h.run("track", h.Track))
	group.POST("/train", h.run("train", h.Train))
}

func (h *JobsHandler) run(name string, job JobFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if job == nil {
			Error(c, http.StatusNotImplemented, "job not configured", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.Info("manual job triggered", zap.String("job", name))
		}
		if err := job(c.Request.Context()); err != nil {
			Error(c, http.StatusInternalServerError, err.Error(), map[string]any{"job": name})
			return
		}
		Ok(c, gin.H{"job": name, "status": "completed"}, nil)
	}
}
