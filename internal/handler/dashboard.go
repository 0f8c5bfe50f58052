package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/slomo31/nba-q1-system/internal/grade"
	"github.com/slomo31/nba-q1-system/internal/models"
	"github.com/slomo31/nba-q1-system/internal/store"
)

// DashboardHandler serves the read side: the game log summary, prediction
// runs, picks and the running record.
type DashboardHandler struct {
	Games       store.GameStore
	Predictions store.PredictionStore
	Results     store.ResultStore
	Grading     grade.Params
	Now         func() time.Time
}

func (h *DashboardHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1")
	group.GET("/games/summary", h.gamesSummary)
	group.GET("/predictions", h.predictions)
	group.GET("/picks", h.picks)
	group.GET("/results", h.results)
	group.GET("/performance", h.performance)
}

func (h *DashboardHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// queryDate reads the optional ?date=YYYY-MM-DD param, defaulting to today.
func (h *DashboardHandler) queryDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		now := h.now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	}
	date, err := time.Parse(models.DateFormat, raw)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid date, want YYYY-MM-DD", nil)
		return time.Time{}, false
	}
	return date, true
}

func (h *DashboardHandler) gamesSummary(c *gin.Context) {
	games, err := h.Games.All(c.Request.Context())
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	summary := gin.H{"games": len(games)}
	if len(games) > 0 {
		var q1Sum int
		teams := map[string]struct{}{}
		for _, g := range games {
			q1Sum += g.Q1Total()
			teams[g.AwayTeam] = struct{}{}
			teams[g.HomeTeam] = struct{}{}
		}
		summary["first_date"] = games[0].Date.Format(models.DateFormat)
		summary["last_date"] = games[len(games)-1].Date.Format(models.DateFormat)
		summary["teams"] = len(teams)
		summary["avg_q1_total"] = float64(q1Sum) / float64(len(games))
	}
	Ok(c, summary, nil)
}

func (h *DashboardHandler) predictions(c *gin.Context) {
	date, ok := h.queryDate(c)
	if !ok {
		return
	}
	preds, err := h.Predictions.ListByDate(c.Request.Context(), date)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, preds, map[string]any{"date": date.Format(models.DateFormat), "count": len(preds)})
}

func (h *DashboardHandler) picks(c *gin.Context) {
	date, ok := h.queryDate(c)
	if !ok {
		return
	}
	preds, err := h.Predictions.ListByDate(c.Request.Context(), date)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	picks := make([]models.Prediction, 0, len(preds))
	for _, p := range preds {
		if p.IsPick {
			picks = append(picks, p)
		}
	}
	Ok(c, picks, map[string]any{"date": date.Format(models.DateFormat), "count": len(picks)})
}

func (h *DashboardHandler) results(c *gin.Context) {
	results, err := h.Results.All(c.Request.Context())
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	if raw := c.Query("date"); raw != "" {
		if _, err := time.Parse(models.DateFormat, raw); err != nil {
			Error(c, http.StatusBadRequest, "invalid date, want YYYY-MM-DD", nil)
			return
		}
		filtered := make([]models.GradedResult, 0, len(results))
		for _, r := range results {
			if r.Date.Format(models.DateFormat) == raw {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}
	if raw := c.Query("picks_only"); raw == "true" || raw == "1" {
		results = grade.PicksOnly(results)
	}
	Ok(c, results, map[string]any{"count": len(results)})
}

// performance reports the whole graded slate and the staked picks
// separately; only the picks carry profit.
func (h *DashboardHandler) performance(c *gin.Context) {
	results, err := h.Results.All(c.Request.Context())
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, gin.H{
		"overall": grade.Summarize(results, h.Grading),
		"picks":   grade.Summarize(grade.PicksOnly(results), h.Grading),
	}, nil)
}
