package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/slomo31/nba-q1-system/internal/grade"
	"github.com/slomo31/nba-q1-system/internal/models"
)

type stubGames struct {
	games []models.GameRecord
}

func (s *stubGames) All(ctx context.Context) ([]models.GameRecord, error) { return s.games, nil }
func (s *stubGames) Append(ctx context.Context, games []models.GameRecord) (int, error) {
	return 0, nil
}
func (s *stubGames) LastDate(ctx context.Context) (time.Time, bool, error) {
	return time.Time{}, false, nil
}

type stubPredictions struct {
	preds []models.Prediction
}

func (s *stubPredictions) SaveRun(ctx context.Context, date time.Time, preds []models.Prediction) error {
	return nil
}
func (s *stubPredictions) ListByDate(ctx context.Context, date time.Time) ([]models.Prediction, error) {
	return s.preds, nil
}

type stubResults struct {
	results []models.GradedResult
}

func (s *stubResults) All(ctx context.Context) ([]models.GradedResult, error) {
	return s.results, nil
}
func (s *stubResults) Has(ctx context.Context, key models.GameKey) (bool, error) {
	return false, nil
}
func (s *stubResults) Append(ctx context.Context, r models.GradedResult) (bool, error) {
	return false, nil
}

func testRouter(h *DashboardHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.Register(r)
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return w, resp
}

func TestGamesSummary(t *testing.T) {
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	h := &DashboardHandler{
		Games: &stubGames{games: []models.GameRecord{
			{Date: day, AwayTeam: "BOS", HomeTeam: "NYK", AwayQ1: 28, HomeQ1: 26},
			{Date: day.AddDate(0, 0, 1), AwayTeam: "LAL", HomeTeam: "GSW", AwayQ1: 30, HomeQ1: 24},
		}},
		Predictions: &stubPredictions{},
		Results:     &stubResults{},
	}
	w, resp := doGet(t, testRouter(h), "/api/v1/games/summary")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	data := resp.Data.(map[string]any)
	if data["games"].(float64) != 2 {
		t.Fatalf("games: %v", data["games"])
	}
	if data["teams"].(float64) != 4 {
		t.Fatalf("teams: %v", data["teams"])
	}
	if data["last_date"] != "2026-01-06" {
		t.Fatalf("last_date: %v", data["last_date"])
	}
}

func TestPicksFiltersToPlays(t *testing.T) {
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	h := &DashboardHandler{
		Games: &stubGames{},
		Predictions: &stubPredictions{preds: []models.Prediction{
			{Date: day, AwayTeam: "BOS", HomeTeam: "NYK", IsPick: true, Direction: models.DirectionOver},
			{Date: day, AwayTeam: "LAL", HomeTeam: "GSW", Direction: models.DirectionNone},
		}},
		Results: &stubResults{},
	}
	r := testRouter(h)

	_, resp := doGet(t, r, "/api/v1/predictions?date=2026-01-05")
	if resp.Meta["count"].(float64) != 2 {
		t.Fatalf("predictions count: %v", resp.Meta["count"])
	}
	_, resp = doGet(t, r, "/api/v1/picks?date=2026-01-05")
	if resp.Meta["count"].(float64) != 1 {
		t.Fatalf("picks count: %v", resp.Meta["count"])
	}

	w, _ := doGet(t, r, "/api/v1/picks?date=notadate")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad date status=%d", w.Code)
	}
}

func gradedSlate(p grade.Params) []models.GradedResult {
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	pick1 := models.Prediction{Date: day, AwayTeam: "BOS", HomeTeam: "NYK", IsPick: true}
	pick2 := models.Prediction{Date: day, AwayTeam: "CHI", HomeTeam: "DET", IsPick: true}
	nonPick := models.Prediction{Date: day, AwayTeam: "LAL", HomeTeam: "GSW"}
	return []models.GradedResult{
		grade.Grade(pick1, 58, p),
		grade.Grade(pick2, 48, p),
		grade.Grade(nonPick, 55, p),
	}
}

func TestPerformanceSplitsPicksFromOverall(t *testing.T) {
	p := grade.Params{Threshold: 52.5, PayoutPerWin: decimal.RequireFromString("0.91")}
	h := &DashboardHandler{
		Games:       &stubGames{},
		Predictions: &stubPredictions{},
		Results:     &stubResults{results: gradedSlate(p)},
		Grading:     p,
	}
	w, resp := doGet(t, testRouter(h), "/api/v1/performance")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	data := resp.Data.(map[string]any)
	overall := data["overall"].(map[string]any)
	picks := data["picks"].(map[string]any)
	if overall["total"].(float64) != 3 || overall["wins"].(float64) != 2 || overall["losses"].(float64) != 1 {
		t.Fatalf("overall record: %v", overall)
	}
	if picks["total"].(float64) != 2 || picks["wins"].(float64) != 1 || picks["losses"].(float64) != 1 {
		t.Fatalf("picks record: %v", picks)
	}
	// One unit on each pick: 0.91 - 1.
	if picks["profit"].(string) != "-0.09" {
		t.Fatalf("picks profit: %v", picks["profit"])
	}
}

func TestResultsPicksOnlyFilter(t *testing.T) {
	p := grade.Params{Threshold: 52.5, PayoutPerWin: decimal.RequireFromString("0.91")}
	h := &DashboardHandler{
		Games:       &stubGames{},
		Predictions: &stubPredictions{},
		Results:     &stubResults{results: gradedSlate(p)},
		Grading:     p,
	}
	r := testRouter(h)

	_, resp := doGet(t, r, "/api/v1/results")
	if resp.Meta["count"].(float64) != 3 {
		t.Fatalf("results count: %v", resp.Meta["count"])
	}
	_, resp = doGet(t, r, "/api/v1/results?picks_only=true")
	if resp.Meta["count"].(float64) != 2 {
		t.Fatalf("picks_only count: %v", resp.Meta["count"])
	}
	_, resp = doGet(t, r, "/api/v1/results?date=2026-01-04")
	if resp.Meta["count"].(float64) != 0 {
		t.Fatalf("date filter count: %v", resp.Meta["count"])
	}
}
