package grade

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/slomo31/nba-q1-system/internal/models"
)

func params() Params {
	return Params{Threshold: 52.5, PayoutPerWin: decimal.RequireFromString("0.91")}
}

func samplePred() models.Prediction {
	return models.Prediction{
		Date:     time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		AwayTeam: "BOS", HomeTeam: "NYK",
		PredictedQ1: 55.2, Consistency: 4.0, IsPick: true,
		Direction: models.DirectionOver, Confidence: models.ConfidenceHigh,
	}
}

func TestGradeThresholdBoundary(t *testing.T) {
	cases := []struct {
		actual  int
		outcome string
		margin  float64
	}{
		{58, models.OutcomeWin, 5.5},
		{53, models.OutcomeWin, 0.5},
		{52, models.OutcomeLoss, -0.5},
		{48, models.OutcomeLoss, -4.5},
	}
	for _, tc := range cases {
		r := Grade(samplePred(), tc.actual, params())
		if r.Outcome != tc.outcome {
			t.Fatalf("actual=%d outcome=%s want %s", tc.actual, r.Outcome, tc.outcome)
		}
		if r.Margin != tc.margin {
			t.Fatalf("actual=%d margin=%v want %v", tc.actual, r.Margin, tc.margin)
		}
		if r.Threshold != 52.5 {
			t.Fatalf("threshold=%v", r.Threshold)
		}
	}
}

func TestGradeLandingOnThresholdLoses(t *testing.T) {
	// With a 52.6 line a 53-point quarter still clears it, with 53.0 an
	// exact 53 does not.
	r := Grade(samplePred(), 53, Params{Threshold: 52.6, PayoutPerWin: decimal.RequireFromString("0.91")})
	if r.Outcome != models.OutcomeWin {
		t.Fatalf("53 vs 52.6 should WIN, got %s", r.Outcome)
	}
	r = Grade(samplePred(), 53, Params{Threshold: 53.0, PayoutPerWin: decimal.RequireFromString("0.91")})
	if r.Outcome != models.OutcomeLoss {
		t.Fatalf("53 vs 53.0 should LOSS, got %s", r.Outcome)
	}
}

func TestSummarizeProfitAndROI(t *testing.T) {
	p := params()
	results := []models.GradedResult{
		Grade(samplePred(), 58, p),
		Grade(samplePred(), 55, p),
		Grade(samplePred(), 48, p),
	}
	s := Summarize(results, p)
	if s.Total != 3 || s.Wins != 2 || s.Losses != 1 {
		t.Fatalf("counts: %+v", s)
	}
	if s.WinRate < 0.666 || s.WinRate > 0.667 {
		t.Fatalf("win rate=%v", s.WinRate)
	}
	// 2 * 0.91 - 1 = 0.82 profit on 3 units staked.
	if !s.Profit.Equal(decimal.RequireFromString("0.82")) {
		t.Fatalf("profit=%s want 0.82", s.Profit)
	}
	roi, _ := s.ROI.Float64()
	if roi < 0.272 || roi > 0.274 {
		t.Fatalf("roi=%v want ~0.273", roi)
	}
	if want := (58.0 + 55 + 48) / 3; s.AvgQ1 != want {
		t.Fatalf("avg q1=%v want %v", s.AvgQ1, want)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, params())
	if s.Total != 0 || !s.Profit.IsZero() || !s.ROI.IsZero() {
		t.Fatalf("empty summary: %+v", s)
	}
}
