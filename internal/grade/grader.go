// Package grade scores settled predictions against the Q1 total threshold.
package grade

import (
	"github.com/shopspring/decimal"

	"github.com/slomo31/nba-q1-system/internal/models"
)

// Params holds the grading line and payout schedule.
type Params struct {
	// Threshold is the Q1 total a game must exceed to grade WIN.
	Threshold float64
	// PayoutPerWin is the profit on one unit staked when a play wins.
	PayoutPerWin decimal.Decimal
}

// Grade scores one prediction against the actual combined Q1. A game
// grades WIN only when the actual strictly exceeds the threshold; landing
// exactly on it is a LOSS.
func Grade(pred models.Prediction, actualQ1 int, p Params) models.GradedResult {
	outcome := models.OutcomeLoss
	if float64(actualQ1) > p.Threshold {
		outcome = models.OutcomeWin
	}
	return models.GradedResult{
		Prediction: pred,
		ActualQ1:   actualQ1,
		Outcome:    outcome,
		Margin:     float64(actualQ1) - p.Threshold,
		Threshold:  p.Threshold,
	}
}

// PicksOnly filters a result set down to the games that were flagged as
// plays. Every prediction gets graded; only this subset carries stakes.
func PicksOnly(results []models.GradedResult) []models.GradedResult {
	picks := make([]models.GradedResult, 0, len(results))
	for _, r := range results {
		if r.IsPick {
			picks = append(picks, r)
		}
	}
	return picks
}

// Summarize aggregates graded results into the performance report. Profit
// assumes one unit per play: wins pay PayoutPerWin, losses cost the unit.
func Summarize(results []models.GradedResult, p Params) models.PerformanceSummary {
	s := models.PerformanceSummary{
		Profit: decimal.Zero,
		ROI:    decimal.Zero,
	}
	var q1Sum int
	for _, r := range results {
		s.Total++
		q1Sum += r.ActualQ1
		if r.Outcome == models.OutcomeWin {
			s.Wins++
		} else {
			s.Losses++
		}
	}
	if s.Total == 0 {
		return s
	}
	s.WinRate = float64(s.Wins) / float64(s.Total)
	s.AvgQ1 = float64(q1Sum) / float64(s.Total)
	s.Profit = p.PayoutPerWin.Mul(decimal.NewFromInt(int64(s.Wins))).
		Sub(decimal.NewFromInt(int64(s.Losses)))
	s.ROI = s.Profit.Div(decimal.NewFromInt(int64(s.Total)))
	return s
}
