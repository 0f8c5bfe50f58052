package models

import "github.com/shopspring/decimal"

// Grading outcomes.
const (
	OutcomeWin  = "WIN"
	OutcomeLoss = "LOSS"
)

// GradedResult is a prediction joined with the real Q1 total once the game
// has finished. A prediction is graded at most once; the result store
// rejects duplicate keys.
type GradedResult struct {
	Prediction

	ActualQ1  int     `json:"actual_q1"`
	Outcome   string  `json:"outcome"`
	Margin    float64 `json:"margin"`
	Threshold float64 `json:"threshold"`
}

// PerformanceSummary is a pure reduction over a set of graded results.
type PerformanceSummary struct {
	Total   int             `json:"total"`
	Wins    int             `json:"wins"`
	Losses  int             `json:"losses"`
	WinRate float64         `json:"win_rate"`
	Profit  decimal.Decimal `json:"profit"`
	ROI     decimal.Decimal `json:"roi"`
	AvgQ1   float64         `json:"avg_q1"`
}
