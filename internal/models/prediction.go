package models

import "time"

// Recommended directions relative to the implied line.
const (
	DirectionOver  = "OVER"
	DirectionUnder = "UNDER"
	DirectionNone  = "NONE"
)

// Confidence labels assigned during ranking. Non-picks stay at NONE.
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceNone   = "NONE"
)

// Prediction is one scored upcoming game. Created once per game per scoring
// run; only IsPick, Direction and Confidence change afterwards, during
// ranking.
type Prediction struct {
	Date     time.Time `json:"date"`
	GameTime string    `json:"game_time,omitempty"`
	AwayTeam string    `json:"away_team"`
	HomeTeam string    `json:"home_team"`

	AwayQ1Avg   float64  `json:"away_q1_avg"`
	HomeQ1Avg   float64  `json:"home_q1_avg"`
	PredictedQ1 float64  `json:"predicted_q1"`
	VegasTotal  *float64 `json:"vegas_total,omitempty"`

	// Consistency is 10 minus the combined stddev of both teams' last-5 Q1
	// scores. It is a stability proxy, not a calibrated probability.
	Consistency float64 `json:"consistency"`

	IsPick     bool   `json:"is_pick"`
	Direction  string `json:"direction"`
	Confidence string `json:"confidence"`
}

func (p Prediction) Key() GameKey {
	return GameKey{
		Date:     p.Date.Format(DateFormat),
		AwayTeam: p.AwayTeam,
		HomeTeam: p.HomeTeam,
	}
}
