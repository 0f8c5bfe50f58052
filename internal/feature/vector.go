package feature

import (
	"time"

	"github.com/slomo31/nba-q1-system/internal/models"
)

// Columns is the feature layout the model trains and predicts on. Order
// matters: serialized models record this list and refuse to score vectors
// built with a different layout.
var Columns = []string{
	"away_q1_avg_l5",
	"away_pace",
	"home_q1_avg_l5",
	"home_pace",
	"combined_pace",
	"season_q1_avg",
	"home_advantage",
}

// Vector holds one matchup's features together with the stats that
// produced them.
type Vector struct {
	Away   TeamStats
	Home   TeamStats
	Values []float64
}

// Build assembles the feature vector for an away-at-home matchup dated
// gameDate, using only games strictly before that date.
func Build(games []models.GameRecord, awayTeam, homeTeam string, gameDate time.Time, window int) (Vector, error) {
	away, err := TeamStatsBefore(games, awayTeam, gameDate, window)
	if err != nil {
		return Vector{}, err
	}
	home, err := TeamStatsBefore(games, homeTeam, gameDate, window)
	if err != nil {
		return Vector{}, err
	}
	seasonAvg, ok := SeasonQ1Average(games, gameDate)
	if !ok {
		return Vector{}, &ErrInsufficientHistory{Team: "league", Have: 0, Window: 1}
	}
	combinedPace := (away.Pace + home.Pace) / 2
	return Vector{
		Away: away,
		Home: home,
		Values: []float64{
			away.Q1Avg,
			away.Pace,
			home.Q1Avg,
			home.Pace,
			combinedPace,
			seasonAvg,
			1, // home_advantage
		},
	}, nil
}
