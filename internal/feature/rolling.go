// Package feature derives model inputs from the historical game log.
package feature

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/slomo31/nba-q1-system/internal/models"
)

// TeamStats summarizes one team's recent form as of a cutoff date. Only
// games strictly before the cutoff contribute, so stats computed for a
// game date never see that game's own scores.
type TeamStats struct {
	Team   string
	Q1Avg  float64
	Pace   float64
	LastQ1 []float64
}

// ErrInsufficientHistory is returned when a team has fewer completed games
// than the rolling window requires.
type ErrInsufficientHistory struct {
	Team   string
	Have   int
	Window int
}

func (e *ErrInsufficientHistory) Error() string {
	return fmt.Sprintf("team %s has %d games before cutoff, window needs %d", e.Team, e.Have, e.Window)
}

// TeamStatsBefore computes the rolling window stats for a team from games
// dated strictly before cutoff. Games must be sorted by date ascending.
func TeamStatsBefore(games []models.GameRecord, team string, cutoff time.Time, window int) (TeamStats, error) {
	var own []float64
	var totals []float64
	for _, g := range games {
		if !g.Date.Before(cutoff) {
			continue
		}
		switch team {
		case g.AwayTeam:
			own = append(own, float64(g.AwayQ1))
		case g.HomeTeam:
			own = append(own, float64(g.HomeQ1))
		default:
			continue
		}
		totals = append(totals, float64(g.TotalScore()))
	}
	if len(own) < window {
		return TeamStats{}, &ErrInsufficientHistory{Team: team, Have: len(own), Window: window}
	}
	own = own[len(own)-window:]
	totals = totals[len(totals)-window:]
	return TeamStats{
		Team:   team,
		Q1Avg:  stat.Mean(own, nil),
		Pace:   stat.Mean(totals, nil),
		LastQ1: own,
	}, nil
}

// SeasonQ1Average is the league-wide mean combined Q1 score over all games
// strictly before cutoff. Returns ok=false when no games qualify.
func SeasonQ1Average(games []models.GameRecord, cutoff time.Time) (float64, bool) {
	var totals []float64
	for _, g := range games {
		if g.Date.Before(cutoff) {
			totals = append(totals, float64(g.Q1Total()))
		}
	}
	if len(totals) == 0 {
		return 0, false
	}
	return stat.Mean(totals, nil), true
}

// Consistency scores a matchup by how steady both teams' recent Q1 output
// has been. Flat scoring histories approach 10, volatile ones fall toward
// zero or below.
func Consistency(away, home TeamStats) float64 {
	return 10 - (stat.PopStdDev(away.LastQ1, nil) + stat.PopStdDev(home.LastQ1, nil))
}
