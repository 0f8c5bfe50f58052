package models

import "time"

// DateFormat is the wire/storage format for game dates.
const DateFormat = "2006-01-02"

// GameRecord is one completed game in the historical store.
// The store keeps exactly one record per (date, away, home); records are
// append-only and never rewritten once stored.
type GameRecord struct {
	Date      time.Time `json:"date"`
	AwayTeam  string    `json:"away_team"`
	AwayScore int       `json:"away_score"`
	AwayQ1    int       `json:"away_q1"`
	HomeTeam  string    `json:"home_team"`
	HomeScore int       `json:"home_score"`
	HomeQ1    int       `json:"home_q1"`
}

// Q1Total is the combined first-quarter score of both teams.
func (g GameRecord) Q1Total() int { return g.AwayQ1 + g.HomeQ1 }

// TotalScore is the combined final score of both teams.
func (g GameRecord) TotalScore() int { return g.AwayScore + g.HomeScore }

func (g GameRecord) Key() GameKey {
	return GameKey{
		Date:     g.Date.Format(DateFormat),
		AwayTeam: g.AwayTeam,
		HomeTeam: g.HomeTeam,
	}
}

// GameKey identifies a matchup. It is the dedupe key for the game store and
// the idempotency key for result grading.
type GameKey struct {
	Date     string
	AwayTeam string
	HomeTeam string
}
