package espn

import (
	"strconv"
	"time"
)

// ScoreboardResponse is the subset of the scoreboard payload we consume.
type ScoreboardResponse struct {
	Events []Event `json:"events"`
}

type Event struct {
	Status       EventStatus   `json:"status"`
	Competitions []Competition `json:"competitions"`
}

type EventStatus struct {
	Type EventStatusType `json:"type"`
}

type EventStatusType struct {
	Completed bool `json:"completed"`
}

type Competition struct {
	Competitors []Competitor `json:"competitors"`
}

type Competitor struct {
	HomeAway   string      `json:"homeAway"`
	Score      string      `json:"score"`
	Team       Team        `json:"team"`
	Linescores []Linescore `json:"linescores"`
}

type Team struct {
	Abbreviation string `json:"abbreviation"`
}

// Linescore values arrive as JSON numbers even though they are whole points.
type Linescore struct {
	Value float64 `json:"value"`
}

// BoxScore is one finished game flattened out of the scoreboard payload.
// Q1 scores are only present once the feed publishes linescores; HasQ1 is
// false until then.
type BoxScore struct {
	Date      time.Time
	AwayTeam  string
	HomeTeam  string
	AwayScore int
	HomeScore int
	AwayQ1    int
	HomeQ1    int
	HasQ1     bool
	Completed bool
}

// BoxScores flattens a scoreboard response. Events without two competitors
// are dropped.
func (sb *ScoreboardResponse) BoxScores(date time.Time) []BoxScore {
	if sb == nil {
		return nil
	}
	var out []BoxScore
	for _, ev := range sb.Events {
		if len(ev.Competitions) == 0 {
			continue
		}
		var home, away *Competitor
		for i := range ev.Competitions[0].Competitors {
			c := &ev.Competitions[0].Competitors[i]
			switch c.HomeAway {
			case "home":
				home = c
			case "away":
				away = c
			}
		}
		if home == nil || away == nil {
			continue
		}
		box := BoxScore{
			Date:      date,
			AwayTeam:  away.Team.Abbreviation,
			HomeTeam:  home.Team.Abbreviation,
			AwayScore: atoiOrZero(away.Score),
			HomeScore: atoiOrZero(home.Score),
			Completed: ev.Status.Type.Completed,
		}
		if len(away.Linescores) > 0 && len(home.Linescores) > 0 {
			box.AwayQ1 = int(away.Linescores[0].Value)
			box.HomeQ1 = int(home.Linescores[0].Value)
			box.HasQ1 = true
		}
		out = append(out, box)
	}
	return out
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
