// Package teams maps free-text NBA team names to canonical 3-letter codes.
//
// Odds feeds use full names ("Golden State Warriors"), ESPN uses
// abbreviations that mostly match ours but not always ("GS", "NO", "SA").
// Normalize rejects anything it cannot map so that a renamed or misspelled
// team never flows through the pipeline as a literal string.
package teams

import "strings"

var codeByName = map[string]string{
	"Atlanta": "ATL", "Atlanta Hawks": "ATL", "Boston": "BOS", "Boston Celtics": "BOS",
	"Brooklyn": "BKN", "Brooklyn Nets": "BKN", "Charlotte": "CHA", "Charlotte Hornets": "CHA",
	"Chicago": "CHI", "Chicago Bulls": "CHI", "Cleveland": "CLE", "Cleveland Cavaliers": "CLE",
	"Dallas": "DAL", "Dallas Mavericks": "DAL", "Denver": "DEN", "Denver Nuggets": "DEN",
	"Detroit": "DET", "Detroit Pistons": "DET", "Golden State": "GSW", "Golden State Warriors": "GSW",
	"Houston": "HOU", "Houston Rockets": "HOU", "Indiana": "IND", "Indiana Pacers": "IND",
	"LA Clippers": "LAC", "Los Angeles Clippers": "LAC", "L.A. Clippers": "LAC",
	"LA Lakers": "LAL", "Los Angeles Lakers": "LAL", "L.A. Lakers": "LAL",
	"Memphis": "MEM", "Memphis Grizzlies": "MEM", "Miami": "MIA", "Miami Heat": "MIA",
	"Milwaukee": "MIL", "Milwaukee Bucks": "MIL", "Minnesota": "MIN", "Minnesota Timberwolves": "MIN",
	"New Orleans": "NOP", "New Orleans Pelicans": "NOP", "New York": "NYK", "New York Knicks": "NYK",
	"Oklahoma City": "OKC", "Oklahoma City Thunder": "OKC", "Orlando": "ORL", "Orlando Magic": "ORL",
	"Philadelphia": "PHI", "Philadelphia 76ers": "PHI", "Phoenix": "PHX", "Phoenix Suns": "PHX",
	"Portland": "POR", "Portland Trail Blazers": "POR", "Sacramento": "SAC", "Sacramento Kings": "SAC",
	"San Antonio": "SAS", "San Antonio Spurs": "SAS", "Toronto": "TOR", "Toronto Raptors": "TOR",
	"Utah": "UTA", "Utah Jazz": "UTA", "Washington": "WAS", "Washington Wizards": "WAS",
}

// Alternate abbreviations seen in scoreboard feeds.
var codeByAbbrev = map[string]string{
	"GS": "GSW", "NO": "NOP", "NY": "NYK", "SA": "SAS",
	"PHO": "PHX", "BRK": "BKN", "CHO": "CHA", "WSH": "WAS", "UTAH": "UTA",
}

var canonical = func() map[string]struct{} {
	set := make(map[string]struct{}, 30)
	for _, code := range codeByName {
		set[code] = struct{}{}
	}
	return set
}()

// Normalize resolves a team name or abbreviation to its canonical code.
// Unknown names are rejected rather than passed through: returning the raw
// string would silently create phantom teams in the game store.
func Normalize(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", false
	}
	if _, ok := canonical[trimmed]; ok {
		return trimmed, true
	}
	if code, ok := codeByName[trimmed]; ok {
		return code, true
	}
	upper := strings.ToUpper(trimmed)
	if _, ok := canonical[upper]; ok {
		return upper, true
	}
	if code, ok := codeByAbbrev[upper]; ok {
		return code, true
	}
	return "", false
}

// IsCanonical reports whether code is one of the 30 canonical team codes.
func IsCanonical(code string) bool {
	_, ok := canonical[code]
	return ok
}
