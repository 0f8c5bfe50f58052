package csvstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/slomo31/nba-q1-system/internal/models"
)

var gamesHeader = []string{
	"date", "away_team", "away_score", "away_q1",
	"home_team", "home_score", "home_q1",
	"q1_total", "total_score",
}

// GameStore keeps the completed-game table in a single CSV file.
type GameStore struct {
	path string
	mu   sync.Mutex
}

func NewGameStore(path string) *GameStore {
	return &GameStore{path: path}
}

func (s *GameStore) All(ctx context.Context) ([]models.GameRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *GameStore) load() ([]models.GameRecord, error) {
	rows, cols, err := readRows(s.path)
	if err != nil {
		return nil, err
	}
	games := make([]models.GameRecord, 0, len(rows))
	for _, row := range rows {
		g, err := parseGameRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.path, err)
		}
		games = append(games, g)
	}
	sortGames(games)
	return games, nil
}

func (s *GameStore) Append(ctx context.Context, games []models.GameRecord) (int, error) {
	if len(games) == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return 0, err
	}
	byKey := make(map[models.GameKey]int, len(existing))
	for i, g := range existing {
		byKey[g.Key()] = i
	}
	added := 0
	for _, g := range games {
		if idx, ok := byKey[g.Key()]; ok {
			// Duplicate key: keep the last record seen, as the scraper may
			// re-fetch a day with corrected linescores.
			existing[idx] = g
			continue
		}
		byKey[g.Key()] = len(existing)
		existing = append(existing, g)
		added++
	}
	sortGames(existing)

	rows := make([][]string, 0, len(existing))
	for _, g := range existing {
		rows = append(rows, gameRow(g))
	}
	if err := writeAll(s.path, gamesHeader, rows); err != nil {
		return 0, err
	}
	return added, nil
}

func (s *GameStore) LastDate(ctx context.Context) (time.Time, bool, error) {
	games, err := s.All(ctx)
	if err != nil {
		return time.Time{}, false, err
	}
	if len(games) == 0 {
		return time.Time{}, false, nil
	}
	return games[len(games)-1].Date, true, nil
}

func sortGames(games []models.GameRecord) {
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].Date.Before(games[j].Date)
	})
}

func parseGameRow(row []string, cols map[string]int) (models.GameRecord, error) {
	date, err := time.Parse(models.DateFormat, field(row, cols, "date"))
	if err != nil {
		return models.GameRecord{}, fmt.Errorf("bad date %q: %w", field(row, cols, "date"), err)
	}
	g := models.GameRecord{
		Date:     date,
		AwayTeam: field(row, cols, "away_team"),
		HomeTeam: field(row, cols, "home_team"),
	}
	if g.AwayScore, err = intField(row, cols, "away_score"); err != nil {
		return models.GameRecord{}, err
	}
	if g.AwayQ1, err = intField(row, cols, "away_q1"); err != nil {
		return models.GameRecord{}, err
	}
	if g.HomeScore, err = intField(row, cols, "home_score"); err != nil {
		return models.GameRecord{}, err
	}
	if g.HomeQ1, err = intField(row, cols, "home_q1"); err != nil {
		return models.GameRecord{}, err
	}
	return g, nil
}

func gameRow(g models.GameRecord) []string {
	return []string{
		g.Date.Format(models.DateFormat),
		g.AwayTeam,
		fmt.Sprintf("%d", g.AwayScore),
		fmt.Sprintf("%d", g.AwayQ1),
		g.HomeTeam,
		fmt.Sprintf("%d", g.HomeScore),
		fmt.Sprintf("%d", g.HomeQ1),
		fmt.Sprintf("%d", g.Q1Total()),
		fmt.Sprintf("%d", g.TotalScore()),
	}
}
