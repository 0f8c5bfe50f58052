package service

import (
	"context"
	"time"

	"github.com/slomo31/nba-q1-system/internal/client/espn"
	"github.com/slomo31/nba-q1-system/internal/client/oddsapi"
	"github.com/slomo31/nba-q1-system/internal/models"
)

// In-memory stand-ins for the CSV stores and the HTTP clients.

type stubGameStore struct {
	games    []models.GameRecord
	appended []models.GameRecord
}

func (s *stubGameStore) All(ctx context.Context) ([]models.GameRecord, error) {
	return s.games, nil
}

func (s *stubGameStore) Append(ctx context.Context, games []models.GameRecord) (int, error) {
	existing := map[models.GameKey]struct{}{}
	for _, g := range s.games {
		existing[g.Key()] = struct{}{}
	}
	added := 0
	for _, g := range games {
		if _, ok := existing[g.Key()]; !ok {
			existing[g.Key()] = struct{}{}
			added++
		}
		s.games = append(s.games, g)
		s.appended = append(s.appended, g)
	}
	return added, nil
}

func (s *stubGameStore) LastDate(ctx context.Context) (time.Time, bool, error) {
	if len(s.games) == 0 {
		return time.Time{}, false, nil
	}
	last := s.games[0].Date
	for _, g := range s.games[1:] {
		if g.Date.After(last) {
			last = g.Date
		}
	}
	return last, true, nil
}

type stubPredictionStore struct {
	runs map[string][]models.Prediction
}

func newStubPredictionStore() *stubPredictionStore {
	return &stubPredictionStore{runs: map[string][]models.Prediction{}}
}

func (s *stubPredictionStore) SaveRun(ctx context.Context, date time.Time, preds []models.Prediction) error {
	s.runs[date.Format(models.DateFormat)] = preds
	return nil
}

func (s *stubPredictionStore) ListByDate(ctx context.Context, date time.Time) ([]models.Prediction, error) {
	return s.runs[date.Format(models.DateFormat)], nil
}

type stubResultStore struct {
	results []models.GradedResult
}

func (s *stubResultStore) All(ctx context.Context) ([]models.GradedResult, error) {
	return s.results, nil
}

func (s *stubResultStore) Has(ctx context.Context, key models.GameKey) (bool, error) {
	for _, r := range s.results {
		if r.Key() == key {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubResultStore) Append(ctx context.Context, result models.GradedResult) (bool, error) {
	ok, _ := s.Has(ctx, result.Key())
	if ok {
		return false, nil
	}
	s.results = append(s.results, result)
	return true, nil
}

type stubScoreboard struct {
	byDate map[string]*espn.ScoreboardResponse
	calls  []string
}

func (s *stubScoreboard) Scoreboard(ctx context.Context, date time.Time) (*espn.ScoreboardResponse, error) {
	key := date.Format(models.DateFormat)
	s.calls = append(s.calls, key)
	if sb, ok := s.byDate[key]; ok {
		return sb, nil
	}
	return &espn.ScoreboardResponse{}, nil
}

type stubOdds struct {
	events []oddsapi.Event
}

func (s *stubOdds) UpcomingEvents(ctx context.Context) ([]oddsapi.Event, error) {
	return s.events, nil
}

type fixedPredictor struct {
	value      float64
	columnsErr error
}

func (p fixedPredictor) Predict(features []float64) (float64, error) {
	return p.value, nil
}

func (p fixedPredictor) FeatureColumns() []string {
	return nil
}

func (p fixedPredictor) CheckColumns(columns []string) error {
	return p.columnsErr
}

func scoreboardEvent(completed bool, away string, awayQ1 int, home string, homeQ1 int, hasQ1 bool) espn.Event {
	competitors := []espn.Competitor{
		{HomeAway: "home", Score: "110", Team: espn.Team{Abbreviation: home}},
		{HomeAway: "away", Score: "105", Team: espn.Team{Abbreviation: away}},
	}
	if hasQ1 {
		competitors[0].Linescores = []espn.Linescore{{Value: float64(homeQ1)}}
		competitors[1].Linescores = []espn.Linescore{{Value: float64(awayQ1)}}
	}
	return espn.Event{
		Status:       espn.EventStatus{Type: espn.EventStatusType{Completed: completed}},
		Competitions: []espn.Competition{{Competitors: competitors}},
	}
}
