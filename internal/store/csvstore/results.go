package csvstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/slomo31/nba-q1-system/internal/models"
)

var resultsHeader = []string{
	"date", "away_team", "home_team",
	"prediction", "consistency", "play", "recommendation", "confidence",
	"actual_q1", "result", "margin", "threshold",
}

// ResultStore keeps all graded results in one append-only CSV file.
type ResultStore struct {
	path string
	mu   sync.Mutex
}

func NewResultStore(path string) *ResultStore {
	return &ResultStore{path: path}
}

func (s *ResultStore) All(ctx context.Context) ([]models.GradedResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *ResultStore) load() ([]models.GradedResult, error) {
	rows, cols, err := readRows(s.path)
	if err != nil {
		return nil, err
	}
	results := make([]models.GradedResult, 0, len(rows))
	for _, row := range rows {
		r, err := parseResultRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.path, err)
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *ResultStore) Has(ctx context.Context, key models.GameKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	results, err := s.load()
	if err != nil {
		return false, err
	}
	for _, r := range results {
		if r.Key() == key {
			return true, nil
		}
	}
	return false, nil
}

func (s *ResultStore) Append(ctx context.Context, result models.GradedResult) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return false, err
	}
	key := result.Key()
	for _, r := range existing {
		if r.Key() == key {
			return false, nil
		}
	}
	rows := make([][]string, 0, len(existing)+1)
	for _, r := range existing {
		rows = append(rows, resultRow(r))
	}
	rows = append(rows, resultRow(result))
	if err := writeAll(s.path, resultsHeader, rows); err != nil {
		return false, err
	}
	return true, nil
}

func resultRow(r models.GradedResult) []string {
	return []string{
		r.Date.Format(models.DateFormat),
		r.AwayTeam,
		r.HomeTeam,
		formatFloat(r.PredictedQ1),
		formatFloat(r.Consistency),
		fmt.Sprintf("%t", r.IsPick),
		r.Direction,
		r.Confidence,
		fmt.Sprintf("%d", r.ActualQ1),
		r.Outcome,
		formatFloat(r.Margin),
		formatFloat(r.Threshold),
	}
}

func parseResultRow(row []string, cols map[string]int) (models.GradedResult, error) {
	date, err := time.Parse(models.DateFormat, field(row, cols, "date"))
	if err != nil {
		return models.GradedResult{}, fmt.Errorf("bad result date %q: %w", field(row, cols, "date"), err)
	}
	r := models.GradedResult{
		Prediction: models.Prediction{
			Date:       date,
			AwayTeam:   field(row, cols, "away_team"),
			HomeTeam:   field(row, cols, "home_team"),
			Direction:  field(row, cols, "recommendation"),
			Confidence: field(row, cols, "confidence"),
			IsPick:     field(row, cols, "play") == "true",
		},
		Outcome: field(row, cols, "result"),
	}
	if r.PredictedQ1, err = floatField(row, cols, "prediction"); err != nil {
		return models.GradedResult{}, err
	}
	if r.Consistency, err = floatField(row, cols, "consistency"); err != nil {
		return models.GradedResult{}, err
	}
	if r.ActualQ1, err = intField(row, cols, "actual_q1"); err != nil {
		return models.GradedResult{}, err
	}
	if r.Margin, err = floatField(row, cols, "margin"); err != nil {
		return models.GradedResult{}, err
	}
	if r.Threshold, err = floatField(row, cols, "threshold"); err != nil {
		return models.GradedResult{}, err
	}
	return r, nil
}
