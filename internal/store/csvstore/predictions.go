package csvstore

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/slomo31/nba-q1-system/internal/models"
)

var predictionsHeader = []string{
	"date", "game_time", "away_team", "home_team",
	"away_q1_avg", "home_q1_avg", "prediction", "vegas_total",
	"consistency", "play", "recommendation", "confidence",
}

// PredictionStore writes one predictions file per run date, plus a parlay
// file holding only the selected picks.
type PredictionStore struct {
	predictionsDir string
	parlaysDir     string
	mu             sync.Mutex
}

func NewPredictionStore(predictionsDir, parlaysDir string) *PredictionStore {
	return &PredictionStore{predictionsDir: predictionsDir, parlaysDir: parlaysDir}
}

func (s *PredictionStore) predictionsPath(date time.Time) string {
	return filepath.Join(s.predictionsDir, "predictions_"+date.Format("20060102")+".csv")
}

func (s *PredictionStore) parlayPath(date time.Time) string {
	return filepath.Join(s.parlaysDir, "parlay_"+date.Format("20060102")+".csv")
}

func (s *PredictionStore) SaveRun(ctx context.Context, date time.Time, predictions []models.Prediction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([][]string, 0, len(predictions))
	var pickRows [][]string
	for _, p := range predictions {
		row := predictionRow(p)
		rows = append(rows, row)
		if p.IsPick {
			pickRows = append(pickRows, row)
		}
	}
	if err := writeAll(s.predictionsPath(date), predictionsHeader, rows); err != nil {
		return err
	}
	return writeAll(s.parlayPath(date), predictionsHeader, pickRows)
}

func (s *PredictionStore) ListByDate(ctx context.Context, date time.Time) ([]models.Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, cols, err := readRows(s.predictionsPath(date))
	if err != nil {
		return nil, err
	}
	predictions := make([]models.Prediction, 0, len(rows))
	for _, row := range rows {
		p, err := parsePredictionRow(row, cols)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, p)
	}
	return predictions, nil
}

func predictionRow(p models.Prediction) []string {
	vegas := ""
	if p.VegasTotal != nil {
		vegas = formatFloat(*p.VegasTotal)
	}
	return []string{
		p.Date.Format(models.DateFormat),
		p.GameTime,
		p.AwayTeam,
		p.HomeTeam,
		formatFloat(p.AwayQ1Avg),
		formatFloat(p.HomeQ1Avg),
		formatFloat(p.PredictedQ1),
		vegas,
		formatFloat(p.Consistency),
		fmt.Sprintf("%t", p.IsPick),
		p.Direction,
		p.Confidence,
	}
}

func parsePredictionRow(row []string, cols map[string]int) (models.Prediction, error) {
	date, err := time.Parse(models.DateFormat, field(row, cols, "date"))
	if err != nil {
		return models.Prediction{}, fmt.Errorf("bad prediction date %q: %w", field(row, cols, "date"), err)
	}
	p := models.Prediction{
		Date:       date,
		GameTime:   field(row, cols, "game_time"),
		AwayTeam:   field(row, cols, "away_team"),
		HomeTeam:   field(row, cols, "home_team"),
		Direction:  field(row, cols, "recommendation"),
		Confidence: field(row, cols, "confidence"),
	}
	if p.AwayQ1Avg, err = floatField(row, cols, "away_q1_avg"); err != nil {
		return models.Prediction{}, err
	}
	if p.HomeQ1Avg, err = floatField(row, cols, "home_q1_avg"); err != nil {
		return models.Prediction{}, err
	}
	if p.PredictedQ1, err = floatField(row, cols, "prediction"); err != nil {
		return models.Prediction{}, err
	}
	if raw := field(row, cols, "vegas_total"); raw != "" {
		v, err := floatField(row, cols, "vegas_total")
		if err != nil {
			return models.Prediction{}, err
		}
		p.VegasTotal = &v
	}
	if p.Consistency, err = floatField(row, cols, "consistency"); err != nil {
		return models.Prediction{}, err
	}
	p.IsPick = field(row, cols, "play") == "true"
	if p.Direction == "" {
		p.Direction = models.DirectionNone
	}
	if p.Confidence == "" {
		p.Confidence = models.ConfidenceNone
	}
	return p, nil
}
