// Package store defines the persistence interfaces for the pipeline.
// Everything persists to flat tabular files; see the csvstore subpackage.
package store

import (
	"context"
	"time"

	"github.com/slomo31/nba-q1-system/internal/models"
)

// GameStore holds the append-only table of completed games, deduplicated on
// (date, away_team, home_team) and ordered by date.
type GameStore interface {
	All(ctx context.Context) ([]models.GameRecord, error)
	// Append merges new games into the store, keeping the last record for a
	// duplicated key, and reports how many keys were new.
	Append(ctx context.Context, games []models.GameRecord) (int, error)
	// LastDate returns the most recent stored game date; ok is false when
	// the store is empty.
	LastDate(ctx context.Context) (time.Time, bool, error)
}

// PredictionStore persists one batch of predictions per run date, plus the
// subset selected as picks.
type PredictionStore interface {
	SaveRun(ctx context.Context, date time.Time, predictions []models.Prediction) error
	ListByDate(ctx context.Context, date time.Time) ([]models.Prediction, error)
}

// ResultStore is the append-only table of graded results, keyed by
// (date, away_team, home_team). Append is the idempotency guard for the
// grader: a key that already exists is never written twice.
type ResultStore interface {
	All(ctx context.Context) ([]models.GradedResult, error)
	Has(ctx context.Context, key models.GameKey) (bool, error)
	// Append writes the result unless its key already exists; it reports
	// whether a row was written.
	Append(ctx context.Context, result models.GradedResult) (bool, error)
}
