package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/slomo31/nba-q1-system/internal/client/oddsapi"
	"github.com/slomo31/nba-q1-system/internal/feature"
	"github.com/slomo31/nba-q1-system/internal/model"
	"github.com/slomo31/nba-q1-system/internal/models"
	"github.com/slomo31/nba-q1-system/internal/pick"
	"github.com/slomo31/nba-q1-system/internal/store"
	"github.com/slomo31/nba-q1-system/internal/teams"
)

// OddsBoard is the slice of the odds client the scorer needs.
type OddsBoard interface {
	UpcomingEvents(ctx context.Context) ([]oddsapi.Event, error)
}

// ScoringService predicts today's slate and persists the run. One run
// produces one prediction file and one parlay file for the run date.
type ScoringService struct {
	Games       store.GameStore
	Predictions store.PredictionStore
	Odds        OddsBoard
	Predictor   model.Predictor
	Logger      *zap.Logger
	Window      int
	PickParams  pick.Params
	Bookmaker   string
	// Location is the timezone used to decide which events belong to the
	// run date. NBA slates straddle midnight UTC.
	Location *time.Location
	Now      func() time.Time
}

func (s *ScoringService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *ScoringService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

// RunOnce scores every event on today's board that has enough history and
// writes the ranked slate. Games with unknown teams or short histories are
// skipped with a warning rather than failing the run.
func (s *ScoringService) RunOnce(ctx context.Context) error {
	if s == nil || s.Games == nil || s.Predictions == nil || s.Odds == nil || s.Predictor == nil {
		return nil
	}
	runID := uuid.NewString()
	loc := s.location()
	localNow := s.now().In(loc)
	runDate := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, time.UTC)

	// A stale artifact with a different feature layout must abort the run,
	// never score with reinterpreted columns.
	if err := s.Predictor.CheckColumns(feature.Columns); err != nil {
		return err
	}

	events, err := s.Odds.UpcomingEvents(ctx)
	if err != nil {
		return err
	}
	games, err := s.Games.All(ctx)
	if err != nil {
		return err
	}

	var preds []models.Prediction
	skipped := 0
	for _, ev := range events {
		local := ev.CommenceTime.In(loc)
		if local.Year() != localNow.Year() || local.YearDay() != localNow.YearDay() {
			continue
		}
		away, ok := teams.Normalize(ev.AwayTeam)
		if !ok {
			s.logWarn("unknown away team, event skipped", nil, zap.String("run_id", runID), zap.String("team", ev.AwayTeam))
			skipped++
			continue
		}
		home, ok := teams.Normalize(ev.HomeTeam)
		if !ok {
			s.logWarn("unknown home team, event skipped", nil, zap.String("run_id", runID), zap.String("team", ev.HomeTeam))
			skipped++
			continue
		}
		vec, err := feature.Build(games, away, home, runDate, s.Window)
		if err != nil {
			s.logWarn("event skipped", err, zap.String("run_id", runID),
				zap.String("away", away), zap.String("home", home))
			skipped++
			continue
		}
		predicted, err := s.Predictor.Predict(vec.Values)
		if err != nil {
			return err
		}
		preds = append(preds, models.Prediction{
			Date:        runDate,
			GameTime:    local.Format("15:04"),
			AwayTeam:    away,
			HomeTeam:    home,
			AwayQ1Avg:   vec.Away.Q1Avg,
			HomeQ1Avg:   vec.Home.Q1Avg,
			PredictedQ1: predicted,
			VegasTotal:  oddsapi.GameTotal(ev, s.Bookmaker),
			Consistency: feature.Consistency(vec.Away, vec.Home),
		})
	}

	if len(preds) == 0 {
		s.logInfo("scoring run produced no predictions",
			zap.String("run_id", runID),
			zap.Int("events", len(events)),
			zap.Int("skipped", skipped))
		return nil
	}

	ranked := pick.Rank(preds, s.PickParams)
	if err := s.Predictions.SaveRun(ctx, runDate, ranked); err != nil {
		return err
	}
	picks := 0
	for _, p := range ranked {
		if p.IsPick {
			picks++
		}
	}
	s.logInfo("scoring run complete",
		zap.String("run_id", runID),
		zap.String("date", runDate.Format(models.DateFormat)),
		zap.Int("predictions", len(ranked)),
		zap.Int("picks", picks),
		zap.Int("skipped", skipped))
	return nil
}

func (s *ScoringService) logInfo(msg string, fields ...zap.Field) {
	if s.Logger != nil {
		s.Logger.Info(msg, fields...)
	}
}

func (s *ScoringService) logWarn(msg string, err error, fields ...zap.Field) {
	if s.Logger == nil {
		return
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	s.Logger.Warn(msg, fields...)
}
