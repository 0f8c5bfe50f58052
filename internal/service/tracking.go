package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/slomo31/nba-q1-system/internal/grade"
	"github.com/slomo31/nba-q1-system/internal/models"
	"github.com/slomo31/nba-q1-system/internal/store"
	"github.com/slomo31/nba-q1-system/internal/teams"
)

// TrackingService grades settled predictions, picks and non-picks alike,
// so the record covers the whole slate. It looks at today's and
// yesterday's prediction files, fetches the real Q1 totals and appends one
// result row per prediction. Already-graded games and unfinished games are
// left alone, so the job is safe to run every half hour.
type TrackingService struct {
	Predictions store.PredictionStore
	Results     store.ResultStore
	ESPN        Scoreboard
	Logger      *zap.Logger
	Grading     grade.Params
	Now         func() time.Time
}

func (s *TrackingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TrackingService) RunOnce(ctx context.Context) error {
	if s == nil || s.Predictions == nil || s.Results == nil || s.ESPN == nil {
		return nil
	}
	today := s.now().UTC().Truncate(24 * time.Hour)
	graded := 0
	pending := 0
	for _, date := range []time.Time{today.AddDate(0, 0, -1), today} {
		g, p, err := s.gradeDate(ctx, date)
		if err != nil {
			s.logWarn("tracking pass failed", err, zap.String("date", date.Format(models.DateFormat)))
			continue
		}
		graded += g
		pending += p
	}
	if graded == 0 && pending == 0 {
		return nil
	}

	results, err := s.Results.All(ctx)
	if err != nil {
		return err
	}
	overall := grade.Summarize(results, s.Grading)
	picks := grade.Summarize(grade.PicksOnly(results), s.Grading)
	s.logInfo("tracking complete",
		zap.Int("graded", graded),
		zap.Int("pending", pending),
		zap.Int("record_total", overall.Total),
		zap.Int("wins", overall.Wins),
		zap.Int("losses", overall.Losses),
		zap.Int("pick_wins", picks.Wins),
		zap.Int("pick_losses", picks.Losses),
		zap.String("pick_profit", picks.Profit.String()))
	return nil
}

func (s *TrackingService) gradeDate(ctx context.Context, date time.Time) (graded, pending int, err error) {
	preds, err := s.Predictions.ListByDate(ctx, date)
	if err != nil {
		return 0, 0, err
	}
	if len(preds) == 0 {
		return 0, 0, nil
	}

	sb, err := s.ESPN.Scoreboard(ctx, date)
	if err != nil {
		return 0, 0, err
	}
	actuals := map[models.GameKey]int{}
	for _, box := range sb.BoxScores(date) {
		if !box.Completed || !box.HasQ1 {
			continue
		}
		away, ok := teams.Normalize(box.AwayTeam)
		if !ok {
			continue
		}
		home, ok := teams.Normalize(box.HomeTeam)
		if !ok {
			continue
		}
		key := models.GameKey{Date: date.Format(models.DateFormat), AwayTeam: away, HomeTeam: home}
		actuals[key] = box.AwayQ1 + box.HomeQ1
	}

	for _, p := range preds {
		key := p.Key()
		done, err := s.Results.Has(ctx, key)
		if err != nil {
			return graded, pending, err
		}
		if done {
			continue
		}
		actual, ok := actuals[key]
		if !ok {
			pending++
			continue
		}
		result := grade.Grade(p, actual, s.Grading)
		written, err := s.Results.Append(ctx, result)
		if err != nil {
			return graded, pending, fmt.Errorf("append result %s: %w", key, err)
		}
		if written {
			graded++
			s.logInfo("prediction graded",
				zap.String("date", key.Date),
				zap.String("matchup", p.AwayTeam+"@"+p.HomeTeam),
				zap.Int("actual_q1", actual),
				zap.String("result", result.Outcome),
				zap.Float64("margin", result.Margin))
		}
	}
	return graded, pending, nil
}

func (s *TrackingService) logInfo(msg string, fields ...zap.Field) {
	if s.Logger != nil {
		s.Logger.Info(msg, fields...)
	}
}

func (s *TrackingService) logWarn(msg string, err error, fields ...zap.Field) {
	if s.Logger == nil {
		return
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	s.Logger.Warn(msg, fields...)
}
