// Package service holds the pipeline jobs that the scheduler and the API
// trigger: game ingest, model training, slate scoring and result tracking.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/slomo31/nba-q1-system/internal/client/espn"
	"github.com/slomo31/nba-q1-system/internal/models"
	"github.com/slomo31/nba-q1-system/internal/store"
	"github.com/slomo31/nba-q1-system/internal/teams"
)

// Scoreboard is the slice of the ESPN client the ingestor needs.
type Scoreboard interface {
	Scoreboard(ctx context.Context, date time.Time) (*espn.ScoreboardResponse, error)
}

// IngestService walks the scoreboard day by day and appends finished games
// to the game store. It resumes from the day after the newest stored game,
// so repeated runs are cheap and never double-count.
type IngestService struct {
	Games       store.GameStore
	ESPN        Scoreboard
	Logger      *zap.Logger
	SeasonStart time.Time
	// DayDelay spaces out scoreboard requests when backfilling many days.
	DayDelay time.Duration
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *IngestService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RunOnce fetches every day from the resume point through yesterday. A day
// that fails to fetch is logged and skipped; later days still load, and the
// failed day is retried on the next run because dedup makes re-ingest safe.
func (s *IngestService) RunOnce(ctx context.Context) error {
	if s == nil || s.Games == nil || s.ESPN == nil {
		return nil
	}
	start := s.SeasonStart
	last, ok, err := s.Games.LastDate(ctx)
	if err != nil {
		return err
	}
	if ok {
		// Re-fetch the last stored day too: its late games may have been
		// in progress when it was first ingested.
		start = last
	}
	today := s.now().UTC().Truncate(24 * time.Hour)

	var batch []models.GameRecord
	days := 0
	for day := start.UTC().Truncate(24 * time.Hour); day.Before(today); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if days > 0 && s.DayDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.DayDelay):
			}
		}
		days++

		sb, err := s.ESPN.Scoreboard(ctx, day)
		if err != nil {
			s.logWarn("scoreboard fetch failed", err, zap.String("date", day.Format(models.DateFormat)))
			continue
		}
		for _, box := range sb.BoxScores(day) {
			rec, ok := s.toRecord(box)
			if !ok {
				continue
			}
			batch = append(batch, rec)
		}
	}
	if len(batch) == 0 {
		s.logInfo("ingest found no new finished games", zap.Int("days_checked", days))
		return nil
	}
	added, err := s.Games.Append(ctx, batch)
	if err != nil {
		return err
	}
	s.logInfo("ingest complete",
		zap.Int("days_checked", days),
		zap.Int("games_seen", len(batch)),
		zap.Int("games_added", added))
	return nil
}

func (s *IngestService) toRecord(box espn.BoxScore) (models.GameRecord, bool) {
	if !box.Completed || !box.HasQ1 {
		return models.GameRecord{}, false
	}
	away, ok := teams.Normalize(box.AwayTeam)
	if !ok {
		s.logWarn("unknown away team, game skipped", nil,
			zap.String("team", box.AwayTeam), zap.String("date", box.Date.Format(models.DateFormat)))
		return models.GameRecord{}, false
	}
	home, ok := teams.Normalize(box.HomeTeam)
	if !ok {
		s.logWarn("unknown home team, game skipped", nil,
			zap.String("team", box.HomeTeam), zap.String("date", box.Date.Format(models.DateFormat)))
		return models.GameRecord{}, false
	}
	return models.GameRecord{
		Date:      box.Date,
		AwayTeam:  away,
		HomeTeam:  home,
		AwayScore: box.AwayScore,
		HomeScore: box.HomeScore,
		AwayQ1:    box.AwayQ1,
		HomeQ1:    box.HomeQ1,
	}, true
}

func (s *IngestService) logInfo(msg string, fields ...zap.Field) {
	if s.Logger != nil {
		s.Logger.Info(msg, fields...)
	}
}

func (s *IngestService) logWarn(msg string, err error, fields ...zap.Field) {
	if s.Logger == nil {
		return
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	s.Logger.Warn(msg, fields...)
}
