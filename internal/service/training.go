package service

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/slomo31/nba-q1-system/internal/model"
	"github.com/slomo31/nba-q1-system/internal/store"
)

// ModelFileName is the artifact the trainer writes and the server loads.
const ModelFileName = "q1_model.json"

// TrainingService fits a fresh model on the full game log and writes the
// artifact to disk.
type TrainingService struct {
	Games    store.GameStore
	Logger   *zap.Logger
	Params   model.TrainParams
	ModelDir string
}

// RunOnce trains and saves a new artifact, returning it so the caller can
// swap it in without re-reading the file.
func (s *TrainingService) RunOnce(ctx context.Context) (*model.Artifact, error) {
	if s == nil || s.Games == nil {
		return nil, fmt.Errorf("training service not configured")
	}
	games, err := s.Games.All(ctx)
	if err != nil {
		return nil, err
	}
	artifact, err := model.Train(games, s.Params)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(s.ModelDir, ModelFileName)
	if err := artifact.Save(path); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("model trained",
			zap.String("path", path),
			zap.Int("train_rows", artifact.Metrics.TrainRows),
			zap.Int("test_rows", artifact.Metrics.TestRows),
			zap.Float64("mae", artifact.Metrics.MAE),
			zap.Float64("rmse", artifact.Metrics.RMSE),
			zap.Float64("r2", artifact.Metrics.R2))
	}
	return artifact, nil
}
