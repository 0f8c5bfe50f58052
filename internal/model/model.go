// Package model trains and serves the Q1 total regressor.
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Predictor scores a feature vector into an expected combined Q1 total.
// The concrete estimator stays behind this interface so it can be swapped
// without touching the scoring pipeline. CheckColumns is part of the
// contract so every implementation, wrappers included, must verify the
// caller's feature layout before a run.
type Predictor interface {
	Predict(features []float64) (float64, error)
	FeatureColumns() []string
	CheckColumns(columns []string) error
}

// Metrics captures holdout performance recorded at training time.
type Metrics struct {
	MAE       float64 `json:"mae"`
	RMSE      float64 `json:"rmse"`
	R2        float64 `json:"r2"`
	TrainRows int     `json:"train_rows"`
	TestRows  int     `json:"test_rows"`
}

// Artifact is a trained model plus everything needed to score with it.
type Artifact struct {
	Columns   []string       `json:"columns"`
	Window    int            `json:"window"`
	Scaler    StandardScaler `json:"scaler"`
	Estimator Ridge          `json:"estimator"`
	TrainedAt time.Time      `json:"trained_at"`
	Metrics   Metrics        `json:"metrics"`
}

func (a *Artifact) FeatureColumns() []string {
	return a.Columns
}

// Predict scales the vector and scores it. The caller's column layout must
// match what the artifact was trained on; a mismatch is a hard error, not
// a degraded prediction.
func (a *Artifact) Predict(features []float64) (float64, error) {
	if len(features) != len(a.Columns) {
		return 0, fmt.Errorf("model: got %d features, artifact trained on %d columns", len(features), len(a.Columns))
	}
	scaled, err := a.Scaler.Transform(features)
	if err != nil {
		return 0, err
	}
	return a.Estimator.Predict(scaled)
}

// CheckColumns verifies the caller builds vectors with the same layout the
// artifact was trained on.
func (a *Artifact) CheckColumns(columns []string) error {
	if len(columns) != len(a.Columns) {
		return fmt.Errorf("model: feature layout has %d columns, artifact has %d", len(columns), len(a.Columns))
	}
	for i, c := range columns {
		if c != a.Columns[i] {
			return fmt.Errorf("model: feature column %d is %q, artifact expects %q", i, c, a.Columns[i])
		}
	}
	return nil
}

// Save writes the artifact as pretty JSON, creating the directory first.
func (a *Artifact) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create model dir: %w", err)
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	return os.Rename(tmp, path)
}

// Load reads a previously saved artifact.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode model %s: %w", path, err)
	}
	if len(a.Columns) == 0 || len(a.Estimator.Weights) == 0 {
		return nil, fmt.Errorf("model %s is incomplete", path)
	}
	return &a, nil
}
