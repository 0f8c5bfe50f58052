package model

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/slomo31/nba-q1-system/internal/feature"
	"github.com/slomo31/nba-q1-system/internal/models"
)

// TrainParams controls dataset construction and the train/test split.
type TrainParams struct {
	Window       int
	MinHistory   int
	TestFraction float64
	RidgeLambda  float64
	ShuffleSeed  int64
}

// Example is one supervised row: a game's features and its observed Q1
// total.
type Example struct {
	Key      models.GameKey
	Features []float64
	Target   float64
}

// BuildDataset turns the game log into training examples. Each game is
// featurized against history strictly before its own date, so no example
// ever sees its own outcome. Games whose teams lack a full window are
// skipped, as are all games until the log holds at least minHistory rows.
func BuildDataset(games []models.GameRecord, p TrainParams) ([]Example, int) {
	var examples []Example
	skipped := 0
	for i, g := range games {
		if i < p.MinHistory {
			skipped++
			continue
		}
		vec, err := feature.Build(games, g.AwayTeam, g.HomeTeam, g.Date, p.Window)
		if err != nil {
			skipped++
			continue
		}
		examples = append(examples, Example{
			Key:      g.Key(),
			Features: vec.Values,
			Target:   float64(g.Q1Total()),
		})
	}
	return examples, skipped
}

// Train fits a fresh artifact on the game log and reports holdout metrics.
func Train(games []models.GameRecord, p TrainParams) (*Artifact, error) {
	examples, skipped := BuildDataset(games, p)
	if len(examples) < 2 {
		return nil, fmt.Errorf("train: %d usable examples (%d skipped), need at least 2", len(examples), skipped)
	}

	rng := rand.New(rand.NewSource(p.ShuffleSeed))
	shuffled := make([]Example, len(examples))
	copy(shuffled, examples)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	testN := int(float64(len(shuffled)) * p.TestFraction)
	if testN < 1 {
		testN = 1
	}
	if testN >= len(shuffled) {
		testN = len(shuffled) - 1
	}
	train, test := shuffled[testN:], shuffled[:testN]

	trainX := make([][]float64, len(train))
	trainY := make([]float64, len(train))
	for i, ex := range train {
		trainX[i] = ex.Features
		trainY[i] = ex.Target
	}

	a := &Artifact{
		Columns:   append([]string(nil), feature.Columns...),
		Window:    p.Window,
		Estimator: *NewRidge(p.RidgeLambda),
		TrainedAt: time.Now().UTC(),
	}
	if err := a.Scaler.Fit(trainX); err != nil {
		return nil, err
	}
	scaled, err := a.Scaler.TransformAll(trainX)
	if err != nil {
		return nil, err
	}
	if err := a.Estimator.Fit(scaled, trainY); err != nil {
		return nil, err
	}

	preds := make([]float64, len(test))
	actuals := make([]float64, len(test))
	for i, ex := range test {
		p, err := a.Predict(ex.Features)
		if err != nil {
			return nil, err
		}
		preds[i] = p
		actuals[i] = ex.Target
	}
	a.Metrics = evaluate(preds, actuals)
	a.Metrics.TrainRows = len(train)
	a.Metrics.TestRows = len(test)
	return a, nil
}

func evaluate(preds, actuals []float64) Metrics {
	var m Metrics
	if len(preds) == 0 {
		return m
	}
	var absSum, sqSum float64
	for i := range preds {
		diff := preds[i] - actuals[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff
	}
	n := float64(len(preds))
	m.MAE = absSum / n
	m.RMSE = math.Sqrt(sqSum / n)

	mean := stat.Mean(actuals, nil)
	var totSS float64
	for _, a := range actuals {
		totSS += (a - mean) * (a - mean)
	}
	if totSS > 0 {
		m.R2 = 1 - sqSum/totSS
	}
	return m
}
