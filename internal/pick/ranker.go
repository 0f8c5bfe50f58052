// Package pick ranks a slate of predictions into the day's plays.
package pick

import (
	"sort"

	"github.com/slomo31/nba-q1-system/internal/models"
)

// Params tunes pick selection.
type Params struct {
	// TopK is how many games get flagged as plays.
	TopK int
	// DirectionBand is the dead zone around the implied line inside which
	// the lean falls back to the sign of the edge.
	DirectionBand float64
	// HighConfidence is the consistency score at or above which a play is
	// labeled HIGH.
	HighConfidence float64
}

// Rank flags the TopK most consistent predictions as plays and labels
// them with a direction and confidence. The remainder come back with the
// NONE labels. Input order is preserved for ties; the returned slice is a
// copy ordered by consistency descending.
func Rank(preds []models.Prediction, p Params) []models.Prediction {
	out := make([]models.Prediction, len(preds))
	copy(out, preds)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Consistency > out[j].Consistency
	})
	for i := range out {
		if i < p.TopK {
			out[i].IsPick = true
			out[i].Direction = direction(out[i], p.DirectionBand)
			out[i].Confidence = confidence(out[i], p.HighConfidence)
		} else {
			out[i].IsPick = false
			out[i].Direction = models.DirectionNone
			out[i].Confidence = models.ConfidenceNone
		}
	}
	return out
}

// direction compares the model's prediction to the implied line built from
// the two teams' rolling Q1 averages. Outside the band the edge decides;
// inside it the sign of the edge decides, with OVER on an exact tie.
func direction(pred models.Prediction, band float64) string {
	implied := pred.AwayQ1Avg + pred.HomeQ1Avg
	edge := pred.PredictedQ1 - implied
	switch {
	case edge > band:
		return models.DirectionOver
	case edge < -band:
		return models.DirectionUnder
	case edge >= 0:
		return models.DirectionOver
	default:
		return models.DirectionUnder
	}
}

func confidence(pred models.Prediction, high float64) string {
	if pred.Consistency >= high {
		return models.ConfidenceHigh
	}
	return models.ConfidenceMedium
}
