package pick

import (
	"testing"

	"github.com/slomo31/nba-q1-system/internal/models"
)

func pred(away, home string, consistency, predicted, awayAvg, homeAvg float64) models.Prediction {
	return models.Prediction{
		AwayTeam:    away,
		HomeTeam:    home,
		Consistency: consistency,
		PredictedQ1: predicted,
		AwayQ1Avg:   awayAvg,
		HomeQ1Avg:   homeAvg,
	}
}

func TestRankPicksMostConsistent(t *testing.T) {
	preds := []models.Prediction{
		pred("DET", "CHI", 2.0, 50, 25, 25),
		pred("BOS", "NYK", 8.0, 58, 27, 26),
		pred("LAL", "GSW", 5.0, 55, 26, 26),
	}
	ranked := Rank(preds, Params{TopK: 2, DirectionBand: 2, HighConfidence: 3})

	if len(ranked) != 3 {
		t.Fatalf("ranked=%d want 3", len(ranked))
	}
	if ranked[0].AwayTeam != "BOS" || ranked[1].AwayTeam != "LAL" {
		t.Fatalf("order: %s, %s", ranked[0].AwayTeam, ranked[1].AwayTeam)
	}
	if !ranked[0].IsPick || !ranked[1].IsPick {
		t.Fatalf("top two should be plays")
	}
	if ranked[2].IsPick {
		t.Fatalf("third should not be a play")
	}
	if ranked[2].Direction != models.DirectionNone || ranked[2].Confidence != models.ConfidenceNone {
		t.Fatalf("non-play labels: %s/%s", ranked[2].Direction, ranked[2].Confidence)
	}
	if ranked[0].Confidence != models.ConfidenceHigh {
		t.Fatalf("consistency 8 should be HIGH, got %s", ranked[0].Confidence)
	}
	if ranked[1].Confidence != models.ConfidenceHigh {
		t.Fatalf("consistency 5 should be HIGH, got %s", ranked[1].Confidence)
	}
}

func TestRankTopKNeverShrinksPicks(t *testing.T) {
	preds := []models.Prediction{
		pred("A", "B", 4, 52, 25, 25),
		pred("C", "D", 3, 51, 25, 25),
		pred("E", "F", 2, 50, 25, 25),
		pred("G", "H", 1, 49, 25, 25),
	}
	prevPicks := map[string]bool{}
	for k := 1; k <= len(preds); k++ {
		ranked := Rank(preds, Params{TopK: k, DirectionBand: 2, HighConfidence: 3})
		picks := map[string]bool{}
		for _, r := range ranked {
			if r.IsPick {
				picks[r.AwayTeam] = true
			}
		}
		if len(picks) != k {
			t.Fatalf("topK=%d produced %d picks", k, len(picks))
		}
		for team := range prevPicks {
			if !picks[team] {
				t.Fatalf("raising topK to %d dropped prior pick %s", k, team)
			}
		}
		prevPicks = picks
	}
}

func TestDirectionBand(t *testing.T) {
	cases := []struct {
		name      string
		predicted float64
		want      string
	}{
		{"well over", 55, models.DirectionOver},
		{"well under", 45, models.DirectionUnder},
		{"inside band leaning over", 51, models.DirectionOver},
		{"inside band leaning under", 49, models.DirectionUnder},
		{"exactly on the line", 50, models.DirectionOver},
		{"band edge over", 52, models.DirectionOver},
		{"band edge under", 48, models.DirectionUnder},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Implied line is 25 + 25 = 50.
			p := pred("BOS", "NYK", 9, tc.predicted, 25, 25)
			ranked := Rank([]models.Prediction{p}, Params{TopK: 1, DirectionBand: 2, HighConfidence: 3})
			if ranked[0].Direction != tc.want {
				t.Fatalf("predicted=%v direction=%s want %s", tc.predicted, ranked[0].Direction, tc.want)
			}
		})
	}
}

func TestConfidenceBoundary(t *testing.T) {
	high := Rank([]models.Prediction{pred("A", "B", 3.0, 55, 25, 25)}, Params{TopK: 1, DirectionBand: 2, HighConfidence: 3})
	if high[0].Confidence != models.ConfidenceHigh {
		t.Fatalf("consistency 3.0 should be HIGH, got %s", high[0].Confidence)
	}
	med := Rank([]models.Prediction{pred("A", "B", 2.9, 55, 25, 25)}, Params{TopK: 1, DirectionBand: 2, HighConfidence: 3})
	if med[0].Confidence != models.ConfidenceMedium {
		t.Fatalf("consistency 2.9 should be MEDIUM, got %s", med[0].Confidence)
	}
}

func TestRankTopKLargerThanSlate(t *testing.T) {
	ranked := Rank([]models.Prediction{pred("A", "B", 1, 55, 25, 25)}, Params{TopK: 3, DirectionBand: 2, HighConfidence: 3})
	if !ranked[0].IsPick {
		t.Fatalf("sole game should still be a play")
	}
}
