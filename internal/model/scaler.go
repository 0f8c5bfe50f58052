package model

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler centers and scales each feature column to zero mean and
// unit variance. Columns with zero variance pass through unscaled.
type StandardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

func (s *StandardScaler) Fit(rows [][]float64) error {
	if len(rows) == 0 {
		return fmt.Errorf("scaler: no rows to fit")
	}
	n := len(rows[0])
	s.Mean = make([]float64, n)
	s.Std = make([]float64, n)
	col := make([]float64, len(rows))
	for j := 0; j < n; j++ {
		for i, row := range rows {
			if len(row) != n {
				return fmt.Errorf("scaler: row %d has %d values, want %d", i, len(row), n)
			}
			col[i] = row[j]
		}
		s.Mean[j] = stat.Mean(col, nil)
		s.Std[j] = stat.PopStdDev(col, nil)
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	return nil
}

func (s *StandardScaler) Transform(row []float64) ([]float64, error) {
	if len(row) != len(s.Mean) {
		return nil, fmt.Errorf("scaler: got %d values, fitted on %d", len(row), len(s.Mean))
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return out, nil
}

func (s *StandardScaler) TransformAll(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		t, err := s.Transform(row)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
