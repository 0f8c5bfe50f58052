package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Ridge is a linear least-squares estimator with L2 regularization on the
// feature weights. The intercept is not penalized.
type Ridge struct {
	Lambda    float64   `json:"lambda"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

func NewRidge(lambda float64) *Ridge {
	return &Ridge{Lambda: lambda}
}

// Fit solves (XᵀX + λI)w = Xᵀy on the design matrix augmented with a bias
// column. Rows must all have the same width.
func (r *Ridge) Fit(rows [][]float64, targets []float64) error {
	if len(rows) == 0 {
		return fmt.Errorf("ridge: no training rows")
	}
	if len(rows) != len(targets) {
		return fmt.Errorf("ridge: %d rows but %d targets", len(rows), len(targets))
	}
	n := len(rows[0])
	if n == 0 {
		return fmt.Errorf("ridge: empty feature rows")
	}

	// Augment with a bias column so the intercept falls out of the solve.
	x := mat.NewDense(len(rows), n+1, nil)
	for i, row := range rows {
		if len(row) != n {
			return fmt.Errorf("ridge: row %d has %d values, want %d", i, len(row), n)
		}
		for j, v := range row {
			x.Set(i, j, v)
		}
		x.Set(i, n, 1)
	}
	y := mat.NewVecDense(len(targets), targets)

	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	for j := 0; j < n; j++ {
		xtx.Set(j, j, xtx.At(j, j)+r.Lambda)
	}
	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	var w mat.VecDense
	if err := w.SolveVec(&xtx, &xty); err != nil {
		return fmt.Errorf("ridge: singular normal equations: %w", err)
	}

	r.Weights = make([]float64, n)
	for j := 0; j < n; j++ {
		r.Weights[j] = w.AtVec(j)
	}
	r.Intercept = w.AtVec(n)
	return nil
}

func (r *Ridge) Predict(row []float64) (float64, error) {
	if len(r.Weights) == 0 {
		return 0, fmt.Errorf("ridge: not fitted")
	}
	if len(row) != len(r.Weights) {
		return 0, fmt.Errorf("ridge: got %d values, fitted on %d", len(row), len(r.Weights))
	}
	out := r.Intercept
	for j, v := range row {
		out += r.Weights[j] * v
	}
	return out, nil
}
