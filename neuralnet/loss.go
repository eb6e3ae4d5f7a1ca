package neuralnet

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RMSE is the error figure reported in comparison mode. It squares every
// element-wise difference, takes the square root of each square and sums
// the results, which amounts to sum(|a - b|). No mean is taken and there is
// no final square root. Comparison outputs of earlier runs were produced
// with this formula, so it is kept as is.
//
// RMSE panics with ErrDimensionMismatch if the shapes differ.
func RMSE(a, b mat.Matrix) float64 {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		panic(dimensionMismatch("rmse", ar, ac, br, bc))
	}
	var diff mat.Dense
	diff.Sub(a, b)
	diff.MulElem(&diff, &diff)
	diff.Apply(func(_, _ int, v float64) float64 { return math.Sqrt(v) }, &diff)
	return mat.Sum(&diff)
}
