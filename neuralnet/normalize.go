package neuralnet

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Bias is the constant value of the column prepended to every layer input.
const Bias = -1.0

// NormMinMax scales every column of x to [0,1] with
// (v - min) / (max - min). A constant column has no range to scale by and
// is mapped to 0.
func NormMinMax(x mat.Matrix) *mat.Dense {
	r, c := x.Dims()
	out := mat.NewDense(r, c, nil)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, x)
		lo, hi := floats.Min(col), floats.Max(col)
		span := hi - lo
		for i, v := range col {
			if span == 0 {
				col[i] = 0
				continue
			}
			col[i] = (v - lo) / span
		}
		out.SetCol(j, col)
	}
	return out
}

// biasColumn returns an r×1 column of Bias values.
func biasColumn(r int) *mat.VecDense {
	data := make([]float64, r)
	for i := range data {
		data[i] = Bias
	}
	return mat.NewVecDense(r, data)
}

// augment writes [bias | src] into dst.
func augment(dst *mat.Dense, bias *mat.VecDense, src mat.Matrix) {
	dr, dc := dst.Dims()
	sr, sc := src.Dims()
	if dr != sr || dc != sc+1 || bias.Len() != sr {
		panic(dimensionMismatch("bias augment", dr, dc, sr, sc))
	}
	dst.Augment(bias, src)
}
