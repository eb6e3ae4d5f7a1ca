package dataset

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// OneHotEncode turns class labels into a len(labels) × classes tensor with a
// single 1 per row.
func OneHotEncode(labels []int, classes int) (tensor.Tensor, error) {
	if classes < 1 {
		return nil, errors.Wrapf(ErrInvalidDatasetShape, "classes = %d", classes)
	}
	norm := make([]float64, len(labels)*classes)
	for i, label := range labels {
		if label < 0 || label >= classes {
			return nil, errors.Wrapf(ErrMalformed, "label %d at row %d outside [0,%d)", label, i+1, classes)
		}
		norm[i*classes+label] = 1.0
	}
	return tensor.New(tensor.Of(tensor.Float64), tensor.WithShape(len(labels), classes), tensor.WithBacking(norm)), nil
}

// WithOneHotLabels replaces the last column of m, which must hold integer
// class labels, by a one-hot block of the given width.
func WithOneHotLabels(m *mat.Dense, classes int) (*mat.Dense, error) {
	rows, cols := m.Dims()
	if cols < 2 {
		return nil, errors.Wrapf(ErrInvalidDatasetShape, "need inputs and a label column, got %d columns", cols)
	}
	labels := make([]int, rows)
	for i := 0; i < rows; i++ {
		v := m.At(i, cols-1)
		if v != math.Trunc(v) {
			return nil, errors.Wrapf(ErrMalformed, "label %v at row %d is not an integer", v, i+1)
		}
		labels[i] = int(v)
	}
	encoded, err := OneHotEncode(labels, classes)
	if err != nil {
		return nil, err
	}
	oneHot := mat.NewDense(rows, classes, encoded.Data().([]float64))

	out := mat.NewDense(rows, cols-1+classes, nil)
	out.Augment(m.Slice(0, rows, 0, cols-1), oneHot)
	return out, nil
}
