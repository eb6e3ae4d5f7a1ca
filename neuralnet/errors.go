package neuralnet

import (
	"github.com/pkg/errors"

	"perceptron/dataset"
)

var (
	// ErrInvalidDatasetShape is returned by New when the dataset dimensions
	// disagree with its declared input and class counts.
	ErrInvalidDatasetShape = dataset.ErrInvalidDatasetShape
	// ErrDimensionMismatch is a programmer error: two matrices reached an
	// arithmetic boundary with incompatible shapes. It is raised as a panic.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrInvalidParams reports a bad weight range, learning rate or
	// iteration count.
	ErrInvalidParams = errors.New("invalid parameters")
	// ErrNoTestData is returned by Predict on a trainer built without a test split.
	ErrNoTestData = errors.New("no test data")
)

func dimensionMismatch(op string, ar, ac, br, bc int) error {
	return errors.Wrapf(ErrDimensionMismatch, "%s: %d×%d and %d×%d", op, ar, ac, br, bc)
}
