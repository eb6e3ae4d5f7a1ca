// Package dataset holds the training and test splits fed to the perceptron
// trainer, plus loaders for numeric CSV files.
package dataset

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInvalidDatasetShape reports that the declared input, target or class
	// counts do not agree with the data matrices.
	ErrInvalidDatasetShape = errors.New("invalid dataset shape")
	// ErrMalformed reports an unreadable CSV record.
	ErrMalformed = errors.New("malformed dataset")
)

// DataSet is one row per sample. Columns 0..Inputs-1 are inputs, the
// remaining columns are targets.
type DataSet struct {
	TrainingData *mat.Dense
	// TestData may be nil for a training-only run.
	TestData    *mat.Dense
	Inputs      int
	HiddenNodes int
	Classes     int
}

// Targets returns the number of target columns.
func (ds *DataSet) Targets() int {
	if ds.TrainingData == nil {
		return 0
	}
	_, c := ds.TrainingData.Dims()
	return c - ds.Inputs
}

// HasTestData reports whether a test split is present.
func (ds *DataSet) HasTestData() bool {
	return ds.TestData != nil && !ds.TestData.IsEmpty()
}

// Validate checks that the declared counts agree with the matrices.
func (ds *DataSet) Validate() error {
	if ds == nil || ds.TrainingData == nil || ds.TrainingData.IsEmpty() {
		return errors.Wrap(ErrInvalidDatasetShape, "no training data")
	}
	rows, cols := ds.TrainingData.Dims()
	if rows < 1 {
		return errors.Wrap(ErrInvalidDatasetShape, "no training rows")
	}
	if ds.Inputs < 1 {
		return errors.Wrapf(ErrInvalidDatasetShape, "inputs = %d", ds.Inputs)
	}
	if ds.HiddenNodes < 1 {
		return errors.Wrapf(ErrInvalidDatasetShape, "hidden nodes = %d", ds.HiddenNodes)
	}
	targets := cols - ds.Inputs
	if targets < 1 {
		return errors.Wrapf(ErrInvalidDatasetShape,
			"inputs (%d) + targets must equal %d training columns", ds.Inputs, cols)
	}
	if ds.TestData != nil {
		_, testCols := ds.TestData.Dims()
		if testCols != cols {
			return errors.Wrapf(ErrInvalidDatasetShape,
				"test data has %d columns, training data has %d", testCols, cols)
		}
	}
	if ds.Classes < 2 {
		return errors.Wrapf(ErrInvalidDatasetShape, "classes = %d", ds.Classes)
	}
	if ds.Classes != 2 && ds.Classes != targets {
		return errors.Wrapf(ErrInvalidDatasetShape,
			"%d classes need either 2 classes or %d target columns", ds.Classes, targets)
	}
	return nil
}

// XOR returns the four-row exclusive-or problem. The test split is the
// training split.
func XOR(hidden int) *DataSet {
	rows := []float64{
		0, 0, 0,
		0, 1, 1,
		1, 0, 1,
		1, 1, 0,
	}
	return &DataSet{
		TrainingData: mat.NewDense(4, 3, rows),
		TestData:     mat.NewDense(4, 3, append([]float64(nil), rows...)),
		Inputs:       2,
		HiddenNodes:  hidden,
		Classes:      2,
	}
}
