package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestXOR(t *testing.T) {
	ds := XOR(3)
	require.NoError(t, ds.Validate())
	assert.Equal(t, 1, ds.Targets())
	assert.True(t, ds.HasTestData())
	assert.Equal(t, []float64{0, 1, 1, 0}, mat.Col(nil, 2, ds.TrainingData))

	ds.TestData.Set(0, 0, 5)
	assert.Equal(t, 0.0, ds.TrainingData.At(0, 0), "test split must not share the training backing")
}

func TestValidate(t *testing.T) {
	base := func() *DataSet {
		return &DataSet{
			TrainingData: mat.NewDense(2, 4, []float64{1, 2, 0, 1, 3, 4, 1, 0}),
			Inputs:       2,
			HiddenNodes:  2,
			Classes:      2,
		}
	}
	require.NoError(t, base().Validate())

	cases := map[string]func(*DataSet){
		"no targets":      func(ds *DataSet) { ds.Inputs = 4 },
		"too many inputs": func(ds *DataSet) { ds.Inputs = 6 },
		"no hidden":       func(ds *DataSet) { ds.HiddenNodes = -1 },
		"test columns":    func(ds *DataSet) { ds.TestData = mat.NewDense(1, 3, nil) },
		"classes":         func(ds *DataSet) { ds.Classes = 5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			ds := base()
			mutate(ds)
			assert.ErrorIs(t, ds.Validate(), ErrInvalidDatasetShape)
		})
	}

	var missing *DataSet
	assert.ErrorIs(t, missing.Validate(), ErrInvalidDatasetShape)
}
