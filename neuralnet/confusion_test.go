package neuralnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfusionMatrixCounts(t *testing.T) {
	cm := NewConfusionMatrix(3)
	cm.Add(0, 0)
	cm.Add(0, 1)
	cm.Add(2, 2)
	cm.Add(2, 2)
	cm.Add(1, 2)

	assert.Equal(t, 3, cm.Classes())
	assert.Equal(t, 5, cm.Total())
	assert.Equal(t, 2, cm.At(2, 2))
	assert.Equal(t, 2, cm.RowSum(0))
	assert.Equal(t, 3, cm.ColSum(2))
	assert.InDelta(t, 0.6, cm.Accuracy(), 1e-12)
}

func TestConfusionMatrixEmpty(t *testing.T) {
	cm := NewConfusionMatrix(2)
	assert.Equal(t, 0, cm.Total())
	assert.Equal(t, 0.0, cm.Accuracy())
}

func TestConfusionMatrixOutOfRange(t *testing.T) {
	cm := NewConfusionMatrix(2)
	assert.Panics(t, func() { cm.Add(2, 0) })
	assert.Panics(t, func() { cm.Add(0, -1) })
}

func TestConfusionMatrixString(t *testing.T) {
	cm := NewConfusionMatrix(2)
	cm.Add(1, 0)
	assert.Equal(t, "actual\\predicted\t0\t1\n0\t0\t0\n1\t1\t0\n", cm.String())
}

func TestConfusionMatrixLabels(t *testing.T) {
	cm := newConfusion(2, "predicted", "actual")
	cm.Add(1, 0)
	assert.Equal(t, 1, cm.At(1, 0))
	assert.Equal(t, 1, cm.RowSum(1))
	assert.Equal(t, 1, cm.ColSum(0))
	assert.Equal(t, "predicted\\actual\t0\t1\n0\t0\t0\n1\t1\t0\n", cm.String())
}
