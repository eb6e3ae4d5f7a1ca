package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestReadCSV(t *testing.T) {
	in := "# x1, x2, target\n0.5, 1, 0\n\n2,-3.25,1\n"
	m, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.True(t, mat.Equal(m, mat.NewDense(2, 3, []float64{0.5, 1, 0, 2, -3.25, 1})))
}

func TestReadCSVMalformed(t *testing.T) {
	for name, in := range map[string]string{
		"ragged":     "1,2,3\n4,5\n",
		"not number": "1,2\n3,x\n",
		"empty":      "# nothing\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(in))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,0\n0,1\n"), 0o600))

	m, err := LoadCSV(path)
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
