package main

import (
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"perceptron/neuralnet"
)

func testConfig() config {
	return config{
		inputs:  2,
		hidden:  2,
		classes: 2,
		eta:     0.5,
		iter:    20,
		lower:   -1,
		upper:   1,
		every:   10,
	}
}

func TestRunXORWithTrace(t *testing.T) {
	c := testConfig()
	c.xor = true
	c.tracePath = filepath.Join(t.TempDir(), "trace.csv")

	require.NoError(t, run(c, slog.New(slog.NewTextHandler(io.Discard, nil))))

	file, err := os.Open(c.tracePath)
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, []string{"iteration", "name", "row", "col", "value"}, records[0])

	iterations := map[string]bool{}
	for _, r := range records[1:] {
		iterations[r[0]] = true
	}
	assert.Equal(t, map[string]bool{"-1": true, "0": true, "10": true, "20": true}, iterations)
}

func TestRunLabeledCSV(t *testing.T) {
	dir := t.TempDir()
	train := filepath.Join(dir, "train.csv")
	test := filepath.Join(dir, "test.csv")
	require.NoError(t, os.WriteFile(train, []byte("0,0,0\n0,1,1\n1,0,1\n1,1,2\n"), 0o600))
	require.NoError(t, os.WriteFile(test, []byte("0,1,1\n1,1,2\n"), 0o600))

	c := testConfig()
	c.trainPath = train
	c.testPath = test
	c.labels = true
	c.classes = 3
	c.hidden = 3
	c.argmax = true
	c.compare = true

	assert.NoError(t, run(c, slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestRunRequiresData(t *testing.T) {
	assert.Error(t, run(testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil))))
}

type traceFile struct {
	bytes.Buffer
	closed   bool
	closeErr error
}

func (f *traceFile) Close() error {
	f.closed = true
	return f.closeErr
}

func TestFinishTraceReturnsCloseError(t *testing.T) {
	f := &traceFile{closeErr: errors.New("disk full")}
	o := neuralnet.NewCSVObserver(f, 1)
	o.Trace(0, "W", mat.NewDense(1, 1, []float64{1}))

	err := finishTrace(o, f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close trace")
	assert.True(t, f.closed)
	assert.Contains(t, f.String(), "0,W,0,0,1")
}

func TestFinishTrace(t *testing.T) {
	f := &traceFile{}
	require.NoError(t, finishTrace(neuralnet.NewCSVObserver(f, 1), f))
	assert.True(t, f.closed)
	assert.Equal(t, "iteration,name,row,col,value\n", f.String())
}
