package neuralnet

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Setup is the iteration number reported for matrices traced while the
// trainer is being constructed.
const Setup = -1

// Observer receives intermediate matrices of the trainer. Trace is only
// called for iterations where Watch returned true. The matrices are
// borrowed and must not be retained or modified.
type Observer interface {
	Watch(iteration int) bool
	Trace(iteration int, name string, m mat.Matrix)
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) Watch(int) bool { return false }

func (NopObserver) Trace(int, string, mat.Matrix) {}

// every reports whether iteration falls on an interval of k. Setup is
// always included; k < 1 disables the observer.
func every(k, iteration int) bool {
	if k < 1 {
		return false
	}
	return iteration == Setup || iteration%k == 0
}

// LogObserver writes matrices to a structured logger at debug level.
type LogObserver struct {
	Logger *slog.Logger
	Every  int
}

func NewLogObserver(logger *slog.Logger, every int) *LogObserver {
	return &LogObserver{Logger: logger, Every: every}
}

func (o *LogObserver) Watch(iteration int) bool {
	return every(o.Every, iteration)
}

func (o *LogObserver) Trace(iteration int, name string, m mat.Matrix) {
	r, c := m.Dims()
	o.Logger.Debug("matrix",
		slog.Int("iteration", iteration),
		slog.String("name", name),
		slog.Int("rows", r),
		slog.Int("cols", c),
		slog.String("value", fmt.Sprintf("%.4g", mat.Formatted(m, mat.Squeeze()))),
	)
}

// CSVObserver writes one record per matrix cell:
// iteration, name, row, col, value.
type CSVObserver struct {
	w     *csv.Writer
	every int
	err   error
}

// NewCSVObserver writes a header record and traces every k-th iteration.
func NewCSVObserver(w io.Writer, k int) *CSVObserver {
	o := &CSVObserver{w: csv.NewWriter(w), every: k}
	o.write([]string{"iteration", "name", "row", "col", "value"})
	return o
}

func (o *CSVObserver) Watch(iteration int) bool {
	return o.err == nil && every(o.every, iteration)
}

func (o *CSVObserver) Trace(iteration int, name string, m mat.Matrix) {
	r, c := m.Dims()
	it := strconv.Itoa(iteration)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			o.write([]string{
				it,
				name,
				strconv.Itoa(i),
				strconv.Itoa(j),
				strconv.FormatFloat(m.At(i, j), 'g', -1, 64),
			})
		}
	}
}

func (o *CSVObserver) write(record []string) {
	if o.err != nil {
		return
	}
	o.err = o.w.Write(record)
}

// Flush flushes buffered records and returns the first write error.
func (o *CSVObserver) Flush() error {
	o.w.Flush()
	if o.err != nil {
		return o.err
	}
	return o.w.Error()
}
