package neuralnet

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestRMSEIdentical(t *testing.T) {
	a := mat.NewDense(2, 3, []float64{0.1, 0.9, 0.3, 1, 0, 0.5})
	if got := RMSE(a, a); got != 0 {
		t.Errorf("RMSE(a, a) = %v; want 0", got)
	}
}

func TestRMSESumsAbsoluteDifferences(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	b := mat.NewDense(2, 2, []float64{0, 0, 0, 0})
	if got := RMSE(a, b); got != 10 {
		t.Errorf("RMSE = %v; want 10", got)
	}
	c := mat.NewDense(1, 2, []float64{0.25, 0.75})
	d := mat.NewDense(1, 2, []float64{1, 0})
	if got := RMSE(c, d); got != 1.5 {
		t.Errorf("RMSE = %v; want 1.5", got)
	}
}

func TestRMSESymmetric(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{0.2, 0.4, 0.6, 0.8})
	b := mat.NewDense(2, 2, []float64{1, 0, 0.5, 0.1})
	if RMSE(a, b) != RMSE(b, a) {
		t.Errorf("RMSE(a, b) = %v, RMSE(b, a) = %v", RMSE(a, b), RMSE(b, a))
	}
}

func TestRMSEShapeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("RMSE with different shapes did not panic")
		}
	}()
	RMSE(mat.NewDense(2, 2, nil), mat.NewDense(2, 3, nil))
}
