package neuralnet

import (
	"math"
	"testing"
)

func TestSigmoidActivate(t *testing.T) {
	if got := Transfer(0); got != 0.5 {
		t.Errorf("Transfer(0) = %v; want 0.5", got)
	}
	s := Sigmoid{Steepness: Steepness}
	want := 1 / (1 + math.Exp(-4.0))
	if got := s.Activate(1); math.Abs(got-want) > 1e-12 {
		t.Errorf("Sigmoid.Activate(1) = %v; want %v", got, want)
	}
}

func TestTransferIncreasingAndBounded(t *testing.T) {
	prev := Transfer(-4)
	for x := -3.99; x <= 4; x += 0.01 {
		got := Transfer(x)
		if got <= prev {
			t.Fatalf("Transfer not increasing at %v: %v <= %v", x, got, prev)
		}
		if got <= 0 || got >= 1 {
			t.Fatalf("Transfer(%v) = %v outside (0,1)", x, got)
		}
		prev = got
	}
}

func TestTransferSymmetry(t *testing.T) {
	for _, x := range []float64{0.1, 0.5, 1, 2.5} {
		if got := Transfer(x) + Transfer(-x); math.Abs(got-1) > 1e-12 {
			t.Errorf("Transfer(%v) + Transfer(-%v) = %v; want 1", x, x, got)
		}
	}
}

func TestSigmoidDerivative(t *testing.T) {
	s := Sigmoid{Steepness: Steepness}
	if got := s.Derivative(0.5); got != 0.25 {
		t.Errorf("Sigmoid.Derivative(0.5) = %v; want 0.25", got)
	}
	// bias column of Hb
	if got := s.Derivative(Bias); got != -2 {
		t.Errorf("Sigmoid.Derivative(-1) = %v; want -2", got)
	}
}
