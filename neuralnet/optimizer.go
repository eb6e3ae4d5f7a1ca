package neuralnet

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Optimizer applies a gradient to a weight matrix in place.
type Optimizer interface {
	Apply(weights *mat.Dense, gradient mat.Matrix, eta float64) error
}

// GradientDescent is the plain full-batch step weights -= eta * gradient.
type GradientDescent struct{}

// Apply updates weights in place. A zero eta leaves them untouched.
func (GradientDescent) Apply(weights *mat.Dense, gradient mat.Matrix, eta float64) error {
	if eta < 0 || math.IsNaN(eta) || math.IsInf(eta, 0) {
		return errors.Wrapf(ErrInvalidParams, "learning rate %v", eta)
	}
	wr, wc := weights.Dims()
	gr, gc := gradient.Dims()
	if wr != gr || wc != gc {
		panic(dimensionMismatch("gradient step", wr, wc, gr, gc))
	}
	if eta == 0 {
		return nil
	}
	var step mat.Dense
	step.Scale(eta, gradient)
	weights.Sub(weights, &step)
	return nil
}
