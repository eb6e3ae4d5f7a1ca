package neuralnet

import "math"

// ActivationFunction is applied element-wise after each weighted layer sum.
type ActivationFunction interface {
	Activate(x float64) float64
	// Derivative is expressed in terms of the activated output y.
	Derivative(y float64) float64
}

// Steepness of the transfer function used by the trainer.
const Steepness = 4.0

// Sigmoid is 1 / (1 + e^(-Steepness·x)).
type Sigmoid struct {
	Steepness float64
}

func (s Sigmoid) Activate(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-s.Steepness*x))
}

// Derivative returns y(1-y). The steepness factor is not applied; the
// backpropagation deltas are defined without it and the learning rate
// absorbs the constant.
func (s Sigmoid) Derivative(y float64) float64 {
	return y * (1 - y)
}

// Transfer is the trainer's activation, 1 / (1 + e^(-4x)).
func Transfer(x float64) float64 {
	return Sigmoid{Steepness: Steepness}.Activate(x)
}

func applyActivation(a ActivationFunction) func(_, _ int, v float64) float64 {
	return func(_, _ int, v float64) float64 { return a.Activate(v) }
}

func applyDerivative(a ActivationFunction) func(_, _ int, v float64) float64 {
	return func(_, _ int, v float64) float64 { return a.Derivative(v) }
}
