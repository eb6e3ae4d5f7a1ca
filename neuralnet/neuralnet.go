package neuralnet

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"perceptron/dataset"
)

// layers holds the matrices of one forward pass over a data split.
type layers struct {
	prefix string
	X      *mat.Dense // d × n raw inputs
	Xn     *mat.Dense // d × n normalized inputs
	Xb     *mat.Dense // d × (n+1), bias column first
	H      *mat.Dense // d × h
	Hb     *mat.Dense // d × (h+1), bias column first
	Y      *mat.Dense // d × m
	T      *mat.Dense // d × m targets
	bias   *mat.VecDense
}

func newLayers(prefix string, data *mat.Dense, n, h, m int) *layers {
	d, _ := data.Dims()
	l := &layers{
		prefix: prefix,
		X:      mat.DenseCopyOf(data.Slice(0, d, 0, n)),
		Xb:     mat.NewDense(d, n+1, nil),
		H:      mat.NewDense(d, h, nil),
		Hb:     mat.NewDense(d, h+1, nil),
		Y:      mat.NewDense(d, m, nil),
		T:      mat.DenseCopyOf(data.Slice(0, d, n, n+m)),
		bias:   biasColumn(d),
	}
	l.Xn = NormMinMax(l.X)
	augment(l.Xb, l.bias, l.Xn)
	return l
}

func (l *layers) rows() int {
	d, _ := l.X.Dims()
	return d
}

// scratch buffers of backProp, overwritten every iteration.
type scratch struct {
	diff   *mat.Dense // Y - T
	deriv  *mat.Dense // Y(1-Y)
	wd     *mat.Dense // output delta
	back   *mat.Dense // Wd·Wᵗ
	hderiv *mat.Dense // Hb(1-Hb)
	hd     *mat.Dense // hidden delta with bias column
	hdnb   *mat.Dense // hidden delta without bias column
	gradW  *mat.Dense // Hbᵗ·Wd
	gradV  *mat.Dense // Xbᵗ·Hdnb
}

func newScratch(d, n, h, m int) scratch {
	return scratch{
		diff:   mat.NewDense(d, m, nil),
		deriv:  mat.NewDense(d, m, nil),
		wd:     mat.NewDense(d, m, nil),
		back:   mat.NewDense(d, h+1, nil),
		hderiv: mat.NewDense(d, h+1, nil),
		hd:     mat.NewDense(d, h+1, nil),
		hdnb:   mat.NewDense(d, h, nil),
		gradW:  mat.NewDense(h+1, m, nil),
		gradV:  mat.NewDense(n+1, h, nil),
	}
}

// Params configures weight initialization and tracing.
type Params struct {
	// Lower and Upper bound the uniform draw used for both V and W.
	Lower, Upper float64
	// Seed of the weight draw. Zero derives it from the topology.
	Seed     int64
	Observer Observer
}

// NewParams draws weights from [0,1].
func NewParams() Params {
	return NewParamsRange(0, 1)
}

// NewParamsRange draws weights from [lower, upper].
func NewParamsRange(lower, upper float64) Params {
	return Params{Lower: lower, Upper: upper}
}

// NeuralNet is a perceptron with one hidden layer trained by full-batch
// gradient descent. Every matrix is allocated once in New. A NeuralNet is
// not safe for concurrent use.
type NeuralNet struct {
	n, h, m int
	classes int

	train *layers
	test  *layers // nil without a test split

	// V maps bias-augmented inputs to the hidden layer, W maps the
	// bias-augmented hidden layer to the outputs.
	V *mat.Dense
	W *mat.Dense

	activation ActivationFunction
	optimizer  Optimizer
	observer   Observer
	s          scratch

	iterations int
}

// NNSeed derives a seed from the layer sizes.
func NNSeed(inputs, hidden, outputs int) int64 {
	return int64(inputs + hidden + outputs)
}

// New validates data, builds every matrix of the training split (and of
// the test split when present) and draws the initial weights.
func New(data *dataset.DataSet, params Params) (*NeuralNet, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(params.Lower) || math.IsNaN(params.Upper) || params.Lower > params.Upper {
		return nil, errors.Wrapf(ErrInvalidParams, "weight range [%v, %v]", params.Lower, params.Upper)
	}

	n, h, m := data.Inputs, data.HiddenNodes, data.Targets()
	d, _ := data.TrainingData.Dims()

	observer := params.Observer
	if observer == nil {
		observer = NopObserver{}
	}
	seed := params.Seed
	if seed == 0 {
		seed = NNSeed(n, h, m)
	}
	rng := rand.New(rand.NewSource(seed))

	nn := &NeuralNet{
		n:          n,
		h:          h,
		m:          m,
		classes:    data.Classes,
		train:      newLayers("", data.TrainingData, n, h, m),
		V:          randUnif(rng, n+1, h, params.Lower, params.Upper),
		W:          randUnif(rng, h+1, m, params.Lower, params.Upper),
		activation: Sigmoid{Steepness: Steepness},
		optimizer:  GradientDescent{},
		observer:   observer,
		s:          newScratch(d, n, h, m),
	}
	if data.HasTestData() {
		nn.test = newLayers("test_", data.TestData, n, h, m)
	}

	nn.traceInputs(nn.train)
	if nn.test != nil {
		nn.traceInputs(nn.test)
	}
	nn.trace(Setup, "V", nn.V)
	nn.trace(Setup, "W", nn.W)

	// Y reflects the initial weights until the first iteration.
	nn.feedForward(nn.train, Setup)
	return nn, nil
}

func randUnif(rng *rand.Rand, r, c int, lower, upper float64) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = lower + rng.Float64()*(upper-lower)
	}
	return mat.NewDense(r, c, data)
}

// Inputs returns n.
func (nn *NeuralNet) Inputs() int { return nn.n }

// Hidden returns h.
func (nn *NeuralNet) Hidden() int { return nn.h }

// Outputs returns m.
func (nn *NeuralNet) Outputs() int { return nn.m }

// Samples returns the number of training rows.
func (nn *NeuralNet) Samples() int { return nn.train.rows() }

// TestSamples returns the number of test rows, 0 without a test split.
func (nn *NeuralNet) TestSamples() int {
	if nn.test == nil {
		return 0
	}
	return nn.test.rows()
}

// Iterations returns the number of completed training iterations.
func (nn *NeuralNet) Iterations() int { return nn.iterations }

// Output returns a copy of the training outputs Y.
func (nn *NeuralNet) Output() *mat.Dense { return mat.DenseCopyOf(nn.train.Y) }

// Weights returns copies of V and W.
func (nn *NeuralNet) Weights() (v, w *mat.Dense) {
	return mat.DenseCopyOf(nn.V), mat.DenseCopyOf(nn.W)
}

// feedForward computes H = f(Xb·V), Hb = [-1 | H] and Y = f(Hb·W) for l.
func (nn *NeuralNet) feedForward(l *layers, iteration int) {
	mul(l.H, l.Xb, nn.V, "Xb·V")
	l.H.Apply(applyActivation(nn.activation), l.H)
	nn.trace(iteration, l.prefix+"H", l.H)

	augment(l.Hb, l.bias, l.H)
	nn.trace(iteration, l.prefix+"Hb", l.Hb)

	mul(l.Y, l.Hb, nn.W, "Hb·W")
	l.Y.Apply(applyActivation(nn.activation), l.Y)
	nn.trace(iteration, l.prefix+"Y", l.Y)
}

// gradients computes the deltas of the last forward pass over the training
// split and leaves Hbᵗ·Wd and Xbᵗ·Hdnb in the scratch buffers. Neither
// weight matrix is modified.
func (nn *NeuralNet) gradients(iteration int) (gradW, gradV *mat.Dense) {
	l, s := nn.train, &nn.s

	// Wd = (Y-T) ⊙ Y ⊙ (1-Y)
	s.diff.Sub(l.Y, l.T)
	nn.trace(iteration, "Y-T", s.diff)
	s.deriv.Apply(applyDerivative(nn.activation), l.Y)
	nn.trace(iteration, "Y(1-Y)", s.deriv)
	s.wd.MulElem(s.diff, s.deriv)
	nn.trace(iteration, "Wd", s.wd)

	// Hd = Hb ⊙ (1-Hb) ⊙ (Wd·Wᵗ)
	mul(s.back, s.wd, nn.W.T(), "Wd·Wᵗ")
	nn.trace(iteration, "Wd·Wᵗ", s.back)
	s.hderiv.Apply(applyDerivative(nn.activation), l.Hb)
	nn.trace(iteration, "Hb(1-Hb)", s.hderiv)
	s.hd.MulElem(s.hderiv, s.back)
	nn.trace(iteration, "Hd", s.hd)

	d := l.rows()
	s.hdnb.Copy(s.hd.Slice(0, d, 1, nn.h+1))
	nn.trace(iteration, "Hdnb", s.hdnb)

	mul(s.gradW, l.Hb.T(), s.wd, "Hbᵗ·Wd")
	mul(s.gradV, l.Xb.T(), s.hdnb, "Xbᵗ·Hdnb")
	return s.gradW, s.gradV
}

// backProp applies one gradient descent step with learning rate eta.
// Both gradients use the weights of the preceding forward pass.
func (nn *NeuralNet) backProp(eta float64, iteration int) error {
	gradW, gradV := nn.gradients(iteration)

	if err := nn.optimizer.Apply(nn.W, gradW, eta); err != nil {
		return err
	}
	nn.trace(iteration, "W", nn.W)
	if err := nn.optimizer.Apply(nn.V, gradV, eta); err != nil {
		return err
	}
	nn.trace(iteration, "V", nn.V)
	return nil
}

// Train runs feedForward and backProp over the whole training split exactly
// iterations times. There is no convergence check.
func (nn *NeuralNet) Train(eta float64, iterations int) (*TrainReport, error) {
	if !(eta > 0) || math.IsInf(eta, 0) {
		return nil, errors.Wrapf(ErrInvalidParams, "learning rate %v", eta)
	}
	if iterations < 0 {
		return nil, errors.Wrapf(ErrInvalidParams, "iterations = %d", iterations)
	}
	for i := 0; i < iterations; i++ {
		nn.feedForward(nn.train, nn.iterations)
		if err := nn.backProp(eta, nn.iterations); err != nil {
			return nil, err
		}
		nn.iterations++
	}
	return newTrainReport(nn.train.T, nn.train.Y, nn.iterations), nil
}

// Predict runs one forward pass over the test split and discretizes the
// outputs according to policy.
func (nn *NeuralNet) Predict(policy Policy) (*Prediction, error) {
	if nn.test == nil {
		return nil, ErrNoTestData
	}
	nn.feedForward(nn.test, nn.iterations)
	return newPrediction(policy, nn.test.T, nn.test.Y, nn.classes)
}

func (nn *NeuralNet) traceInputs(l *layers) {
	nn.trace(Setup, l.prefix+"T", l.T)
	nn.trace(Setup, l.prefix+"X", l.X)
	nn.trace(Setup, l.prefix+"Xn", l.Xn)
	nn.trace(Setup, l.prefix+"Xb", l.Xb)
}

func (nn *NeuralNet) trace(iteration int, name string, m mat.Matrix) {
	if nn.observer.Watch(iteration) {
		nn.observer.Trace(iteration, name, m)
	}
}

// mul computes dst = a·b, panicking with ErrDimensionMismatch on
// incompatible shapes.
func mul(dst *mat.Dense, a, b mat.Matrix, op string) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	dr, dc := dst.Dims()
	if ac != br || dr != ar || dc != bc {
		panic(dimensionMismatch(op, ar, ac, br, bc))
	}
	dst.Mul(a, b)
}

// Debug
func (nn *NeuralNet) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("NeuralNet n=%d h=%d m=%d d=%d test_d=%d iterations=%d\n",
		nn.n, nn.h, nn.m, nn.Samples(), nn.TestSamples(), nn.iterations))
	sb.WriteString(fmt.Sprintf("V =\n%.4f\n", mat.Formatted(nn.V, mat.Squeeze())))
	sb.WriteString(fmt.Sprintf("W =\n%.4f\n", mat.Formatted(nn.W, mat.Squeeze())))

	return sb.String()
}
