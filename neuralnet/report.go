package neuralnet

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// Threshold is the cut between class 0 and class 1 of a single output.
const Threshold = 0.5

// Policy selects how outputs are turned into classes.
type Policy int

const (
	// BinaryThreshold treats every output column as an independent 0/1
	// decision at Threshold.
	BinaryThreshold Policy = iota
	// Argmax picks the largest output of each row as its single class.
	Argmax
)

func (p Policy) String() string {
	switch p {
	case BinaryThreshold:
		return "binary"
	case Argmax:
		return "argmax"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

func predictedClass(v float64) int {
	if v >= Threshold {
		return 1
	}
	return 0
}

func actualClass(v float64) int {
	if v > Threshold {
		return 1
	}
	return 0
}

func discretize(m mat.Matrix, class func(float64) int) *mat.Dense {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 { return float64(class(v)) }, m)
	return &out
}

// TrainReport summarizes the training split after the last iteration.
type TrainReport struct {
	Iterations int
	// Targets and Predicted are T and Y cut at Threshold.
	Targets   *mat.Dense
	Predicted *mat.Dense
	// Correct counts rows whose every column matches.
	Correct int
	Samples int
	RMSE    float64
}

func newTrainReport(t, y *mat.Dense, iterations int) *TrainReport {
	r := &TrainReport{
		Iterations: iterations,
		Targets:    discretize(t, actualClass),
		Predicted:  discretize(y, predictedClass),
		RMSE:       RMSE(t, y),
	}
	rows, _ := t.Dims()
	r.Samples = rows
	for i := 0; i < rows; i++ {
		if mat.Equal(r.Targets.RowView(i), r.Predicted.RowView(i)) {
			r.Correct++
		}
	}
	return r
}

// Accuracy is Correct / Samples.
func (r *TrainReport) Accuracy() float64 {
	if r.Samples == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Samples)
}

// Write prints the RMSE alone in comparison mode, otherwise the thresholded
// target and predicted matrices.
func (r *TrainReport) Write(w io.Writer, comparison bool) error {
	if comparison {
		_, err := fmt.Fprintf(w, "%g\n", r.RMSE)
		return err
	}
	_, err := fmt.Fprintf(w, "Target\n%v\nPredicted\n%v\ncorrect %d/%d after %d iterations\n",
		mat.Formatted(r.Targets, mat.Squeeze()),
		mat.Formatted(r.Predicted, mat.Squeeze()),
		r.Correct, r.Samples, r.Iterations)
	return err
}

// Prediction is the outcome of one forward pass over the test split.
type Prediction struct {
	Policy Policy
	// Outputs is test_Y, Targets is test_T.
	Outputs *mat.Dense
	Targets *mat.Dense
	// Predicted is d × m for BinaryThreshold and d × 1 class indices for Argmax.
	Predicted *mat.Dense
	// Confusion is indexed (predicted, actual) for BinaryThreshold and
	// (actual, predicted) for Argmax.
	Confusion *ConfusionMatrix
}

func newPrediction(policy Policy, t, y *mat.Dense, classes int) (*Prediction, error) {
	p := &Prediction{
		Policy:  policy,
		Outputs: mat.DenseCopyOf(y),
		Targets: mat.DenseCopyOf(t),
	}
	rows, cols := y.Dims()

	switch policy {
	case BinaryThreshold:
		p.Confusion = newConfusion(classes, "predicted", "actual")
		p.Predicted = discretize(y, predictedClass)
		for j := 0; j < cols; j++ {
			for i := 0; i < rows; i++ {
				p.Confusion.Add(int(p.Predicted.At(i, j)), actualClass(t.At(i, j)))
			}
		}
	case Argmax:
		p.Confusion = NewConfusionMatrix(classes)
		if cols == 1 {
			p.Predicted = discretize(y, predictedClass)
			for i := 0; i < rows; i++ {
				p.Confusion.Add(actualClass(t.At(i, 0)), int(p.Predicted.At(i, 0)))
			}
			break
		}
		if cols != classes {
			return nil, errors.Wrapf(ErrInvalidParams, "argmax over %d outputs with %d classes", cols, classes)
		}
		actual, err := argmaxRows(t)
		if err != nil {
			return nil, err
		}
		predicted, err := argmaxRows(y)
		if err != nil {
			return nil, err
		}
		p.Predicted = mat.NewDense(rows, 1, nil)
		for i := 0; i < rows; i++ {
			p.Predicted.Set(i, 0, float64(predicted[i]))
			p.Confusion.Add(actual[i], predicted[i])
		}
	default:
		return nil, errors.Wrapf(ErrInvalidParams, "unknown policy %v", policy)
	}
	return p, nil
}

// argmaxRows returns the column index of the largest value of every row.
func argmaxRows(m mat.Matrix) ([]int, error) {
	r, c := m.Dims()
	backing := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		backing = append(backing, mat.Row(nil, i, m)...)
	}
	t := tensor.New(tensor.Of(tensor.Float64), tensor.WithShape(r, c), tensor.WithBacking(backing))
	idx, err := t.Argmax(1)
	if err != nil {
		return nil, errors.Wrap(err, "argmax")
	}
	switch data := idx.Data().(type) {
	case []int:
		return data, nil
	case int:
		return []int{data}, nil
	default:
		return nil, errors.Errorf("argmax: unexpected %T", data)
	}
}

// RMSE of the test targets against the test outputs.
func (p *Prediction) RMSE() float64 {
	return RMSE(p.Targets, p.Outputs)
}

// Write prints the RMSE in comparison mode, otherwise the confusion matrix.
func (p *Prediction) Write(w io.Writer, comparison bool) error {
	if comparison {
		_, err := fmt.Fprintf(w, "%g\n", p.RMSE())
		return err
	}
	_, err := fmt.Fprintf(w, "Confusion (%s)\n%vaccuracy %.4f\n", p.Policy, p.Confusion, p.Confusion.Accuracy())
	return err
}
