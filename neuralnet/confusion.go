package neuralnet

import (
	"fmt"
	"strings"
)

// ConfusionMatrix counts samples in a classes × classes grid. Which class
// indexes the rows depends on who filled it: Argmax predictions use
// (actual, predicted), BinaryThreshold predictions use (predicted, actual).
// RowLabel and ColLabel name the two axes.
type ConfusionMatrix struct {
	classes  int
	counts   []int
	RowLabel string
	ColLabel string
}

// NewConfusionMatrix returns an empty matrix with actual classes on the
// rows and predicted classes on the columns.
func NewConfusionMatrix(classes int) *ConfusionMatrix {
	return newConfusion(classes, "actual", "predicted")
}

func newConfusion(classes int, rowLabel, colLabel string) *ConfusionMatrix {
	return &ConfusionMatrix{
		classes:  classes,
		counts:   make([]int, classes*classes),
		RowLabel: rowLabel,
		ColLabel: colLabel,
	}
}

// Classes returns the side length of the matrix.
func (cm *ConfusionMatrix) Classes() int {
	return cm.classes
}

// Add tallies one sample at (row, col). Out-of-range classes panic.
func (cm *ConfusionMatrix) Add(row, col int) {
	if row < 0 || row >= cm.classes || col < 0 || col >= cm.classes {
		panic(fmt.Sprintf("neuralnet: class (%d, %d) outside %d×%d confusion matrix", row, col, cm.classes, cm.classes))
	}
	cm.counts[row*cm.classes+col]++
}

// At returns the count of cell (row, col), read along RowLabel and ColLabel.
func (cm *ConfusionMatrix) At(row, col int) int {
	return cm.counts[row*cm.classes+col]
}

// Total is the number of tallied samples.
func (cm *ConfusionMatrix) Total() int {
	total := 0
	for _, c := range cm.counts {
		total += c
	}
	return total
}

// RowSum is the number of samples counted in row i.
func (cm *ConfusionMatrix) RowSum(i int) int {
	sum := 0
	for j := 0; j < cm.classes; j++ {
		sum += cm.At(i, j)
	}
	return sum
}

// ColSum is the number of samples counted in column j.
func (cm *ConfusionMatrix) ColSum(j int) int {
	sum := 0
	for i := 0; i < cm.classes; i++ {
		sum += cm.At(i, j)
	}
	return sum
}

// Accuracy is the diagonal share of all tallied samples, 0 when empty.
func (cm *ConfusionMatrix) Accuracy() float64 {
	total := cm.Total()
	if total == 0 {
		return 0
	}
	correct := 0
	for i := 0; i < cm.classes; i++ {
		correct += cm.At(i, i)
	}
	return float64(correct) / float64(total)
}

func (cm *ConfusionMatrix) String() string {
	var sb strings.Builder

	sb.WriteString(cm.RowLabel + "\\" + cm.ColLabel)
	for j := 0; j < cm.classes; j++ {
		sb.WriteString(fmt.Sprintf("\t%d", j))
	}
	sb.WriteString("\n")
	for i := 0; i < cm.classes; i++ {
		sb.WriteString(fmt.Sprintf("%d", i))
		for j := 0; j < cm.classes; j++ {
			sb.WriteString(fmt.Sprintf("\t%d", cm.At(i, j)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
