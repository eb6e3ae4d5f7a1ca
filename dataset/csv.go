package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ReadCSV reads a numeric CSV table, one sample per record. Lines starting
// with '#' are comments. Every record must have the same number of fields.
func ReadCSV(r io.Reader) (*mat.Dense, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true

	var (
		data []float64
		rows int
		cols int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(ErrMalformed, "%v", err)
		}
		if rows == 0 {
			cols = len(record)
		}
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformed, "row %d column %d: %q is not a number", rows+1, j+1, field)
			}
			data = append(data, v)
		}
		rows++
	}
	if rows == 0 || cols == 0 {
		return nil, errors.Wrap(ErrMalformed, "no records")
	}
	return mat.NewDense(rows, cols, data), nil
}

// LoadCSV reads a numeric CSV table from a file.
func LoadCSV(filePath string) (*mat.Dense, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	m, err := ReadCSV(file)
	if err != nil {
		return nil, errors.WithMessage(err, filePath)
	}
	return m, nil
}
