package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"perceptron/dataset"
	"perceptron/neuralnet"
)

type config struct {
	trainPath string
	testPath  string
	xor       bool
	inputs    int
	hidden    int
	classes   int
	labels    bool
	eta       float64
	iter      int
	lower     float64
	upper     float64
	seed      int64
	argmax    bool
	compare   bool
	debug     bool
	tracePath string
	every     int
}

func parseFlags() config {
	var c config
	flag.StringVar(&c.trainPath, "train", "", "training data CSV")
	flag.StringVar(&c.testPath, "test", "", "test data CSV (optional)")
	flag.BoolVar(&c.xor, "xor", false, "use the built-in XOR data instead of -train/-test")
	flag.IntVar(&c.inputs, "inputs", 2, "number of input columns")
	flag.IntVar(&c.hidden, "hidden", 2, "number of hidden nodes")
	flag.IntVar(&c.classes, "classes", 2, "number of classes")
	flag.BoolVar(&c.labels, "labels", false, "last CSV column is an integer class label to one-hot encode")
	flag.Float64Var(&c.eta, "eta", 0.5, "learning rate")
	flag.IntVar(&c.iter, "iter", 5000, "training iterations")
	flag.Float64Var(&c.lower, "lower", 0, "lower bound of the initial weights")
	flag.Float64Var(&c.upper, "upper", 1, "upper bound of the initial weights")
	flag.Int64Var(&c.seed, "seed", 0, "weight seed, 0 derives it from the topology")
	flag.BoolVar(&c.argmax, "argmax", false, "single-winner classes instead of independent binary outputs")
	flag.BoolVar(&c.compare, "compare", false, "print RMSE scalars only")
	flag.BoolVar(&c.debug, "debug", false, "log intermediate matrices")
	flag.StringVar(&c.tracePath, "trace", "", "write intermediate matrices to this CSV file")
	flag.IntVar(&c.every, "every", 1000, "trace interval in iterations")
	flag.Parse()
	return c
}

func loadSplit(path string, c config) (*mat.Dense, error) {
	m, err := dataset.LoadCSV(path)
	if err != nil {
		return nil, err
	}
	if c.labels {
		return dataset.WithOneHotLabels(m, c.classes)
	}
	return m, nil
}

func loadDataSet(c config) (*dataset.DataSet, error) {
	if c.xor {
		return dataset.XOR(c.hidden), nil
	}
	if c.trainPath == "" {
		return nil, errors.New("either -train or -xor is required")
	}
	train, err := loadSplit(c.trainPath, c)
	if err != nil {
		return nil, err
	}
	ds := &dataset.DataSet{
		TrainingData: train,
		Inputs:       c.inputs,
		HiddenNodes:  c.hidden,
		Classes:      c.classes,
	}
	if c.testPath != "" {
		if ds.TestData, err = loadSplit(c.testPath, c); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// finishTrace flushes the trace and closes its file, returning the first error.
func finishTrace(o *neuralnet.CSVObserver, file io.Closer) error {
	err := o.Flush()
	if cerr := file.Close(); cerr != nil && err == nil {
		err = errors.Wrap(cerr, "close trace")
	}
	return err
}

func run(c config, logger *slog.Logger) (err error) {
	ds, err := loadDataSet(c)
	if err != nil {
		return err
	}

	params := neuralnet.NewParamsRange(c.lower, c.upper)
	params.Seed = c.seed

	switch {
	case c.tracePath != "":
		file, cerr := os.Create(c.tracePath)
		if cerr != nil {
			return cerr
		}
		csvTrace := neuralnet.NewCSVObserver(file, c.every)
		defer func() {
			if ferr := finishTrace(csvTrace, file); err == nil {
				err = ferr
			}
		}()
		params.Observer = csvTrace
	case c.debug:
		params.Observer = neuralnet.NewLogObserver(logger, c.every)
	}

	nn, err := neuralnet.New(ds, params)
	if err != nil {
		return err
	}
	logger.Info("training",
		slog.Int("inputs", nn.Inputs()),
		slog.Int("hidden", nn.Hidden()),
		slog.Int("outputs", nn.Outputs()),
		slog.Int("samples", nn.Samples()),
		slog.Int("test_samples", nn.TestSamples()),
		slog.Float64("eta", c.eta),
		slog.Int("iterations", c.iter),
	)

	report, err := nn.Train(c.eta, c.iter)
	if err != nil {
		return err
	}
	if err := report.Write(os.Stdout, c.compare); err != nil {
		return err
	}

	if ds.HasTestData() {
		policy := neuralnet.BinaryThreshold
		if c.argmax {
			policy = neuralnet.Argmax
		}
		prediction, err := nn.Predict(policy)
		if err != nil {
			return err
		}
		if err := prediction.Write(os.Stdout, c.compare); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	c := parseFlags()

	level := slog.LevelInfo
	if c.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(c, logger); err != nil {
		logger.Error("perceptron failed", slog.Any("error", err))
		os.Exit(1)
	}
}
