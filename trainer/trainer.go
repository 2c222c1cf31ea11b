// Package trainer drives an nn.Network over a dataset: online training one
// line at a time and evaluation against held-out lines.
package trainer

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"mlp_lib/dataset"
	"mlp_lib/nn"
	"mlp_lib/utils"
)

// Result summarizes a network's predictions over a set of lines.
type Result struct {
	Samples int
	// MeanError is 0.5*(expected-predicted)^2 averaged over samples and
	// outputs.
	MeanError float64
	// Accuracy is 1 - MeanError.
	Accuracy float64
	// Correct is the fraction of samples classified right: a single output
	// is thresholded at 0.5, several outputs are compared by argmax.
	Correct float64
}

// CheckShapes reports the first line whose widths do not match the network.
func CheckShapes(net *nn.Network, lines dataset.Lines) error {
	for i, line := range lines {
		if len(line.Inputs) != net.InputSize() {
			return fmt.Errorf("line %d: network takes %d inputs, got %d", i, net.InputSize(), len(line.Inputs))
		}
		if len(line.Targets) != net.OutputSize() {
			return fmt.Errorf("line %d: network yields %d outputs, got %d targets", i, net.OutputSize(), len(line.Targets))
		}
	}
	return nil
}

// Fit trains net on every line in order, once per epoch. Each line is one
// gradient descent step. It returns the number of steps taken.
func Fit(net *nn.Network, lines dataset.Lines, epochs int) (int, error) {
	if epochs < 1 {
		return 0, fmt.Errorf("epochs must be positive, got %d", epochs)
	}
	if err := CheckShapes(net, lines); err != nil {
		return 0, err
	}

	steps := 0
	for epoch := 1; epoch <= epochs; epoch++ {
		for _, line := range lines {
			net.Train(line.Inputs, line.Targets)
			steps++
		}
		utils.Logf("Epoch %d of %d complete\n", epoch, epochs)
	}
	return steps, nil
}

var mse = nn.MeanSquared{}

// Evaluate predicts every line and scores the outputs.
func Evaluate(net *nn.Network, lines dataset.Lines) (Result, error) {
	if len(lines) == 0 {
		return Result{}, fmt.Errorf("no lines to evaluate")
	}
	if err := CheckShapes(net, lines); err != nil {
		return Result{}, err
	}

	errs := make([]float64, 0, len(lines)*net.OutputSize())
	var correct float64
	for _, line := range lines {
		prediction := net.Predict(line.Inputs)
		for i, p := range prediction {
			errs = append(errs, mse.Loss(p, line.Targets[i]))
		}
		if classify(prediction) == classify(line.Targets) {
			correct++
		}
	}

	meanError := floats.Sum(errs) / float64(len(errs))
	return Result{
		Samples:   len(lines),
		MeanError: meanError,
		Accuracy:  1 - meanError,
		Correct:   correct / float64(len(lines)),
	}, nil
}

func classify(values []float64) int {
	if len(values) == 1 {
		if values[0] >= 0.5 {
			return 1
		}
		return 0
	}
	return floats.MaxIdx(values)
}
