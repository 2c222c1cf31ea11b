package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Config holds training configuration
type Config struct {
	Name             string
	DataPath         string
	ReportPath       string
	Architecture     []int // hidden layer sizes, input and output come from the data
	Outputs          int
	Activation       string
	OutputActivation string
	Cost             string
	LearningRate     float64
	Epochs           int
	TrainFraction    float64
	Seed             int64
	Shuffle          bool
	Normalize        bool
}

// DefaultConfig mirrors the banknote authentication setup: sigmoid layers,
// binary cross-entropy, one online pass over 60% of the rows.
func DefaultConfig() Config {
	return Config{
		Name:             "default",
		Outputs:          1,
		Activation:       "sigmoid",
		OutputActivation: "sigmoid",
		Cost:             "bce",
		LearningRate:     0.6,
		Epochs:           1,
		TrainFraction:    0.6,
		Seed:             42,
		Shuffle:          true,
	}
}

// ParseArchitecture parses architecture string into slice of integers.
// Sizes may be separated by spaces or commas; an empty string means no
// hidden layers.
func ParseArchitecture(archStr string) ([]int, error) {
	archParts := strings.FieldsFunc(archStr, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	arch := make([]int, len(archParts))
	for i, s := range archParts {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("layer size %q: %w", s, err)
		}
		arch[i] = n
	}
	return arch, nil
}

// LayerSizes returns the full list of layer sizes for a dataset with the
// given input width. Without hidden layers it falls back to one hidden layer
// of half the input width.
func LayerSizes(config *Config, inputs int) []int {
	hidden := config.Architecture
	if len(hidden) == 0 {
		hidden = []int{max(inputs/2, 1)}
	}
	sizes := make([]int, 0, len(hidden)+2)
	sizes = append(sizes, inputs)
	sizes = append(sizes, hidden...)
	return append(sizes, config.Outputs)
}

// ValidateConfig validates training configuration
func ValidateConfig(config *Config) error {
	if config.DataPath == "" {
		return fmt.Errorf("data path is required")
	}

	for i, n := range config.Architecture {
		if n <= 0 {
			return fmt.Errorf("hidden layer %d size must be positive, got %d", i, n)
		}
	}

	if config.Outputs <= 0 {
		return fmt.Errorf("output count must be positive")
	}

	if config.LearningRate <= 0 || math.IsNaN(config.LearningRate) || math.IsInf(config.LearningRate, 0) {
		return fmt.Errorf("learning rate must be positive")
	}

	if config.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive")
	}

	if config.TrainFraction <= 0 || config.TrainFraction >= 1 {
		return fmt.Errorf("training fraction must be in (0, 1)")
	}

	if config.Activation == "" || config.OutputActivation == "" || config.Cost == "" {
		return fmt.Errorf("activation and cost names are required")
	}

	return nil
}
