package dataset

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// Normalize returns a copy of lines with every input column shifted to zero
// mean and scaled to unit standard deviation. Constant columns are only
// centered. Targets are shared with the originals.
func Normalize(lines Lines) Lines {
	if len(lines) == 0 {
		return nil
	}

	mean, std := ColumnStats(lines)
	normalized := make(Lines, len(lines))
	for i, line := range lines {
		inputs := make([]float64, len(line.Inputs))
		for j, x := range line.Inputs {
			inputs[j] = x - mean[j]
			if std[j] > 0 {
				inputs[j] /= std[j]
			}
		}
		normalized[i] = Line{
			Inputs:  inputs,
			Targets: line.Targets,
		}
	}
	return normalized
}

// ColumnStats returns the per-column mean and population standard deviation
// of the inputs.
func ColumnStats(lines Lines) (mean, std []float64) {
	if len(lines) == 0 {
		return nil, nil
	}

	numEntries := lines.InputSize()
	mean = make([]float64, numEntries)
	std = make([]float64, numEntries)

	column := make([]float64, len(lines))
	for j := 0; j < numEntries; j++ {
		for i, line := range lines {
			column[i] = line.Inputs[j]
		}
		m, s := stat.PopMeanStdDev(column, nil)
		mean[j], std[j] = m, s
	}
	return mean, std
}

// Shuffle permutes lines in place. The same src seed gives the same order.
func Shuffle(lines Lines, src rand.Source) {
	rand.New(src).Shuffle(len(lines), func(i, j int) {
		lines[i], lines[j] = lines[j], lines[i]
	})
}

// Split cuts lines into a training head of int(len*fraction) lines and a
// test tail. Both share the backing array of lines.
func Split(lines Lines, fraction float64) (train, test Lines, err error) {
	if fraction <= 0 || fraction >= 1 {
		return nil, nil, fmt.Errorf("training fraction must be in (0, 1), got %v", fraction)
	}
	n := int(float64(len(lines)) * fraction)
	return lines[:n], lines[n:], nil
}
