package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Report is one row of the run log.
type Report struct {
	Name           string
	Activation     string
	Cost           string
	Layers         []int
	Epochs         int
	LearningRate   float64
	EndTime        time.Time
	SecondsToTrain float64
	Accuracy       float64 // 1 - mean error, in [0, 1] for bounded outputs
	Correct        float64 // fraction of test samples classified right
}

var reportHeaders = []string{
	"Name", "Activation", "Cost", "Layers", "Epochs", "LR", "End Time", "SecondsToTrain", "Accuracy", "Correct",
}

// AppendReport appends r to the CSV run log at path, writing the header
// when the file is created.
func AppendReport(path string, r Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}

	var needsHeaders bool
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeaders = true
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if needsHeaders {
		if err := w.Write(reportHeaders); err != nil {
			return fmt.Errorf("writing csv headers: %w", err)
		}
	}

	layers := make([]string, len(r.Layers))
	for i, n := range r.Layers {
		layers[i] = strconv.Itoa(n)
	}
	record := []string{
		r.Name,
		r.Activation,
		r.Cost,
		strings.Join(layers, " "),
		strconv.Itoa(r.Epochs),
		strconv.FormatFloat(r.LearningRate, 'f', 4, 64),
		strconv.FormatInt(r.EndTime.Unix(), 10),
		strconv.FormatFloat(r.SecondsToTrain, 'f', 3, 64),
		strconv.FormatFloat(r.Accuracy, 'f', 5, 64),
		strconv.FormatFloat(r.Correct, 'f', 5, 64),
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("writing csv record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("error writing csv: %w", err)
	}
	return nil
}
