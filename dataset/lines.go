package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Line is one sample: the inputs fed to the network and the targets it is
// trained towards.
type Line struct {
	Inputs  []float64
	Targets []float64
}

type Lines []Line

// InputSize is the input length of the first line, 0 when empty.
func (lines Lines) InputSize() int {
	if len(lines) == 0 {
		return 0
	}
	return len(lines[0].Inputs)
}

// OutputSize is the target length of the first line, 0 when empty.
func (lines Lines) OutputSize() int {
	if len(lines) == 0 {
		return 0
	}
	return len(lines[0].Targets)
}

// GetLines reads comma separated records of inputNum inputs followed by
// outputNum targets. Blank lines are skipped.
func GetLines(reader io.Reader, inputNum, outputNum int) (Lines, error) {
	if inputNum < 1 || outputNum < 1 {
		return nil, fmt.Errorf("need at least one input and one target column, got %d and %d", inputNum, outputNum)
	}

	return readAll(newReader(reader), inputNum, outputNum)
}

// LoadCSV reads a table whose last outputNum columns are targets. The input
// width is taken from the first record.
func LoadCSV(filename string, outputNum int) (Lines, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer file.Close()

	r := newReader(file)
	first, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("dataset %s is empty", filename)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	inputNum := len(first) - outputNum
	if inputNum < 1 || outputNum < 1 {
		return nil, fmt.Errorf("%s: %d columns cannot hold %d targets and at least one input",
			filename, len(first), outputNum)
	}

	lineNum, _ := r.FieldPos(0)
	line, err := parseRecord(first, lineNum, inputNum, outputNum)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	rest, err := readAll(r, inputNum, outputNum)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return append(Lines{line}, rest...), nil
}

func newReader(reader io.Reader) *csv.Reader {
	r := csv.NewReader(reader)
	// field counts are checked per record to report them as errInvalidLine
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r
}

func readAll(r *csv.Reader, inputNum, outputNum int) (Lines, error) {
	var lines Lines
	for {
		record, err := r.Read()
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return lines, fmt.Errorf("reading dataset: %w", err)
		}
		lineNum, _ := r.FieldPos(0)
		line, err := parseRecord(record, lineNum, inputNum, outputNum)
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
}

func parseRecord(record []string, lineNum, inputNum, outputNum int) (Line, error) {
	if len(record) != inputNum+outputNum {
		return Line{}, errInvalidLine{
			lineNum:  lineNum,
			splits:   len(record),
			expected: inputNum + outputNum,
		}
	}

	inputs := make([]float64, inputNum)
	targets := make([]float64, outputNum)
	for i, split := range record {
		num, err := strconv.ParseFloat(strings.TrimSpace(split), 64)
		if err != nil {
			if i < inputNum {
				return Line{}, fmt.Errorf("parsing input at line %d: %w", lineNum, err)
			}
			return Line{}, fmt.Errorf("parsing target at line %d: %w", lineNum, err)
		}
		if i < inputNum {
			inputs[i] = num
		} else {
			targets[i-inputNum] = num
		}
	}
	return Line{Inputs: inputs, Targets: targets}, nil
}

type errInvalidLine struct {
	lineNum  int
	splits   int
	expected int
}

func (e errInvalidLine) Error() string {
	return fmt.Sprintf("at line %d, expected %d values, got %d",
		e.lineNum, e.expected, e.splits)
}
