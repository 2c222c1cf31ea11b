package utils

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Verbose controls whether timing statistics and progress are printed.
// Set to false to suppress output.
var Verbose = true

// Output is the writer where timing statistics and progress are printed.
// Defaults to os.Stdout.
var Output io.Writer = os.Stdout

// Logf prints progress to Output when Verbose is set.
func Logf(format string, args ...any) {
	if !Verbose {
		return
	}
	fmt.Fprintf(Output, format, args...)
}

// TimingStats holds timing information for the phases of a run
type TimingStats struct {
	TotalTime       time.Duration
	DataLoadingTime time.Duration
	ModelInitTime   time.Duration
	TrainingTime    time.Duration
	EvaluationTime  time.Duration
}

// PrintTimingStats prints detailed timing statistics. steps is the number of
// Train calls made.
// Respects the Verbose flag - does nothing if Verbose is false.
func PrintTimingStats(stats *TimingStats, steps int) {
	if !Verbose {
		return
	}
	fmt.Fprintln(Output, "\n=== TIMING STATISTICS ===")
	fmt.Fprintf(Output, "Total time: %v\n", stats.TotalTime)
	fmt.Fprintf(Output, "Training steps completed: %d\n", steps)
	if steps > 0 {
		fmt.Fprintf(Output, "Average time per step: %v\n", stats.TrainingTime/time.Duration(steps))
	}
	fmt.Fprintln(Output, "\nBreakdown by phase:")
	fmt.Fprintf(Output, "  Data loading: %v (%.1f%%)\n", stats.DataLoadingTime, percentOf(stats.DataLoadingTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Model initialization: %v (%.1f%%)\n", stats.ModelInitTime, percentOf(stats.ModelInitTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Training: %v (%.1f%%)\n", stats.TrainingTime, percentOf(stats.TrainingTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Evaluation: %v (%.1f%%)\n", stats.EvaluationTime, percentOf(stats.EvaluationTime, stats.TotalTime))
}

func percentOf(part, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// DurationUS converts any time.Duration to micro-seconds as float64
func DurationUS(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1_000.0
}
