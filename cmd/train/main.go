// mlp-train: online trainer for a dense feed-forward network over a CSV table
//
// Each row holds the inputs followed by the targets. The first part of the
// table trains the network one row at a time, the rest measures it.
//
// Usage:
//
//	mlp-train --data=data_banknote_authentication.txt --hidden=2 --lr=0.6
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/exp/rand"

	"mlp_lib/dataset"
	"mlp_lib/nn"
	"mlp_lib/trainer"
	"mlp_lib/utils"
)

var defaults = utils.DefaultConfig()

var (
	name             = flag.String("name", defaults.Name, "Run name recorded in the report")
	dataPath         = flag.String("data", "", "CSV table, inputs first and targets last")
	hidden           = flag.String("hidden", "", "Hidden layer sizes, e.g. \"8 4\" (default: inputs/2)")
	outputs          = flag.Int("outputs", defaults.Outputs, "Number of target columns")
	activation       = flag.String("activation", defaults.Activation, "Activation for input and hidden layers: sigmoid, relu, identity")
	outputActivation = flag.String("output-activation", defaults.OutputActivation, "Activation for the output layer")
	costName         = flag.String("cost", defaults.Cost, "Cost function: bce, mse")
	learningRate     = flag.Float64("lr", defaults.LearningRate, "Learning rate")
	epochs           = flag.Int("epochs", defaults.Epochs, "Passes over the training rows")
	fraction         = flag.Float64("fraction", defaults.TrainFraction, "Fraction of rows used for training")
	seed             = flag.Int64("seed", defaults.Seed, "Random seed for weights and shuffling")
	shuffle          = flag.Bool("shuffle", defaults.Shuffle, "Shuffle rows before splitting")
	normalize        = flag.Bool("normalize", defaults.Normalize, "Standardize input columns")
	reportPath       = flag.String("report", "", "Append a run record to this CSV file")
	verbose          = flag.Bool("verbose", true, "Verbose output")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose

	arch, err := utils.ParseArchitecture(*hidden)
	if err != nil {
		log.Fatalf("parsing hidden layers: %v", err)
	}
	config := utils.Config{
		Name:             *name,
		DataPath:         *dataPath,
		ReportPath:       *reportPath,
		Architecture:     arch,
		Outputs:          *outputs,
		Activation:       *activation,
		OutputActivation: *outputActivation,
		Cost:             *costName,
		LearningRate:     *learningRate,
		Epochs:           *epochs,
		TrainFraction:    *fraction,
		Seed:             *seed,
		Shuffle:          *shuffle,
		Normalize:        *normalize,
	}
	if err := utils.ValidateConfig(&config); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if err := run(&config); err != nil {
		log.Fatal(err)
	}
}

func run(config *utils.Config) error {
	stats := &utils.TimingStats{}
	totalStart := time.Now()

	start := time.Now()
	lines, err := dataset.LoadCSV(config.DataPath, config.Outputs)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}
	if config.Normalize {
		lines = dataset.Normalize(lines)
	}
	if config.Shuffle {
		dataset.Shuffle(lines, rand.NewSource(uint64(config.Seed)))
	}
	train, test, err := dataset.Split(lines, config.TrainFraction)
	if err != nil {
		return err
	}
	if len(train) == 0 || len(test) == 0 {
		return fmt.Errorf("%d rows are not enough to split at %.2f", len(lines), config.TrainFraction)
	}
	stats.DataLoadingTime = time.Since(start)

	start = time.Now()
	net, err := buildNetwork(config, lines.InputSize())
	if err != nil {
		return fmt.Errorf("building network: %w", err)
	}
	stats.ModelInitTime = time.Since(start)

	sizes := utils.LayerSizes(config, lines.InputSize())
	utils.Logf("\nConfiguration:\n")
	utils.Logf("  Data:          %s (%d rows, %d train / %d test)\n", config.DataPath, len(lines), len(train), len(test))
	utils.Logf("  Layers:        %v\n", sizes)
	utils.Logf("  Activation:    %s (output %s)\n", config.Activation, config.OutputActivation)
	utils.Logf("  Cost:          %s\n", config.Cost)
	utils.Logf("  Learning Rate: %.4f\n", config.LearningRate)
	utils.Logf("  Epochs:        %d\n\n", config.Epochs)

	start = time.Now()
	steps, err := trainer.Fit(net, train, config.Epochs)
	if err != nil {
		return fmt.Errorf("training: %w", err)
	}
	stats.TrainingTime = time.Since(start)

	start = time.Now()
	res, err := trainer.Evaluate(net, test)
	if err != nil {
		return fmt.Errorf("evaluating: %w", err)
	}
	stats.EvaluationTime = time.Since(start)
	stats.TotalTime = time.Since(totalStart)

	fmt.Printf("Average accuracy: %.02f%%\n", res.Accuracy*100)
	fmt.Printf("Classified correctly: %.02f%% of %d samples\n", res.Correct*100, res.Samples)
	utils.PrintTimingStats(stats, steps)

	if config.ReportPath != "" {
		err := utils.AppendReport(config.ReportPath, utils.Report{
			Name:           config.Name,
			Activation:     config.Activation,
			Cost:           config.Cost,
			Layers:         sizes,
			Epochs:         config.Epochs,
			LearningRate:   config.LearningRate,
			EndTime:        time.Now(),
			SecondsToTrain: stats.TrainingTime.Seconds(),
			Accuracy:       res.Accuracy,
			Correct:        res.Correct,
		})
		if err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

func buildNetwork(config *utils.Config, inputs int) (*nn.Network, error) {
	act, err := nn.ActivationByName(config.Activation)
	if err != nil {
		return nil, err
	}
	outAct, err := nn.ActivationByName(config.OutputActivation)
	if err != nil {
		return nil, err
	}
	cost, err := nn.CostByName(config.Cost)
	if err != nil {
		return nil, err
	}

	sizes := utils.LayerSizes(config, inputs)
	activations := make([]nn.Activation, len(sizes))
	for i := range activations {
		activations[i] = act
	}
	activations[len(activations)-1] = outAct

	return nn.NewNetwork(nn.Config{
		Sizes:        sizes,
		Activations:  activations,
		Cost:         cost,
		LearningRate: config.LearningRate,
		Source:       rand.NewSource(uint64(config.Seed) + 1),
	})
}
