package trainer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"mlp_lib/dataset"
	"mlp_lib/nn"
	"mlp_lib/utils"
)

func quiet(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldOut, oldVerbose := utils.Output, utils.Verbose
	utils.Output, utils.Verbose = &buf, true
	t.Cleanup(func() { utils.Output, utils.Verbose = oldOut, oldVerbose })
	return &buf
}

// y = x0 - x1 with identity activations and no hidden layer
func differenceNetwork(t *testing.T) *nn.Network {
	t.Helper()
	in, err := nn.NewDenseLayer(2, nn.Identity{})
	require.NoError(t, err)
	out, err := nn.NewDenseLayer(1, nn.Identity{})
	require.NoError(t, err)
	join, err := nn.NewLayerJoinFromWeights(2, 1, []float64{1, -1})
	require.NoError(t, err)
	net, err := nn.Assemble([]*nn.DenseLayer{in, out}, []*nn.LayerJoin{join}, 0.1, nn.MeanSquared{})
	require.NoError(t, err)
	return net
}

func TestEvaluate(t *testing.T) {
	net := differenceNetwork(t)
	lines := dataset.Lines{
		{Inputs: []float64{1, 0}, Targets: []float64{1}},   // exact, class 1
		{Inputs: []float64{0.5, 0}, Targets: []float64{0}}, // off by 0.5, wrong class
		{Inputs: []float64{0, 0.2}, Targets: []float64{0}}, // off by 0.2, class 0
		{Inputs: []float64{2, 1}, Targets: []float64{1}},   // exact
	}

	res, err := Evaluate(net, lines)
	require.NoError(t, err)

	wantMean := (0.5*0.25 + 0.5*0.04) / 4
	assert.Equal(t, 4, res.Samples)
	assert.InDelta(t, wantMean, res.MeanError, 1e-12)
	assert.InDelta(t, 1-wantMean, res.Accuracy, 1e-12)
	assert.InDelta(t, 0.75, res.Correct, 1e-12)
}

func TestEvaluateArgmax(t *testing.T) {
	in, err := nn.NewDenseLayer(2, nn.Identity{})
	require.NoError(t, err)
	out, err := nn.NewDenseLayer(2, nn.Identity{})
	require.NoError(t, err)
	join, err := nn.NewLayerJoinFromWeights(2, 2, []float64{1, 0, 0, 1})
	require.NoError(t, err)
	net, err := nn.Assemble([]*nn.DenseLayer{in, out}, []*nn.LayerJoin{join}, 0.1, nn.MeanSquared{})
	require.NoError(t, err)

	res, err := Evaluate(net, dataset.Lines{
		{Inputs: []float64{0.9, 0.1}, Targets: []float64{1, 0}},
		{Inputs: []float64{0.2, 0.7}, Targets: []float64{1, 0}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, res.Correct, 1e-12)
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	net := differenceNetwork(t)

	_, err := Evaluate(net, nil)
	assert.Error(t, err)

	_, err = Evaluate(net, dataset.Lines{{Inputs: []float64{1}, Targets: []float64{1}}})
	assert.ErrorContains(t, err, "inputs")

	_, err = Evaluate(net, dataset.Lines{{Inputs: []float64{1, 2}, Targets: []float64{1, 0}}})
	assert.ErrorContains(t, err, "targets")
}

func TestFitImprovesTowardConstantTarget(t *testing.T) {
	buf := quiet(t)

	net, err := nn.NewNetwork(nn.Config{
		Sizes:        []int{2, 3, 1},
		Activations:  []nn.Activation{nn.Sigmoid{}},
		Cost:         nn.BinaryCrossEntropy{},
		LearningRate: 0.1,
		Source:       rand.NewSource(5),
	})
	require.NoError(t, err)

	lines := dataset.Lines{
		{Inputs: []float64{0.1, 0.9}, Targets: []float64{1}},
		{Inputs: []float64{0.5, 0.5}, Targets: []float64{1}},
		{Inputs: []float64{0.8, 0.3}, Targets: []float64{1}},
	}

	before, err := Evaluate(net, lines)
	require.NoError(t, err)

	steps, err := Fit(net, lines, 3)
	require.NoError(t, err)
	assert.Equal(t, 9, steps)
	assert.Contains(t, buf.String(), "Epoch 3 of 3 complete")

	after, err := Evaluate(net, lines)
	require.NoError(t, err)
	assert.Less(t, after.MeanError, before.MeanError)
	assert.Greater(t, after.Accuracy, before.Accuracy)
}

func TestFitValidates(t *testing.T) {
	net := differenceNetwork(t)

	_, err := Fit(net, nil, 0)
	assert.Error(t, err)

	steps, err := Fit(net, dataset.Lines{{Inputs: []float64{1, 2, 3}, Targets: []float64{1}}}, 1)
	assert.Error(t, err)
	assert.Zero(t, steps)
	// nothing was trained
	assert.Equal(t, []float64{1, -1}, net.Joins()[0].Weights())
}
