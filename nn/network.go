package nn

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
)

// Config describes a network to build with NewNetwork.
type Config struct {
	// Sizes lists the neuron count of every layer, input first, output last.
	Sizes []int
	// Activations holds either one activation shared by all layers or
	// exactly one per layer.
	Activations  []Activation
	Cost         Cost
	LearningRate float64
	// Source seeds the initial weights. Nil means time-seeded.
	Source rand.Source
}

// Network is a stack of dense layers trained online, one sample per Train
// call. It is not safe for concurrent use.
type Network struct {
	layers       []*DenseLayer
	joins        []*LayerJoin
	learningRate float64
	cost         Cost
}

// NewNetwork validates c and returns a network with random initial weights
// and zero biases.
func NewNetwork(c Config) (*Network, error) {
	if len(c.Sizes) < 2 {
		return nil, ErrTooFewLayers
	}
	if len(c.Activations) != 1 && len(c.Activations) != len(c.Sizes) {
		return nil, fmt.Errorf("%d activations for %d layers: %w",
			len(c.Activations), len(c.Sizes), ErrActivationCount)
	}

	src := c.Source
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}

	layers := make([]*DenseLayer, len(c.Sizes))
	for l, size := range c.Sizes {
		act := c.Activations[0]
		if len(c.Activations) > 1 {
			act = c.Activations[l]
		}
		layer, err := NewDenseLayer(size, act)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", l, err)
		}
		layers[l] = layer
	}

	joins := make([]*LayerJoin, len(layers)-1)
	for l := range joins {
		join, err := NewLayerJoin(layers[l].Size(), layers[l+1].Size(), src)
		if err != nil {
			return nil, fmt.Errorf("join %d: %w", l, err)
		}
		joins[l] = join
	}

	return Assemble(layers, joins, c.LearningRate, c.Cost)
}

// Assemble builds a network from existing layers and joins. joins[l] must
// connect layers[l] to layers[l+1]. The network takes ownership of both.
func Assemble(layers []*DenseLayer, joins []*LayerJoin, learningRate float64, cost Cost) (*Network, error) {
	if len(layers) < 2 {
		return nil, ErrTooFewLayers
	}
	if len(joins) != len(layers)-1 {
		return nil, fmt.Errorf("%d joins for %d layers: %w", len(joins), len(layers), ErrJoinCount)
	}
	if cost == nil {
		return nil, ErrNilCost
	}
	if learningRate <= 0 || math.IsNaN(learningRate) || math.IsInf(learningRate, 0) {
		return nil, fmt.Errorf("learning rate %v: %w", learningRate, ErrLearningRate)
	}
	for l, layer := range layers {
		if layer == nil || layer.Size() < 1 {
			return nil, fmt.Errorf("layer %d: %w", l, ErrLayerSize)
		}
		if layer.Activation == nil {
			return nil, fmt.Errorf("layer %d: %w", l, ErrNilActivation)
		}
	}
	for l, join := range joins {
		in, out := layers[l].Size(), layers[l+1].Size()
		if join == nil || join.In() != in || join.Out() != out || join.Len() != in*out {
			got := 0
			if join != nil {
				got = join.Len()
			}
			return nil, &ShapeError{Join: l, In: in, Out: out, Expected: in * out, Got: got}
		}
	}

	return &Network{
		layers:       layers,
		joins:        joins,
		learningRate: learningRate,
		cost:         cost,
	}, nil
}

func (net *Network) lastIndex() int {
	return len(net.layers) - 1
}

func (net *Network) FirstLayer() *DenseLayer { return net.layers[0] }
func (net *Network) LastLayer() *DenseLayer  { return net.layers[net.lastIndex()] }
func (net *Network) Layers() []*DenseLayer   { return net.layers }
func (net *Network) Joins() []*LayerJoin     { return net.joins }
func (net *Network) LearningRate() float64   { return net.learningRate }
func (net *Network) Cost() Cost              { return net.cost }

// InputSize and OutputSize are the lengths Train and Predict expect.
func (net *Network) InputSize() int  { return net.FirstLayer().Size() }
func (net *Network) OutputSize() int { return net.LastLayer().Size() }

func (net *Network) feedForward(input []float64) {
	net.layers[0].FillValues(input)
	for l, join := range net.joins {
		join.Forward(net.layers[l], net.layers[l+1])
	}
}

func (net *Network) backpropagate() {
	for l := net.lastIndex(); l >= 1; l-- {
		net.joins[l-1].Backward(net.layers[l-1], net.layers[l], net.learningRate)
	}
}

// Train performs exactly one gradient descent step on a single sample.
func (net *Network) Train(input, expected []float64) {
	net.feedForward(input)
	net.LastLayer().FillLossGradients(net.cost, expected)
	net.backpropagate()
}

// Predict runs the forward pass only and returns a copy of the output
// values. Weights and biases are left untouched.
func (net *Network) Predict(input []float64) []float64 {
	net.feedForward(input)
	return net.LastLayer().Values()
}

// Loss sums the cost over the output layer as left by the latest forward
// pass.
func (net *Network) Loss(expected []float64) float64 {
	out := net.LastLayer()
	if len(expected) != out.Size() {
		panic(fmt.Sprintf("Loss: output layer has %d neurons, got %d targets", out.Size(), len(expected)))
	}
	var loss float64
	for i, n := range out.Neurons {
		loss += net.cost.Loss(n.Value, expected[i])
	}
	return loss
}
