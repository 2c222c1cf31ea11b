package nn

import (
	"fmt"
	"strings"
)

// Neuron is one unit of a DenseLayer. Value and LossGradient are scratch
// state rewritten by every forward and backward pass; Bias is learned.
type Neuron struct {
	Bias         float64
	Value        float64
	LossGradient float64
}

// DenseLayer is a fixed-size run of neurons sharing one activation. For the
// input layer the activation is never applied to values, but its derivative
// still scales the gradient propagated into it.
type DenseLayer struct {
	Neurons    []Neuron
	Activation Activation
}

// NewDenseLayer returns a layer of size zeroed neurons.
func NewDenseLayer(size int, act Activation) (*DenseLayer, error) {
	if size < 1 {
		return nil, fmt.Errorf("dense layer of size %d: %w", size, ErrLayerSize)
	}
	if act == nil {
		return nil, ErrNilActivation
	}
	return &DenseLayer{
		Neurons:    make([]Neuron, size),
		Activation: act,
	}, nil
}

func (l *DenseLayer) Size() int {
	return len(l.Neurons)
}

// FillValues overwrites neuron values positionally. input must have exactly
// Size() entries.
func (l *DenseLayer) FillValues(input []float64) {
	if len(input) != len(l.Neurons) {
		panic(fmt.Sprintf("FillValues: layer has %d neurons, got %d values", len(l.Neurons), len(input)))
	}
	for i := range l.Neurons {
		l.Neurons[i].Value = input[i]
	}
}

// FillLossGradients seeds backpropagation on the output layer from the
// expected vector.
func (l *DenseLayer) FillLossGradients(cost Cost, expected []float64) {
	if len(expected) != len(l.Neurons) {
		panic(fmt.Sprintf("FillLossGradients: layer has %d neurons, got %d targets", len(l.Neurons), len(expected)))
	}
	for i := range l.Neurons {
		n := &l.Neurons[i]
		n.LossGradient = cost.Derivative(n.Value, expected[i]) * l.Activation.Derivative(n.Value)
	}
}

// Values returns a copy of the current neuron values.
func (l *DenseLayer) Values() []float64 {
	out := make([]float64, len(l.Neurons))
	for i, n := range l.Neurons {
		out[i] = n.Value
	}
	return out
}

// Biases returns a copy of the neuron biases.
func (l *DenseLayer) Biases() []float64 {
	out := make([]float64, len(l.Neurons))
	for i, n := range l.Neurons {
		out[i] = n.Bias
	}
	return out
}

func (l *DenseLayer) String() string {
	var sb strings.Builder
	for _, n := range l.Neurons {
		fmt.Fprintf(&sb, "%.02f\t", n.Value)
	}
	return sb.String()
}
