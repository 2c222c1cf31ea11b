package nn

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// LayerJoin holds the dense weights between two consecutive layers.
//
// Weights are stored row-major in a single buffer: the weight at
// i*in + j connects input neuron j to output neuron i. The gonum matrix
// returned by Matrix is a view over that same buffer, so updates through
// either side are visible to the other.
type LayerJoin struct {
	in, out int
	weights []float64
	w       *mat.Dense

	// scratch for the forward product
	x, z *mat.VecDense
}

// NewLayerJoin allocates an in -> out join with weights drawn independently
// from U[0,1). A nil src falls back to a time-seeded source.
func NewLayerJoin(in, out int, src rand.Source) (*LayerJoin, error) {
	if in < 1 || out < 1 {
		return nil, fmt.Errorf("layer join %d -> %d: %w", in, out, ErrLayerSize)
	}
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	dist := distuv.Uniform{Min: 0, Max: 1, Src: src}

	weights := make([]float64, in*out)
	for i := range weights {
		weights[i] = dist.Rand()
	}
	return newLayerJoin(in, out, weights), nil
}

// NewLayerJoinFromWeights builds a join over a copy of weights, which must
// hold exactly in*out values in row-major order.
func NewLayerJoinFromWeights(in, out int, weights []float64) (*LayerJoin, error) {
	if in < 1 || out < 1 {
		return nil, fmt.Errorf("layer join %d -> %d: %w", in, out, ErrLayerSize)
	}
	if len(weights) != in*out {
		return nil, &ShapeError{In: in, Out: out, Expected: in * out, Got: len(weights)}
	}
	return newLayerJoin(in, out, append([]float64(nil), weights...)), nil
}

func newLayerJoin(in, out int, weights []float64) *LayerJoin {
	return &LayerJoin{
		in:      in,
		out:     out,
		weights: weights,
		w:       mat.NewDense(out, in, weights),
		x:       mat.NewVecDense(in, nil),
		z:       mat.NewVecDense(out, nil),
	}
}

func (j *LayerJoin) In() int  { return j.in }
func (j *LayerJoin) Out() int { return j.out }
func (j *LayerJoin) Len() int { return len(j.weights) }

// Weights returns the live weight buffer, not a copy.
func (j *LayerJoin) Weights() []float64 {
	return j.weights
}

// Matrix returns the out x in view over the weight buffer.
func (j *LayerJoin) Matrix() mat.Matrix {
	return j.w
}

// At returns the weight from input neuron k to output neuron i.
func (j *LayerJoin) At(i, k int) float64 {
	return j.weights[i*j.in+k]
}

func (j *LayerJoin) Set(i, k int, v float64) {
	j.weights[i*j.in+k] = v
}

func (j *LayerJoin) checkLayers(input, output *DenseLayer) {
	if input.Size() != j.in || output.Size() != j.out {
		panic(fmt.Sprintf("layer join %d -> %d used with layers %d -> %d",
			j.in, j.out, input.Size(), output.Size()))
	}
}

// Forward computes output = act(W·input + bias).
func (j *LayerJoin) Forward(input, output *DenseLayer) {
	j.checkLayers(input, output)

	for k, n := range input.Neurons {
		j.x.SetVec(k, n.Value)
	}
	j.z.MulVec(j.w, j.x)

	for i := range output.Neurons {
		n := &output.Neurons[i]
		n.Value = output.Activation.Forward(n.Bias + j.z.AtVec(i))
	}
}

// Backward runs one gradient descent step over the join. output must already
// carry its loss gradients; on return input carries its own, ready for the
// join further back.
//
// The propagated gradient of every input neuron is divided by the number of
// output neurons. Each weight is read for the gradient before it is updated.
func (j *LayerJoin) Backward(input, output *DenseLayer, learningRate float64) {
	j.checkLayers(input, output)

	for k := range input.Neurons {
		input.Neurons[k].LossGradient = 0
	}

	for i := range output.Neurons {
		on := &output.Neurons[i]
		on.Bias -= learningRate * on.LossGradient

		row := j.weights[i*j.in : (i+1)*j.in]
		for k := range input.Neurons {
			in := &input.Neurons[k]

			in.LossGradient += on.LossGradient * row[k] * input.Activation.Derivative(in.Value)
			row[k] -= learningRate * on.LossGradient * in.Value
		}
	}

	fanOut := float64(j.out)
	for k := range input.Neurons {
		input.Neurons[k].LossGradient /= fanOut
	}
}
