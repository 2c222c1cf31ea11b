package nn

import (
	"fmt"
	"math"
)

// Cost pairs a per-output loss with its derivative w.r.t. the prediction.
// Both take (predicted, expected) in that order.
type Cost interface {
	Loss(predicted, expected float64) float64
	Derivative(predicted, expected float64) float64
	fmt.Stringer
}

var CostLookup = map[string]Cost{
	"mse": MeanSquared{},
	"bce": BinaryCrossEntropy{},
}

// CostByName resolves one of the names in CostLookup.
func CostByName(name string) (Cost, error) {
	c, ok := CostLookup[name]
	if !ok {
		return nil, fmt.Errorf("unknown cost %q", name)
	}
	return c, nil
}

type MeanSquared struct{}

func (MeanSquared) Loss(predicted, expected float64) float64 {
	d := expected - predicted
	return 0.5 * d * d
}

// Derivative is d(Loss)/d(predicted). Updates subtract it, so it has to point
// away from the target.
func (MeanSquared) Derivative(predicted, expected float64) float64 {
	return predicted - expected
}

func (MeanSquared) String() string {
	return "mse"
}

// BinaryCrossEntropy is undefined for predicted in {0, 1}. Nothing guards
// against that here: a saturated output yields Inf or NaN.
type BinaryCrossEntropy struct{}

// Loss uses the natural log so that Derivative is its exact derivative.
func (BinaryCrossEntropy) Loss(predicted, expected float64) float64 {
	return -(expected * math.Log(predicted)) - (1-expected)*math.Log(1-predicted)
}

func (BinaryCrossEntropy) Derivative(predicted, expected float64) float64 {
	return -(expected / predicted) + (1-expected)/(1-predicted)
}

func (BinaryCrossEntropy) String() string {
	return "bce"
}
