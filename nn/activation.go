package nn

import (
	"fmt"
	"math"
)

// Activation pairs a pointwise function with its derivative.
//
// Derivative receives the already-activated value, not the weighted sum
// that produced it. The backward pass only ever has the activated value at
// hand, so every implementation must express its derivative in those terms.
type Activation interface {
	Forward(x float64) float64
	Derivative(a float64) float64
	fmt.Stringer
}

var ActivationLookup = map[string]Activation{
	"sigmoid":  Sigmoid{},
	"relu":     ReLU{},
	"identity": Identity{},
}

// ActivationByName resolves one of the names in ActivationLookup.
func ActivationByName(name string) (Activation, error) {
	act, ok := ActivationLookup[name]
	if !ok {
		return nil, fmt.Errorf("unknown activation %q", name)
	}
	return act, nil
}

type Sigmoid struct{}

func (s Sigmoid) Forward(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Derivative expects a = Forward(x).
func (s Sigmoid) Derivative(a float64) float64 {
	return a * (1.0 - a)
}

func (s Sigmoid) String() string {
	return "sigmoid"
}

type ReLU struct{}

func (r ReLU) Forward(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

func (r ReLU) Derivative(a float64) float64 {
	if a > 0 {
		return 1
	}
	return 0
}

func (r ReLU) String() string {
	return "relu"
}

// Identity leaves sums untouched. Useful for regression outputs and for
// checking the affine part of the forward pass in isolation.
type Identity struct{}

func (Identity) Forward(x float64) float64    { return x }
func (Identity) Derivative(a float64) float64 { return 1 }
func (Identity) String() string               { return "identity" }
