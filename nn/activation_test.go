package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
)

func TestSigmoidFixedPoints(t *testing.T) {
	s := Sigmoid{}
	assert.Equal(t, 0.5, s.Forward(0))
	assert.InDelta(t, 0.7310585786, s.Forward(1), 1e-9)
	assert.InDelta(t, 0.2689414213, s.Forward(-1), 1e-9)
	assert.Equal(t, 0.25, s.Derivative(0.5))
}

func TestReLUFixedPoints(t *testing.T) {
	r := ReLU{}
	assert.Equal(t, 0.0, r.Forward(-1))
	assert.Equal(t, 2.0, r.Forward(2))
	assert.Equal(t, 0.0, r.Forward(0))
	assert.Equal(t, 0.0, r.Derivative(0))
	assert.Equal(t, 1.0, r.Derivative(3))
}

// The derivatives take the activated value, so the finite difference of
// Forward at x must match Derivative(Forward(x)).
func TestActivationDerivativeOnActivatedValue(t *testing.T) {
	settings := &fd.Settings{Formula: fd.Central, Step: 1e-6}

	for _, act := range []Activation{Sigmoid{}, ReLU{}, Identity{}} {
		for _, x := range []float64{-2.5, -0.3, 0.4, 1.7} {
			want := fd.Derivative(act.Forward, x, settings)
			got := act.Derivative(act.Forward(x))
			assert.InDelta(t, want, got, 1e-4, "%s at x=%v", act, x)
		}
	}
}

func TestActivationByName(t *testing.T) {
	for name, want := range ActivationLookup {
		got, err := ActivationByName(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, name, got.String())
	}

	_, err := ActivationByName("tanh")
	assert.Error(t, err)
}
