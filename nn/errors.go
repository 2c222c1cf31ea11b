package nn

import (
	"errors"
	"fmt"
)

var (
	ErrTooFewLayers    = errors.New("network needs at least 2 layers (input and output)")
	ErrLayerSize       = errors.New("layer size must be positive")
	ErrActivationCount = errors.New("activations must be a single shared one or one per layer")
	ErrNilActivation   = errors.New("activation is nil")
	ErrNilCost         = errors.New("cost is nil")
	ErrLearningRate    = errors.New("learning rate must be a positive finite number")
	ErrJoinCount       = errors.New("network needs exactly one join between consecutive layers")
)

// ShapeError reports a join whose weight count does not fit the layers it
// connects.
type ShapeError struct {
	Join     int
	In, Out  int
	Expected int
	Got      int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("join %d (%d -> %d): expected %d weights, got %d",
		e.Join, e.In, e.Out, e.Expected, e.Got)
}
