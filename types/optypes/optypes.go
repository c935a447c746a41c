// Package optypes defines OpType, the closed set of kinds a graph node can have.
package optypes

import (
	"github.com/gomlx/convlayout/internal/utils"
)

// OpType is an enum of the kinds of graph nodes.
type OpType int

//go:generate go tool enumer -type=OpType optypes.go

const (
	Invalid OpType = iota

	// Input is a graph input (activations).
	Input

	// Data holds constant data: weights and biases.
	Data

	// Reorder changes the memory format (and possibly dtype) of its input, without changing its values.
	Reorder

	// Activation is an element-wise function of its input.
	Activation

	Convolution

	// Last should always be kept the last, it is used as a counter/marker.
	Last
)

// Name returns the snake-case name of the op type, e.g. "convolution".
func (op OpType) Name() string {
	return utils.ToSnakeCase(op.String())
}
