// Package shapeinference calculates the output layout of convolutions and validates their inputs.
//
// Convolution computes the output layout (dtype, sizes, memory format and padding) of a convolution
// node from the already finalized layouts of its input and weights. ValidateInstance is a second,
// independent pass, run when the node is turned into an executable instance, that cross-checks
// input, weights, bias and output sizes.
//
// Both are pure functions of the graph nodes they are given: they never change the nodes, and
// can be called concurrently for different nodes. All failures are reported as a *ValidationError
// (wrapped with a stack trace, use errors.As to retrieve it), on the first violated constraint.
package shapeinference

import (
	"github.com/gomlx/convlayout/types"
	"github.com/gomlx/convlayout/types/layout"
	"github.com/gomlx/convlayout/types/optypes"
	"github.com/gomlx/gopjrt/dtypes"
)

// Node is a read-only view of a graph node, as needed by shape inference.
type Node interface {
	// ID uniquely identifies the node in its graph.
	ID() string

	// OpType of the node.
	OpType() optypes.OpType

	// OutputLayout returns the layout of the node's output. It must already be finalized for
	// the dependencies of a node being inferred.
	OutputLayout() layout.Layout

	// Dependencies are the inputs of the node, in order. For a convolution, the first one is the activations.
	Dependencies() []Node

	// Users are the nodes that take this node's output as input.
	Users() []Node
}

// ConvolutionNode is the view of a node with OpType optypes.Convolution.
type ConvolutionNode interface {
	Node

	Descriptor() types.ConvDescriptor

	// Split returns the number of independent weight slices: Weights(i) and Bias(i) are defined for i < Split().
	Split() int

	Weights(group int) Node
	Bias(group int) Node
	HasBias() bool

	// FusedOutputDType returns the output dtype of the fused operations chain, if there is one.
	FusedOutputDType() (dtypes.DType, bool)
}

// AsConvolution returns the convolution view of the node, if it is a convolution.
func AsConvolution(node Node) (ConvolutionNode, bool) {
	if node == nil || node.OpType() != optypes.Convolution {
		return nil, false
	}
	conv, ok := node.(ConvolutionNode)
	return conv, ok
}

// firstDependency returns the first dependency of the node, or nil.
func firstDependency(node Node) Node {
	if node == nil {
		return nil
	}
	deps := node.Dependencies()
	if len(deps) == 0 {
		return nil
	}
	return deps[0]
}
