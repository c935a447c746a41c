package convlayout

import (
	"fmt"

	"github.com/gomlx/convlayout/shapeinference"
	"github.com/gomlx/convlayout/types"
	"github.com/gomlx/convlayout/types/formats"
	"github.com/gomlx/convlayout/types/layout"
	"github.com/gomlx/convlayout/types/optypes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// Node is a node of the graph being built. It implements shapeinference.ConvolutionNode,
// the convolution specific methods are only meaningful for convolution nodes.
type Node struct {
	builder *Builder
	id      string
	opType  optypes.OpType

	// output is the node's layout: given for inputs and data, inferred by Builder.Build for the others.
	output layout.Layout

	deps  []*Node
	users []*Node

	// Reorder only.
	reorderFormat formats.Format

	// Convolution only.
	desc           types.ConvDescriptor
	weights, bias  []*Node
	fusedDType     dtypes.DType
	hasFusedOutput bool
}

var _ shapeinference.ConvolutionNode = (*Node)(nil)

// ID returns the unique (normalized) name of the node.
func (n *Node) ID() string { return n.id }

// OpType returns the kind of the node.
func (n *Node) OpType() optypes.OpType { return n.opType }

// OutputLayout returns the layout of the node's output.
// For inferred nodes it is only set after Builder.Build.
func (n *Node) OutputLayout() layout.Layout { return n.output }

// Dependencies implements shapeinference.Node.
func (n *Node) Dependencies() []shapeinference.Node { return asShapeInferenceNodes(n.deps) }

// Users implements shapeinference.Node.
func (n *Node) Users() []shapeinference.Node { return asShapeInferenceNodes(n.users) }

// Descriptor implements shapeinference.ConvolutionNode.
func (n *Node) Descriptor() types.ConvDescriptor { return n.desc }

// Split implements shapeinference.ConvolutionNode.
func (n *Node) Split() int { return len(n.weights) }

// Weights implements shapeinference.ConvolutionNode.
func (n *Node) Weights(group int) shapeinference.Node { return nodeAt(n.weights, group) }

// Bias implements shapeinference.ConvolutionNode.
func (n *Node) Bias(group int) shapeinference.Node { return nodeAt(n.bias, group) }

// HasBias implements shapeinference.ConvolutionNode.
func (n *Node) HasBias() bool { return len(n.bias) > 0 }

// FusedOutputDType implements shapeinference.ConvolutionNode.
func (n *Node) FusedOutputDType() (dtypes.DType, bool) { return n.fusedDType, n.hasFusedOutput }

// String implements fmt.Stringer.
func (n *Node) String() string {
	return fmt.Sprintf("%s:%s%s", n.opType.Name(), n.id, n.output)
}

// infer sets the node's output layout from its dependencies, which must have been inferred already.
func (n *Node) infer() error {
	switch n.opType {
	case optypes.Input, optypes.Data:
		return nil
	case optypes.Reorder:
		n.output = n.deps[0].output.WithFormat(n.reorderFormat)
		return nil
	case optypes.Activation:
		n.output = n.deps[0].output.Clone()
		return nil
	case optypes.Convolution:
		output, err := shapeinference.Convolution(n)
		if err != nil {
			return err
		}
		n.output = output
		return nil
	}
	return errors.Errorf("cannot infer layout of node %q with op type %s", n.id, n.opType)
}

func asShapeInferenceNodes(nodes []*Node) []shapeinference.Node {
	result := make([]shapeinference.Node, len(nodes))
	for i, node := range nodes {
		result[i] = node
	}
	return result
}

// nodeAt returns nodes[i] as a shapeinference.Node, or a nil interface if out of range.
func nodeAt(nodes []*Node, i int) shapeinference.Node {
	if i < 0 || i >= len(nodes) {
		return nil
	}
	return nodes[i]
}
