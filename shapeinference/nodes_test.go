package shapeinference

import (
	"github.com/gomlx/convlayout/types"
	"github.com/gomlx/convlayout/types/formats"
	"github.com/gomlx/convlayout/types/layout"
	"github.com/gomlx/convlayout/types/optypes"
	"github.com/gomlx/gopjrt/dtypes"
)

// Aliases
var (
	I8  = dtypes.Int8
	U8  = dtypes.Uint8
	F16 = dtypes.Float16
	F32 = dtypes.Float32
	Bin = layout.Binary

	L = layout.Make
)

// testNode is a minimal graph node used to exercise shape inference.
type testNode struct {
	id      string
	opType  optypes.OpType
	output  layout.Layout
	deps    []Node
	users   []Node
	desc    types.ConvDescriptor
	weights []*testNode
	bias    []*testNode
	fused   *dtypes.DType
}

var _ ConvolutionNode = (*testNode)(nil)

func (n *testNode) ID() string                       { return n.id }
func (n *testNode) OpType() optypes.OpType           { return n.opType }
func (n *testNode) OutputLayout() layout.Layout      { return n.output }
func (n *testNode) Dependencies() []Node             { return n.deps }
func (n *testNode) Users() []Node                    { return n.users }
func (n *testNode) Descriptor() types.ConvDescriptor { return n.desc }
func (n *testNode) Split() int                       { return len(n.weights) }
func (n *testNode) HasBias() bool                    { return len(n.bias) > 0 }

func (n *testNode) Weights(group int) Node {
	if group >= len(n.weights) {
		return nil
	}
	return n.weights[group]
}

func (n *testNode) Bias(group int) Node {
	if group >= len(n.bias) {
		return nil
	}
	return n.bias[group]
}

func (n *testNode) FusedOutputDType() (dtypes.DType, bool) {
	if n.fused == nil {
		return dtypes.InvalidDType, false
	}
	return *n.fused, true
}

func newInput(id string, output layout.Layout) *testNode {
	return &testNode{id: id, opType: optypes.Input, output: output}
}

func newData(id string, output layout.Layout) *testNode {
	return &testNode{id: id, opType: optypes.Data, output: output}
}

func link(from, to *testNode) {
	to.deps = append(to.deps, from)
	from.users = append(from.users, to)
}

func newReorder(id string, input *testNode, format formats.Format) *testNode {
	n := &testNode{id: id, opType: optypes.Reorder, output: input.output.WithFormat(format)}
	link(input, n)
	return n
}

// newConv creates a convolution node with one weights tensor per group of the split.
func newConv(id string, input *testNode, desc types.ConvDescriptor, weights ...layout.Tensor) *testNode {
	n := &testNode{id: id, opType: optypes.Convolution, desc: desc}
	link(input, n)
	for i, w := range weights {
		wNode := newData(id+"_weights"+string(rune('0'+i)), L(input.output.DType, formats.OIYX, w))
		n.weights = append(n.weights, wNode)
		link(wNode, n)
	}
	return n
}

// withBias adds one bias per group to the convolution.
func (n *testNode) withBias(sizes ...layout.Tensor) *testNode {
	for i, size := range sizes {
		bNode := newData(n.id+"_bias"+string(rune('0'+i)), L(F32, formats.BFYX, size))
		n.bias = append(n.bias, bNode)
		link(bNode, n)
	}
	return n
}

func (n *testNode) withFused(dtype dtypes.DType) *testNode {
	n.fused = &dtype
	return n
}

func conv2D(strideX, strideY int) types.ConvDescriptor {
	desc := types.DefaultConv2D()
	desc.Stride = layout.Spatial2D(1, strideX, strideY)
	return desc
}
