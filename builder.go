package convlayout

import (
	"fmt"

	"github.com/gomlx/convlayout/internal/utils"
	"github.com/gomlx/convlayout/shapeinference"
	"github.com/gomlx/convlayout/types"
	"github.com/gomlx/convlayout/types/formats"
	"github.com/gomlx/convlayout/types/layout"
	"github.com/gomlx/convlayout/types/optypes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// Builder is used to construct a graph of nodes and compute their layouts.
// See details in New.
type Builder struct {
	name string

	// nodes in creation order. Nodes can only depend on previously created nodes, so this is also a
	// topological order.
	nodes []*Node

	// ids holds the used node ids.
	ids utils.Set[string]

	// parallelism limits the number of concurrent instance validations. 0 means no limit.
	parallelism int
}

// New creates a new Builder object holding a graph in construction.
//
// Nodes are created one by one with Input, Data, Reorder, Activation and Convolution, each taking
// previously created nodes as inputs. Once the graph is complete, call Builder.Build to infer all layouts.
func New(name string) *Builder {
	return &Builder{
		name: name,
		ids:  utils.MakeSet[string](),
	}
}

// Name of the graph.
func (b *Builder) Name() string { return b.name }

// WithParallelism limits the number of convolution instances validated concurrently by Build.
// n <= 0 means no limit. It returns the Builder itself, so calls can be chained.
func (b *Builder) WithParallelism(n int) *Builder {
	b.parallelism = n
	return b
}

// newNode creates a node with a unique id and connects it to its dependencies.
//
// If name is empty, one is generated from the op type.
func (b *Builder) newNode(name string, opType optypes.OpType, deps ...*Node) (*Node, error) {
	id := utils.NormalizeIdentifier(name)
	if id == "" {
		for i := len(b.nodes); id == "" || b.ids.Has(id); i++ {
			id = fmt.Sprintf("%s%d", opType.Name(), i)
		}
	}
	if b.ids.Has(id) {
		return nil, errors.Errorf("node id %q (from name %q) already used in graph %q", id, name, b.name)
	}
	for i, dep := range deps {
		if dep == nil {
			return nil, errors.Errorf("%s %q: input #%d is nil", opType.Name(), id, i)
		}
		if dep.builder != b {
			return nil, errors.Errorf("%s %q: input #%d (%q) was created by a different Builder", opType.Name(), id, i, dep.id)
		}
	}
	node := &Node{
		builder: b,
		id:      id,
		opType:  opType,
		deps:    deps,
	}
	for _, dep := range deps {
		dep.users = append(dep.users, node)
	}
	b.ids.Insert(id)
	b.nodes = append(b.nodes, node)
	return node, nil
}

// Input creates a graph input (activations) with the given layout.
func (b *Builder) Input(name string, l layout.Layout) (*Node, error) {
	return b.leaf(name, optypes.Input, l)
}

// Data creates a constant (weights or bias) with the given layout.
func (b *Builder) Data(name string, l layout.Layout) (*Node, error) {
	return b.leaf(name, optypes.Data, l)
}

func (b *Builder) leaf(name string, opType optypes.OpType, l layout.Layout) (*Node, error) {
	if !l.Ok() {
		return nil, errors.Errorf("%s %q: invalid layout %s", opType.Name(), name, l)
	}
	node, err := b.newNode(name, opType)
	if err != nil {
		return nil, err
	}
	node.output = l.Clone()
	return node, nil
}

// Reorder creates a node that changes the memory format of x.
func (b *Builder) Reorder(name string, x *Node, format formats.Format) (*Node, error) {
	node, err := b.newNode(name, optypes.Reorder, x)
	if err != nil {
		return nil, err
	}
	node.reorderFormat = format
	return node, nil
}

// Activation creates an element-wise activation of x: its layout is the same as x's.
func (b *Builder) Activation(name string, x *Node) (*Node, error) {
	return b.newNode(name, optypes.Activation, x)
}

// Convolution creates a convolution of input with one weights node per group of the split.
//
// bias is optional (nil), if given it must have one node per weights node.
// The dependencies of the node are, in order: input, weights..., bias...
func (b *Builder) Convolution(name string, input *Node, weights, bias []*Node, desc types.ConvDescriptor) (*Node, error) {
	if len(weights) == 0 {
		return nil, errors.Errorf("convolution %q: at least one weights node is required", name)
	}
	if len(bias) != 0 && len(bias) != len(weights) {
		return nil, errors.Errorf("convolution %q: %d bias nodes given for %d weights nodes, there must be one per weights node",
			name, len(bias), len(weights))
	}
	deps := make([]*Node, 0, 1+len(weights)+len(bias))
	deps = append(deps, input)
	deps = append(deps, weights...)
	deps = append(deps, bias...)
	node, err := b.newNode(name, optypes.Convolution, deps...)
	if err != nil {
		return nil, err
	}
	node.desc = desc
	node.weights = weights
	node.bias = bias
	return node, nil
}

// Fuse records that operations fused into the convolution produce outputDType.
func (b *Builder) Fuse(conv *Node, outputDType dtypes.DType) error {
	if conv == nil || conv.builder != b {
		return errors.New("Fuse requires a convolution created by this Builder")
	}
	if conv.opType != optypes.Convolution {
		return errors.Errorf("Fuse requires a convolution, node %q is a %s", conv.id, conv.opType.Name())
	}
	conv.fusedDType = outputDType
	conv.hasFusedOutput = true
	return nil
}

// Build infers the output layout of every node, in creation order, and then validates each
// convolution instance (concurrently, see WithParallelism).
//
// It returns the Program with all layouts, or the first error: the whole graph is rejected.
// Build can be called again after adding more nodes.
func (b *Builder) Build() (*Program, error) {
	for _, node := range b.nodes {
		if err := node.infer(); err != nil {
			return nil, errors.WithMessagef(err, "building %s %q in graph %q", node.opType.Name(), node.id, b.name)
		}
		klog.V(1).Infof("%s: %s %q -> %s", b.name, node.opType.Name(), node.id, node.output)
	}

	var g errgroup.Group
	if b.parallelism > 0 {
		g.SetLimit(b.parallelism)
	}
	for _, node := range b.nodes {
		if node.opType != optypes.Convolution {
			continue
		}
		g.Go(func() error {
			if err := shapeinference.ValidateInstance(node, node.output); err != nil {
				return errors.WithMessagef(err, "validating convolution %q in graph %q", node.id, b.name)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return newProgram(b.name, b.nodes), nil
}
