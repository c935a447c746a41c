package shapeinference

import (
	"github.com/gomlx/convlayout/types/formats"
	"github.com/gomlx/convlayout/types/layout"
	"github.com/gomlx/convlayout/types/optypes"
	"github.com/gomlx/gopjrt/dtypes"
	"k8s.io/klog/v2"
)

// formatContext holds what the format rules may look at: the convolution's own input and output,
// its single convolution user (if that's its only user) and the input of its preceding convolution.
type formatContext struct {
	input  layout.Layout
	output layout.Tensor

	// next is the only user of the node, if it is a convolution. nil otherwise.
	next ConvolutionNode

	// nextIsDepthwise is set if next splits or groups its input per feature.
	nextIsDepthwise bool

	// prevInputFormat is the format of the input of the preceding convolution (skipping one reorder).
	// Only set, along with hasPrevConvolution, if next is set.
	prevInputFormat    formats.Format
	hasPrevConvolution bool
}

func newFormatContext(node ConvolutionNode, input layout.Layout, output layout.Tensor) *formatContext {
	fc := &formatContext{input: input, output: output}
	users := node.Users()
	if len(users) != 1 {
		return fc
	}
	next, ok := AsConvolution(users[0])
	if !ok {
		return fc
	}
	fc.next = next
	split, groups, features := next.Split(), next.Descriptor().Groups, output.F()
	fc.nextIsDepthwise = (split > 1 && split == features) || (groups > 1 && groups == features)

	prev := firstDependency(node)
	if prev != nil && prev.OpType() == optypes.Reorder {
		prev = firstDependency(prev)
	}
	if prevConv, ok := AsConvolution(prev); ok {
		if prevInput := firstDependency(prevConv); prevInput != nil {
			fc.hasPrevConvolution = true
			fc.prevInputFormat = prevInput.OutputLayout().Format
		}
	}
	return fc
}

// formatRule selects format for the convolution output if match returns true.
type formatRule struct {
	name   string
	format formats.Format
	match  func(fc *formatContext) bool
}

// formatRules are tried in order, the first match wins. If none matches, the output keeps the input format.
//
// They only affect performance: they pick packed formats that the neighbouring int8 kernels read faster.
var formatRules = []formatRule{
	{
		// The first convolution of int8 networks has 3 features.
		name:   "int8 first layer",
		format: formats.FsBsYXBsv4Fsv32,
		match: func(fc *formatContext) bool {
			return fc.input.DType == dtypes.Int8 && fc.input.Format == formats.Byx8F4 &&
				fc.input.Size.B()%4 == 0 && fc.input.Size.F() == 3
		},
	},
	{
		name:   "int8 before depthwise convolution",
		format: formats.ByxfAF32,
		match: func(fc *formatContext) bool {
			return fc.next != nil && fc.input.DType == dtypes.Int8 && fc.input.Format == formats.BFsYXFsv4 &&
				fc.nextIsDepthwise
		},
	},
	{
		name:   "int8 convolution chain",
		format: formats.BFsYXFsv4,
		match: func(fc *formatContext) bool {
			return fc.next != nil && fc.hasPrevConvolution &&
				fc.input.DType == dtypes.Int8 && fc.input.Format == formats.ByxfAF32 &&
				!fc.nextIsDepthwise && fc.prevInputFormat == formats.BFsYXFsv4
		},
	},
}

// selectOutputFormat returns the output format of a convolution computed with the sliding window.
func selectOutputFormat(node ConvolutionNode, input layout.Layout, output layout.Tensor) formats.Format {
	fc := newFormatContext(node, input, output)
	for _, rule := range formatRules {
		if rule.match(fc) {
			klog.V(2).Infof("convolution %q: format rule %q selected %s", node.ID(), rule.name, rule.format)
			return rule.format
		}
	}
	return input.Format
}
