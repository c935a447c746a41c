package shapeinference

import (
	"github.com/gomlx/convlayout/types/layout"
)

// ValidateInstance checks, once the convolution output layout is known, that the input, weights,
// bias and output are consistent, for each weights slice (group) of the split.
//
// It repeats ValidateParameters, so both passes agree on the parameters. It returns a *ValidationError
// (with stack) for the first violated constraint, or nil. Nothing is modified.
func ValidateInstance(node ConvolutionNode, output layout.Layout) error {
	v := &validator{nodeID: node.ID()}
	inputNode := firstDependency(node)
	if inputNode == nil {
		v.message("convolution has no input")
		return v.err
	}
	input := inputNode.OutputLayout().Size
	desc := node.Descriptor()
	v.parameters(inputNode.OutputLayout(), desc)

	outputSize := output.Size
	notEqual(v, "input number of dimensions", input.Rank(), "output number of dimensions", outputSize.Rank(),
		"input/output dims mismatch")
	notEqual(v, "stride number of dimensions", desc.Stride.Rank(), "output number of dimensions", outputSize.Rank(),
		"stride/output dims mismatch")

	split := node.Split()
	v.lessThan("convolution split", split, "minimum split", 1, "convolution needs at least one weights tensor")
	for group := 0; group < split && v.err == nil; group++ {
		weightsNode := node.Weights(group)
		if weightsNode == nil {
			v.message("convolution has no weights for group %d", group)
			break
		}
		weights := weightsNode.OutputLayout().Size
		if node.HasBias() {
			biasNode := node.Bias(group)
			if biasNode == nil {
				v.message("convolution has no bias for group %d", group)
				break
			}
			v.bias(biasNode.OutputLayout().Size, outputSize.F()/split)
		}

		notEqual(v, "weights number of dimensions", weights.Rank(), "output number of dimensions", outputSize.Rank(),
			"weights/output dims mismatch")
		notEqual(v, "convolution padding mode", output.Padding.FillValue, "padding value", float32(0),
			"unknown padding mode")
		notEqual(v, "input offset number of dimensions", desc.InputOffset.Rank(), "input number of dimensions", input.Rank(),
			"input offset/input size mismatch")
		notEqual(v, "output feature size", len(outputSize.Feature), "expected feature size", 1,
			"only one-dimensional features are supported")
		notEqual(v, "output batch size", len(outputSize.Batch), "expected batch size", 1,
			"only one-dimensional batch sizes are supported")
		v.lessThan("input feature maps per group", (input.F()-desc.InputOffset.F())/split,
			"weights feature maps number", weights.F(), "weights/ifm mismatch")
	}
	return v.err
}

// bias checks that the bias of one group is a 1D vector of the given number of features.
func (v *validator) bias(bias layout.Tensor, features int) {
	notEqual(v, "bias batch[0]", bias.B(), "expected size of batch", 1, "biases isn't 1D vector")
	notEqual(v, "bias feature[0]", bias.F(), "expected feature map number", features, "bias/feature mismatch")
	for axis := bias.SpatialRank() - 1; axis >= 0; axis-- {
		notEqual(v, "bias spatial "+layout.SpatialName(axis), bias.Spatial[axis], "expected size", 1,
			"biases isn't 1D vector")
	}
}
