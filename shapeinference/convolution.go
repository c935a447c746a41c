package shapeinference

import (
	"fmt"

	"github.com/gomlx/convlayout/types"
	"github.com/gomlx/convlayout/types/formats"
	"github.com/gomlx/convlayout/types/layout"
	"github.com/gomlx/gopjrt/dtypes"
)

const (
	// winogradTileAlignment is the features alignment required by the Winograd 2x3 kernels.
	winogradTileAlignment = 32

	// winogradFilterHeight is the filter height of the winograd_2x3_s1_data format, by definition.
	// The transformed filter is a set of 1D filters, so its height stays the same.
	winogradFilterHeight = 3
)

// Convolution returns the layout of the output of the convolution node.
//
// Its dependencies (input activations, weights) must have their output layouts finalized.
// The node itself, and its neighbours, are only read.
//
// The output dtype is the input's, or the fused operations output dtype if there are any; 8-bit integer
// inputs without fused operations are promoted to layout.DefaultFloat. The output sizes come from, in order
// of precedence: the Winograd data format rules, ConvDescriptor.OutputSize, or the sliding window.
// Finally, the memory format may be changed to cooperate with neighbouring convolutions, see formatRules.
func Convolution(node ConvolutionNode) (layout.Layout, error) {
	v := &validator{nodeID: node.ID()}
	inputNode := firstDependency(node)
	if inputNode == nil {
		v.message("convolution has no input")
		return layout.Layout{}, v.err
	}
	split := node.Split()
	v.lessThan("convolution split", split, "minimum split", 1, "convolution needs at least one weights tensor")
	if v.err != nil {
		return layout.Layout{}, v.err
	}
	weightsNode := node.Weights(0)
	if weightsNode == nil {
		v.message("convolution has no weights")
		return layout.Layout{}, v.err
	}
	input := inputNode.OutputLayout()
	weights := weightsNode.OutputLayout()
	desc := node.Descriptor()
	outputDType := convolutionDType(node, input.DType)

	v.parameters(input, desc)
	if v.err != nil {
		return layout.Layout{}, v.err
	}
	if input.Format.IsWinogradWeights() {
		v.message("input for convolution should not be in Winograd weights format (%s), it is reserved for weights only", input.Format)
		return layout.Layout{}, v.err
	}
	if input.Format == formats.WinogradData2x3S1 {
		return v.winogradOutput(input, weights, desc, split, outputDType)
	}
	if desc.OutputSize != nil {
		return v.explicitOutput(input, *desc.OutputSize, outputDType)
	}

	v.lessThan("weights spatial rank", weights.Size.SpatialRank(), "input spatial rank", input.Size.SpatialRank(),
		"weights must have one size per input spatial axis")
	if v.err != nil {
		return layout.Layout{}, v.err
	}
	outputSize := OutputRange(input.Size, weights.Size, desc.InputOffset, desc.Stride, desc.Dilation, 1)
	outputSize.Feature[0] = weights.Size.B() * weights.Size.G()
	if desc.OutputFeatures != 0 {
		outputSize.Feature[0] = desc.OutputFeatures
	}
	if outputDType == layout.Binary {
		return layout.Make(outputDType, formats.BFsYX32FP, outputSize), nil
	}
	format := selectOutputFormat(node, input, outputSize)
	return layout.Make(outputDType, format, outputSize), nil
}

// convolutionDType returns the output dtype of the convolution.
func convolutionDType(node ConvolutionNode, inputDType dtypes.DType) dtypes.DType {
	if fused, ok := node.FusedOutputDType(); ok {
		return fused
	}
	if inputDType == dtypes.Int8 || inputDType == dtypes.Uint8 {
		// 8-bit accumulators are not exposed as an output type.
		return layout.DefaultFloat
	}
	return inputDType
}

// winogradOutput handles inputs in the winograd_2x3_s1_data format: the width axis is already
// transformed and is not reduced, and the output keeps the input format and padding.
func (v *validator) winogradOutput(input, weights layout.Layout, desc types.ConvDescriptor, split int,
	outputDType dtypes.DType) (layout.Layout, error) {
	notEqual(v, "convolution split", split, "expected value", 1, "convolution with winograd input only supports split == 1")
	for axis := range 2 {
		name := layout.SpatialName(axis)
		notEqual(v, "stride spatial "+name, desc.Stride.Spatial[axis], "expected value", 1,
			fmt.Sprintf("convolution's input in %s format can only be used with stride 1x1", formats.WinogradData2x3S1))
	}
	for axis := range 2 {
		name := layout.SpatialName(axis)
		notEqual(v, "dilation spatial "+name, desc.Dilation.Spatial[axis], "expected value", 1,
			"winograd 2x3 convolution does not support dilation")
	}
	v.notDivisible("input features", input.Size.F(), winogradTileAlignment,
		"input for winograd 2x3 convolution should have features count divisible by 32")
	v.notDivisible("weights output features", weights.Size.B(), winogradTileAlignment,
		"number of filters (OFM) for winograd 2x3 convolution should be divisible by 32")
	v.lessThan("input width", input.Size.X(), "filter width", winogradFilterHeight, "convolution input is smaller than weights")
	v.lessThan("input height", input.Size.Y(), "filter height", winogradFilterHeight, "convolution input is smaller than weights")
	if v.err != nil {
		return layout.Layout{}, v.err
	}

	outputSize := layout.MakeTensor(input.Size.B(), weights.Size.B()*weights.Size.G(),
		input.Size.X(), input.Size.Y()-winogradFilterHeight+1)
	output := layout.Make(outputDType, input.Format, outputSize)
	output.Padding = layout.Padding{
		Lower:     input.Padding.Lower.Clone(),
		Upper:     input.Padding.Upper.Clone(),
		FillValue: input.Padding.FillValue,
	}
	return output, nil
}

// explicitOutput handles a user-defined output size.
func (v *validator) explicitOutput(input layout.Layout, outputSize layout.Tensor, outputDType dtypes.DType) (layout.Layout, error) {
	notEqual(v, "output size spatial rank", outputSize.SpatialRank(), "input spatial rank", input.Size.SpatialRank(),
		"output size must have one size per input spatial axis")
	for axis, dim := range outputSize.Spatial {
		v.lessOrEqual("output size spatial "+layout.SpatialName(axis), dim, "value", 0, "must be positive (>= 1)")
	}
	v.lessThan("output size feature", outputSize.F(), "value", 0, "must not be negative")
	if v.err != nil {
		return layout.Layout{}, v.err
	}
	size := layout.MakeTensor(input.Size.B(), outputSize.F(), outputSize.Spatial...)
	if outputDType == layout.Binary {
		return layout.Make(outputDType, formats.BFsYX32FP, size), nil
	}
	return layout.Make(outputDType, input.Format, size), nil
}
