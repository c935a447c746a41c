package shapeinference

import (
	"fmt"

	"github.com/gomlx/convlayout/types"
	"github.com/gomlx/convlayout/types/layout"
)

// ValidateParameters checks the convolution parameters against the input layout:
//
//   - stride and dilation are >= 1 on every spatial axis in use (3 for bfzyx inputs, 2 otherwise);
//   - 2 * input offset < input size, on every spatial axis in use;
//   - input offset is 0 along the feature and batch axes.
//
// It returns a *ValidationError (with stack) for the first violated constraint, or nil.
// It is used both by Convolution and ValidateInstance.
func ValidateParameters(nodeID string, input layout.Layout, desc types.ConvDescriptor) error {
	v := &validator{nodeID: nodeID}
	v.parameters(input, desc)
	return v.err
}

func (v *validator) parameters(input layout.Layout, desc types.ConvDescriptor) {
	spatialRank := input.Format.SpatialRank()
	rankMsg := fmt.Sprintf("input in format %s has %d spatial axes", input.Format, spatialRank)
	v.lessThan("input spatial rank", input.Size.SpatialRank(), "format spatial rank", spatialRank, rankMsg)
	v.lessThan("stride spatial rank", desc.Stride.SpatialRank(), "format spatial rank", spatialRank, rankMsg)
	v.lessThan("dilation spatial rank", desc.Dilation.SpatialRank(), "format spatial rank", spatialRank, rankMsg)
	v.lessThan("input offset spatial rank", desc.InputOffset.SpatialRank(), "format spatial rank", spatialRank, rankMsg)
	if v.err != nil {
		return
	}

	for axis := range spatialRank {
		name := layout.SpatialName(axis)
		v.lessOrEqual("stride spatial "+name, desc.Stride.Spatial[axis], "value", 0,
			fmt.Sprintf("stride spatial %s must be positive (>= 1)", name))
	}
	for axis := range spatialRank {
		name := layout.SpatialName(axis)
		v.lessOrEqual("dilation spatial "+name, desc.Dilation.Spatial[axis], "value", 0,
			fmt.Sprintf("dilation spatial %s must be positive (>= 1)", name))
	}
	for axis := range spatialRank {
		name := layout.SpatialName(axis)
		v.greaterOrEqual("2 * input offset spatial "+name, 2*desc.InputOffset.Spatial[axis],
			"input layout spatial "+name, input.Size.Spatial[axis], "there is no input data to process")
	}
	notEqual(v, "input offset feature", desc.InputOffset.F(), "", 0, "input offset in feature is not supported")
	notEqual(v, "input offset batch", desc.InputOffset.B(), "", 0, "input offset in batch is not supported")
}
