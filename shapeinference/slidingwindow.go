package shapeinference

import (
	"github.com/gomlx/convlayout/types/layout"
)

// OutputExtent returns the number of sliding window positions along one axis:
//
//	floor((input + 2*offset - dilatedKernel) / stride) + 1, with dilatedKernel = (kernel-1)*dilation + 1
//
// The offset is added on both sides of the axis. Every window fully inside the (offset) input counts,
// no partial windows. The result is <= 0 if not even one window fits.
//
// stride and dilation must be >= 1, see ValidateParameters.
func OutputExtent(input, kernel, offset, stride, dilation int) int {
	dilatedKernel := (kernel-1)*dilation + 1
	return floorDiv(input+2*offset-dilatedKernel, stride) + 1
}

// OutputRange applies OutputExtent to each spatial axis of input, independently.
// Axes missing in kernel, offset, stride or dilation take the trivial value (1, 0, 1, 1 respectively).
//
// Axes where no window fits get the degenerate value instead.
// Batch and feature are copied from input.
func OutputRange(input, kernel, offset, stride, dilation layout.Tensor, degenerate int) layout.Tensor {
	output := layout.Tensor{
		Batch:   []int{input.B()},
		Feature: []int{input.F()},
		Spatial: make([]int, input.SpatialRank()),
	}
	for axis, inputDim := range input.Spatial {
		extent := OutputExtent(inputDim,
			kernel.SpatialOr(axis, 1),
			offset.SpatialOr(axis, 0),
			stride.SpatialOr(axis, 1),
			dilation.SpatialOr(axis, 1))
		if extent < 1 {
			extent = degenerate
		}
		output.Spatial[axis] = extent
	}
	return output
}

// floorDiv divides rounding towards negative infinity. Go's "/" truncates towards zero.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
