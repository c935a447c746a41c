// Package types holds the parameter types of the operators handled by shape inference.
package types

import (
	"fmt"
	"strings"

	"github.com/gomlx/convlayout/types/layout"
)

// ConvDescriptor holds the parameters of a convolution.
//
// Stride, Dilation and InputOffset are tensors with one value per axis: batch and feature
// values of Stride and Dilation are 1, and those of InputOffset must be 0.
// InputOffset is added on both sides of each spatial axis.
//
// The split count (number of independent weight slices) is not part of the descriptor:
// it's given by the node's weights, see shapeinference.ConvolutionNode.
type ConvDescriptor struct {
	Stride      layout.Tensor
	Dilation    layout.Tensor
	InputOffset layout.Tensor

	// Groups is the number of channel groups of a grouped convolution, with all groups in one weights tensor.
	Groups int

	// DeformableGroups is the number of offset groups of a deformable convolution. It has no effect on layouts.
	DeformableGroups int

	// OutputSize, if set, defines the output feature and spatial sizes, instead of the sliding window.
	OutputSize *layout.Tensor

	// OutputFeatures, if not 0, overrides the number of output features computed from the weights.
	OutputFeatures int

	// PaddingAbove and PaddingBelow are informative only.
	PaddingAbove, PaddingBelow layout.Tensor

	HasWeightsZeroPoints     bool
	HasActivationsZeroPoints bool
}

// DefaultConv2D returns a descriptor for a plain 2D convolution: unit strides and dilations, no offset and one group.
func DefaultConv2D() ConvDescriptor {
	return ConvDescriptor{
		Stride:      layout.Spatial2D(1, 1, 1),
		Dilation:    layout.Spatial2D(1, 1, 1),
		InputOffset: layout.Spatial2D(0, 0, 0),
		Groups:      1,
	}
}

// DefaultConv3D is like DefaultConv2D for three spatial axes.
func DefaultConv3D() ConvDescriptor {
	return ConvDescriptor{
		Stride:      layout.Spatial3D(1, 1, 1, 1),
		Dilation:    layout.Spatial3D(1, 1, 1, 1),
		InputOffset: layout.Spatial3D(0, 0, 0, 0),
		Groups:      1,
	}
}

// String implements fmt.Stringer.
func (d ConvDescriptor) String() string {
	parts := []string{
		fmt.Sprintf("stride=%s", d.Stride),
		fmt.Sprintf("dilation=%s", d.Dilation),
		fmt.Sprintf("input_offset=%s", d.InputOffset),
		fmt.Sprintf("groups=%d", d.Groups),
	}
	if d.DeformableGroups > 0 {
		parts = append(parts, fmt.Sprintf("deformable_groups=%d", d.DeformableGroups))
	}
	if d.OutputSize != nil {
		parts = append(parts, fmt.Sprintf("output_size=%s", *d.OutputSize))
	}
	if d.OutputFeatures != 0 {
		parts = append(parts, fmt.Sprintf("output_features=%d", d.OutputFeatures))
	}
	if d.PaddingAbove.Rank() > 0 || d.PaddingBelow.Rank() > 0 {
		parts = append(parts, fmt.Sprintf("padding_above=%s padding_below=%s", d.PaddingAbove, d.PaddingBelow))
	}
	if d.HasWeightsZeroPoints {
		parts = append(parts, "weights_zero_points")
	}
	if d.HasActivationsZeroPoints {
		parts = append(parts, "activations_zero_points")
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
