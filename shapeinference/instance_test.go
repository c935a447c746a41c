package shapeinference

import (
	"testing"

	"github.com/gomlx/convlayout/types/formats"
	"github.com/gomlx/convlayout/types/layout"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInstance(t *testing.T) {
	newNode := func() *testNode {
		input := newInput("input", L(F32, formats.BFYX, layout.BFYX(1, 16, 10, 10)))
		return newConv("conv", input, conv2D(1, 1), layout.BFYX(32, 16, 3, 3)).
			withBias(layout.MakeTensor(1, 32, 1, 1))
	}

	// Valid instance.
	node := newNode()
	output := must.M1(Convolution(node))
	require.NoError(t, ValidateInstance(node, output))

	// Bias with the wrong number of features.
	node = newNode()
	node.bias[0].output.Size = layout.MakeTensor(1, 16, 1, 1)
	err := ValidateInstance(node, output)
	vErr := requireValidationError(t, err, "bias feature[0]")
	assert.Equal(t, "bias/feature mismatch", vErr.Message)
	assert.Equal(t, 16, vErr.Actual)
	assert.Equal(t, 32, vErr.Expected)

	// Bias is not a vector.
	node = newNode()
	node.bias[0].output.Size = layout.MakeTensor(1, 32, 1, 2)
	requireValidationError(t, ValidateInstance(node, output), "bias spatial y")
	node.bias[0].output.Size = layout.MakeTensor(2, 32, 1, 1)
	requireValidationError(t, ValidateInstance(node, output), "bias batch[0]")

	// Only zero padding is supported.
	node = newNode()
	padded := output
	padded.Padding = layout.Padding{FillValue: -1}
	vErr = requireValidationError(t, ValidateInstance(node, padded), "convolution padding mode")
	assert.Equal(t, "unknown padding mode", vErr.Message)

	// Output rank doesn't match.
	volume := L(F32, formats.BFZYX, layout.BFZYX(1, 32, 8, 8, 8))
	requireValidationError(t, ValidateInstance(node, volume), "input number of dimensions")

	// Multi-valued feature.
	multi := output
	multi.Size = output.Size.Clone()
	multi.Size.Feature = []int{32, 1}
	multi.Size.Spatial = multi.Size.Spatial[:1]
	requireValidationError(t, ValidateInstance(node, multi), "output feature size")

	// Weights expect more input features than available.
	input := newInput("input", L(F32, formats.BFYX, layout.BFYX(1, 8, 10, 10)))
	node = newConv("conv", input, conv2D(1, 1), layout.BFYX(32, 16, 3, 3))
	output = must.M1(Convolution(node))
	vErr = requireValidationError(t, ValidateInstance(node, output), "input feature maps per group")
	assert.Equal(t, "weights/ifm mismatch", vErr.Message)

	// Invalid parameters are caught in this pass too.
	node = newNode()
	node.desc.Stride = layout.Spatial2D(1, 1, -1)
	requireValidationError(t, ValidateInstance(node, output), "stride spatial y")
}

func TestValidateInstanceSplit(t *testing.T) {
	input := newInput("input", L(F32, formats.BFYX, layout.BFYX(1, 16, 10, 10)))
	node := newConv("conv", input, conv2D(1, 1), layout.BFYX(32, 8, 3, 3), layout.BFYX(32, 8, 3, 3)).
		withBias(layout.MakeTensor(1, 32, 1, 1), layout.MakeTensor(1, 32, 1, 1))
	output, err := Convolution(node)
	require.NoError(t, err)
	require.True(t, output.Size.Equal(layout.BFYX(1, 32, 8, 8)), "got %s", output)

	// Each group has outputFeatures/split = 16 biases.
	vErr := requireValidationError(t, ValidateInstance(node, output), "bias feature[0]")
	assert.Equal(t, 16, vErr.Expected)

	node.bias[0].output.Size = layout.MakeTensor(1, 16, 1, 1)
	node.bias[1].output.Size = layout.MakeTensor(1, 16, 1, 1)
	require.NoError(t, ValidateInstance(node, output))

	// Second group weights don't match.
	node.weights[1].output.Size = layout.BFYX(32, 9, 3, 3)
	requireValidationError(t, ValidateInstance(node, output), "input feature maps per group")
}
