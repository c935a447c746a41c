// Package convlayout computes the output layouts of convolutions in a tensor-compute graph and validates
// their structure.
//
// The layout arithmetic and checks live in the shapeinference package. This package provides a small
// graph Builder that plays the role of the graph compiler: it creates the nodes (inputs, weights, reorders,
// activations and convolutions), connects them, and Builder.Build infers every node's output layout in
// order, then validates each convolution instance.
//
// Example:
//
//	b := convlayout.New("stem")
//	x := must.M1(b.Input("image", layout.Make(dtypes.Float32, formats.BFYX, layout.BFYX(1, 3, 224, 224))))
//	w := must.M1(b.Data("w", layout.Make(dtypes.Float32, formats.OIYX, layout.BFYX(64, 3, 7, 7))))
//	desc := types.DefaultConv2D()
//	desc.Stride = layout.Spatial2D(1, 2, 2)
//	conv := must.M1(b.Convolution("conv1", x, []*convlayout.Node{w}, nil, desc))
//	program := must.M1(b.Build())
//	l, _ := program.Layout(conv.ID()) // (f32, bfyx)[b:1 f:64 x:109 y:109]
package convlayout

import "github.com/gomlx/convlayout/internal/utils"

// NormalizeIdentifier converts the name of a node to a valid identifier: only letters, digits, and
// underscores are allowed.
//
// Invalid characters are replaced with underscores.
// If the name starts with a digit, it is prefixed with an underscore.
func NormalizeIdentifier(name string) string {
	return utils.NormalizeIdentifier(name)
}
