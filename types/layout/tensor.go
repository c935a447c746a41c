/*
 *	Copyright 2023 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

package layout

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/exceptions"
)

// Tensor holds the sizes of the logical axes of a tensor, grouped by role.
//
// Spatial sizes are stored in x, y, z order (innermost first). For weights, Batch holds
// the number of output feature maps (OFM) and Feature the number of input feature maps (IFM).
//
// The same type is used for strides, dilations and offsets, in which case Batch and Feature
// hold the (normally trivial) values along those axes.
type Tensor struct {
	Batch   []int
	Feature []int
	Spatial []int
	Group   []int
}

// MakeTensor returns a Tensor with one batch value, one feature value and the given spatial
// sizes, in x, y, z order.
//
// It panics for negative sizes.
func MakeTensor(batch, feature int, spatial ...int) Tensor {
	t := Tensor{
		Batch:   []int{batch},
		Feature: []int{feature},
		Spatial: slices.Clone(spatial),
	}
	if batch < 0 || feature < 0 {
		exceptions.Panicf("layout.MakeTensor(%s): axis sizes must be >= 0", t)
	}
	for _, s := range spatial {
		if s < 0 {
			exceptions.Panicf("layout.MakeTensor(%s): axis sizes must be >= 0", t)
		}
	}
	return t
}

// BFYX is a convenience constructor taking the sizes in the usual "NCHW" order.
func BFYX(b, f, y, x int) Tensor { return MakeTensor(b, f, x, y) }

// BFZYX is a convenience constructor taking the sizes in the usual "NCDHW" order.
func BFZYX(b, f, z, y, x int) Tensor { return MakeTensor(b, f, x, y, z) }

// Spatial2D returns a Tensor to be used as a stride, dilation or offset: batch and feature
// are set to the given trivial value, and spatial to x and y.
func Spatial2D(trivial, x, y int) Tensor { return MakeTensor(trivial, trivial, x, y) }

// Spatial3D is like Spatial2D for three spatial axes.
func Spatial3D(trivial, x, y, z int) Tensor { return MakeTensor(trivial, trivial, x, y, z) }

// WithGroups returns a copy of the tensor with the group axis set to g.
func (t Tensor) WithGroups(g int) Tensor {
	t = t.Clone()
	t.Group = []int{g}
	return t
}

// Clone returns a deep copy of the tensor.
func (t Tensor) Clone() Tensor {
	return Tensor{
		Batch:   slices.Clone(t.Batch),
		Feature: slices.Clone(t.Feature),
		Spatial: slices.Clone(t.Spatial),
		Group:   slices.Clone(t.Group),
	}
}

// Rank returns the number of logical axes: batch, feature and spatial.
// The group axis of weights is not counted.
func (t Tensor) Rank() int { return len(t.Batch) + len(t.Feature) + len(t.Spatial) }

// SpatialRank returns the number of spatial axes.
func (t Tensor) SpatialRank() int { return len(t.Spatial) }

// B returns the first batch value, or 0 if there is no batch axis.
func (t Tensor) B() int { return firstOr(t.Batch, 0) }

// F returns the first feature value, or 0 if there is no feature axis.
func (t Tensor) F() int { return firstOr(t.Feature, 0) }

// G returns the group count, 1 if there is no group axis.
func (t Tensor) G() int { return firstOr(t.Group, 1) }

// X returns the innermost spatial size.
func (t Tensor) X() int { return t.SpatialAt(0) }

// Y returns the second spatial size.
func (t Tensor) Y() int { return t.SpatialAt(1) }

// SpatialAt returns the size of the spatial axis, counting from x.
// It panics if the axis is out of range.
func (t Tensor) SpatialAt(axis int) int {
	if axis < 0 || axis >= len(t.Spatial) {
		exceptions.Panicf("Tensor.SpatialAt(%d) out-of-bounds for spatial rank %d (tensor=%s)", axis, len(t.Spatial), t)
	}
	return t.Spatial[axis]
}

// SpatialOr returns the size of the spatial axis, or defaultValue if the tensor doesn't have it.
func (t Tensor) SpatialOr(axis, defaultValue int) int {
	if axis < 0 || axis >= len(t.Spatial) {
		return defaultValue
	}
	return t.Spatial[axis]
}

// Count returns the number of elements: the product of all sizes, group included.
func (t Tensor) Count() (count int) {
	count = 1
	for _, axes := range [][]int{t.Batch, t.Feature, t.Spatial, t.Group} {
		for _, v := range axes {
			count *= v
		}
	}
	return
}

// Equal compares two tensors axis by axis.
func (t Tensor) Equal(t2 Tensor) bool {
	return slices.Equal(t.Batch, t2.Batch) &&
		slices.Equal(t.Feature, t2.Feature) &&
		slices.Equal(t.Spatial, t2.Spatial) &&
		slices.Equal(t.Group, t2.Group)
}

var spatialNames = []string{"x", "y", "z", "w"}

// SpatialName returns the name of the spatial axis, "x", "y" or "z".
func SpatialName(axis int) string {
	if axis >= 0 && axis < len(spatialNames) {
		return spatialNames[axis]
	}
	return fmt.Sprintf("spatial[%d]", axis)
}

// String implements fmt.Stringer, e.g. "[b:1 f:64 x:109 y:109]".
func (t Tensor) String() string {
	var parts []string
	add := func(name string, values []int) {
		for i, v := range values {
			if len(values) > 1 {
				parts = append(parts, fmt.Sprintf("%s%d:%d", name, i, v))
			} else {
				parts = append(parts, fmt.Sprintf("%s:%d", name, v))
			}
		}
	}
	add("b", t.Batch)
	add("f", t.Feature)
	for i, v := range t.Spatial {
		parts = append(parts, fmt.Sprintf("%s:%d", SpatialName(i), v))
	}
	add("g", t.Group)
	return "[" + strings.Join(parts, " ") + "]"
}

func firstOr(values []int, defaultValue int) int {
	if len(values) == 0 {
		return defaultValue
	}
	return values[0]
}
