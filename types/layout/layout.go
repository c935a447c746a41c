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

// Package layout defines Layout, the description of how a tensor's values are arranged:
// data type, sizes (Tensor), memory format and padding.
//
// Layouts are plain values: they are created fresh by shape inference and compared by value.
//
// ## Glossary
//
//   - Batch, Feature, Spatial, Group: the roles of a tensor's logical axes. Feature is also
//     called "channels".
//   - Memory format: see package formats.
//   - DType: the data type of the unit element in a tensor. Enumeration defined in github.com/gomlx/gopjrt/dtypes.
//     dtypes.Bool is used for the 1-bit packed values of binary convolutions, see Binary.
package layout

import (
	"fmt"

	"github.com/gomlx/convlayout/internal/utils"
	"github.com/gomlx/convlayout/types/formats"
	"github.com/gomlx/gopjrt/dtypes"
)

const (
	// Binary is the dtype of binary (1-bit packed) tensors.
	Binary = dtypes.Bool

	// DefaultFloat is the floating point type results are promoted to.
	DefaultFloat = dtypes.Float32
)

// Padding describes the extra space around a tensor's data, and the value used to fill it.
type Padding struct {
	Lower, Upper Tensor
	FillValue    float32
}

// Equal compares two paddings.
func (p Padding) Equal(p2 Padding) bool {
	return p.Lower.Equal(p2.Lower) && p.Upper.Equal(p2.Upper) && p.FillValue == p2.FillValue
}

// String implements fmt.Stringer.
func (p Padding) String() string {
	return fmt.Sprintf("lower=%s upper=%s fill=%g", p.Lower, p.Upper, p.FillValue)
}

// Layout of a tensor.
type Layout struct {
	DType   dtypes.DType
	Format  formats.Format
	Size    Tensor
	Padding Padding
}

// Make returns a Layout with no padding.
func Make(dtype dtypes.DType, format formats.Format, size Tensor) Layout {
	return Layout{DType: dtype, Format: format, Size: size.Clone()}
}

// Ok returns whether the layout has a valid dtype. A zero Layout{} is not Ok.
func (l Layout) Ok() bool { return l.DType != dtypes.InvalidDType }

// Clone returns a deep copy of the layout.
func (l Layout) Clone() Layout {
	l.Size = l.Size.Clone()
	l.Padding.Lower = l.Padding.Lower.Clone()
	l.Padding.Upper = l.Padding.Upper.Clone()
	return l
}

// WithFormat returns a copy of the layout with the format changed.
func (l Layout) WithFormat(format formats.Format) Layout {
	l.Size = l.Size.Clone()
	l.Format = format
	return l
}

// WithDType returns a copy of the layout with the dtype changed.
func (l Layout) WithDType(dtype dtypes.DType) Layout {
	l.Size = l.Size.Clone()
	l.DType = dtype
	return l
}

// Equal compares dtype, format, sizes and padding.
func (l Layout) Equal(l2 Layout) bool {
	return l.DType == l2.DType && l.Format == l2.Format && l.Size.Equal(l2.Size) && l.Padding.Equal(l2.Padding)
}

// Count returns the number of elements of the layout, padding excluded.
func (l Layout) Count() int { return l.Size.Count() }

// Memory returns the bytes used by the elements of the layout, padding excluded.
func (l Layout) Memory() uintptr {
	if l.DType == Binary {
		// 1 bit per element, packed in 32-bit words.
		return uintptr((l.Count()+31)/32) * 4
	}
	return l.DType.Memory() * uintptr(l.Count())
}

// String implements fmt.Stringer, e.g. "(f32, bfyx)[b:1 f:3 x:224 y:224]".
func (l Layout) String() string {
	return fmt.Sprintf("(%s, %s)%s", utils.DTypeName(l.DType), l.Format, l.Size)
}
