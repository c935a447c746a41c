// Package formats defines Format, the memory arrangement of a tensor's axes.
//
// A Format never changes the logical values of a tensor, only how they are laid out in memory.
// Some formats are blocked/packed variants used by specific hardware kernels, and a few are
// reserved for pre-transformed (Winograd) weights.
package formats

import "fmt"

// Format is an enum of the memory formats a Layout can have.
type Format int

const (
	// Any means the format is not decided yet.
	Any Format = iota

	// Plain activation formats.
	BFYX
	YXFB
	BYXF
	FYXB
	BFZYX

	// Blocked/packed activation formats.
	BFsYXFsv4
	BFsYXFsv16
	BFsYX32FP
	ByxfAF32
	Byx8F4
	FsBsYXBsv4Fsv32

	// WinogradData2x3S1 is activation data pre-transformed for a Winograd F(2,3) stride-1 convolution.
	WinogradData2x3S1

	// Weights formats.
	OIYX
	GOIYX
	WinogradWeights2x3S1
	WinogradFusedWeights2x3S1
	WinogradFusedWeights6x3S1
	Image2DWeightsWinograd6x3S1FBXYB
	Image2DWeightsWinograd6x3S1XFBYB

	// Last is kept last, as a counter.
	Last
)

var formatNames = map[Format]string{
	Any:                              "any",
	BFYX:                             "bfyx",
	YXFB:                             "yxfb",
	BYXF:                             "byxf",
	FYXB:                             "fyxb",
	BFZYX:                            "bfzyx",
	BFsYXFsv4:                        "b_fs_yx_fsv4",
	BFsYXFsv16:                       "b_fs_yx_fsv16",
	BFsYX32FP:                        "b_fs_yx_32fp",
	ByxfAF32:                         "byxf_af32",
	Byx8F4:                           "byx8_f4",
	FsBsYXBsv4Fsv32:                  "fs_bs_yx_bsv4_fsv32",
	WinogradData2x3S1:                "winograd_2x3_s1_data",
	OIYX:                             "oiyx",
	GOIYX:                            "goiyx",
	WinogradWeights2x3S1:             "winograd_2x3_s1_weights",
	WinogradFusedWeights2x3S1:        "winograd_2x3_s1_fused_weights",
	WinogradFusedWeights6x3S1:        "winograd_6x3_s1_fused_weights",
	Image2DWeightsWinograd6x3S1FBXYB: "image_2d_weights_winograd_6x3_s1_fbxyb",
	Image2DWeightsWinograd6x3S1XFBYB: "image_2d_weights_winograd_6x3_s1_xfbyb",
}

// String implements fmt.Stringer.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// IsWinogradWeights returns whether the format holds pre-transformed Winograd weights.
// These formats must never be used for activations.
func (f Format) IsWinogradWeights() bool {
	switch f {
	case WinogradWeights2x3S1, WinogradFusedWeights2x3S1, WinogradFusedWeights6x3S1,
		Image2DWeightsWinograd6x3S1FBXYB, Image2DWeightsWinograd6x3S1XFBYB:
		return true
	}
	return false
}

// SpatialRank returns the number of spatial axes a format arranges: 3 for bfzyx, 2 for all others.
func (f Format) SpatialRank() int {
	if f == BFZYX {
		return 3
	}
	return 2
}
