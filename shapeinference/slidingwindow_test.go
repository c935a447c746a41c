package shapeinference

import (
	"math"
	"testing"

	"github.com/gomlx/convlayout/types/layout"
)

func TestOutputExtent(t *testing.T) {
	testCases := []struct {
		name                                           string
		input, kernel, offset, stride, dilation, want int
	}{
		{"7x7 stride 2", 224, 7, 0, 2, 1, 109},
		{"3x3 same", 10, 3, 1, 1, 1, 10},
		{"dilated", 10, 3, 0, 1, 2, 6},
		{"window larger than input", 3, 5, 0, 1, 1, -1},
		{"negative numerator floors", 3, 5, 0, 2, 1, 0},
		{"kernel 1", 5, 1, 0, 2, 1, 3},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := OutputExtent(tc.input, tc.kernel, tc.offset, tc.stride, tc.dilation)
			if got != tc.want {
				t.Errorf("OutputExtent(%d, %d, %d, %d, %d) = %d, want %d",
					tc.input, tc.kernel, tc.offset, tc.stride, tc.dilation, got, tc.want)
			}
		})
	}
}

func TestOutputExtentFormula(t *testing.T) {
	for input := 1; input <= 12; input++ {
		for kernel := 1; kernel <= 5; kernel++ {
			for stride := 1; stride <= 3; stride++ {
				for dilation := 1; dilation <= 3; dilation++ {
					for offset := 0; 2*offset < input; offset++ {
						dilatedKernel := (kernel-1)*dilation + 1
						want := int(math.Floor(float64(input+2*offset-dilatedKernel)/float64(stride))) + 1
						got := OutputExtent(input, kernel, offset, stride, dilation)
						if got != want {
							t.Fatalf("OutputExtent(%d, %d, %d, %d, %d) = %d, want %d",
								input, kernel, offset, stride, dilation, got, want)
						}
						if again := OutputExtent(input, kernel, offset, stride, dilation); again != got {
							t.Fatalf("OutputExtent is not deterministic: %d != %d", again, got)
						}
					}
				}
			}
		}
	}
}

func TestOutputRange(t *testing.T) {
	input := layout.BFYX(2, 3, 9, 20)
	kernel := layout.MakeTensor(8, 3, 3, 11)
	got := OutputRange(input, kernel, layout.Spatial2D(0, 0, 0), layout.Spatial2D(1, 2, 1), layout.Spatial2D(1, 1, 1), 1)
	// x: (20-3)/2+1 = 9; y: 9-11 < 0, degenerate.
	want := layout.MakeTensor(2, 3, 9, 1)
	if !got.Equal(want) {
		t.Errorf("OutputRange() = %s, want %s", got, want)
	}

	// Missing axes in stride/dilation/offset take trivial values.
	volume := layout.BFZYX(1, 1, 4, 5, 6)
	got = OutputRange(volume, layout.MakeTensor(1, 1, 2, 2, 2), layout.Spatial2D(0, 0, 0), layout.Spatial2D(1, 1, 1),
		layout.Spatial2D(1, 1, 1), 1)
	want = layout.BFZYX(1, 1, 3, 4, 5)
	if !got.Equal(want) {
		t.Errorf("OutputRange() = %s, want %s", got, want)
	}
}

func TestFloorDiv(t *testing.T) {
	for _, tc := range [][3]int{{7, 2, 3}, {-7, 2, -4}, {-6, 2, -3}, {0, 5, 0}, {-1, 3, -1}} {
		if got := floorDiv(tc[0], tc[1]); got != tc[2] {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tc[0], tc[1], got, tc[2])
		}
	}
}
