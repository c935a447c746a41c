package formats

import "testing"

func TestString(t *testing.T) {
	for f := Any; f < Last; f++ {
		if _, ok := formatNames[f]; !ok {
			t.Errorf("format %d has no name", int(f))
		}
	}
	if got := BFsYXFsv4.String(); got != "b_fs_yx_fsv4" {
		t.Errorf("BFsYXFsv4.String() = %q", got)
	}
	if got := Format(-1).String(); got != "Format(-1)" {
		t.Errorf("Format(-1).String() = %q", got)
	}
}

func TestIsWinogradWeights(t *testing.T) {
	for _, f := range []Format{WinogradWeights2x3S1, WinogradFusedWeights2x3S1, WinogradFusedWeights6x3S1,
		Image2DWeightsWinograd6x3S1FBXYB, Image2DWeightsWinograd6x3S1XFBYB} {
		if !f.IsWinogradWeights() {
			t.Errorf("%s should be a Winograd weights format", f)
		}
	}
	for _, f := range []Format{BFYX, WinogradData2x3S1, OIYX, ByxfAF32} {
		if f.IsWinogradWeights() {
			t.Errorf("%s should not be a Winograd weights format", f)
		}
	}
}

func TestSpatialRank(t *testing.T) {
	if BFZYX.SpatialRank() != 3 {
		t.Errorf("BFZYX.SpatialRank() = %d, want 3", BFZYX.SpatialRank())
	}
	if BFYX.SpatialRank() != 2 {
		t.Errorf("BFYX.SpatialRank() = %d, want 2", BFYX.SpatialRank())
	}
}
