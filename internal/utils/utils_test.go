package utils

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
)

func TestNormalizeIdentifier(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"", ""},
		{"conv1", "conv1"},
		{"conv/1:0", "conv_1_0"},
		{"1st_layer", "_1st_layer"},
	} {
		if got := NormalizeIdentifier(tc.in); got != tc.want {
			t.Errorf("NormalizeIdentifier(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"Convolution", "convolution"},
		{"FullyConnected", "fully_connected"},
		{"BFsYXFsv4", "b_fs_yx_fsv4"},
	} {
		if got := ToSnakeCase(tc.in); got != tc.want {
			t.Errorf("ToSnakeCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDTypeName(t *testing.T) {
	if got := DTypeName(dtypes.Float32); got != "f32" {
		t.Errorf("DTypeName(Float32) = %q", got)
	}
	if got := DTypeName(dtypes.Bool); got != "bin" {
		t.Errorf("DTypeName(Bool) = %q", got)
	}
	if got := DTypeName(dtypes.Uint8); got != "u8" {
		t.Errorf("DTypeName(Uint8) = %q", got)
	}
}
