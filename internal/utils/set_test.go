package utils

import (
	"testing"
)

func TestSet(t *testing.T) {
	// Sets are created empty.
	s := MakeSet[int](10)
	if len(s) != 0 {
		t.Errorf("expected len 0, got %d", len(s))
	}

	// Check inserting and recovery.
	s.Insert(3, 7)
	if len(s) != 2 {
		t.Errorf("expected len 2, got %d", len(s))
	}
	if !s.Has(3) {
		t.Errorf("expected s.Has(3) to be true")
	}
	if !s.Has(7) {
		t.Errorf("expected s.Has(7) to be true")
	}
	if s.Has(5) {
		t.Errorf("expected s.Has(5) to be false")
	}

	// Inserting again is a no-op.
	s.Insert(3)
	if len(s) != 2 {
		t.Errorf("expected len 2, got %d", len(s))
	}

	delete(s, 7)
	if len(s) != 1 {
		t.Errorf("expected len 1, got %d", len(s))
	}
	if s.Has(7) {
		t.Errorf("expected s.Has(7) to be false")
	}

	s2 := MakeSet[string]()
	s2.Insert("conv1")
	if !s2.Has("conv1") || s2.Has("conv2") {
		t.Errorf("unexpected contents of s2: %v", s2)
	}
}
