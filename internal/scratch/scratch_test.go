package scratch

import "testing"

func TestIntSlotsAllocatesZeroValues(t *testing.T) {
	s := NewIntSlots(4)
	defer s.Release()
	values := s.Values()
	if len(values) != 4 {
		t.Fatalf("got %d slots, want 4", len(values))
	}
	for i, v := range values {
		if v == nil {
			t.Fatalf("slot %d is nil", i)
		}
		if v.Sign() != 0 {
			t.Fatalf("slot %d not zero-valued", i)
		}
	}
}

func TestIntSlotsReleaseIsIdempotent(t *testing.T) {
	s := NewIntSlots(2)
	s.Release()
	s.Release()
	if s.Values() != nil {
		t.Fatalf("expected nil slots after release")
	}
}

func TestRatSlotsAllocatesZeroValues(t *testing.T) {
	s := NewRatSlots(3)
	defer s.Release()
	values := s.Values()
	if len(values) != 3 {
		t.Fatalf("got %d slots, want 3", len(values))
	}
	for i, v := range values {
		if v == nil {
			t.Fatalf("slot %d is nil", i)
		}
		if v.Sign() != 0 {
			t.Fatalf("slot %d not zero-valued", i)
		}
	}
}
