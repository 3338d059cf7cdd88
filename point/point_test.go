package point

import "testing"

func TestNewAndDim(t *testing.T) {
	p := New(7, 1, -2, 3)
	if p.ID != 7 {
		t.Fatalf("ID=%d, want 7", p.ID)
	}
	if p.Dim() != 3 {
		t.Fatalf("Dim()=%d, want 3", p.Dim())
	}
	want := []int64{1, -2, 3}
	for i, c := range p.Coord {
		if c.Int64() != want[i] {
			t.Fatalf("Coord[%d]=%d, want %d", i, c.Int64(), want[i])
		}
	}
}

func TestDistinctIDs(t *testing.T) {
	ok := []Point{New(1), New(2), New(3)}
	if !DistinctIDs(ok) {
		t.Fatalf("expected distinct ids to pass")
	}
	dup := []Point{New(1), New(2), New(1)}
	if DistinctIDs(dup) {
		t.Fatalf("expected duplicate ids to fail")
	}
}

func TestDistinctIDsEmpty(t *testing.T) {
	if !DistinctIDs(nil) {
		t.Fatalf("empty set should be trivially distinct")
	}
}
