package prng

import "testing"

func TestPerturbationDeterministic(t *testing.T) {
	a := Perturbation(1, 42, 3, 8)
	b := Perturbation(1, 42, 3, 8)
	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("want length 3, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("not deterministic at %d: %d != %d", i, a[i], b[i])
		}
	}
}

func TestPerturbationVariesByLevelAndID(t *testing.T) {
	base := Perturbation(1, 1, 2, 8)
	byLevel := Perturbation(2, 1, 2, 8)
	byID := Perturbation(1, 2, 2, 8)
	if equal(base, byLevel) {
		t.Fatalf("level 1 and level 2 collided: %v", base)
	}
	if equal(base, byID) {
		t.Fatalf("id 1 and id 2 collided: %v", base)
	}
}

func TestPerturbationWithinBound(t *testing.T) {
	const bound = 5
	limit := int64(1) << bound
	for id := int64(0); id < 64; id++ {
		v := Perturbation(3, id, MaxVariables, bound)
		for _, c := range v {
			if c < -limit || c >= limit {
				t.Fatalf("component %d out of [-%d,%d) at id=%d", c, limit, limit, id)
			}
		}
	}
}

func TestPerturbationPanicsOnBadInputs(t *testing.T) {
	cases := []struct {
		name string
		m    int
		bnd  uint
	}{
		{"zero variables", 0, 4},
		{"too many variables", MaxVariables + 1, 4},
		{"bound too large", 2, MaxBound + 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			Perturbation(1, 0, c.m, c.bnd)
		})
	}
}

func equal(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
