package interpolate

import (
	"math/big"
	"testing"

	"sos-engine/vandermonde"
)

func TestUnivariateRecoversLinear(t *testing.T) {
	// f(eps) = 3*eps: values[0] = f(1) = 3. Degree 1 never touches the
	// tables (no inner loop iterations at k=0), so this exercises only
	// the factorialRatio(1,1) = 1 scaling path.
	values := []*big.Int{big.NewInt(3)}
	Univariate(values, 1, vandermonde.Default)
	if values[0].Int64() != 3 {
		t.Fatalf("got %s, want 3", values[0].String())
	}
}

// TestUnivariateRecoversDegreeTwoMixedCoefficients hand-verifies the
// degree-2 round trip for f(eps) = c1*eps + c2*eps^2 against three
// coefficient vectors, including a genuinely two-order-nonzero case
// (c1=2, c2=3): samples are f(1), f(2), and Univariate must return
// (c1*2!, c2*2!).
func TestUnivariateRecoversDegreeTwoMixedCoefficients(t *testing.T) {
	cases := []struct {
		c1, c2       int64
		want1, want2 int64
	}{
		{0, 1, 0, 2},
		{1, 0, 2, 0},
		{2, 3, 4, 6},
	}
	for _, c := range cases {
		f := func(x int64) int64 { return c.c1*x + c.c2*x*x }
		values := []*big.Int{big.NewInt(f(1)), big.NewInt(f(2))}
		Univariate(values, 2, vandermonde.Default)
		if values[0].Int64() != c.want1 || values[1].Int64() != c.want2 {
			t.Fatalf("c1=%d c2=%d: got (%s,%s), want (%d,%d)", c.c1, c.c2, values[0], values[1], c.want1, c.want2)
		}
	}
}

// TestUnivariateRecoversDegreeThreeMixedCoefficients hand-verifies the
// degree-3 round trip against S_3^-1 = [[3,-1.5,1/3],[-2.5,2,-0.5],
// [0.5,-0.5,1/6]] (inverse of the sample matrix [[1,1,1],[2,4,8],
// [3,9,27]]): f(eps) = eps^3 alone, and a fully mixed case, both scaled
// by 3! = 6.
func TestUnivariateRecoversDegreeThreeMixedCoefficients(t *testing.T) {
	cases := []struct {
		c1, c2, c3          int64
		want1, want2, want3 int64
	}{
		{0, 0, 1, 0, 0, 6},
		{1, 2, 3, 6, 12, 18},
	}
	for _, c := range cases {
		f := func(x int64) int64 { return c.c1*x + c.c2*x*x + c.c3*x*x*x }
		values := []*big.Int{big.NewInt(f(1)), big.NewInt(f(2)), big.NewInt(f(3))}
		Univariate(values, 3, vandermonde.Default)
		got := [3]int64{values[0].Int64(), values[1].Int64(), values[2].Int64()}
		want := [3]int64{c.want1, c.want2, c.want3}
		if got != want {
			t.Fatalf("c=(%d,%d,%d): got %v, want %v", c.c1, c.c2, c.c3, got, want)
		}
	}
}

func TestUnivariateZeroInputStaysZero(t *testing.T) {
	for degree := 1; degree <= 6; degree++ {
		values := make([]*big.Int, degree)
		for i := range values {
			values[i] = new(big.Int)
		}
		Univariate(values, degree, vandermonde.Default)
		for k, v := range values {
			if v.Sign() != 0 {
				t.Fatalf("degree=%d: entry %d nonzero (%s) for all-zero input", degree, k, v.String())
			}
		}
	}
}

func TestUnivariatePanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	values := []*big.Int{big.NewInt(1)}
	Univariate(values, 2, vandermonde.Default)
}

func TestUnivariatePanicsOnDegreeOutOfRange(t *testing.T) {
	cases := []int{0, vandermonde.MaxDegree + 1}
	for _, degree := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("degree=%d: expected panic", degree)
				}
			}()
			values := make([]*big.Int, degree)
			for i := range values {
				values[i] = new(big.Int)
			}
			Univariate(values, degree, vandermonde.Default)
		}()
	}
}
