// Package selftest implements C7: for each (m, degree) it builds a
// predicate that is identically zero along the first m-1 perturbation
// levels and nonzero only once level m is added, computes the engine's
// fast answer, and cross-checks it against a brute-force construction
// that encodes the perturbation levels as explicit, well-separated
// powers of two rather than symbolic infinitesimals (spec.md §4.7).
package selftest

import (
	"fmt"
	"math/big"

	"sos-engine/perturb"
	"sos-engine/point"
	"sos-engine/prng"
)

// Result records one harness run.
type Result struct {
	M, Degree int
	ID        int64
	FastSign  bool
	BruteSign bool
}

// Match reports whether the fast and brute-force answers agree.
func (r Result) Match() bool { return r.FastSign == r.BruteSign }

// Run builds the canonical degenerate-along-m-levels predicate for the
// given (m, degree, id), evaluates it through eng, cross-checks against
// the brute-force power-of-two construction, and returns both signs.
func Run(eng *perturb.Engine, m, degree int, id int64) Result {
	bound := eng.PerturbationBound()
	fixed := fixedRows(m, id, bound)
	predicate := detPowerPredicate(m, degree, fixed)

	x := point.New(id, make([]int64, m)...)
	fast := eng.PerturbedSign(predicate, degree, []point.Point{x})
	brute := bruteForceSign(m, degree, id, bound, fixed)

	return Result{M: m, Degree: degree, ID: id, FastSign: fast, BruteSign: brute}
}

// fixedRows computes Y_1, ..., Y_{m-1}: the perturbation vectors that
// the test predicate holds fixed as extra rows of its determinant.
func fixedRows(m int, id int64, bound uint) [][]int64 {
	fixed := make([][]int64, 0, m-1)
	for level := 1; level <= m-1; level++ {
		fixed = append(fixed, prng.Perturbation(int64(level), id, m, bound))
	}
	return fixed
}

// detPowerPredicate builds f(X) = X[0]^degree for m=1, or
// f(X) = det(X[0], Y_1, ..., Y_{m-1})^degree for m >= 2, exactly as
// spec.md §4.7 prescribes.
func detPowerPredicate(m, degree int, fixed [][]int64) perturb.Predicate {
	degBig := big.NewInt(int64(degree))
	return func(coords [][]*big.Int) *big.Int {
		z := coords[0]
		if m == 1 {
			return new(big.Int).Exp(z[0], degBig, nil)
		}
		rows := make([][]*big.Int, m)
		rows[0] = z
		for i, f := range fixed {
			rows[i+1] = int64RowToBig(f)
		}
		d := determinant(rows)
		return new(big.Int).Exp(d, degBig, nil)
	}
}

// bruteForceSign reconstructs the coordinate as a sum of Y_i scaled by
// well-separated powers of two (spec.md §4.7's P_i = (degree+1)P_{i-1}+128),
// checking that the raw (unperturbed-engine) predicate value is exactly
// zero for every i < m and recording its sign at i = m.
func bruteForceSign(m, degree int, id int64, bound uint, fixed [][]int64) bool {
	ys := make([][]int64, m)
	for level := 1; level <= m; level++ {
		ys[level-1] = prng.Perturbation(int64(level), id, m, bound)
	}

	p := make([]int, m+1)
	for i := 1; i <= m; i++ {
		p[i] = (degree+1)*p[i-1] + 128
	}
	pmax := p[m]

	degBig := big.NewInt(int64(degree))
	z := make([]*big.Int, m)
	for c := range z {
		z[c] = new(big.Int)
	}

	sign := 0
	for i := 1; i <= m; i++ {
		scale := new(big.Int).Lsh(big.NewInt(1), uint(pmax-p[i-1]))
		for c := 0; c < m; c++ {
			term := new(big.Int).Mul(scale, big.NewInt(ys[i-1][c]))
			z[c].Add(z[c], term)
		}

		var val *big.Int
		if m == 1 {
			val = new(big.Int).Exp(z[0], degBig, nil)
		} else {
			rows := make([][]*big.Int, m)
			rows[0] = z
			for fi, f := range fixed {
				rows[fi+1] = int64RowToBig(f)
			}
			val = new(big.Int).Exp(determinant(rows), degBig, nil)
		}

		if i < m {
			if val.Sign() != 0 {
				panic(fmt.Sprintf("selftest: brute-force predicate nonzero before level m (m=%d, degree=%d, i=%d)", m, degree, i))
			}
		} else {
			sign = val.Sign()
		}
	}
	return sign > 0
}

func int64RowToBig(row []int64) []*big.Int {
	out := make([]*big.Int, len(row))
	for i, v := range row {
		out[i] = big.NewInt(v)
	}
	return out
}

// determinant computes the exact determinant of a square integer
// matrix via Bareiss fraction-free elimination: every intermediate
// division is exact, so no rational arithmetic is needed even though
// the elimination looks like ordinary Gaussian elimination.
func determinant(rows [][]*big.Int) *big.Int {
	n := len(rows)
	a := make([][]*big.Int, n)
	for i := range rows {
		a[i] = make([]*big.Int, n)
		for j := range rows[i] {
			a[i][j] = new(big.Int).Set(rows[i][j])
		}
	}

	sign := 1
	prev := big.NewInt(1)
	for k := 0; k < n-1; k++ {
		if a[k][k].Sign() == 0 {
			swapped := false
			for i := k + 1; i < n; i++ {
				if a[i][k].Sign() != 0 {
					a[k], a[i] = a[i], a[k]
					sign = -sign
					swapped = true
					break
				}
			}
			if !swapped {
				return big.NewInt(0)
			}
		}
		for i := k + 1; i < n; i++ {
			for j := k + 1; j < n; j++ {
				num := new(big.Int).Sub(
					new(big.Int).Mul(a[i][j], a[k][k]),
					new(big.Int).Mul(a[i][k], a[k][j]),
				)
				a[i][j] = new(big.Int).Quo(num, prev)
			}
		}
		prev = a[k][k]
	}

	det := new(big.Int).Set(a[n-1][n-1])
	if sign < 0 {
		det.Neg(det)
	}
	return det
}
