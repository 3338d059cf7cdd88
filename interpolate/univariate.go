// Package interpolate implements the two divided-difference solvers the
// sign driver (C6) escalates through: a fast integer-only path for the
// single-perturbation-variable case (C4), and a general big.Rat path
// for escalation rounds with two or more perturbation variables (C5).
package interpolate

import (
	"fmt"
	"math/big"

	"sos-engine/vandermonde"
)

// Univariate rewrites values in place so that values[k-1] becomes the
// coefficient of epsilon^k, scaled by degree!, given values[j-1] =
// f(j*Y) for j = 1..degree (the vanishing constant term f(0) is the
// caller's responsibility and is not part of this array). It mutates
// and returns the same slice (spec.md §4.4).
func Univariate(values []*big.Int, degree int, tables *vandermonde.Tables) []*big.Int {
	if len(values) != degree {
		panic(fmt.Sprintf("interpolate: Univariate got %d values, want degree=%d", len(values), degree))
	}
	if degree < 1 || degree > vandermonde.MaxDegree {
		panic(fmt.Sprintf("interpolate: degree=%d out of range (1..%d)", degree, vandermonde.MaxDegree))
	}

	// Phase 1: lower-triangular solve, reversed.
	for k := degree - 1; k >= 0; k-- {
		for i := 0; i < k; i++ {
			coef := big.NewInt(int64(tables.LowerTriangle(k+1, i+1)))
			term := new(big.Int).Mul(coef, values[i])
			values[k].Add(values[k], term)
		}
		// array index k holds coefficient order k+1, so the scale at
		// this row is degree!/(k+1)!, not degree!/k!.
		values[k].Mul(values[k], factorialRatio(degree, k+1))
	}

	// Phase 2: upper-triangular solve, forward.
	for k := 0; k < degree; k++ {
		for i := 0; i < k; i++ {
			coef := big.NewInt(int64(tables.Sigma(k+1, i+1)))
			term := new(big.Int).Mul(coef, values[k])
			values[i].Add(values[i], term)
		}
	}
	return values
}

// factorialRatio computes degree!/k! exactly.
func factorialRatio(degree, k int) *big.Int {
	r := big.NewInt(1)
	for j := k + 1; j <= degree; j++ {
		r.Mul(r, big.NewInt(int64(j)))
	}
	return r
}
