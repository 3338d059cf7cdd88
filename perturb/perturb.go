// Package perturb implements the sign driver (C6): it orchestrates the
// PRNG (C1), the predicate, and the two interpolators (C4/C5) to
// compute a black-box-guaranteed nonzero sign for a degenerate integer
// predicate via symbolic infinitesimal perturbation.
package perturb

import (
	"fmt"
	"log"
	"math/big"

	"sos-engine/internal/scratch"
	"sos-engine/interpolate"
	"sos-engine/monomial"
	"sos-engine/point"
	"sos-engine/prng"
	"sos-engine/vandermonde"
)

// Predicate is a caller-supplied pure function over a dense array of n
// points in Z^m (spec.md §6). It must be a polynomial of total degree
// <= the degree bound passed to PerturbedSign, must not mutate its
// input, and must be safe to call from multiple goroutines if the
// engine itself is used concurrently.
type Predicate func(coords [][]*big.Int) *big.Int

// Engine configures one perturbation engine. The zero value is usable:
// MaxDegree defaults to vandermonde.MaxDegree and Bound to
// defaultBound.
type Engine struct {
	// MaxDegree caps the predicate's declared total degree. Zero means
	// "use vandermonde.MaxDegree".
	MaxDegree int
	// Bound is log_bound B: perturbation components lie in
	// [-2^Bound, 2^Bound). Zero means "use defaultBound".
	Bound uint
	// Debug enables the precondition and mid-scan assertions spec.md
	// §3/§4.6 describe as "checked in debug builds".
	Debug bool
	// Verbose enables escalation tracing via the standard log package
	// (spec.md §6: "the only I/O is an optional verbose debug log").
	Verbose bool

	tables *vandermonde.Tables
}

// defaultBound is a conservative perturbation width: generous enough
// that collisions across realistic point counts are astronomically
// unlikely, small enough that degree * 2^Bound stays comfortably within
// what callers typically want to add to their own coordinates.
const defaultBound = 16

func (e *Engine) maxDegree() int {
	if e.MaxDegree == 0 {
		return vandermonde.MaxDegree
	}
	return e.MaxDegree
}

func (e *Engine) bound() uint {
	if e.Bound == 0 {
		return defaultBound
	}
	return e.Bound
}

// PerturbationBound exposes the log_bound B this engine derives its
// perturbation vectors with, so external callers (selftest harnesses,
// diagnostic tooling) can reproduce the exact same vectors via
// prng.Perturbation without duplicating the zero-value default.
func (e *Engine) PerturbationBound() uint { return e.bound() }

func (e *Engine) vandermondeTables() *vandermonde.Tables {
	if e.tables == nil {
		if e.maxDegree() == vandermonde.MaxDegree {
			e.tables = vandermonde.Default
		} else {
			e.tables = vandermonde.Generate(e.maxDegree())
		}
	}
	return e.tables
}

// PerturbedSign computes perturbed_sign(predicate, degree, X): true iff
// the limiting sign, as the infinitesimal perturbations shrink to zero,
// is positive. It never returns a "zero" outcome (spec.md §1, §8).
func (e *Engine) PerturbedSign(predicate Predicate, degree int, X []point.Point) bool {
	if degree < 1 || degree > e.maxDegree() {
		panic(fmt.Sprintf("perturb: degree=%d out of range (1..%d)", degree, e.maxDegree()))
	}
	if e.Debug && !point.DistinctIDs(X) {
		panic("perturb: duplicate point ids")
	}
	n := len(X)
	if n == 0 {
		panic("perturb: no points")
	}
	m := X[0].Dim()
	for _, x := range X {
		if x.Dim() != m {
			panic("perturb: points do not share a common dimension")
		}
	}

	tables := e.vandermondeTables()
	bound := e.bound()

	// Round 1: single-variable fast path (C4).
	y1 := make([][]int64, n)
	for i, x := range X {
		y1[i] = prng.Perturbation(1, x.ID, m, bound)
	}

	round1Sign, round1Resolved := e.round1(predicate, degree, X, y1, tables)
	if round1Resolved {
		return round1Sign
	}
	if e.Verbose {
		log.Printf("perturb: round 1 vanished entirely (%d coefficients), escalating", degree)
	}

	// Round d >= 2: escalation (C5).
	levels := [][][]int64{y1}
	for d := 2; ; d++ {
		yd := make([][]int64, n)
		for i, x := range X {
			yd[i] = prng.Perturbation(int64(d), x.ID, m, bound)
		}
		levels = append(levels, yd)

		sign, resolved := e.escalate(predicate, degree, d, X, levels, tables)
		if resolved {
			return sign
		}
	}
}

// round1 runs the single-variable fast path (C4) and reports whether it
// resolved a nonzero sign. Its scratch coefficient array is released on
// every exit path via defer, including the early return on success
// (spec.md §5, §9).
func (e *Engine) round1(predicate Predicate, degree int, X []point.Point, y1 [][]int64, tables *vandermonde.Tables) (sign bool, resolved bool) {
	slots := scratch.NewIntSlots(degree)
	defer slots.Release()
	values1 := slots.Values()

	n := len(X)
	for j := 1; j <= degree; j++ {
		z := make([][]*big.Int, n)
		for i, x := range X {
			z[i] = addScaled(x.Coord, [][]int64{y1[i]}, []int64{int64(j)})
		}
		values1[j-1].Set(predicate(z))
	}
	interpolate.Univariate(values1, degree, tables)

	for k := 0; k < degree; k++ {
		if values1[k].Sign() != 0 {
			if e.Verbose {
				log.Printf("perturb: round 1 resolved at order %d, sign=%d", k+1, values1[k].Sign())
			}
			return values1[k].Sign() > 0, true
		}
	}
	return false, false
}

// escalate runs one round d >= 2 of the multivariate path (C5) and
// reports whether it resolved a nonzero sign. Its scratch coefficient
// array is released on every exit path via defer.
func (e *Engine) escalate(predicate Predicate, degree, d int, X []point.Point, levels [][][]int64, tables *vandermonde.Tables) (sign bool, resolved bool) {
	lambda := monomial.Enumerate(degree, d)

	slots := scratch.NewRatSlots(lambda.Len())
	defer slots.Release()
	values := slots.Values()

	n := len(X)
	for j := 0; j < lambda.Len(); j++ {
		row := lambda.Row(j)
		scales := make([]int64, d)
		for v := 0; v < d; v++ {
			scales[v] = int64(row[v])
		}
		z := make([][]*big.Int, n)
		for i := range X {
			perPoint := make([][]int64, d)
			for v := 0; v < d; v++ {
				perPoint[v] = levels[v][i]
			}
			z[i] = addScaled(X[i].Coord, perPoint, scales)
		}
		values[j].SetInt(predicate(z))
	}

	interpolate.Multivariate(lambda, degree, values, tables)

	best := -1
	for j := 0; j < lambda.Len(); j++ {
		if values[j].Sign() == 0 {
			continue
		}
		if best == -1 || moreDominant(lambda.Row(j), lambda.Row(best)) {
			best = j
		}
	}

	if best < 0 {
		if e.Verbose {
			log.Printf("perturb: round %d vanished entirely (%d coefficients), escalating", d, lambda.Len())
		}
		return false, false
	}

	if e.Debug && lambda.Row(best)[d-1] == 0 {
		panic("perturb: round d nonzero term has no contribution from the newest level")
	}
	if e.Verbose {
		log.Printf("perturb: round %d resolved at monomial %v, sign=%d", d, lambda.Row(best), values[best].Sign())
	}
	return values[best].Sign() > 0, true
}

// addScaled computes coord + sum_v scales[v] * ys[v], where ys[v] is
// one point's perturbation vector at level v and scales[v] is the
// exponent/multiplier for that level in the current evaluation site.
func addScaled(coord []*big.Int, ys [][]int64, scales []int64) []*big.Int {
	out := make([]*big.Int, len(coord))
	for c := range coord {
		acc := new(big.Int).Set(coord[c])
		for v := range ys {
			if scales[v] == 0 {
				continue
			}
			term := new(big.Int).Mul(big.NewInt(scales[v]), big.NewInt(ys[v][c]))
			acc.Add(acc, term)
		}
		out[c] = acc
	}
	return out
}

// moreDominant reports whether row a names a strictly larger remaining
// infinitesimal than row b: scanning from the highest-level component
// (the end of the slice) down, the first differing position has a
// smaller exponent in a (spec.md §4.6 and §9's resolved open question —
// a larger highest-level exponent is a *smaller* magnitude term, since
// epsilon_d is the tiniest infinitesimal of all).
func moreDominant(a, b []uint8) bool {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
