package interpolate

import (
	"fmt"
	"math/big"

	"sos-engine/monomial"
	"sos-engine/vandermonde"
)

// Multivariate rewrites values in place from "f evaluated at each
// lattice point named by lambda" to the exact monomial-basis
// coefficients of the unique interpolating polynomial of total degree
// <= degree (spec.md §4.5). It mutates and returns the same slice.
func Multivariate(lambda *monomial.Table, degree int, values []*big.Rat, tables *vandermonde.Tables) []*big.Rat {
	n := lambda.Len()
	if len(values) != n {
		panic(fmt.Sprintf("interpolate: Multivariate got %d values, want %d (table rows)", len(values), n))
	}

	index := flatIndex(lambda)
	dividedDifferences(lambda, degree, values, index)
	newtonToMonomial(lambda, values, tables)
	return values
}

// flatIndex maps each row's multi-index (as a byte string, which Go
// hashes natively and cheaply) to its row position, giving the O(1)
// child lookup spec.md §4.5/§9 calls for.
func flatIndex(lambda *monomial.Table) map[string]int {
	idx := make(map[string]int, lambda.Len())
	for k := 0; k < lambda.Len(); k++ {
		idx[string(lambda.Row(k))] = k
	}
	return idx
}

// dividedDifferences runs Phase A of C5: degree passes of Newton-form
// divided differences, walking every row's components from the first
// nonzero cursor position onward, bottom multi-index first.
func dividedDifferences(lambda *monomial.Table, degree int, values []*big.Rat, index map[string]int) {
	n := lambda.Len()
	cursor := make([]int, n)
	remaining := make([]int, n)
	for k := 0; k < n; k++ {
		row := lambda.Row(k)
		if len(row) > 0 {
			remaining[k] = int(row[0])
		}
	}

passLoop:
	for pass := 1; pass <= degree; pass++ {
		for k := n - 1; k >= 0; k-- {
			row := lambda.Row(k)
			for remaining[k] == 0 {
				cursor[k]++
				if cursor[k] >= len(row) {
					continue passLoop
				}
				remaining[k] = int(row[cursor[k]])
			}
			remaining[k]--

			child := make([]byte, len(row))
			copy(child, row)
			child[cursor[k]]--
			childPos, ok := index[string(child)]
			if !ok {
				panic("interpolate: divided-difference child row not found")
			}

			denom := int64(row[cursor[k]]) - int64(remaining[k])
			diff := new(big.Rat).Sub(values[k], values[childPos])
			values[k] = new(big.Rat).Quo(diff, big.NewRat(denom, 1))
		}
	}
}

// newtonToMonomial runs Phase B of C5: converts the Newton-basis
// coefficients in values into exact monomial-basis coefficients using
// the signed elementary symmetric polynomials in tables.
func newtonToMonomial(lambda *monomial.Table, values []*big.Rat, tables *vandermonde.Tables) {
	n := lambda.Len()
	for k := 0; k < n; k++ {
		beta := lambda.Row(k)
		for kp := 0; kp < k; kp++ {
			gamma := lambda.Row(kp)
			tau := int64(1)
			skip := false
			for i := range beta {
				if gamma[i] > beta[i] {
					skip = true
					break
				}
				if gamma[i] < beta[i] {
					tau *= int64(tables.Sigma(int(beta[i]), int(gamma[i])))
				}
			}
			if skip || tau == 0 {
				continue
			}
			term := new(big.Rat).Mul(big.NewRat(tau, 1), values[k])
			values[kp].Add(values[kp], term)
		}
	}
}
