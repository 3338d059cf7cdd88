// Package monomial enumerates n-variate monomials of bounded total
// degree in the ordering the divided-difference solvers (C4/C5) depend
// on: ascending total degree, with a deterministic odometer order within
// each degree.
package monomial

import "fmt"

// MaxRows bounds the number of rows a Table may hold; generating more is
// a precondition failure (spec.md §4.2).
const MaxRows = 1 << 20

// Table is a dense N x variables matrix of small nonnegative exponents,
// row k holding the multi-index lambda[k]. Each row is its own []uint8
// slice, since entries never exceed a byte.
type Table struct {
	Variables int
	Rows      [][]uint8
}

// Len returns the number of rows (monomials).
func (t *Table) Len() int { return len(t.Rows) }

// Row returns the multi-index for row k.
func (t *Table) Row(k int) []uint8 { return t.Rows[k] }

// TotalDegree returns the total degree |lambda[k]| of row k.
func (t *Table) TotalDegree(k int) int {
	row := t.Rows[k]
	sum := 0
	for _, v := range row {
		sum += int(v)
	}
	return sum
}

// binomial computes C(n, k) for small nonnegative n, k without overflow
// for the sizes this package is used at (n, k well under 64).
func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 0; i < k; i++ {
		result = result * (n - i) / (i + 1)
	}
	return result
}

// Enumerate builds the table of all `variables`-tuples of nonnegative
// integers with total sum <= degree, ordered by ascending total degree
// and, within a degree, by the lexicographic order a plain odometer
// produces. The zero-variable case returns a table with a single
// all-zero row (spec.md §4.2's "zero-variable case returns a zero-row
// matrix" — read as "the trivial, all-zero row", since a table with no
// rows at all would make C5's constant-only case impossible to drive).
func Enumerate(degree, variables int) *Table {
	if degree < 0 {
		panic(fmt.Sprintf("monomial: degree=%d must be >= 0", degree))
	}
	if variables < 0 {
		panic(fmt.Sprintf("monomial: variables=%d must be >= 0", variables))
	}
	if variables == 0 {
		return &Table{Variables: 0, Rows: [][]uint8{{}}}
	}

	n := binomial(degree+variables, degree)
	if n > MaxRows {
		panic(fmt.Sprintf("monomial: N=%d exceeds MaxRows=%d", n, MaxRows))
	}

	rows := make([][]uint8, 0, n)
	for total := 0; total <= degree; total++ {
		rows = appendDegreeRows(rows, make([]uint8, variables), 0, total)
	}
	return &Table{Variables: variables, Rows: rows}
}

// appendDegreeRows fills out `cur` left to right (an odometer over the
// first len(cur)-1 positions), forcing the last free position to whatever
// remains so that every row sums to exactly `remaining` at the point it
// is emitted.
func appendDegreeRows(rows [][]uint8, cur []uint8, pos, remaining int) [][]uint8 {
	if pos == len(cur)-1 {
		cur[pos] = uint8(remaining)
		row := make([]uint8, len(cur))
		copy(row, cur)
		return append(rows, row)
	}
	for v := 0; v <= remaining; v++ {
		cur[pos] = uint8(v)
		rows = appendDegreeRows(rows, cur, pos+1, remaining-v)
	}
	cur[pos] = 0
	return rows
}
