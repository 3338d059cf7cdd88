// Package vandermonde holds the two small immutable integer tables the
// divided-difference solvers (C4/C5) are built on: the row extracted
// from each inverse sample-evaluation matrix ("easy corner"), and the
// signed elementary symmetric polynomials (signed Stirling numbers of
// the first kind) used to convert Newton-basis coefficients to the
// monomial basis. Both tables are pure functions of a single
// compile-time bound, MaxDegree, and are generated once.
package vandermonde

import (
	"fmt"
	"math/big"
)

// MaxDegree is the compile-time bound up to which both tables are
// generated (spec.md §4.3: "source uses a small bound, e.g. <= 20").
// 13 is the largest bound whose sigma rows fit int32: sigma(14, 1) is
// -13! = -6227020800.
const MaxDegree = 13

// Tables bundles the two dense lower-triangular arrays.
type Tables struct {
	// lowerTriangle[k-1] holds entries 1..k of row k, 0-indexed as
	// lowerTriangle[k-1][i-1].
	lowerTriangle [][]int32
	// sigma[n][k] = sigma(n, k) for 0 <= k <= n <= MaxDegree; entries
	// with k > n are left at zero (never read).
	sigma [][]int32
}

// Default is generated once at package init and shared by every caller;
// both tables are immutable after construction, so concurrent callers
// may read it freely (spec.md §5).
var Default = Generate(MaxDegree)

// LowerTriangle returns lower_triangle(k, i), 1 <= i <= k <= MaxDegree:
// entry i of row k of the inverse of the k x k sample-evaluation
// matrix, scaled by k!.
func (t *Tables) LowerTriangle(k, i int) int32 {
	if k < 1 || i < 1 || i > k {
		panic(fmt.Sprintf("vandermonde: LowerTriangle(%d,%d) out of range", k, i))
	}
	return t.lowerTriangle[k-1][i-1]
}

// Sigma returns sigma(n, k) = tau_{n-k}(n), the signed elementary
// symmetric polynomial of 0,1,...,n-1 of degree n-k. Out-of-range k > n
// is mathematically zero and returned as such rather than panicking
// (C5's Phase B skips such pairs itself before calling Sigma).
func (t *Tables) Sigma(n, k int) int32 {
	if n < 0 || k < 0 {
		panic(fmt.Sprintf("vandermonde: Sigma(%d,%d) negative index", n, k))
	}
	if n > MaxDegree || k > n {
		return 0
	}
	return t.sigma[n][k]
}

// Generate builds fresh tables up to maxDegree. It is exported so the
// tables can be regenerated for a different bound, per spec.md §4.3's
// requirement that the recurrences be documented and reproducible.
func Generate(maxDegree int) *Tables {
	return &Tables{
		lowerTriangle: generateLowerTriangle(maxDegree),
		sigma:         generateSigma(maxDegree),
	}
}

// generateSigma fills sigma(n, k) via the recurrence of spec.md §4.3:
//
//	sigma(n, n)   = 1
//	sigma(n+1, k+1) = sigma(n, k) - n * sigma(n, k+1)
//
// with the boundary sigma(n, 0) = 0 for n >= 1 (the elementary
// symmetric polynomial of full degree n over {0,...,n-1} always
// includes the factor 0) and sigma(n, k) = 0 for k > n.
func generateSigma(maxDegree int) [][]int32 {
	rows := make([][]int64, maxDegree+1)
	rows[0] = []int64{1}
	for n := 0; n < maxDegree; n++ {
		cur := rows[n]
		next := make([]int64, n+2)
		for k := 0; k <= n; k++ {
			sigmaNK := cur[k]
			var sigmaNKp1 int64
			if k+1 <= n {
				sigmaNKp1 = cur[k+1]
			}
			next[k+1] = sigmaNK - int64(n)*sigmaNKp1
		}
		rows[n+1] = next
	}

	out := make([][]int32, maxDegree+1)
	for n, row := range rows {
		out[n] = make([]int32, maxDegree+1)
		for k, v := range row {
			out[n][k] = mustFitInt32(v, "sigma", n, k)
		}
	}
	return out
}

// generateLowerTriangle computes, for every k = 1..maxDegree, the
// inverse of the k x k sample-evaluation matrix S with S[j][m] = j^m
// for j, m = 1..k (row j = the sample j*Y, column m = the power of
// epsilon), scaled by k!, and keeps its last row (row k) — the row
// that dots against (f(Y), f(2Y), ..., f(kY)) to recover c_k * k!, the
// top coefficient of the degree-k system.
//
// Unlike sigma, there is no closed-form recursion for this table, only
// the defining matrix; inverting the small (<=20x20) matrix exactly
// with big.Rat at generation time is the direct way to get row k of
// S^-1 scaled by k!.
func generateLowerTriangle(maxDegree int) [][]int32 {
	out := make([][]int32, maxDegree)
	for k := 1; k <= maxDegree; k++ {
		s := sampleMatrix(k)
		inv := invertExact(s)
		fact := factorial(k)
		row := inv[k-1] // last row, 0-indexed row k-1 == "row k"
		scaled := make([]int32, k)
		for i := 0; i < k; i++ {
			num := new(big.Rat).Mul(row[i], new(big.Rat).SetInt(fact))
			if !num.IsInt() {
				panic(fmt.Sprintf("vandermonde: lower_triangle(%d,%d) not integral: %s", k, i+1, num.String()))
			}
			scaled[i] = mustFitInt32(num.Num().Int64(), "lower_triangle", k, i+1)
		}
		out[k-1] = scaled
	}
	return out
}

// sampleMatrix builds S with S[j][m] = (j+1)^(m+1), j, m = 0..k-1 (i.e.
// 1-indexed powers j^m for j, m = 1..k): row j holds the powers of
// sample j, column m holds the coefficient of epsilon^m.
func sampleMatrix(k int) [][]*big.Rat {
	m := make([][]*big.Rat, k)
	for j := 0; j < k; j++ {
		m[j] = make([]*big.Rat, k)
		for col := 0; col < k; col++ {
			base := big.NewInt(int64(j + 1))
			pow := new(big.Int).Exp(base, big.NewInt(int64(col+1)), nil)
			m[j][col] = new(big.Rat).SetInt(pow)
		}
	}
	return m
}

// invertExact inverts a small square matrix of big.Rat via Gauss-Jordan
// elimination with full exact arithmetic; fine for k <= MaxDegree.
func invertExact(m [][]*big.Rat) [][]*big.Rat {
	n := len(m)
	aug := make([][]*big.Rat, n)
	for i := 0; i < n; i++ {
		aug[i] = make([]*big.Rat, 2*n)
		for j := 0; j < n; j++ {
			aug[i][j] = new(big.Rat).Set(m[i][j])
		}
		for j := 0; j < n; j++ {
			if i == j {
				aug[i][n+j] = big.NewRat(1, 1)
			} else {
				aug[i][n+j] = big.NewRat(0, 1)
			}
		}
	}

	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if aug[r][col].Sign() != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			panic("vandermonde: singular easy-corner matrix")
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		inv := new(big.Rat).Inv(aug[col][col])
		for j := 0; j < 2*n; j++ {
			aug[col][j].Mul(aug[col][j], inv)
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := new(big.Rat).Set(aug[r][col])
			if factor.Sign() == 0 {
				continue
			}
			for j := 0; j < 2*n; j++ {
				term := new(big.Rat).Mul(factor, aug[col][j])
				aug[r][j].Sub(aug[r][j], term)
			}
		}
	}

	inv := make([][]*big.Rat, n)
	for i := 0; i < n; i++ {
		inv[i] = aug[i][n:]
	}
	return inv
}

func factorial(n int) *big.Int {
	f := big.NewInt(1)
	for i := 2; i <= n; i++ {
		f.Mul(f, big.NewInt(int64(i)))
	}
	return f
}

func mustFitInt32(v int64, table string, indices ...int) int32 {
	if v > (1<<31)-1 || v < -(1<<31) {
		panic(fmt.Sprintf("vandermonde: %s%v overflows int32: %d", table, indices, v))
	}
	return int32(v)
}
