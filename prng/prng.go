// Package prng implements the deterministic counter-based pseudorandom
// function C1: a pure map from (perturbation level, point id) to an
// integer perturbation vector in Z^m. It captures no state and exposes
// no seed — determinism across processes and across calls is the whole
// point.
package prng

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// MaxVariables is the hard cap on m imposed by the 128-bit block the
// perturbation vector is carved out of: 4 fields of 32 bits.
const MaxVariables = 4

// MaxBound is the largest log_bound B for which B+1 still fits a 32-bit
// field.
const MaxBound = 31

// xof wraps a SHAKE-256 squeeze the same way the Fiat-Shamir transcript
// layer does: absorb a fixed label, then read exactly the bytes needed.
type xof struct{}

func (xof) expand(label []byte, outLen int) []byte {
	h := sha3.NewShake256()
	if _, err := h.Write(label); err != nil {
		panic(fmt.Errorf("prng: write label: %w", err))
	}
	out := make([]byte, outLen)
	if _, err := h.Read(out); err != nil {
		panic(fmt.Errorf("prng: read squeeze: %w", err))
	}
	return out
}

// Perturbation returns Y_{level,id} in Z^m, each component in
// [-2^bound, 2^bound). It requires m <= MaxVariables and bound <= MaxBound
// (spec.md §4.1); violating either is a precondition failure and panics.
func Perturbation(level, id int64, m int, bound uint) []int64 {
	if m <= 0 || m > MaxVariables {
		panic(fmt.Sprintf("prng: m=%d out of range (1..%d)", m, MaxVariables))
	}
	if bound > MaxBound {
		panic(fmt.Sprintf("prng: bound=%d exceeds MaxBound=%d", bound, MaxBound))
	}

	var label [16]byte
	binary.BigEndian.PutUint64(label[0:8], uint64(level))
	binary.BigEndian.PutUint64(label[8:16], uint64(id))

	block := (xof{}).expand(label[:], 4*m)

	out := make([]int64, m)
	mask := uint32(1)<<(bound+1) - 1
	half := int64(1) << bound
	for i := 0; i < m; i++ {
		field := binary.BigEndian.Uint32(block[4*i : 4*i+4])
		out[i] = int64(field&mask) - half
	}
	return out
}
