package ring

import (
	"fmt"
	"math/bits"
)

// CRTPoly is an R_{Q1} ring element held in evaluation (NTT) form as the pair
// of residues modulo the two CRT primes Q1A, Q1B. This is the hot-path
// representation used throughout query expansion and the answer pipeline.
type CRTPoly struct {
	A []uint64 // NTT(x) mod Q1A, bit-reversed order
	B []uint64 // NTT(x) mod Q1B, bit-reversed order
}

// CRTRing implements arithmetic over R_{Q1} = Z_{Q1}[X]/(X^D+1), Q1=Q1A*Q1B,
// via the CRT pair of NTT rings. Coefficient-form elements are plain
// []uint64 slices of length D holding the canonical representative in
// [0, Q1).
type CRTRing struct {
	D   int
	Q1A uint64
	Q1B uint64
	Q1  uint64

	RA *Ring
	RB *Ring
}

// NewCRTRing builds the CRT ring for dimension D and the two NTT-friendly
// primes qA, qB (each congruent to 1 mod 2D).
func NewCRTRing(D int, qA, qB uint64) (*CRTRing, error) {
	if bits.Len64(qA)+bits.Len64(qB) > 63 {
		// Q1 in this protocol is always ~56 bits (two ~28-bit primes); guard
		// against a product that would not fit in a uint64 with headroom
		// for the additions performed on it.
		return nil, fmt.Errorf("ring: Q1A*Q1B would overflow 63 bits")
	}
	ra, err := NewRing(D, qA)
	if err != nil {
		return nil, fmt.Errorf("ring: Q1A: %w", err)
	}
	rb, err := NewRing(D, qB)
	if err != nil {
		return nil, fmt.Errorf("ring: Q1B: %w", err)
	}
	return &CRTRing{D: D, Q1A: qA, Q1B: qB, Q1: qA * qB, RA: ra, RB: rb}, nil
}

// NewCRTPoly returns a zero-valued CRTPoly.
func (cr *CRTRing) NewCRTPoly() CRTPoly {
	return CRTPoly{A: cr.RA.NewPoly(), B: cr.RB.NewPoly()}
}

// FromCoeffs reduces the coefficient-form element coeffs (canonical in
// [0, Q1)) modulo Q1A and Q1B and forward-transforms both residues.
func (cr *CRTRing) FromCoeffs(coeffs []uint64) CRTPoly {
	out := cr.NewCRTPoly()
	a := make([]uint64, cr.D)
	b := make([]uint64, cr.D)
	for i, c := range coeffs {
		a[i] = c % cr.Q1A
		b[i] = c % cr.Q1B
	}
	cr.RA.NTT(a, out.A)
	cr.RB.NTT(b, out.B)
	return out
}

// ToCoeffs inverse-transforms both residues and CRT-recombines them into a
// single coefficient-form element canonical in [0, Q1).
func (cr *CRTRing) ToCoeffs(p CRTPoly) []uint64 {
	a := make([]uint64, cr.D)
	b := make([]uint64, cr.D)
	cr.RA.INTT(p.A, a)
	cr.RB.INTT(p.B, b)

	out := make([]uint64, cr.D)
	qA, qB := cr.Q1A, cr.Q1B
	// qA^{-1} mod qB, the one constant Garner's recombination needs.
	qAInvModQB := ModExp(qA%qB, qB-2, qB)
	for i := 0; i < cr.D; i++ {
		// x = a + qA * ((b - a) * qAInvModQB mod qB)
		diff := (b[i] + qB - a[i]%qB) % qB
		t := BRed(diff, qAInvModQB, qB, cr.RB.BRedConstant)
		hi, lo := bits.Mul64(qA, t)
		sum, carry := bits.Add64(lo, a[i], 0)
		hi += carry
		_ = hi
		out[i] = sum % cr.Q1
	}
	return out
}

// Add computes a+b over R_{Q1} in evaluation form.
func (cr *CRTRing) Add(a, b CRTPoly) CRTPoly {
	out := cr.NewCRTPoly()
	cr.RA.Add(a.A, b.A, out.A)
	cr.RB.Add(a.B, b.B, out.B)
	return out
}

// Sub computes a-b over R_{Q1} in evaluation form.
func (cr *CRTRing) Sub(a, b CRTPoly) CRTPoly {
	out := cr.NewCRTPoly()
	cr.RA.Sub(a.A, b.A, out.A)
	cr.RB.Sub(a.B, b.B, out.B)
	return out
}

// Neg computes -a over R_{Q1} in evaluation form.
func (cr *CRTRing) Neg(a CRTPoly) CRTPoly {
	out := cr.NewCRTPoly()
	cr.RA.Neg(a.A, out.A)
	cr.RB.Neg(a.B, out.B)
	return out
}

// MulCoeffs computes the Hadamard product a*b (ring multiplication, since
// both operands are in evaluation form).
func (cr *CRTRing) MulCoeffs(a, b CRTPoly) CRTPoly {
	out := cr.NewCRTPoly()
	cr.RA.MulCoeffsBarrett(a.A, b.A, out.A)
	cr.RB.MulCoeffsBarrett(a.B, b.B, out.B)
	return out
}

// MulScalar multiplies a by the scalar s (reduced independently mod Q1A, Q1B).
func (cr *CRTRing) MulScalar(a CRTPoly, s uint64) CRTPoly {
	out := cr.NewCRTPoly()
	cr.RA.MulScalar(a.A, s%cr.Q1A, out.A)
	cr.RB.MulScalar(a.B, s%cr.Q1B, out.B)
	return out
}

// Copy returns a deep copy of a.
func (cr *CRTRing) Copy(a CRTPoly) CRTPoly {
	out := cr.NewCRTPoly()
	copy(out.A, a.A)
	copy(out.B, a.B)
	return out
}

// Equal reports whether a and b hold the same evaluations.
func (cr *CRTRing) Equal(a, b CRTPoly) bool {
	for i := range a.A {
		if a.A[i] != b.A[i] || a.B[i] != b.B[i] {
			return false
		}
	}
	return true
}

// Automorphism applies tau_gen to a, using one NTT-domain index table
// (AutomorphismNTTIndex(D, gen)) for both residues, since the lookup only
// depends on D; call sites cache the table in an automorphism key.
func (cr *CRTRing) Automorphism(a CRTPoly, index []uint64) CRTPoly {
	out := cr.NewCRTPoly()
	cr.RA.AutomorphismNTTWithIndex(a.A, index, out.A)
	cr.RB.AutomorphismNTTWithIndex(a.B, index, out.B)
	return out
}

// MulXPow multiplies a by X^k mod (X^D+1), for k possibly negative (will be
// reduced mod 2D).
func (cr *CRTRing) MulXPow(a CRTPoly, k int) CRTPoly {
	coeffs := cr.ToCoeffs(a)
	shifted := make([]uint64, cr.D)
	// MulXPowCoeffs only reads N and Q, so a bare Ring over Q1 negates the
	// wrapped coefficients mod Q1 (the modulus coeffs lives in).
	q1 := Ring{N: cr.D, Q: cr.Q1}
	q1.MulXPowCoeffs(coeffs, k, shifted)
	return cr.FromCoeffs(shifted)
}

// RoundDiv computes round(num*x/den), for x < den (the caller always passes
// a residue mod den, e.g. round(q'*x/q) with x canonical mod q), using
// 128-bit intermediate arithmetic so precision is never lost when num*den
// exceeds 64 bits (spec §4.1/§4.10 rescale steps). The x < den precondition
// guarantees the quotient fits back in 64 bits.
func RoundDiv(x, num, den uint64) uint64 {
	hi, lo := bits.Mul64(x, num)
	// add den/2 for round-to-nearest before dividing.
	halfDen := den / 2
	var carry uint64
	lo, carry = bits.Add64(lo, halfDen, 0)
	hi += carry
	q, _ := bits.Div64(hi, lo, den)
	return q
}
