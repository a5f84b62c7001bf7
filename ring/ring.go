// Package ring implements the modular and negacyclic-NTT arithmetic that the
// rest of the module builds on: a single-modulus NTT-capable ring, and the
// two-prime CRT ring used for the main ciphertext modulus Q1 = Q1A*Q1B.
package ring

import "fmt"

// Ring holds the precomputed Barrett/Montgomery reduction constants and the
// bit-reversed NTT twiddle tables for R_Q = Z_Q[X]/(X^N+1).
type Ring struct {
	N int
	Q uint64

	BRedConstant []uint64
	MRedConstant uint64

	NthRoot       uint64
	PrimitiveRoot uint64

	RootsForward  []uint64 // powers of the 2N-th root, Montgomery form, bit-reversed
	RootsBackward []uint64 // powers of the inverse root, Montgomery form, bit-reversed
	NInv          uint64   // N^{-1} mod Q, Montgomery form
}

// NewRing builds a Ring of degree N over modulus Q. Q must be an odd prime
// congruent to 1 mod 2N, so that a primitive 2N-th root of unity exists and
// the negacyclic NTT is well defined. This mirrors the parameter-validation
// contract of the teacher's ring construction: fallible setup, total
// arithmetic afterwards.
func NewRing(N int, Q uint64) (*Ring, error) {
	if !IsPowerOfTwo(N) {
		return nil, fmt.Errorf("ring: N=%d is not a power of two", N)
	}
	if !isPrime(Q) {
		return nil, fmt.Errorf("ring: modulus %d is not prime", Q)
	}
	NthRoot := uint64(2 * N)
	if (Q-1)%NthRoot != 0 {
		return nil, fmt.Errorf("ring: modulus %d is not congruent to 1 mod %d", Q, NthRoot)
	}

	r := &Ring{N: N, Q: Q, NthRoot: NthRoot}
	r.BRedConstant = BRedParams(Q)
	r.MRedConstant = MRedParams(Q)

	factors := factorizeDistinctPrimes(Q - 1)
	g, err := primitiveRoot(Q, factors)
	if err != nil {
		return nil, err
	}
	r.PrimitiveRoot = g

	if err := r.genNTTTables(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Ring) genNTTTables() error {
	Q := r.Q
	half := r.NthRoot >> 1
	logHalf := Log2(half)

	r.NInv = MForm(ModExp(half, Q-2, Q), Q, r.BRedConstant)

	psi := MForm(ModExp(r.PrimitiveRoot, (Q-1)/r.NthRoot, Q), Q, r.BRedConstant)
	psiInv := MForm(ModExp(r.PrimitiveRoot, Q-1-(Q-1)/r.NthRoot, Q), Q, r.BRedConstant)

	r.RootsForward = make([]uint64, half)
	r.RootsBackward = make([]uint64, half)
	r.RootsForward[0] = MForm(1, Q, r.BRedConstant)
	r.RootsBackward[0] = MForm(1, Q, r.BRedConstant)

	for j := uint64(1); j < half; j++ {
		prev := BitReverse64(j-1, logHalf)
		next := BitReverse64(j, logHalf)
		r.RootsForward[next] = MRed(r.RootsForward[prev], psi, Q, r.MRedConstant)
		r.RootsBackward[next] = MRed(r.RootsBackward[prev], psiInv, Q, r.MRedConstant)
	}
	return nil
}

// primitiveRoot finds the smallest primitive root of q given the distinct
// prime factors of q-1.
func primitiveRoot(q uint64, factors []uint64) (uint64, error) {
	for g := uint64(2); g < q; g++ {
		isRoot := true
		for _, f := range factors {
			if ModExp(g, (q-1)/f, q) == 1 {
				isRoot = false
				break
			}
		}
		if isRoot {
			return g, nil
		}
	}
	return 0, fmt.Errorf("ring: no primitive root found mod %d", q)
}

// NewPoly returns a zero-valued length-N coefficient slice.
func (r *Ring) NewPoly() []uint64 {
	return make([]uint64, r.N)
}

// Add computes p1+p2 mod Q, coefficientwise.
func (r *Ring) Add(p1, p2, out []uint64) {
	Q := r.Q
	for i := 0; i < r.N; i++ {
		out[i] = CRed(p1[i]+p2[i], Q)
	}
}

// Sub computes p1-p2 mod Q, coefficientwise.
func (r *Ring) Sub(p1, p2, out []uint64) {
	Q := r.Q
	for i := 0; i < r.N; i++ {
		out[i] = CRed(p1[i]+Q-p2[i], Q)
	}
}

// Neg computes -p mod Q, coefficientwise.
func (r *Ring) Neg(p, out []uint64) {
	Q := r.Q
	for i := 0; i < r.N; i++ {
		if p[i] == 0 {
			out[i] = 0
		} else {
			out[i] = Q - p[i]
		}
	}
}

// MulCoeffsBarrett computes the Hadamard (pointwise) product p1*p2 mod Q using
// Barrett reduction. In NTT/evaluation form this is ring multiplication.
func (r *Ring) MulCoeffsBarrett(p1, p2, out []uint64) {
	Q, u := r.Q, r.BRedConstant
	for i := 0; i < r.N; i++ {
		out[i] = BRed(p1[i], p2[i], Q, u)
	}
}

// MulScalar multiplies every coefficient of p by the scalar s mod Q.
func (r *Ring) MulScalar(p []uint64, s uint64, out []uint64) {
	Q, u := r.Q, r.BRedConstant
	for i := 0; i < r.N; i++ {
		out[i] = BRed(p[i], s, Q, u)
	}
}

// Copy copies src into dst.
func (r *Ring) Copy(src, dst []uint64) {
	copy(dst, src)
}

// Reduce reduces every coefficient of p into [0, Q).
func (r *Ring) Reduce(p, out []uint64) {
	Q, u := r.Q, r.BRedConstant
	for i := 0; i < r.N; i++ {
		out[i] = BRedAdd(p[i], Q, u)
	}
}
