package ring

import "fmt"

// AutomorphismNTTIndex computes the lookup table mapping NTT-domain slot i to
// the slot holding the evaluation of tau_gen(f) = f(X^gen), for odd gen. Per
// spec, the map only depends on N and the 2N-th root index, not on the
// modulus, so the same table is reused across the two CRT residues of an
// R_Q1 element.
func AutomorphismNTTIndex(N int, gen uint64) ([]uint64, error) {
	if !IsPowerOfTwo(N) {
		return nil, fmt.Errorf("ring: N=%d is not a power of two", N)
	}
	nthRoot := uint64(2 * N)
	if gen%2 == 0 {
		return nil, fmt.Errorf("ring: automorphism generator %d must be odd", gen)
	}
	mask := nthRoot - 1
	logNthRoot := Log2(nthRoot)
	index := make([]uint64, N)
	for i := 0; i < N; i++ {
		tmp1 := 2*BitReverse64(uint64(i), logNthRoot-1) + 1
		tmp2 := ((gen*tmp1)&mask - 1) >> 1
		index[i] = BitReverse64(tmp2, logNthRoot-1)
	}
	return index, nil
}

// AutomorphismNTTWithIndex applies the automorphism described by index
// (computed by AutomorphismNTTIndex) to p, writing the permuted evaluations
// to out. out must not alias p.
func (r *Ring) AutomorphismNTTWithIndex(p []uint64, index []uint64, out []uint64) {
	for i, j := range index {
		out[i] = p[j]
	}
}

// MulXPowCoeffs multiplies the coefficient-form polynomial p by X^k modulo
// X^N+1 (a negacyclic rotate-with-sign-flip), writing the result to out.
// k is taken mod 2N; out must not alias p.
func (r *Ring) MulXPowCoeffs(p []uint64, k int, out []uint64) {
	N := r.N
	Q := r.Q
	k = ((k % (2 * N)) + 2*N) % (2 * N)
	for i := 0; i < N; i++ {
		j := i + k
		neg := false
		for j >= N {
			j -= N
			neg = !neg
		}
		v := p[i]
		if neg {
			if v != 0 {
				v = Q - v
			}
		}
		out[j] = v
	}
}
