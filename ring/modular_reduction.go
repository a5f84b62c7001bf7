package ring

import (
	"math/big"
	"math/bits"
)

// MForm switches a to the Montgomery domain by computing a*2^64 mod q.
func MForm(a, q uint64, u []uint64) (r uint64) {
	mhi, _ := bits.Mul64(a, u[1])
	r = -(a*u[0] + mhi) * q
	if r >= q {
		r -= q
	}
	return
}

// InvMForm switches a from the Montgomery domain back to the standard
// domain by computing a*(1/2^64) mod q.
func InvMForm(a, q, qInv uint64) (r uint64) {
	r, _ = bits.Mul64(a*qInv, q)
	r = q - r
	if r >= q {
		r -= q
	}
	return
}

// MRedParams computes qInv = q^-1 mod 2^64, required by MRed.
func MRedParams(q uint64) (qInv uint64) {
	qInv = 1
	x := q
	for i := 0; i < 63; i++ {
		qInv *= x
		x *= x
	}
	return
}

// MRed computes x * y * (1/2^64) mod q, x and y in Montgomery form.
func MRed(x, y, q, qInv uint64) (r uint64) {
	ahi, alo := bits.Mul64(x, y)
	h, _ := bits.Mul64(alo*qInv, q)
	r = ahi - h + q
	if r >= q {
		r -= q
	}
	return
}

// BRedParams computes the Barrett reduction constants for modulus q:
// floor(2^128/q) as a (hi, lo) pair of uint64.
func BRedParams(q uint64) (params []uint64) {
	bigR := new(big.Int).Lsh(big.NewInt(1), 128)
	bigR.Quo(bigR, new(big.Int).SetUint64(q))
	mhi := new(big.Int).Rsh(bigR, 64).Uint64()
	mlo := bigR.Uint64()
	return []uint64{mhi, mlo}
}

// BRedAdd reduces x mod q, for x < q^2, using Barrett reduction constants u.
func BRedAdd(x, q uint64, u []uint64) (r uint64) {
	s0, _ := bits.Mul64(x, u[0])
	r = x - s0*q
	if r >= q {
		r -= q
	}
	return
}

// BRed computes x*y mod q using Barrett reduction constants u.
func BRed(x, y, q uint64, u []uint64) (r uint64) {
	var lhi, mhi, mlo, s0, s1, carry uint64

	ahi, alo := bits.Mul64(x, y)

	lhi, _ = bits.Mul64(alo, u[1])

	mhi, mlo = bits.Mul64(alo, u[0])
	s0, carry = bits.Add64(mlo, lhi, 0)
	s1 = mhi + carry

	mhi, mlo = bits.Mul64(ahi, u[1])
	_, carry = bits.Add64(mlo, s0, 0)
	lhi = mhi + carry

	s0 = ahi*u[0] + s1 + lhi

	r = alo - s0*q
	if r >= q {
		r -= q
	}
	return
}

// CRed returns a mod q where a is known to be in [0, 2q).
func CRed(a, q uint64) uint64 {
	if a >= q {
		return a - q
	}
	return a
}
