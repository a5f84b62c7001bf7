// Package rlwe implements the RLWE and GSW ciphertext types and the
// homomorphic operators the query-expansion and answer pipelines are built
// from (spec §4.3-§4.9). Ciphertexts are held in evaluation (NTT/CRT) form
// throughout, the representation the teacher's core/rlwe package also
// standardizes on for its hot paths.
package rlwe

import (
	"io"

	"github.com/tuneinsight/respire/prng"
	"github.com/tuneinsight/respire/ring"
)

// Parameters bundles the ring and gadget constants shared by every
// ciphertext/operator in this package.
type Parameters struct {
	RQ    *ring.CRTRing
	Sigma float64 // error distribution width

	ZGSW uint64 // gadget base for RLWE->GSW / GSW products
	TGSW int    // gadget length for RLWE->GSW / GSW products
}

// SecretKey is a ring element with small (ternary, see NewSecretKey)
// coefficients, held in evaluation form like every other ring element here.
type SecretKey struct {
	Value ring.CRTPoly
}

// Ciphertext is a standard two-component RLWE ciphertext (c1, c0): decryption
// computes c0 + c1*s.
type Ciphertext struct {
	C1 ring.CRTPoly
	C0 ring.CRTPoly
}

// NewSecretKey samples a ternary secret key from r.
func NewSecretKey(p Parameters, r io.Reader) (*SecretKey, error) {
	coeffs := make([]uint64, p.RQ.D)
	for i := range coeffs {
		v, err := prng.UniformUint64n(r, 3)
		if err != nil {
			return nil, err
		}
		switch v {
		case 0:
			coeffs[i] = 0
		case 1:
			coeffs[i] = 1
		case 2:
			coeffs[i] = p.RQ.Q1 - 1
		}
	}
	return &SecretKey{Value: p.RQ.FromCoeffs(coeffs)}, nil
}

// Encrypt encrypts mu (a CRTPoly, typically sparse/single-coefficient) under
// sk, drawing c1 uniformly and the error from r.
func Encrypt(p Parameters, sk *SecretKey, mu ring.CRTPoly, r io.Reader) (*Ciphertext, error) {
	c1Coeffs := make([]uint64, p.RQ.D)
	if err := prng.UniformMod(r, p.RQ.Q1, c1Coeffs); err != nil {
		return nil, err
	}
	c1 := p.RQ.FromCoeffs(c1Coeffs)

	errCoeffs := make([]uint64, p.RQ.D)
	if err := prng.SampleErrorPoly(r, p.Sigma, p.RQ.Q1, errCoeffs); err != nil {
		return nil, err
	}
	e := p.RQ.FromCoeffs(errCoeffs)

	c1s := p.RQ.MulCoeffs(c1, sk.Value)
	c0 := p.RQ.Sub(p.RQ.Add(mu, e), c1s)
	return &Ciphertext{C1: c1, C0: c0}, nil
}

// Decrypt recovers the noisy plaintext m+e = c0 + c1*s.
func Decrypt(p Parameters, sk *SecretKey, ct *Ciphertext) ring.CRTPoly {
	c1s := p.RQ.MulCoeffs(ct.C1, sk.Value)
	return p.RQ.Add(ct.C0, c1s)
}

// EncryptZero is Encrypt with a zero message, used by the GSW and gadget
// encryptors below.
func EncryptZero(p Parameters, sk *SecretKey, r io.Reader) (*Ciphertext, error) {
	return Encrypt(p, sk, p.RQ.NewCRTPoly(), r)
}

// Add returns a+b componentwise.
func (p Parameters) Add(a, b *Ciphertext) *Ciphertext {
	return &Ciphertext{C1: p.RQ.Add(a.C1, b.C1), C0: p.RQ.Add(a.C0, b.C0)}
}

// Sub returns a-b componentwise (spec §4.6 rlwe_sub_hom).
func (p Parameters) Sub(a, b *Ciphertext) *Ciphertext {
	return &Ciphertext{C1: p.RQ.Sub(a.C1, b.C1), C0: p.RQ.Sub(a.C0, b.C0)}
}

// MulXPow multiplies both components of ct by X^k (spec §4.6 rlwe_mul_x_pow).
func (p Parameters) MulXPow(ct *Ciphertext, k int) *Ciphertext {
	return &Ciphertext{C1: p.RQ.MulXPow(ct.C1, k), C0: p.RQ.MulXPow(ct.C0, k)}
}
