package rlwe

import (
	"io"

	"github.com/tuneinsight/respire/prng"
	"github.com/tuneinsight/respire/ring"
)

// SeededCiphertext is an RLWE ciphertext whose c1 component is not
// transmitted: instead a 32-byte seed is carried, and c1 is regenerated by
// replaying the same keyed PRNG the client used when encrypting (spec §4.4).
// This roughly halves a query's wire size.
type SeededCiphertext struct {
	Seed [prng.SeedSize]byte
	C0   ring.CRTPoly
}

// EncryptSeeded encrypts mu under sk using a freshly drawn seed for c1.
func EncryptSeeded(p Parameters, sk *SecretKey, mu ring.CRTPoly, errSrc io.Reader) (*SeededCiphertext, error) {
	seed, err := prng.NewRandomSeed()
	if err != nil {
		return nil, err
	}
	return EncryptSeededWithSeed(p, sk, mu, seed, errSrc)
}

// EncryptSeededWithSeed encrypts mu under sk, deriving c1 from the given
// seed (so that the caller controls/records it) and the error from errSrc.
func EncryptSeededWithSeed(p Parameters, sk *SecretKey, mu ring.CRTPoly, seed []byte, errSrc io.Reader) (*SeededCiphertext, error) {
	gen, err := prng.NewKeyedPRNG(seed)
	if err != nil {
		return nil, err
	}
	c1Coeffs := make([]uint64, p.RQ.D)
	if err := prng.UniformMod(gen, p.RQ.Q1A, c1Coeffs); err != nil {
		return nil, err
	}
	c1 := p.RQ.FromCoeffs(c1Coeffs)

	errCoeffs := make([]uint64, p.RQ.D)
	if err := prng.SampleErrorPoly(errSrc, p.Sigma, p.RQ.Q1, errCoeffs); err != nil {
		return nil, err
	}
	e := p.RQ.FromCoeffs(errCoeffs)

	c1s := p.RQ.MulCoeffs(c1, sk.Value)
	c0 := p.RQ.Sub(p.RQ.Add(mu, e), c1s)

	sc := &SeededCiphertext{C0: c0}
	copy(sc.Seed[:], seed)
	return sc, nil
}

// Expand regenerates c1 from the seed and returns the full two-component
// ciphertext (spec §4.4 rlwe_recover_from_seeded), the server-side operation
// that makes seeded encryption transparent to every downstream homomorphic
// operator.
func (sc *SeededCiphertext) Expand(p Parameters) (*Ciphertext, error) {
	gen, err := prng.NewKeyedPRNG(sc.Seed[:])
	if err != nil {
		return nil, err
	}
	c1Coeffs := make([]uint64, p.RQ.D)
	if err := prng.UniformMod(gen, p.RQ.Q1A, c1Coeffs); err != nil {
		return nil, err
	}
	c1 := p.RQ.FromCoeffs(c1Coeffs)
	return &Ciphertext{C1: c1, C0: p.RQ.Copy(sc.C0)}, nil
}
