package rlwe

import (
	"io"

	"github.com/tuneinsight/respire/gadget"
	"github.com/tuneinsight/respire/ring"
)

// AutoKey is a key-switching matrix letting the server apply the ring
// automorphism tau_gen to a ciphertext encrypted under sk and land back on a
// ciphertext encrypted under the same sk, following the teacher's
// automorphism-evaluation-key convention (core/rlwe evaluator_automorphism.go):
// row j encrypts g_j * tau_gen(s) under s.
type AutoKey struct {
	Gen   uint64
	Index []uint64 // AutomorphismNTTIndex(D, Gen), cached for repeated Apply calls
	Rows  []*Ciphertext
}

// GenAutoKey derives the key-switching matrix for automorphism gen from sk.
func GenAutoKey(p Parameters, sk *SecretKey, gen uint64, r io.Reader) (*AutoKey, error) {
	index, err := ring.AutomorphismNTTIndex(p.RQ.D, gen)
	if err != nil {
		return nil, err
	}
	tauS := p.RQ.Automorphism(sk.Value, index)

	g := gadget.Vector(p.ZGSW, p.TGSW)
	rows := make([]*Ciphertext, p.TGSW)
	for j := 0; j < p.TGSW; j++ {
		row, err := EncryptZero(p, sk, r)
		if err != nil {
			return nil, err
		}
		row.C0 = p.RQ.Add(row.C0, p.RQ.MulScalar(tauS, g[j]))
		rows[j] = row
	}
	return &AutoKey{Gen: gen, Index: index, Rows: rows}, nil
}

// Apply applies tau_gen to ct and key-switches the result back onto the
// original secret key (spec §4.7 auto_hom).
func (p Parameters) Apply(ct *Ciphertext, ak *AutoKey) *Ciphertext {
	tauC1 := p.RQ.Automorphism(ct.C1, ak.Index)
	tauC0 := p.RQ.Automorphism(ct.C0, ak.Index)

	coeffs := p.RQ.ToCoeffs(tauC1)
	digits := gadget.DecomposeVector(coeffs, p.RQ.Q1, p.ZGSW, p.TGSW)

	out := &Ciphertext{C1: p.RQ.NewCRTPoly(), C0: tauC0}
	for j := 0; j < p.TGSW; j++ {
		dj := p.RQ.FromCoeffs(digits[j])
		out.C1 = p.RQ.Add(out.C1, p.RQ.MulCoeffs(dj, ak.Rows[j].C1))
		out.C0 = p.RQ.Add(out.C0, p.RQ.MulCoeffs(dj, ak.Rows[j].C0))
	}
	return out
}
