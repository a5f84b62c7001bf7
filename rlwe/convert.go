package rlwe

import (
	"io"

	"github.com/tuneinsight/respire/gadget"
)

// ToGSWKey is the one-time server key letting RLWE ciphertexts be promoted
// to GSW ciphertexts: a GSW encryption of the secret key itself, in the
// spirit of a BGV/BFV-style relinearization key (core/rlwe's evaluation-key
// convention), used by RLWEToGSW below.
type ToGSWKey struct {
	GSWOfSecret *GSWCiphertext
}

// GenToGSWKey derives the promotion key from sk.
func GenToGSWKey(p Parameters, sk *SecretKey, r io.Reader) (*ToGSWKey, error) {
	gswS, err := EncryptGSW(p, sk, sk.Value, r)
	if err != nil {
		return nil, err
	}
	return &ToGSWKey{GSWOfSecret: gswS}, nil
}

// RLWEToGSW promotes an RLWE encryption of mu into a GSW encryption of the
// same mu (spec §4.9 rlwe_to_gsw), the operation query expansion uses to
// turn each unpacked single-coefficient RLWE ciphertext into a GSW selector.
//
// HybridMul(ct, GSW(s)) yields an RLWE encryption of mu*s (since HybridMul
// computes the GSW-encrypted scalar times the RLWE-encrypted phase); scaling
// that and ct itself by each gadget weight reproduces exactly the two halves
// EncryptGSW would have produced had mu been known in the clear.
func (p Parameters) RLWEToGSW(ct *Ciphertext, key *ToGSWKey) *GSWCiphertext {
	muS := p.HybridMul(ct, key.GSWOfSecret)
	g := gadget.Vector(p.ZGSW, p.TGSW)

	rows := make([]*Ciphertext, 2*p.TGSW)
	for j := 0; j < p.TGSW; j++ {
		rows[j] = &Ciphertext{
			C1: p.RQ.MulScalar(muS.C1, g[j]),
			C0: p.RQ.MulScalar(muS.C0, g[j]),
		}
	}
	for j := 0; j < p.TGSW; j++ {
		rows[p.TGSW+j] = &Ciphertext{
			C1: p.RQ.MulScalar(ct.C1, g[j]),
			C0: p.RQ.MulScalar(ct.C0, g[j]),
		}
	}
	return &GSWCiphertext{Rows: rows}
}
