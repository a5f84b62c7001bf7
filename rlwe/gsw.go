package rlwe

import (
	"io"

	"github.com/tuneinsight/respire/gadget"
	"github.com/tuneinsight/respire/ring"
)

// GSWCiphertext is a 2*TGSW row matrix of RLWE encryptions of zero with a
// scaled gadget vector folded into each component, following the rgsw
// encrypt-of-zero-plus-gadget construction: the first TGSW rows carry
// mu*g_j added into C1, the next TGSW rows carry mu*g_j added into C0 (spec
// §4.5 encode_gsw). HybridMul below consumes this layout to homomorphically
// multiply an RLWE ciphertext by the encrypted bit/scalar mu.
type GSWCiphertext struct {
	Rows []*Ciphertext // length 2*TGSW
}

// EncryptGSW encrypts mu (typically 0 or 1, or a small gadget-scaled digit)
// under sk as a GSW ciphertext.
func EncryptGSW(p Parameters, sk *SecretKey, mu ring.CRTPoly, r io.Reader) (*GSWCiphertext, error) {
	g := gadget.Vector(p.ZGSW, p.TGSW)
	rows := make([]*Ciphertext, 2*p.TGSW)
	for j := 0; j < p.TGSW; j++ {
		c0Row, err := EncryptZero(p, sk, r)
		if err != nil {
			return nil, err
		}
		c0Row.C1 = p.RQ.Add(c0Row.C1, p.RQ.MulScalar(mu, g[j]))
		rows[j] = c0Row

		c1Row, err := EncryptZero(p, sk, r)
		if err != nil {
			return nil, err
		}
		c1Row.C0 = p.RQ.Add(c1Row.C0, p.RQ.MulScalar(mu, g[j]))
		rows[p.TGSW+j] = c1Row
	}
	return &GSWCiphertext{Rows: rows}, nil
}

// DecodeGSWScaled decrypts row TGSW (the j=0 digit of the C0-targeted half,
// whose gadget weight g_0 is 1), recovering mu up to the row's noise (spec
// §4.5 decode_gsw_scaled). It is not called by the online protocol.
func DecodeGSWScaled(p Parameters, sk *SecretKey, ct *GSWCiphertext) ring.CRTPoly {
	return Decrypt(p, sk, ct.Rows[p.TGSW])
}

// HybridMul homomorphically multiplies the RLWE ciphertext ct by the scalar
// encrypted in gswCt: gadget-decompose both components of ct and inner
// product against the matching GSW rows (spec §4.6 hybrid_mul_hom).
func (p Parameters) HybridMul(ct *Ciphertext, gswCt *GSWCiphertext) *Ciphertext {
	out := &Ciphertext{C1: p.RQ.NewCRTPoly(), C0: p.RQ.NewCRTPoly()}

	c1Coeffs := p.RQ.ToCoeffs(ct.C1)
	c0Coeffs := p.RQ.ToCoeffs(ct.C0)

	c1Digits := gadget.DecomposeVector(c1Coeffs, p.RQ.Q1, p.ZGSW, p.TGSW)
	c0Digits := gadget.DecomposeVector(c0Coeffs, p.RQ.Q1, p.ZGSW, p.TGSW)

	for j := 0; j < p.TGSW; j++ {
		dj := p.RQ.FromCoeffs(c1Digits[j])
		row := gswCt.Rows[j]
		out.C1 = p.RQ.Add(out.C1, p.RQ.MulCoeffs(dj, row.C1))
		out.C0 = p.RQ.Add(out.C0, p.RQ.MulCoeffs(dj, row.C0))
	}
	for j := 0; j < p.TGSW; j++ {
		dj := p.RQ.FromCoeffs(c0Digits[j])
		row := gswCt.Rows[p.TGSW+j]
		out.C1 = p.RQ.Add(out.C1, p.RQ.MulCoeffs(dj, row.C1))
		out.C0 = p.RQ.Add(out.C0, p.RQ.MulCoeffs(dj, row.C0))
	}
	return out
}

// Select homomorphically chooses b ? ct1 : ct0, given gswB an encryption of
// the selector bit b: ct0 + gswB * (ct1 - ct0) (spec §4.6 select_hom). Used
// by the fold step of the answer pipeline.
func (p Parameters) Select(ct0, ct1 *Ciphertext, gswB *GSWCiphertext) *Ciphertext {
	diff := p.Sub(ct1, ct0)
	prod := p.HybridMul(diff, gswB)
	return p.Add(ct0, prod)
}
