// Package pack implements ring packing and the compression chain that
// shrinks a server response before it is sent to the client (spec §4.10):
// rescale R_{Q1} -> R_{Q2}, key-switch onto the compression secret
// (CompressKey/GenCompressKey, the module's ScalToVec-equivalent for a
// single response rather than a batch of them -- see DESIGN.md), then
// rescale the strided R_{Q3} subring out to the final wire ciphertext.
package pack

import (
	"github.com/tuneinsight/respire/gadget"
	"github.com/tuneinsight/respire/paramset"
	"github.com/tuneinsight/respire/ring"
	"github.com/tuneinsight/respire/rlwe"
)

// RingPack combines n_vec independent single-coefficient answer ciphertexts
// into one ring-packed ciphertext by shifting ciphertext i by X^i and
// summing (spec §4.10 scal_to_vec's ring-packing half): Sum_i MulXPow(ct_i,
// i), so that coefficient i of the packed plaintext holds ct_i's message.
func RingPack(rp rlwe.Parameters, cts []*rlwe.Ciphertext) *rlwe.Ciphertext {
	out := &rlwe.Ciphertext{C1: rp.RQ.NewCRTPoly(), C0: rp.RQ.NewCRTPoly()}
	for i, ct := range cts {
		shifted := rp.MulXPow(ct, i)
		out = rp.Add(out, shifted)
	}
	return out
}

// CompressedCiphertext is an RLWE ciphertext over the smaller ring R_{Q3},
// the final wire format sent to the client (spec §4.10, the two-step
// rescale Q1 -> Q2 -> Q3).
type CompressedCiphertext struct {
	C1 []uint64
	C0 []uint64
}

// Compress rescales ct from R_{Q1} down to R_{Q2}, key-switches it from the
// main secret onto the compression secret via key (spec §4.10
// compress_setup/ScalToVec), and rescales the result down to R_{Q3}. The
// degree drop from D1 to D3 happens by reading every Stride'th coefficient
// out of the key-switched R_{Q2} ciphertext: answer.Project's trace has
// already concentrated the message onto exactly that strided subring, the
// same positions ReduceSecretKey reads out of the compression secret, so
// both sides of the final decryption agree on which coefficients survive.
func Compress(e *paramset.Expanded, key *CompressKey, ct *rlwe.Ciphertext) *CompressedCiphertext {
	rq2 := e.RQ2

	c1Coeffs := e.RQ1.ToCoeffs(ct.C1)
	c0Coeffs := e.RQ1.ToCoeffs(ct.C0)

	c1Q2 := rescaleCoeffs(c1Coeffs, e.Params.Q1A*e.Params.Q1B, e.Params.Q2)
	c0Q2 := rescaleCoeffs(c0Coeffs, e.Params.Q1A*e.Params.Q1B, e.Params.Q2)

	digits := gadget.DecomposeVector(c1Q2, rq2.Q, e.ZComp, e.TComp)
	newC1NTT := rq2.NewPoly()
	newC0NTT := rq2.NewPoly()
	for j := 0; j < e.TComp; j++ {
		djNTT := rq2.NewPoly()
		rq2.NTT(digits[j], djNTT)

		termA := rq2.NewPoly()
		rq2.MulCoeffsBarrett(djNTT, key.A[j], termA)
		rq2.Add(newC1NTT, termA, newC1NTT)

		termB := rq2.NewPoly()
		rq2.MulCoeffsBarrett(djNTT, key.B[j], termB)
		rq2.Add(newC0NTT, termB, newC0NTT)
	}

	newC1 := rq2.NewPoly()
	rq2.INTT(newC1NTT, newC1)
	newC0 := rq2.NewPoly()
	rq2.INTT(newC0NTT, newC0)
	rq2.Add(newC0, c0Q2, newC0)

	stride := e.Stride()
	d3 := e.RQ3.N
	c1Q3 := rescaleCoeffs(strideExtract(newC1, stride, d3), e.Params.Q2, e.Params.Q3)
	c0Q3 := rescaleCoeffs(strideExtract(newC0, stride, d3), e.Params.Q2, e.Params.Q3)

	return &CompressedCiphertext{C1: c1Q3, C0: c0Q3}
}

// strideExtract reads every stride'th coefficient of coeffs, n of them.
func strideExtract(coeffs []uint64, stride, n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = coeffs[i*stride]
	}
	return out
}

func rescaleCoeffs(coeffs []uint64, fromQ, toQ uint64) []uint64 {
	out := make([]uint64, len(coeffs))
	for i, c := range coeffs {
		out[i] = ring.RoundDiv(c, toQ, fromQ) % toQ
	}
	return out
}
