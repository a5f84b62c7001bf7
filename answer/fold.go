package answer

import (
	"github.com/tuneinsight/respire/ring"
	"github.com/tuneinsight/respire/rlwe"
)

// Fold homomorphically selects a single ciphertext out of cts (a
// power-of-two-sized slice) using the GSW bits of sel, one per level of the
// reduction tree (spec §5 answer_fold): level 0 halves cts using sel[0],
// level 1 halves again using sel[1], and so on until one ciphertext
// remains.
func Fold(rp rlwe.Parameters, cts []*rlwe.Ciphertext, sel []*rlwe.GSWCiphertext) *rlwe.Ciphertext {
	level := cts
	for _, bit := range sel {
		half := len(level) / 2
		next := make([]*rlwe.Ciphertext, half)
		for i := 0; i < half; i++ {
			next[i] = rp.Select(level[i], level[i+half], bit)
		}
		level = next
	}
	return level[0]
}

// Rotate homomorphically rotates ct by the (possibly encrypted-unknown)
// sub-record index implied by sel, MSB bit first: selector k encrypts
// whether the sub-index's (len(sel)-1-k)-th bit is set, and accordingly
// selects between ct and ct rotated by 2^(len(sel)-1-k) positions (spec §5
// answer_rotate), accumulating the shift across all bits via repeated
// Select -- the standard way rotate-by-encrypted-index is built from GSW
// selectors. After all rounds, the target sub-record's coefficients sit at
// positions 0, D1/D3, 2*D1/D3, ... ready for Project to isolate.
func Rotate(rp rlwe.Parameters, ct *rlwe.Ciphertext, sel []*rlwe.GSWCiphertext, modulusDegree int) *rlwe.Ciphertext {
	cur := ct
	for k, bit := range sel {
		shiftAmt := 1 << uint(len(sel)-1-k)
		shifted := rp.MulXPow(cur, 2*modulusDegree-shiftAmt)
		cur = rp.Select(cur, shifted, bit)
	}
	return cur
}

// Project reduces a ciphertext's noise/representation down to the final
// extraction form by rescaling by the inverse of 2^len(keys) and running
// len(keys) rounds of ct += tau(ct), the same doubling trace expand.Unpack
// runs for query unpacking but without the per-round truncation, since the
// answer pipeline only ever needs the single surviving ciphertext (spec §5
// answer_project). The upfront inverse scale compensates for the
// 2^len(keys)-fold sum the trace accumulates, matching the original
// implementation's answer_project, which scales by the same inverse before
// its projection loop rather than after.
func Project(rp rlwe.Parameters, ct *rlwe.Ciphertext, keys []*rlwe.AutoKey) *rlwe.Ciphertext {
	n := uint64(1) << uint(len(keys))
	invA := modInverse(n, rp.RQ.Q1A)
	invB := modInverse(n, rp.RQ.Q1B)
	cur := &rlwe.Ciphertext{
		C1: mulScalarCRT(rp.RQ, ct.C1, invA, invB),
		C0: mulScalarCRT(rp.RQ, ct.C0, invA, invB),
	}
	for _, ak := range keys {
		tau := rp.Apply(cur, ak)
		cur = rp.Add(cur, tau)
	}
	return cur
}

// mulScalarCRT scales a by distinct per-channel scalars, needed when the
// scalar's correct residue differs mod Q1A and Q1B (e.g. a modular
// inverse), unlike CRTRing.MulScalar which reduces a single shared scalar
// into both channels.
func mulScalarCRT(rq *ring.CRTRing, a ring.CRTPoly, sA, sB uint64) ring.CRTPoly {
	out := rq.NewCRTPoly()
	rq.RA.MulScalar(a.A, sA, out.A)
	rq.RB.MulScalar(a.B, sB, out.B)
	return out
}

func modInverse(a, q uint64) uint64 {
	return modExp(a, q-2, q)
}

func modExp(x, e, p uint64) uint64 {
	result := uint64(1)
	x %= p
	for e > 0 {
		if e&1 == 1 {
			result = mulMod(result, x, p)
		}
		x = mulMod(x, x, p)
		e >>= 1
	}
	return result
}

func mulMod(a, b, m uint64) uint64 {
	return (a % m) * (b % m) % m
}
