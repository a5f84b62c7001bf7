// Package expand implements server-side query unpacking: a seeded RLWE
// ciphertext packing up to D1 individually bit-reversed coefficients is
// expanded, by repeated automorphism doubling and per-round truncation,
// into single-coefficient RLWE ciphertexts, one per packed value (spec §4.8
// answer_query_unpack / do_proj_iter).
package expand

import (
	"io"

	"github.com/tuneinsight/respire/paramset"
	"github.com/tuneinsight/respire/ring"
	"github.com/tuneinsight/respire/rlwe"
)

// Keys bundles the automorphism key schedule needed to unpack a seeded
// query, plus the RLWE-to-GSW promotion key: one AutoKey per doubling
// round, generator D1/2^round + 1, the way the original implementation's
// auto_setup derives its generator schedule. The schedule always spans
// log2(D1) rounds regardless of how many values a particular query packs --
// that count only changes how far Unpack's per-round truncation goes, not
// how many rounds run -- so the same Keys serve the first-dimension
// one-hot unpack, the second-dimension bit unpack, and answer.Project's
// shorter trace (its first Nu3 rounds).
type Keys struct {
	AutoKeys []*rlwe.AutoKey // one per round, round 0 first, length log2(D1)
	ToGSW    *rlwe.ToGSWKey
}

// GenKeys derives the automorphism and RLWE-to-GSW keys for D1's full
// doubling schedule.
func GenKeys(params *paramset.Expanded, sk *rlwe.SecretKey, r io.Reader) (*Keys, error) {
	rp := rlwe.Parameters{RQ: params.RQ1, Sigma: params.Params.Sigma, ZGSW: params.ZGSW, TGSW: params.TGSW}

	rounds := ring.CeilLog2(uint64(params.Params.D1))
	autoKeys := make([]*rlwe.AutoKey, rounds)
	d := params.Params.D1
	for round := 0; round < rounds; round++ {
		gen := uint64(d/(1<<uint(round))) + 1
		ak, err := rlwe.GenAutoKey(rp, sk, gen, r)
		if err != nil {
			return nil, err
		}
		autoKeys[round] = ak
	}

	toGSW, err := rlwe.GenToGSWKey(rp, sk, r)
	if err != nil {
		return nil, err
	}
	return &Keys{AutoKeys: autoKeys, ToGSW: toGSW}, nil
}

// Unpack expands a seeded ciphertext packing up to D1 individually
// bit-reversed coefficients into the first target single-coefficient
// ciphertexts, each holding the corresponding originally-packed value at
// coefficient 0 (spec §4.8). Each doubling round uses ct +/- tau(ct) to
// separate the even/odd-indexed half of the remaining candidates into two
// ciphertexts, the standard coefficient-extraction trick; the candidate
// list is truncated after every round to ceil(target / remaining-slots),
// the original implementation's bound on list growth, rather than running
// a reduced number of rounds -- all log2(D1) rounds always run, since the
// per-round automorphism generator only depends on D1. The scale-by-D1^{-1}
// up front compensates for the factor of 2 per round (D1 over all log2(D1)
// rounds) every surviving slot otherwise accumulates.
func Unpack(params *paramset.Expanded, keys *Keys, seeded *rlwe.SeededCiphertext, target int) ([]*rlwe.Ciphertext, error) {
	rp := rlwe.Parameters{RQ: params.RQ1, Sigma: params.Params.Sigma, ZGSW: params.ZGSW, TGSW: params.TGSW}

	ct, err := seeded.Expand(rp)
	if err != nil {
		return nil, err
	}

	d1 := params.Params.D1
	d1InvA := modInverse(uint64(d1), params.RQ1.Q1A)
	d1InvB := modInverse(uint64(d1), params.RQ1.Q1B)
	scaled := &rlwe.Ciphertext{
		C1: mulScalarCRT(params.RQ1, ct.C1, d1InvA, d1InvB),
		C0: mulScalarCRT(params.RQ1, ct.C0, d1InvA, d1InvB),
	}

	rounds := len(keys.AutoKeys)
	list := []*rlwe.Ciphertext{scaled}
	for round := 0; round < rounds; round++ {
		ak := keys.AutoKeys[round]
		next := make([]*rlwe.Ciphertext, 0, len(list)*2)
		shift := -(1 << uint(round))
		for _, c := range list {
			tau := rp.Apply(c, ak)
			sum := rp.Add(c, tau)
			diff := rp.Sub(c, tau)
			diffShifted := rp.MulXPow(diff, shift)
			next = append(next, sum, diffShifted)
		}
		denom := d1 >> uint(round+1)
		keep := (target + denom - 1) / denom
		if keep < len(next) {
			next = next[:keep]
		}
		list = next
	}
	return list[:target], nil
}

// mulScalarCRT scales a by distinct per-channel scalars, needed when the
// scalar's correct residue differs mod Q1A and Q1B (e.g. a modular inverse),
// unlike CRTRing.MulScalar which reduces a single shared scalar into both
// channels.
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
