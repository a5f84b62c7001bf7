// Package extract implements client-side response decoding: decrypting the
// compressed vector-RLWE ciphertext under R_{Q3}, rounding to the plaintext
// modulus P, and unpacking the rounded coefficients MSB-first into record
// bytes (spec §4.11 extract_one / decode_record).
package extract

import (
	"github.com/tuneinsight/respire/pack"
	"github.com/tuneinsight/respire/paramset"
	"github.com/tuneinsight/respire/ring"
)

// ReduceSecretKey derives the client's R_{Q3} decoding key from skSmall, the
// compression secret pack.GenCompressKey generated at the same time as the
// server's CompressKey: every Stride'th coefficient of skSmall (the same
// positions answer.Project's trace concentrates the response onto, see
// pack.Compress), reduced into [0, Q3).
func ReduceSecretKey(e *paramset.Expanded, skSmall []uint64) []uint64 {
	stride := e.Stride()
	out := make([]uint64, e.RQ3.N)
	for i := range out {
		out[i] = skSmall[i*stride] % e.Params.Q3
	}
	return out
}

// Decode decrypts a compressed ciphertext under the reduced secret key
// skQ3, rounds each coefficient to the plaintext modulus P, and unpacks the
// rounded values MSB-first into bytes (spec extract_one/extract_bytes_one).
func Decode(e *paramset.Expanded, skQ3 []uint64, ct *pack.CompressedCiphertext) []byte {
	skNTT := e.RQ3.NewPoly()
	e.RQ3.NTT(skQ3, skNTT)

	c1NTT := e.RQ3.NewPoly()
	e.RQ3.NTT(ct.C1, c1NTT)

	c1s := e.RQ3.NewPoly()
	e.RQ3.MulCoeffsBarrett(c1NTT, skNTT, c1s)

	c1sCoeffs := e.RQ3.NewPoly()
	e.RQ3.INTT(c1s, c1sCoeffs)

	plain := make([]uint64, e.RQ3.N)
	for i := range plain {
		plain[i] = ring.CRed(ct.C0[i]+c1sCoeffs[i], e.Params.Q3)
	}

	rounded := make([]uint64, len(plain))
	for i, v := range plain {
		rounded[i] = ring.RoundDiv(v, e.Params.P, e.Params.Q3)
	}

	return bitsToBytesMSB(rounded, bitsPer(e.Params.P))
}

func bitsPer(p uint64) int {
	n := 0
	for (uint64(1) << uint(n)) < p {
		n++
	}
	return n
}

// bitsToBytesMSB packs a sequence of bitsPerValue-wide values into bytes,
// most-significant-bit first, matching the original implementation's
// bitvec-based encode_record/decode_record convention.
func bitsToBytesMSB(values []uint64, bitsPerValue int) []byte {
	totalBits := len(values) * bitsPerValue
	out := make([]byte, (totalBits+7)/8)
	bitPos := 0
	for _, v := range values {
		for b := bitsPerValue - 1; b >= 0; b-- {
			bit := (v >> uint(b)) & 1
			if bit != 0 {
				out[bitPos/8] |= 1 << uint(7-bitPos%8)
			}
			bitPos++
		}
	}
	return out
}
