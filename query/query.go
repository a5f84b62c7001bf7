// Package query implements client-side query construction: placing the
// first-dimension one-hot row selector and the second-dimension column-bit
// selectors into bit-reversed coefficient slots and seed-encrypting them,
// so the server can later unpack them via repeated automorphism doubling
// (spec §4.4/§4.8 query_one).
package query

import (
	"io"

	"github.com/tuneinsight/respire/paramset"
	"github.com/tuneinsight/respire/ring"
	"github.com/tuneinsight/respire/rlwe"
)

// Query is the client's request for one record: a seeded RLWE ciphertext
// packing the one-hot first-dimension row selector, and a seeded RLWE
// ciphertext packing the Nu2+Nu3 individual bits that together address the
// second dimension's column (the top Nu2 bits, consumed by answer.Fold) and
// the rotate-selected sub-record within the addressed ring element (the
// bottom Nu3 bits, consumed by answer.Rotate), each unpacked by the server
// into its own ciphertext and then promoted to a GSW selector via
// rlwe.RLWEToGSW (spec §4.8).
type Query struct {
	FirstDim  *rlwe.SeededCiphertext // one-hot selector among 2^Nu1 rows
	SecondDim *rlwe.SeededCiphertext // Nu2+Nu3 bits of (col, sub), MSB first
}

// One builds the query selecting record index
// idx = row*(nCols*subRecords) + col*subRecords + sub within the database
// addressed by params (spec §4.8 query_one). errSrc supplies encryption
// noise; sk is the client's secret key.
func One(params *paramset.Expanded, sk *rlwe.SecretKey, idx int, errSrc io.Reader) (*Query, error) {
	nRows := 1 << uint(params.Params.Nu1)
	nCols := 1 << uint(params.Params.Nu2)
	subRecords := params.Stride()
	lastDimSize := nCols * subRecords
	if idx < 0 || idx >= nRows*lastDimSize {
		return nil, errOutOfRange
	}
	row := idx / lastDimSize
	j := idx % lastDimSize

	rp := rlwe.Parameters{RQ: params.RQ1, Sigma: params.Params.Sigma, ZGSW: params.ZGSW, TGSW: params.TGSW}

	muRow := oneHotBitReversed(params.RQ1, row, params.Params.D1)
	muSel := colBitsBitReversed(params.RQ1, j, params.Params.Nu2+params.Params.Nu3, params.Params.D1)

	first, err := rlwe.EncryptSeeded(rp, sk, muRow, errSrc)
	if err != nil {
		return nil, err
	}
	second, err := rlwe.EncryptSeeded(rp, sk, muSel, errSrc)
	if err != nil {
		return nil, err
	}
	return &Query{FirstDim: first, SecondDim: second}, nil
}

// oneHotBitReversed places a single 1 coefficient at the full-D1
// bit-reversed slot of idx, the placement that lets coefficient expansion's
// repeated automorphism-doubling separate it out on its own (spec §4.8).
func oneHotBitReversed(rq *ring.CRTRing, idx, d1 int) ring.CRTPoly {
	coeffs := make([]uint64, rq.D)
	slot := ring.BitReverse64(uint64(idx), ring.Log2(uint64(d1)))
	coeffs[slot] = 1
	return rq.FromCoeffs(coeffs)
}

// colBitsBitReversed places the nBits bits of v individually, MSB first,
// bit k at the full-D1 bit-reversed slot of k, so expand.Unpack recovers
// each bit into its own ciphertext: colBits[0] is v's top bit, matching the
// order answer.Fold then answer.Rotate consume their selectors in (the
// first Nu2 of the nBits = Nu2+Nu3 outputs go to Fold, the remaining Nu3 go
// to Rotate).
func colBitsBitReversed(rq *ring.CRTRing, v, nBits, d1 int) ring.CRTPoly {
	coeffs := make([]uint64, rq.D)
	logD1 := ring.Log2(uint64(d1))
	for k := 0; k < nBits; k++ {
		bit := uint64(v>>uint(nBits-1-k)) & 1
		slot := ring.BitReverse64(uint64(k), logD1)
		coeffs[slot] = bit
	}
	return rq.FromCoeffs(coeffs)
}

type queryError string

func (e queryError) Error() string { return string(e) }

const errOutOfRange = queryError("query: record index out of range")
