// Package paramset defines the RESPIRE parameter sets (spec §7) and the
// derived constants (gadget bases, wire sizes) every other package consumes.
package paramset

import (
	"fmt"

	"github.com/tuneinsight/respire/gadget"
	"github.com/tuneinsight/respire/ring"
)

// Parameters is the full set of protocol constants for one database shape.
// Nu1/Nu2 are the query-expansion tree depths for the first and second
// dimensions, D1 is the main ring degree, D2/D3 are the compression-chain
// ring degrees, P is the plaintext modulus, NVec is the number of records
// packed per vector ciphertext.
type Parameters struct {
	Nu1, Nu2 int
	// Nu3 is the log2 count of records packed, by rotate-select, into a
	// single ring element addressed by (Nu1, Nu2): ceil(log2(D1/D3))
	// rotate-select rounds (answer.Rotate) bring the target sub-record's
	// coefficients to the strided positions 0, D1/D3, 2*D1/D3, ..., which
	// answer.Project then isolates and Compress/ReduceSecretKey read out as
	// the final D3-degree response. Zero means "derive it from D1/D3" (see
	// Expand).
	Nu3    int
	D1     int
	D2, D3 int
	P      uint64
	NVec   int

	Q1A, Q1B uint64
	Q2, Q3   uint64

	Sigma float64

	ZGSW  uint64
	TGSW  int
	ZComp uint64
	TComp int
}

// Expanded holds the parameters plus the rings and gadget constants derived
// from them (spec §4.1 "Parameter derivation").
type Expanded struct {
	Params Parameters

	RQ1 *ring.CRTRing
	RQ2 *ring.Ring
	RQ3 *ring.Ring

	ZGSW  uint64
	TGSW  int
	ZComp uint64
	TComp int
}

// Expand builds the rings and derives the gadget bases for p.
func Expand(p Parameters) (*Expanded, error) {
	rq1, err := ring.NewCRTRing(p.D1, p.Q1A, p.Q1B)
	if err != nil {
		return nil, fmt.Errorf("paramset: Q1 ring: %w", err)
	}
	rq2, err := ring.NewRing(p.D2, p.Q2)
	if err != nil {
		return nil, fmt.Errorf("paramset: Q2 ring: %w", err)
	}
	rq3, err := ring.NewRing(p.D3, p.Q3)
	if err != nil {
		return nil, fmt.Errorf("paramset: Q3 ring: %w", err)
	}

	tGSW := p.TGSW
	if tGSW == 0 {
		tGSW = 4
	}
	zGSW := p.ZGSW
	if zGSW == 0 {
		zGSW = gadget.BaseFromLength(tGSW, rq1.Q1)
	}

	tComp := p.TComp
	if tComp == 0 {
		tComp = 2
	}
	zComp := p.ZComp
	if zComp == 0 {
		zComp = gadget.BaseFromLength(tComp, p.Q2)
	}

	if p.Nu3 == 0 {
		p.Nu3 = ring.CeilLog2(uint64(p.D1 / p.D3))
	}

	return &Expanded{
		Params: p,
		RQ1:    rq1,
		RQ2:    rq2,
		RQ3:    rq3,
		ZGSW:   zGSW,
		TGSW:   tGSW,
		ZComp:  zComp,
		TComp:  tComp,
	}, nil
}

// Stride is the coefficient spacing (D1/D3) answer_project's trace
// concentrates a response onto: after Nu3 rounds of the halving trace, only
// coefficients at multiples of Stride carry real data, so Compress and
// ReduceSecretKey both read out every Stride'th coefficient rather than a
// contiguous prefix.
func (e *Expanded) Stride() int {
	return e.Params.D1 / e.Params.D3
}

// BytesPerRecord returns the number of plaintext bytes one logical record
// holds, derived from the (D3, P) pair the way encode_record/decode_record
// in the original implementation size their bit-packing: a logical record
// is exactly as large as the final extracted ciphertext's ring degree, D3.
func (e *Expanded) BytesPerRecord() int {
	bitsPerCoeff := ring.Log2(e.Params.P)
	totalBits := e.Params.D3 * bitsPerCoeff
	return totalBits / 8
}

// DBRecords returns the number of records the database addresses: 2^Nu1
// along the first dimension, 2^Nu2 along the second, and Stride() = D1/D3
// rotate-selected records packed into every (Nu1, Nu2)-addressed ring
// element.
func (e *Expanded) DBRecords() int {
	return (1 << uint(e.Params.Nu1)) * (1 << uint(e.Params.Nu2)) * e.Stride()
}

// SingleRecord32 is the reference end-to-end preset: (nu1,nu2,D1,D3,P,nVec)
// = (9,6,2048,1024,4,1): 2^9 * 2^6 * (2048/1024) = 65536 records of
// 1024*2/8 = 256 bytes each.
func SingleRecord32() Parameters {
	return Parameters{
		Nu1: 9, Nu2: 6,
		D1: 2048, D2: 2048, D3: 1024,
		P: 4, NVec: 1,

		Q1A: 268369921, // 2^28 - ... NTT-friendly prime, 1 mod 4096
		Q1B: 249561089,
		Q2:  1004535809,
		Q3:  65537,

		Sigma: 3.2,
		TGSW:  4,
		TComp: 2,
	}
}
