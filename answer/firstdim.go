// Package answer implements the server-side answer pipeline: first-dimension
// packed inner product, fold, rotate-select, and projection (spec §5). Fold
// resolves the column dimension (Nu2 GSW selector bits); Rotate then
// resolves which of the Stride() = D1/D3 rotate-selected sub-records packed
// into the addressed ring element to keep (Nu3 GSW selector bits); Project
// zeroes the rest.
package answer

import (
	"sync"

	"github.com/tuneinsight/respire/encdb"
	"github.com/tuneinsight/respire/ring"
	"github.com/tuneinsight/respire/rlwe"
)

// FirstDim evaluates, for every column c, the ciphertext
// Sum_i db[i][c] * rowSelectors[i] (a plaintext-times-ciphertext
// multiply-accumulate, the SIMD-packed core of spec §5's answer_first_dim):
// rowSelectors[i] is an RLWE ciphertext of the constant polynomial 0 or 1
// ("is row i selected"), which holds that bit at every NTT slot, so the
// sum at slot e recovers slot e of db[selected row][c]. Work is sharded by
// NTT slot across WorkerCount() workers since each slot's accumulation is
// independent. Each database lane unpacks into both CRT residues, which
// are multiplied against the matching residues of the selector's two
// components, so one multiply-accumulate loop updates all four
// accumulators (C1.A, C1.B, C0.A, C0.B) per database entry.
func FirstDim(rq *ring.CRTRing, db *encdb.Database, rowSelectors []*rlwe.Ciphertext) []*rlwe.Ciphertext {
	d1 := db.Params.Params.D1
	outC1A := make([][]uint64, d1)
	outC1B := make([][]uint64, d1)
	outC0A := make([][]uint64, d1)
	outC0B := make([][]uint64, d1)
	for e := range outC1A {
		outC1A[e] = make([]uint64, db.NCols)
		outC1B[e] = make([]uint64, db.NCols)
		outC0A[e] = make([]uint64, db.NCols)
		outC0B[e] = make([]uint64, db.NCols)
	}

	workers := WorkerCount()
	if workers > d1 {
		workers = d1
	}
	if workers < 1 {
		workers = 1
	}
	var wg sync.WaitGroup
	chunk := (d1 + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > d1 {
			hi = d1
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for e := lo; e < hi; e++ {
				for c := 0; c < db.NCols; c++ {
					row := db.Row(e, c)
					var accC1A, accC1B, accC0A, accC0B uint64
					// Reduced every term rather than deferred: a*sel (at most
					// ~56 bits for these parameter sizes) plus a <28-bit
					// accumulator never overflows 64 bits, so this stays
					// correct without needing the teacher's
					// reduce-every-2^k-terms cadence.
					for i, lane := range row {
						a, b := encdb.UnpackLane(lane)
						sel := rowSelectors[i]
						accC1A = (accC1A + a*sel.C1.A[e]) % rq.Q1A
						accC1B = (accC1B + b*sel.C1.B[e]) % rq.Q1B
						accC0A = (accC0A + a*sel.C0.A[e]) % rq.Q1A
						accC0B = (accC0B + b*sel.C0.B[e]) % rq.Q1B
					}
					outC1A[e][c] = accC1A
					outC1B[e][c] = accC1B
					outC0A[e][c] = accC0A
					outC0B[e][c] = accC0B
				}
			}
		}(lo, hi)
	}
	wg.Wait()

	out := make([]*rlwe.Ciphertext, db.NCols)
	for c := 0; c < db.NCols; c++ {
		c1 := ring.CRTPoly{A: column(outC1A, c), B: column(outC1B, c)}
		c0 := ring.CRTPoly{A: column(outC0A, c), B: column(outC0B, c)}
		out[c] = &rlwe.Ciphertext{C1: c1, C0: c0}
	}
	return out
}

func column(perCoeff [][]uint64, c int) []uint64 {
	out := make([]uint64, len(perCoeff))
	for e := range perCoeff {
		out[e] = perCoeff[e][c]
	}
	return out
}
