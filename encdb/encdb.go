// Package encdb implements the server-side encoded database layout: records
// are transposed into a SIMD-friendly form so the first-dimension answer
// step (spec §5 answer_first_dim) can process two CRT residues per 64-bit
// lane with a single multiply-accumulate.
package encdb

import (
	"fmt"

	"github.com/tuneinsight/respire/paramset"
)

// Database is the server's encoded copy of the record set: for each
// evaluation index e (an NTT slot), a row of NRows*NCols packed residues,
// where NRows = 2^Nu1 and NCols = 2^Nu2 are the first and second
// dimensions. Packed[e][col*NRows+row] holds the NTT-slot-e residue pair
// (mod Q1A in the low 32 bits, mod Q1B in the high 32 bits) of the ring
// element addressed by (row, col), so that the first-dimension inner
// product can multiply-accumulate both CRT channels in one uint64 lane,
// mirroring the original implementation's packed representation. Each
// (row, col) ring element itself packs Stride() = D1/D3 logical records,
// one per rotate-select index (spec ν3): in the element's coefficient form
// (before the NTT that produces the stored slots), sub-record s's D3
// coefficients live at positions s, Stride()+s, 2*Stride()+s, ... (spec
// §3's encode_db chunk layout), which is exactly the strided pattern
// answer.Rotate brings to offset 0 and answer.Project then isolates.
type Database struct {
	Params *paramset.Expanded
	NRows  int
	NCols  int
	Packed [][]uint64 // [D1][NRows*NCols], one packed lane per (NTT slot, (row,col))
}

// Pack builds a Database from plaintext records, each a length-D3 slice of
// coefficients already reduced mod Q1 (e.g. via ring.CRTRing.FromCoeffs'
// component reduction). records is indexed
// idx = row*(NCols*Stride()) + col*Stride() + sub, the same addressing
// query.One uses to split a flat record index into (row, col, sub).
func Pack(params *paramset.Expanded, records [][]uint64) (*Database, error) {
	nRows := 1 << uint(params.Params.Nu1)
	ncols := 1 << uint(params.Params.Nu2)
	subRecords := params.Stride()
	want := nRows * ncols * subRecords
	if len(records) != want {
		return nil, fmt.Errorf("encdb: expected %d records, got %d", want, len(records))
	}
	d1 := params.Params.D1
	d3 := params.Params.D3
	perRow := ncols * subRecords

	db := &Database{Params: params, NRows: nRows, NCols: ncols}
	db.Packed = make([][]uint64, d1)
	for e := 0; e < d1; e++ {
		db.Packed[e] = make([]uint64, nRows*ncols)
	}

	elems := make([][]uint64, nRows*ncols)
	for i := range elems {
		elems[i] = make([]uint64, d1)
	}
	for idx, rec := range records {
		row := idx / perRow
		rem := idx % perRow
		col := rem / subRecords
		sub := rem % subRecords
		phys := col*nRows + row
		for coeffIdx := 0; coeffIdx < d3; coeffIdx++ {
			elems[phys][coeffIdx*subRecords+sub] = rec[coeffIdx]
		}
	}
	for phys, c := range elems {
		poly := params.RQ1.FromCoeffs(c)
		for e := 0; e < d1; e++ {
			db.Packed[e][phys] = poly.A[e] | (poly.B[e] << 32)
		}
	}
	return db, nil
}

// Row returns, for a given column c (second-dimension index), the nRows
// packed lanes for NTT slot e: the slice the first-dimension inner
// product multiplies against the query vector.
func (db *Database) Row(e, c int) []uint64 {
	start := c * db.NRows
	return db.Packed[e][start : start+db.NRows]
}

// UnpackLane splits a packed lane back into its two CRT residues.
func UnpackLane(lane uint64) (a, b uint64) {
	return lane & 0xffffffff, lane >> 32
}
