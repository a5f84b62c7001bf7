package paramset

import "testing"

// toyParams returns a small, fast-to-construct parameter set exercising the
// same shape as SingleRecord32 (two dimensions, a compression chain) without
// its production-sized rings.
func toyParams() Parameters {
	return Parameters{
		Nu1: 2, Nu2: 1,
		D1: 16, D2: 16, D3: 8,
		P: 4, NVec: 1,

		Q1A: 97, Q1B: 193, // both prime, congruent to 1 mod 32
		Q2: 353,           // prime, congruent to 1 mod 32
		Q3: 17,            // prime, congruent to 1 mod 16

		Sigma: 1.0,
		TGSW:  4,
		TComp: 2,
	}
}

func TestExpandBuildsRings(t *testing.T) {
	e, err := Expand(toyParams())
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if e.RQ1.D != 16 || e.RQ1.Q1A != 97 || e.RQ1.Q1B != 193 {
		t.Fatalf("unexpected RQ1 shape: %+v", e.RQ1)
	}
	if e.RQ2.N != 16 || e.RQ2.Q != 353 {
		t.Fatalf("unexpected RQ2 shape: N=%d Q=%d", e.RQ2.N, e.RQ2.Q)
	}
	if e.RQ3.N != 8 || e.RQ3.Q != 17 {
		t.Fatalf("unexpected RQ3 shape: N=%d Q=%d", e.RQ3.N, e.RQ3.Q)
	}
	if e.TGSW != 4 || e.ZGSW < 2 {
		t.Fatalf("unexpected derived GSW gadget: t=%d z=%d", e.TGSW, e.ZGSW)
	}
	if e.TComp != 2 || e.ZComp < 2 {
		t.Fatalf("unexpected derived compression gadget: t=%d z=%d", e.TComp, e.ZComp)
	}
}

func TestExpandDerivesGadgetBaseWhenUnset(t *testing.T) {
	p := toyParams()
	p.TGSW = 0
	p.TComp = 0
	e, err := Expand(p)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if e.TGSW != 4 {
		t.Fatalf("expected default TGSW=4, got %d", e.TGSW)
	}
	if e.TComp != 2 {
		t.Fatalf("expected default TComp=2, got %d", e.TComp)
	}
	// Q1 = 97*193 = 18721: 11^4 = 14641 < Q1 <= 12^4 = 20736.
	if e.ZGSW != 12 {
		t.Fatalf("expected derived ZGSW=12, got %d", e.ZGSW)
	}
	// Q2 = 353: 18^2 = 324 < Q2 <= 19^2 = 361.
	if e.ZComp != 19 {
		t.Fatalf("expected derived ZComp=19, got %d", e.ZComp)
	}
}

func TestExpandRejectsBadModulus(t *testing.T) {
	p := toyParams()
	p.Q1A = 98 // not prime
	if _, err := Expand(p); err == nil {
		t.Fatalf("expected an error for a non-prime Q1A")
	}
}

func TestBytesPerRecordAndDBRecords(t *testing.T) {
	e, err := Expand(toyParams())
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	// P=4 is 2 bits/coefficient, D3=8 coefficients, NVec=1.
	if got, want := e.BytesPerRecord(), 8*2/8; got != want {
		t.Fatalf("BytesPerRecord: got %d want %d", got, want)
	}
	// Nu1=2, Nu2=1 -> 4*2 (row,col) pairs, each packing Stride()=D1/D3=2
	// rotate-selected sub-records: 4*2*2 = 16 addressable records.
	if got, want := e.DBRecords(), 16; got != want {
		t.Fatalf("DBRecords: got %d want %d", got, want)
	}
}

func TestExpandDerivesNu3AndStrideWhenUnset(t *testing.T) {
	e, err := Expand(toyParams())
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	// D1=16, D3=8 -> stride 2, ceil(log2(2)) = 1 round.
	if e.Params.Nu3 != 1 {
		t.Fatalf("expected derived Nu3=1, got %d", e.Params.Nu3)
	}
	if got, want := e.Stride(), 2; got != want {
		t.Fatalf("Stride: got %d want %d", got, want)
	}
}

func TestExpandKeepsExplicitNu3(t *testing.T) {
	p := toyParams()
	p.Nu3 = 3
	e, err := Expand(p)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if e.Params.Nu3 != 3 {
		t.Fatalf("expected explicit Nu3=3 to survive Expand, got %d", e.Params.Nu3)
	}
}

func TestSingleRecord32Shape(t *testing.T) {
	p := SingleRecord32()
	if p.Nu1 != 9 || p.Nu2 != 6 {
		t.Fatalf("unexpected dimension split: Nu1=%d Nu2=%d", p.Nu1, p.Nu2)
	}
	if p.D1 != 2048 || p.D3 != 1024 {
		t.Fatalf("unexpected ring degrees: D1=%d D3=%d", p.D1, p.D3)
	}
	if p.P != 4 || p.NVec != 1 {
		t.Fatalf("unexpected plaintext shape: P=%d NVec=%d", p.P, p.NVec)
	}
}
