package ring

import (
	"testing"
)

func testRing(t *testing.T) *Ring {
	t.Helper()
	r, err := NewRing(16, 97) // 97 is prime and congruent to 1 mod 32
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}
	return r
}

func TestNTTRoundTrip(t *testing.T) {
	r := testRing(t)
	p := make([]uint64, r.N)
	for i := range p {
		p[i] = uint64(i + 1)
	}

	evald := make([]uint64, r.N)
	r.NTT(p, evald)

	back := make([]uint64, r.N)
	r.INTT(evald, back)

	for i := range p {
		if back[i] != p[i] {
			t.Fatalf("coefficient %d: got %d want %d", i, back[i], p[i])
		}
	}
}

func TestNTTIsRingHomomorphism(t *testing.T) {
	r := testRing(t)
	a := make([]uint64, r.N)
	b := make([]uint64, r.N)
	a[1] = 1 // a = X
	b[1] = 1 // b = X
	// a*b = X^2 mod X^N+1

	evalA := make([]uint64, r.N)
	evalB := make([]uint64, r.N)
	r.NTT(a, evalA)
	r.NTT(b, evalB)

	prodEval := make([]uint64, r.N)
	r.MulCoeffsBarrett(evalA, evalB, prodEval)

	prod := make([]uint64, r.N)
	r.INTT(prodEval, prod)

	want := make([]uint64, r.N)
	want[2] = 1
	for i := range want {
		if prod[i] != want[i] {
			t.Fatalf("coefficient %d: got %d want %d", i, prod[i], want[i])
		}
	}
}

func TestMForm(t *testing.T) {
	r := testRing(t)
	for _, v := range []uint64{0, 1, 2, r.Q - 1, r.Q / 2} {
		m := MForm(v, r.Q, r.BRedConstant)
		back := InvMForm(m, r.Q, r.MRedConstant)
		if back != v {
			t.Fatalf("MForm round trip: got %d want %d", back, v)
		}
	}
}

func TestBRed(t *testing.T) {
	r := testRing(t)
	u := r.BRedConstant
	for a := uint64(0); a < r.Q; a += r.Q / 13 {
		for b := uint64(0); b < r.Q; b += r.Q / 11 {
			got := BRed(a, b, r.Q, u)
			want := (a % r.Q) * (b % r.Q) % r.Q
			if got != want {
				t.Fatalf("BRed(%d,%d): got %d want %d", a, b, got, want)
			}
		}
	}
}
