package ring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testCRTRing(t *testing.T) *CRTRing {
	t.Helper()
	// Both prime, congruent to 1 mod 32 (2*D for D=16): 97 and 193.
	cr, err := NewCRTRing(16, 97, 193)
	if err != nil {
		t.Fatalf("NewCRTRing: %v", err)
	}
	return cr
}

func TestCRTRoundTrip(t *testing.T) {
	cr := testCRTRing(t)
	coeffs := make([]uint64, cr.D)
	for i := range coeffs {
		coeffs[i] = uint64(i*37) % cr.Q1
	}
	p := cr.FromCoeffs(coeffs)
	back := cr.ToCoeffs(p)
	if diff := cmp.Diff(coeffs, back); diff != "" {
		t.Fatalf("FromCoeffs/ToCoeffs round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCRTAddMatchesCoefficientAdd(t *testing.T) {
	cr := testCRTRing(t)
	a := make([]uint64, cr.D)
	b := make([]uint64, cr.D)
	for i := range a {
		a[i] = uint64(i)
		b[i] = uint64(2*i) % cr.Q1
	}
	pa := cr.FromCoeffs(a)
	pb := cr.FromCoeffs(b)
	sum := cr.Add(pa, pb)
	got := cr.ToCoeffs(sum)
	for i := range a {
		want := (a[i] + b[i]) % cr.Q1
		if got[i] != want {
			t.Fatalf("coefficient %d: got %d want %d", i, got[i], want)
		}
	}
}

func TestCRTMulXPow(t *testing.T) {
	cr := testCRTRing(t)
	coeffs := make([]uint64, cr.D)
	coeffs[0] = 1 // constant 1
	p := cr.FromCoeffs(coeffs)
	shifted := cr.MulXPow(p, 3)
	got := cr.ToCoeffs(shifted)
	for i := range got {
		want := uint64(0)
		if i == 3 {
			want = 1
		}
		if got[i] != want {
			t.Fatalf("coefficient %d: got %d want %d", i, got[i], want)
		}
	}
}

func TestCRTMulXPowNegacyclicWraparound(t *testing.T) {
	cr := testCRTRing(t)
	coeffs := make([]uint64, cr.D)
	coeffs[cr.D-1] = 1 // X^(D-1)
	p := cr.FromCoeffs(coeffs)
	shifted := cr.MulXPow(p, 1) // X^D = -1
	got := cr.ToCoeffs(shifted)
	for i := range got {
		want := uint64(0)
		if i == 0 {
			want = cr.Q1 - 1
		}
		if got[i] != want {
			t.Fatalf("coefficient %d: got %d want %d", i, got[i], want)
		}
	}
}
