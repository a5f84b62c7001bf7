package noise

import (
	"math"
	"testing"
)

func TestBudgetVarianceAndRemainingBits(t *testing.T) {
	b := Budget{WidthBits: 10, Modulus: 1 << 30}
	if got, want := b.Variance(), math.Exp2(20); got != want {
		t.Fatalf("Variance: got %g want %g", got, want)
	}
	want := math.Log2(float64(uint64(1)<<30)/2) - 10
	if got := b.RemainingBits(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("RemainingBits: got %g want %g", got, want)
	}
}

func TestCombineAddMatchesQuadratureSum(t *testing.T) {
	got := CombineAdd(5, 5)
	// Two equal-width independent terms: variance doubles, so width grows by
	// half a bit.
	want := 5 + 0.5*math.Log2(2)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("CombineAdd(5,5): got %g want %g", got, want)
	}
}

func TestCombineAddIsAtLeastTheLargerInput(t *testing.T) {
	got := CombineAdd(3, 9)
	if got < 9 {
		t.Fatalf("CombineAdd should never shrink below the larger input: got %g", got)
	}
}

func TestCombineGadgetProductGrowsWithDigitCount(t *testing.T) {
	small := CombineGadgetProduct(2, 2, 8, 2, 16)
	large := CombineGadgetProduct(2, 2, 8, 8, 16)
	if large <= small {
		t.Fatalf("more gadget digits should grow the noise width: t=2 -> %g, t=8 -> %g", small, large)
	}
}

func TestErrorProbabilityDecreasesWithBound(t *testing.T) {
	tight := ErrorProbabilityBits(5, 20)
	loose := ErrorProbabilityBits(5, 100)
	if loose >= tight {
		t.Fatalf("a wider bound should yield a smaller (more negative) failure-probability exponent: tight=%g loose=%g", tight, loose)
	}
}

func TestEmpiricalEstimateMatchesKnownStdDev(t *testing.T) {
	values := []int64{-2, -1, 0, 1, 2}
	i := 0
	sample := func() int64 {
		v := values[i%len(values)]
		i++
		return v
	}
	b, err := EmpiricalEstimate(len(values), sample)
	if err != nil {
		t.Fatalf("EmpiricalEstimate: %v", err)
	}
	// Population standard deviation of {-2,-1,0,1,2} is sqrt(2), i.e. 0.5 bits.
	if math.Abs(b.WidthBits-0.5) > 1e-9 {
		t.Fatalf("expected width log2(sqrt(2)) = 0.5 bits, got %g", b.WidthBits)
	}
}

func TestEmpiricalMaxAbs(t *testing.T) {
	values := []int64{-2, 5, -7, 3}
	i := 0
	sample := func() int64 {
		v := values[i%len(values)]
		i++
		return v
	}
	got := EmpiricalMaxAbs(len(values), sample)
	if got != 7 {
		t.Fatalf("EmpiricalMaxAbs: got %d want 7", got)
	}
}
