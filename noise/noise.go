// Package noise implements the analytical and empirical noise-budget
// estimators (spec §6): an analytical closed-form propagation of
// subgaussian width through the answer pipeline, and an empirical estimate
// obtained by sampling many trial ciphertexts and measuring their actual
// decryption error.
package noise

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// Budget summarizes the noise state of a ciphertext at one point in the
// pipeline: its subgaussian width in bits, and the modulus it is measured
// against.
type Budget struct {
	WidthBits float64
	Modulus   uint64
}

// Variance returns the subgaussian variance proxy 2^(2*WidthBits).
func (b Budget) Variance() float64 {
	return math.Exp2(2 * b.WidthBits)
}

// RemainingBits returns the number of noise-growth bits left before the
// ciphertext's noise would overtake half the modulus (spec §6, the
// threshold at which decryption starts failing).
func (b Budget) RemainingBits() float64 {
	return math.Log2(float64(b.Modulus)/2) - b.WidthBits
}

// CombineAdd returns the width after homomorphically adding two independent
// ciphertexts of widths a and b (variances add).
func CombineAdd(a, b float64) float64 {
	return 0.5 * math.Log2(math.Exp2(2*a)+math.Exp2(2*b))
}

// CombineGadgetProduct returns the width after a gadget/GSW product: the
// input ciphertext noise a is multiplied by the GSW operand's norm (bounded
// by z/2, the half-base of the gadget decomposition) t times (once per
// digit), added in quadrature with the GSW ciphertext's own intrinsic noise
// gswWidth, scaled by the ring dimension d's contribution to the hybrid
// product (spec §4.6/§6).
func CombineGadgetProduct(a, gswWidth float64, z uint64, t, d int) float64 {
	halfZ := float64(z) / 2
	digitTerm := math.Log2(halfZ) + 0.5*math.Log2(float64(t*d))
	grown := a + digitTerm
	return CombineAdd(grown, gswWidth)
}

// ErrorProbability computes the analytical probability that a subgaussian
// variable of width-in-bits `width` exceeds `bound` (spec §6's closed-form
// decryption-failure estimate): 2*exp(-pi*(bound/sigma)^2), using bigfloat
// for the exponential so that tail probabilities far below float64's range
// (a plain float64 exp underflows to zero once the exponent drops below
// about -745, i.e. probabilities under ~2^-1074) stay representable.
func ErrorProbability(widthBits, bound float64) *big.Float {
	sigma := math.Exp2(widthBits)
	ratio := bound / sigma
	exponent := new(big.Float).SetPrec(200).SetFloat64(-math.Pi * ratio * ratio)
	e := bigfloat.Exp(exponent)
	return new(big.Float).SetPrec(200).Mul(big.NewFloat(2), e)
}

// ErrorProbabilityBits returns log2 of ErrorProbability, the more useful
// quantity for comparing against a target failure-probability budget like
// 2^-40.
func ErrorProbabilityBits(widthBits, bound float64) float64 {
	p := ErrorProbability(widthBits, bound)
	f, _ := p.Float64()
	if f == 0 {
		// The big.Float result is nonzero but underflowed on conversion to
		// float64: fall back to the exponent's own bit length,
		// -pi*ratio^2/ln(2).
		sigma := math.Exp2(widthBits)
		ratio := bound / sigma
		return -math.Pi * ratio * ratio / math.Ln2
	}
	return math.Log2(f)
}
