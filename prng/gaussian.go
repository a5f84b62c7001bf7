package prng

import (
	"io"
	"math"
)

// DiscreteGaussian draws a single sample from a discrete Gaussian of standard
// deviation sigma, centered at zero, via rejection sampling over a bounded
// tail (spec §4.3 error distribution). bound truncates the support to
// [-bound*sigma, bound*sigma]; 8 is a generous cutoff given sigma is only a
// few units wide in this protocol's parameter presets.
func DiscreteGaussian(r io.Reader, sigma float64) (int64, error) {
	const bound = 8.0
	maxAbs := int64(math.Ceil(bound * sigma))
	for {
		u, err := UniformUint64n(r, uint64(2*maxAbs+1))
		if err != nil {
			return 0, err
		}
		x := int64(u) - maxAbs
		rho := math.Exp(-float64(x*x) / (2 * sigma * sigma))
		threshold, err := UniformUint64n(r, 1<<53)
		if err != nil {
			return 0, err
		}
		if float64(threshold)/float64(uint64(1)<<53) < rho {
			return x, nil
		}
	}
}

// SampleErrorPoly fills out with N independent discrete-Gaussian samples of
// width sigma, reduced into [0, q), for use as an RLWE error polynomial.
func SampleErrorPoly(r io.Reader, sigma float64, q uint64, out []uint64) error {
	for i := range out {
		e, err := DiscreteGaussian(r, sigma)
		if err != nil {
			return err
		}
		if e < 0 {
			out[i] = q - uint64(-e)%q
		} else {
			out[i] = uint64(e) % q
		}
	}
	return nil
}
