package noise

import (
	"math"

	"github.com/montanaflynn/stats"
)

// EmpiricalEstimate runs trials (a caller-supplied closure producing one
// signed decryption-error sample each call, typically "encrypt, apply the
// operator under test, decrypt, subtract the known plaintext") and reports
// the measured subgaussian width in bits, matching the statistical
// cross-check spec §6 and §8 call for alongside the analytical formula.
func EmpiricalEstimate(trials int, sample func() int64) (Budget, error) {
	data := make(stats.Float64Data, trials)
	for i := 0; i < trials; i++ {
		data[i] = float64(sample())
	}
	sd, err := stats.StandardDeviation(data)
	if err != nil {
		return Budget{}, err
	}
	return Budget{WidthBits: math.Log2(sd)}, nil
}

// EmpiricalMaxAbs returns the maximum absolute error observed over trials,
// the quantity that actually determines whether decryption would have
// failed for any of them.
func EmpiricalMaxAbs(trials int, sample func() int64) int64 {
	var max int64
	for i := 0; i < trials; i++ {
		v := sample()
		if v < 0 {
			v = -v
		}
		if v > max {
			max = v
		}
	}
	return max
}
