package ring

import "math/bits"

// ModExp computes x^e mod p. x, e and p must each fit in 63 bits.
func ModExp(x, e, p uint64) (result uint64) {
	params := BRedParams(p)
	result = 1
	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			result = BRed(result, x, p, params)
		}
		x = BRed(x, x, p, params)
	}
	return
}

// BitReverse64 reverses the first bitLen bits of a 64-bit unsigned integer.
func BitReverse64(index uint64, bitLen int) (r uint64) {
	for i := 0; i < bitLen; i++ {
		r |= ((index >> i) & 1) << (bitLen - 1 - i)
	}
	return
}

// IsPowerOfTwo reports whether n is a power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns floor(log2(n)) for n > 0.
func Log2(n uint64) int {
	return bits.Len64(n) - 1
}

// CeilLog2 returns ceil(log2(n)) for n > 0, with CeilLog2(1) = 0.
func CeilLog2(n uint64) int {
	if n <= 1 {
		return 0
	}
	return bits.Len64(n - 1)
}

// isPrime is a small Miller-Rabin primality test, sufficient for the
// NTT-friendly moduli sizes this module deals with (a few tens of bits).
func isPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	for _, p := range []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31} {
		if n%p == 0 {
			return n == p
		}
	}
	d := n - 1
	r := 0
	for d%2 == 0 {
		d /= 2
		r++
	}
	witnesses := []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}
	for _, a := range witnesses {
		if a >= n {
			continue
		}
		x := ModExp(a, d, n)
		if x == 1 || x == n-1 {
			continue
		}
		composite := true
		for i := 0; i < r-1; i++ {
			x = BRed(x, x, n, BRedParams(n))
			if x == n-1 {
				composite = false
				break
			}
		}
		if composite {
			return false
		}
	}
	return true
}

// factorizeDistinctPrimes returns the distinct prime factors of n, found by
// trial division. Sufficient for the NTT-friendly primes used here, whose
// modulus-1 factorization only ever needs to be computed once at setup.
func factorizeDistinctPrimes(n uint64) []uint64 {
	var factors []uint64
	for _, p := range []uint64{2, 3, 5, 7, 11, 13} {
		if n%p == 0 {
			factors = append(factors, p)
			for n%p == 0 {
				n /= p
			}
		}
	}
	for d := uint64(17); d*d <= n; d += 2 {
		if n%d == 0 {
			factors = append(factors, d)
			for n%d == 0 {
				n /= d
			}
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}
