package answer

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// WorkerCount picks how many goroutines FirstDim should shard coefficient
// work across. True AVX2 SIMD intrinsics (the original implementation's
// packed-lane fast path) aren't expressible from pure Go without cgo or
// assembly, so the adaptation here is at the dispatch level instead: wider
// vector units correlate with more cache/compute headroom per core, so a
// CPU reporting AVX2 gets a full GOMAXPROCS fan-out, while one without it
// (smaller vector registers, typically also meaning less L2 per core) backs
// off to leave headroom for other work sharing the box.
func WorkerCount() int {
	n := runtime.GOMAXPROCS(0)
	if !cpuid.CPU.Has(cpuid.AVX2) && n > 2 {
		n = n / 2
	}
	if n < 1 {
		n = 1
	}
	return n
}
