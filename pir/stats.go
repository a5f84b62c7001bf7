package pir

import (
	"fmt"
	"sync"
	"time"

	"github.com/tuneinsight/respire/paramset"
)

// Stats is a tagged duration/counter accumulator, for reporting where time
// goes across Setup/Query/Answer/Extract without pulling in a full metrics
// dependency for what is otherwise a short-lived CLI/benchmark concern.
type Stats struct {
	mu       sync.Mutex
	counters map[string]int64
	elapsed  map[string]time.Duration
}

// NewStats returns an empty Stats accumulator.
func NewStats() *Stats {
	return &Stats{counters: make(map[string]int64), elapsed: make(map[string]time.Duration)}
}

// Track runs fn and records its wall-clock duration under tag.
func (s *Stats) Track(tag string, fn func()) {
	start := time.Now()
	fn()
	s.mu.Lock()
	s.elapsed[tag] += time.Since(start)
	s.mu.Unlock()
}

// Count increments the named counter by n.
func (s *Stats) Count(tag string, n int64) {
	s.mu.Lock()
	s.counters[tag] += n
	s.mu.Unlock()
}

// Report returns a human-readable summary of every tracked tag.
func (s *Stats) Report() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := ""
	for tag, d := range s.elapsed {
		out += fmt.Sprintf("%s: %s\n", tag, d)
	}
	for tag, n := range s.counters {
		out += fmt.Sprintf("%s: %d\n", tag, n)
	}
	return out
}

// Summary reports the sizes relevant to deciding whether a parameter set is
// practical: query/response wire sizes and the rate (useful bytes retrieved
// per byte of response), supplementing the original implementation's
// params_query_size/params_record_size/params_response_info/params_rate.
type Summary struct {
	QueryBytes    int
	ResponseBytes int
	RecordBytes   int
	Rate          float64
}

// WireSizes computes a Summary for params.
func WireSizes(e *paramset.Expanded) Summary {
	// Each dimension's seeded query ciphertext is one 32-byte seed plus D1
	// coefficients of Q1, each needing ceil(log2(Q1)/8) bytes.
	q1Bytes := (log2Ceil(e.Params.Q1A) + log2Ceil(e.Params.Q1B) + 7) / 8
	perDimQuery := 32 + e.Params.D1*q1Bytes
	queryBytes := 2 * perDimQuery

	q3Bytes := (log2Ceil(e.Params.Q3) + 7) / 8
	responseBytes := 2 * e.Params.D3 * q3Bytes

	recordBytes := e.BytesPerRecord()

	rate := 0.0
	if responseBytes > 0 {
		rate = float64(recordBytes) / float64(responseBytes)
	}

	return Summary{
		QueryBytes:    queryBytes,
		ResponseBytes: responseBytes,
		RecordBytes:   recordBytes,
		Rate:          rate,
	}
}

func log2Ceil(q uint64) int {
	n := 0
	for (uint64(1) << uint(n)) < q {
		n++
	}
	return n
}
