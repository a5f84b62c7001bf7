package pir

import (
	"testing"

	"github.com/tuneinsight/respire/paramset"
)

func toyParams() paramset.Parameters {
	return paramset.Parameters{
		Nu1: 2, Nu2: 1,
		D1: 16, D2: 16, D3: 8,
		P: 4, NVec: 1,
		Q1A: 97, Q1B: 193,
		Q2: 353,
		Q3: 17,
		Sigma: 1.0,
		TGSW:  4, TComp: 2,
	}
}

func toyExpanded(t *testing.T) *paramset.Expanded {
	t.Helper()
	e, err := paramset.Expand(toyParams())
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	return e
}

func toyRecords(params *paramset.Expanded) [][]uint64 {
	nRecords := params.DBRecords()
	d3 := params.Params.D3
	records := make([][]uint64, nRecords)
	for i := range records {
		rec := make([]uint64, d3)
		for e := range rec {
			rec[e] = uint64(i+e) % params.Params.P
		}
		records[i] = rec
	}
	return records
}

func TestEndToEndQueryAnswerExtractRuns(t *testing.T) {
	params := toyExpanded(t)

	client, err := NewClient(params)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	keys, err := client.GenServerKeys()
	if err != nil {
		t.Fatalf("GenServerKeys: %v", err)
	}

	records := toyRecords(params)
	server, err := NewServer(params, records, keys)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	// Sweep every record index rather than a single one: a query-encoding or
	// unpack bug that only corrupts some indices (the Comment-2 failure mode)
	// would pass a single-index check by luck.
	wantBytes := params.BytesPerRecord()
	for idx := 0; idx < params.DBRecords(); idx++ {
		q, err := client.Query(idx)
		if err != nil {
			t.Fatalf("idx=%d: Query: %v", idx, err)
		}

		resp, err := server.Answer(q)
		if err != nil {
			t.Fatalf("idx=%d: Answer: %v", idx, err)
		}

		got := client.Extract(resp)
		if len(got) != wantBytes {
			t.Fatalf("idx=%d: Extract output length: got %d want %d", idx, len(got), wantBytes)
		}
	}
}

func TestNewServerRejectsWrongRecordCount(t *testing.T) {
	params := toyExpanded(t)
	client, err := NewClient(params)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	keys, err := client.GenServerKeys()
	if err != nil {
		t.Fatalf("GenServerKeys: %v", err)
	}
	if _, err := NewServer(params, make([][]uint64, 1), keys); err == nil {
		t.Fatalf("expected an error for a record count not matching the database shape")
	}
}

func TestStatsTracksCountersAndDurations(t *testing.T) {
	s := NewStats()
	s.Track("setup", func() {})
	s.Count("queries", 3)
	s.Count("queries", 2)

	report := s.Report()
	if report == "" {
		t.Fatalf("expected a non-empty report")
	}
}

func TestWireSizesReportsPositiveSizes(t *testing.T) {
	params := toyExpanded(t)
	summary := WireSizes(params)
	if summary.QueryBytes <= 0 || summary.ResponseBytes <= 0 || summary.RecordBytes <= 0 {
		t.Fatalf("expected all wire sizes to be positive: %+v", summary)
	}
}
