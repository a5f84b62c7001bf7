package expand

import (
	"testing"

	"github.com/tuneinsight/respire/paramset"
	"github.com/tuneinsight/respire/prng"
	"github.com/tuneinsight/respire/ring"
	"github.com/tuneinsight/respire/rlwe"
)

func toyExpanded(t *testing.T) *paramset.Expanded {
	t.Helper()
	e, err := paramset.Expand(paramset.Parameters{
		Nu1: 2, Nu2: 1,
		D1: 16, D2: 16, D3: 8,
		P: 4, NVec: 1,
		Q1A: 97, Q1B: 193,
		Q2: 353,
		Q3: 17,
		Sigma: 1.0,
		TGSW:  4, TComp: 2,
	})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	return e
}

func toySecretKeyAndPRNG(t *testing.T, params *paramset.Expanded) (*rlwe.SecretKey, *prng.KeyedPRNG) {
	t.Helper()
	rp := rlwe.Parameters{RQ: params.RQ1, Sigma: params.Params.Sigma, ZGSW: params.ZGSW, TGSW: params.TGSW}
	r, err := prng.NewKeyedPRNG(make([]byte, prng.SeedSize))
	if err != nil {
		t.Fatalf("NewKeyedPRNG: %v", err)
	}
	sk, err := rlwe.NewSecretKey(rp, r)
	if err != nil {
		t.Fatalf("NewSecretKey: %v", err)
	}
	return sk, r
}

// oneHotBitReversed mirrors query.oneHotBitReversed: a single 1 coefficient
// at the full-D1 bit-reversed slot of idx, the placement Unpack expects.
func oneHotBitReversed(rq *ring.CRTRing, idx, d1 int) ring.CRTPoly {
	coeffs := make([]uint64, rq.D)
	slot := ring.BitReverse64(uint64(idx), ring.Log2(uint64(d1)))
	coeffs[slot] = 1
	return rq.FromCoeffs(coeffs)
}

func TestGenKeysAlwaysSpansFullD1Log2Rounds(t *testing.T) {
	params := toyExpanded(t)
	sk, r := toySecretKeyAndPRNG(t, params)

	keys, err := GenKeys(params, sk, r)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	want := ring.CeilLog2(uint64(params.Params.D1))
	if len(keys.AutoKeys) != want {
		t.Fatalf("AutoKeys length: got %d want %d (log2(D1), regardless of Nu1/Nu2)", len(keys.AutoKeys), want)
	}
	if keys.ToGSW == nil {
		t.Fatalf("expected a non-nil RLWE-to-GSW promotion key")
	}
}

// TestUnpackRecoversEveryRowSlot builds a one-hot query for every possible
// row index and checks that Unpack's output decrypts to 1 at the selected
// slot and ~0 everywhere else. A narrower-than-D1 bit-reversal width or a
// truncated round count (the Comment-2 bug) would silently corrupt this for
// most indices while happening to still work for a lucky few, which is why
// this test sweeps every row rather than checking only one.
func TestUnpackRecoversEveryRowSlot(t *testing.T) {
	params := toyExpanded(t)
	sk, r := toySecretKeyAndPRNG(t, params)
	rp := rlwe.Parameters{RQ: params.RQ1, Sigma: params.Params.Sigma, ZGSW: params.ZGSW, TGSW: params.TGSW}

	keys, err := GenKeys(params, sk, r)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}

	nRows := 1 << uint(params.Params.Nu1)
	d1 := params.Params.D1

	for selected := 0; selected < nRows; selected++ {
		mu := oneHotBitReversed(params.RQ1, selected, d1)
		seeded, err := rlwe.EncryptSeeded(rp, sk, mu, r)
		if err != nil {
			t.Fatalf("EncryptSeeded: %v", err)
		}

		out, err := Unpack(params, keys, seeded, nRows)
		if err != nil {
			t.Fatalf("Unpack: %v", err)
		}
		if len(out) != nRows {
			t.Fatalf("Unpack output length: got %d want %d", len(out), nRows)
		}

		for i, ct := range out {
			dec := rlwe.Decrypt(rp, sk, ct)
			got := params.RQ1.ToCoeffs(dec)[0]
			want := uint64(0)
			if i == selected {
				want = 1
			}
			diff := int64(got) - int64(want)
			if diff < 0 {
				diff = -diff
			}
			if diff > 10 && int64(params.RQ1.Q1)-diff > 10 {
				t.Fatalf("selected=%d slot %d: coefficient 0 = %d, want ~%d", selected, i, got, want)
			}
		}
	}
}

func TestPromoteToGSWProducesOnePerInput(t *testing.T) {
	params := toyExpanded(t)
	sk, r := toySecretKeyAndPRNG(t, params)

	keys, err := GenKeys(params, sk, r)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}

	rp := rlwe.Parameters{RQ: params.RQ1, Sigma: params.Params.Sigma, ZGSW: params.ZGSW, TGSW: params.TGSW}
	mu := params.RQ1.FromCoeffs(make([]uint64, params.Params.D1))
	seeded, err := rlwe.EncryptSeeded(rp, sk, mu, r)
	if err != nil {
		t.Fatalf("EncryptSeeded: %v", err)
	}
	unpacked, err := Unpack(params, keys, seeded, params.Params.Nu2+params.Params.Nu3)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}

	gsw := PromoteToGSW(params, keys, unpacked)
	if len(gsw) != len(unpacked) {
		t.Fatalf("PromoteToGSW length: got %d want %d", len(gsw), len(unpacked))
	}
	for i, g := range gsw {
		if g == nil || len(g.Rows) != 2*params.TGSW {
			t.Fatalf("GSW ciphertext %d has wrong row count", i)
		}
	}
}
