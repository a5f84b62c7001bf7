package expand

import (
	"github.com/tuneinsight/respire/paramset"
	"github.com/tuneinsight/respire/rlwe"
)

// PromoteToGSW converts each unpacked single-coefficient RLWE ciphertext
// into a GSW selector via rlwe.RLWEToGSW (spec §4.8, the final step of
// answer_query_unpack before the selectors feed answer.Fold and
// answer.Rotate). Each input ciphertext already holds exactly one index bit
// (query.One packs Nu2 column bits and Nu3 rotate-select bits, not a
// one-hot vector), so a 1:1 per-ciphertext
// relinearization-style promotion is the right shape here: see DESIGN.md
// for why this module does not also carry over the original's batched,
// shared-public-matrix GSW promotion.
func PromoteToGSW(params *paramset.Expanded, keys *Keys, unpacked []*rlwe.Ciphertext) []*rlwe.GSWCiphertext {
	rp := rlwe.Parameters{RQ: params.RQ1, Sigma: params.Params.Sigma, ZGSW: params.ZGSW, TGSW: params.TGSW}
	out := make([]*rlwe.GSWCiphertext, len(unpacked))
	for i, ct := range unpacked {
		out[i] = rp.RLWEToGSW(ct, keys.ToGSW)
	}
	return out
}
