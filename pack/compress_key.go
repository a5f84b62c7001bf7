package pack

import (
	"io"

	"github.com/tuneinsight/respire/gadget"
	"github.com/tuneinsight/respire/paramset"
	"github.com/tuneinsight/respire/prng"
	"github.com/tuneinsight/respire/rlwe"
)

// CompressKey is the key-switching key letting Compress re-key a response
// from the client's main secret onto a second, independent secret (spec
// §4.10 compress_setup): row j is an R_{Q2} encryption of g_j*skMain under
// skSmall, A holding the uniform half and B the masked half, the standard
// gadget key-switch construction rlwe.AutoKey also builds for automorphism
// key-switching, here targeting an arbitrary secret instead of tau(sk).
type CompressKey struct {
	A [][]uint64 // TComp rows, NTT domain, mod Q2
	B [][]uint64 // TComp rows, NTT domain, mod Q2
}

// GenCompressKey derives the key-switch key from sk plus a freshly sampled
// compression secret skSmall, which the caller must keep to decode
// responses later (extract.ReduceSecretKey derives the client's decoding
// key from it).
func GenCompressKey(e *paramset.Expanded, sk *rlwe.SecretKey, r io.Reader) (*CompressKey, []uint64, error) {
	rq2 := e.RQ2

	skCoeffs := e.RQ1.ToCoeffs(sk.Value)
	skMainQ2 := make([]uint64, rq2.N)
	for i := range skMainQ2 {
		skMainQ2[i] = skCoeffs[i] % rq2.Q
	}
	skMainNTT := rq2.NewPoly()
	rq2.NTT(skMainQ2, skMainNTT)

	skSmall := make([]uint64, rq2.N)
	for i := range skSmall {
		v, err := prng.UniformUint64n(r, 3)
		if err != nil {
			return nil, nil, err
		}
		switch v {
		case 1:
			skSmall[i] = 1
		case 2:
			skSmall[i] = rq2.Q - 1
		}
	}
	skSmallNTT := rq2.NewPoly()
	rq2.NTT(skSmall, skSmallNTT)

	g := gadget.Vector(e.ZComp, e.TComp)
	key := &CompressKey{A: make([][]uint64, e.TComp), B: make([][]uint64, e.TComp)}
	for j := 0; j < e.TComp; j++ {
		aCoeffs := make([]uint64, rq2.N)
		if err := prng.UniformMod(r, rq2.Q, aCoeffs); err != nil {
			return nil, nil, err
		}
		aNTT := rq2.NewPoly()
		rq2.NTT(aCoeffs, aNTT)

		eCoeffs := make([]uint64, rq2.N)
		if err := prng.SampleErrorPoly(r, e.Params.Sigma, rq2.Q, eCoeffs); err != nil {
			return nil, nil, err
		}
		eNTT := rq2.NewPoly()
		rq2.NTT(eCoeffs, eNTT)

		prod := rq2.NewPoly()
		rq2.MulCoeffsBarrett(aNTT, skSmallNTT, prod)
		negProd := rq2.NewPoly()
		rq2.Neg(prod, negProd)

		scaled := rq2.NewPoly()
		rq2.MulScalar(skMainNTT, g[j], scaled)

		bNTT := rq2.NewPoly()
		rq2.Add(negProd, scaled, bNTT)
		rq2.Add(bNTT, eNTT, bNTT)

		key.A[j] = aNTT
		key.B[j] = bNTT
	}
	return key, skSmall, nil
}
