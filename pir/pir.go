// Package pir wires the ring, gadget, rlwe, query, expand, answer, pack, and
// extract packages into the client/server orchestration API: NewClient,
// GenServerKeys and NewServer for setup, then Query, Answer, Extract (spec
// OVERVIEW).
package pir

import (
	"crypto/rand"
	"fmt"

	"github.com/tuneinsight/respire/answer"
	"github.com/tuneinsight/respire/encdb"
	"github.com/tuneinsight/respire/expand"
	"github.com/tuneinsight/respire/pack"
	"github.com/tuneinsight/respire/paramset"
	"github.com/tuneinsight/respire/query"
	"github.com/tuneinsight/respire/rlwe"
)

// Client holds everything a client needs to build queries and decode
// responses for one database shape.
type Client struct {
	Params  *paramset.Expanded
	SK      *rlwe.SecretKey
	SKSmall []uint64 // compression secret, generated alongside ServerKeys.Compress
}

// ServerKeys holds the public material a client sends the server once per
// database shape: the shared automorphism/promotion key schedule covering
// both query dimensions and answer.Project's trace, plus the response
// compression key-switch key.
type ServerKeys struct {
	Keys     *expand.Keys
	Compress *pack.CompressKey
}

// NewClient generates a fresh secret key for params.
func NewClient(params *paramset.Expanded) (*Client, error) {
	rp := rlwe.Parameters{RQ: params.RQ1, Sigma: params.Params.Sigma, ZGSW: params.ZGSW, TGSW: params.TGSW}
	sk, err := rlwe.NewSecretKey(rp, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("pir: generating secret key: %w", err)
	}
	return &Client{Params: params, SK: sk}, nil
}

// GenServerKeys derives the automorphism/promotion key schedule and
// compression key-switch key the server needs to unpack and compress
// responses for this client, stashing the compression secret on the client
// for later use by Extract.
func (c *Client) GenServerKeys() (*ServerKeys, error) {
	keys, err := expand.GenKeys(c.Params, c.SK, rand.Reader)
	if err != nil {
		return nil, err
	}
	compressKey, skSmall, err := pack.GenCompressKey(c.Params, c.SK, rand.Reader)
	if err != nil {
		return nil, err
	}
	c.SKSmall = skSmall
	return &ServerKeys{Keys: keys, Compress: compressKey}, nil
}

// Query builds the request for record index idx.
func (c *Client) Query(idx int) (*query.Query, error) {
	return query.One(c.Params, c.SK, idx, rand.Reader)
}

// Server holds the encoded database and the key schedules needed to serve
// queries against it.
type Server struct {
	Params *paramset.Expanded
	DB     *encdb.Database
	Keys   *ServerKeys
}

// NewServer packs records into a Database ready to answer queries under
// keys.
func NewServer(params *paramset.Expanded, records [][]uint64, keys *ServerKeys) (*Server, error) {
	db, err := encdb.Pack(params, records)
	if err != nil {
		return nil, err
	}
	return &Server{Params: params, DB: db, Keys: keys}, nil
}

// Answer runs the full server-side pipeline for q: unpack both dimensions'
// selectors, evaluate the first-dimension inner product, fold across the
// column dimension, rotate-select the addressed sub-record, project down,
// ring-pack, and compress the response (spec §5).
func (s *Server) Answer(q *query.Query) (*pack.CompressedCiphertext, error) {
	rp := rlwe.Parameters{RQ: s.Params.RQ1, Sigma: s.Params.Params.Sigma, ZGSW: s.Params.ZGSW, TGSW: s.Params.TGSW}

	nRows := 1 << uint(s.Params.Params.Nu1)
	rowUnpacked, err := expand.Unpack(s.Params, s.Keys.Keys, q.FirstDim, nRows)
	if err != nil {
		return nil, err
	}

	nSel := s.Params.Params.Nu2 + s.Params.Params.Nu3
	selUnpacked, err := expand.Unpack(s.Params, s.Keys.Keys, q.SecondDim, nSel)
	if err != nil {
		return nil, err
	}
	selGSW := expand.PromoteToGSW(s.Params, s.Keys.Keys, selUnpacked)
	foldSel := selGSW[:s.Params.Params.Nu2]
	rotSel := selGSW[s.Params.Params.Nu2:]

	perColumn := answer.FirstDim(s.Params.RQ1, s.DB, rowUnpacked)

	folded := answer.Fold(rp, perColumn, foldSel)
	rotated := answer.Rotate(rp, folded, rotSel, s.Params.Params.D1)
	projected := answer.Project(rp, rotated, s.Keys.Keys.AutoKeys[:s.Params.Params.Nu3])

	packedVec := pack.RingPack(rp, []*rlwe.Ciphertext{projected})
	return pack.Compress(s.Params, s.Keys.Compress, packedVec), nil
}
