package pir

import (
	"github.com/tuneinsight/respire/extract"
	"github.com/tuneinsight/respire/pack"
)

// Extract decodes a compressed response into the record's plaintext bytes.
func (c *Client) Extract(ct *pack.CompressedCiphertext) []byte {
	skQ3 := extract.ReduceSecretKey(c.Params, c.SKSmall)
	return extract.Decode(c.Params, skQ3, ct)
}
