package prng

import "github.com/zeebo/blake3"

// XOF is an alternative uniform-sampling stream built on a keyed BLAKE3 XOF
// rather than ChaCha20. No other package in this module draws from it:
// seeded sampling everywhere uses KeyedPRNG/ChaCha20.
type XOF struct {
	h *blake3.Hasher
	r *blake3.Digest
}

// NewXOF derives a reader stream from a 32-byte key.
func NewXOF(key []byte) (*XOF, error) {
	if len(key) != SeedSize {
		return nil, errInvalidKeySize
	}
	h, err := blake3.NewKeyed(key)
	if err != nil {
		return nil, err
	}
	return &XOF{h: h, r: h.Digest()}, nil
}

// Read fills buf from the XOF stream.
func (x *XOF) Read(buf []byte) (int, error) {
	return x.r.Read(buf)
}

// Reset rewinds the XOF stream to its start.
func (x *XOF) Reset() {
	x.r = x.h.Digest()
}
