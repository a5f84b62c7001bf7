// Package prng implements the keyed pseudo-random generators used for seeded
// ciphertexts (spec §4.3/§4.4: a seeded RLWE ciphertext regenerates its c0
// component from a 32-byte seed instead of transmitting it) and for uniform
// and discrete-Gaussian sampling during key generation and encryption.
//
// The keyed-PRNG contract (New(key) returning a Reset-able io.Reader) mirrors
// the teacher's sampling.KeyedPRNG: a fixed key deterministically reproduces
// the same stream across Reset calls, which is what lets a server regenerate
// c0 from a transmitted seed.
package prng

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/chacha20"
)

// SeedSize is the size in bytes of a PRNG seed/key.
const SeedSize = 32

// KeyedPRNG is a deterministic, reseedable byte stream keyed by a 32-byte
// seed. Two KeyedPRNGs constructed from the same seed produce identical
// output, which is the property seeded-ciphertext regeneration relies on.
type KeyedPRNG struct {
	key    [SeedSize]byte
	cipher *chacha20.Cipher
}

// NewKeyedPRNG builds a KeyedPRNG from a 32-byte key.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	if len(key) != SeedSize {
		return nil, errInvalidKeySize
	}
	p := &KeyedPRNG{}
	copy(p.key[:], key)
	if err := p.Reset(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewRandomSeed draws a fresh random 32-byte seed from the OS CSPRNG, for use
// as a query's per-ciphertext seed.
func NewRandomSeed() ([]byte, error) {
	seed := make([]byte, SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// Reset rewinds the stream to the beginning, so the same key reproduces the
// same sequence of reads again.
func (p *KeyedPRNG) Reset() error {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(p.key[:], nonce[:])
	if err != nil {
		return err
	}
	p.cipher = c
	return nil
}

// Read fills buf with pseudo-random bytes derived from the key.
func (p *KeyedPRNG) Read(buf []byte) (int, error) {
	zeros := make([]byte, len(buf))
	p.cipher.XORKeyStream(buf, zeros)
	return len(buf), nil
}

// Key returns the seed this PRNG was constructed from.
func (p *KeyedPRNG) Key() []byte {
	k := make([]byte, SeedSize)
	copy(k, p.key[:])
	return k
}

var errInvalidKeySize = &prngError{"prng: key must be 32 bytes"}

type prngError struct{ s string }

func (e *prngError) Error() string { return e.s }

// UniformUint64n draws a uniform value in [0, n) from r, via rejection
// sampling over 8-byte reads to avoid modulo bias.
func UniformUint64n(r io.Reader, n uint64) (uint64, error) {
	if n == 0 {
		return 0, nil
	}
	lim := (^uint64(0) - (^uint64(0) % n))
	var buf [8]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		v := binary.LittleEndian.Uint64(buf[:])
		if v < lim {
			return v % n, nil
		}
	}
}

// UniformMod fills out with uniform values reduced mod q, reading randomness
// from r (typically a KeyedPRNG), matching the teacher's uniform-sampler
// convention of drawing one masked machine word per coefficient and
// rejecting out-of-range draws to avoid bias.
func UniformMod(r io.Reader, q uint64, out []uint64) error {
	mask := uint64(1)<<uint(bitLen(q)) - 1
	var buf [8]byte
	for i := range out {
		for {
			if _, err := io.ReadFull(r, buf[:]); err != nil {
				return err
			}
			v := binary.LittleEndian.Uint64(buf[:]) & mask
			if v < q {
				out[i] = v
				break
			}
		}
	}
	return nil
}

func bitLen(q uint64) int {
	n := 0
	for (uint64(1) << uint(n)) < q {
		n++
	}
	return n
}
