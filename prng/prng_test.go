package prng

import (
	"bytes"
	"testing"
)

func TestKeyedPRNGDeterministic(t *testing.T) {
	key := make([]byte, SeedSize)
	for i := range key {
		key[i] = byte(i)
	}

	p1, err := NewKeyedPRNG(key)
	if err != nil {
		t.Fatalf("NewKeyedPRNG: %v", err)
	}
	p2, err := NewKeyedPRNG(key)
	if err != nil {
		t.Fatalf("NewKeyedPRNG: %v", err)
	}

	buf1 := make([]byte, 64)
	buf2 := make([]byte, 64)
	if _, err := p1.Read(buf1); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, err := p2.Read(buf2); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(buf1, buf2) {
		t.Fatalf("two PRNGs with the same key diverged")
	}
}

func TestKeyedPRNGReset(t *testing.T) {
	key := make([]byte, SeedSize)
	p, err := NewKeyedPRNG(key)
	if err != nil {
		t.Fatalf("NewKeyedPRNG: %v", err)
	}
	first := make([]byte, 32)
	p.Read(first)

	if err := p.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	second := make([]byte, 32)
	p.Read(second)

	if !bytes.Equal(first, second) {
		t.Fatalf("Reset did not reproduce the same stream")
	}
}

func TestKeyedPRNGRejectsBadKeySize(t *testing.T) {
	if _, err := NewKeyedPRNG([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected an error for a short key")
	}
}

func TestUniformModStaysInRange(t *testing.T) {
	key := make([]byte, SeedSize)
	p, err := NewKeyedPRNG(key)
	if err != nil {
		t.Fatalf("NewKeyedPRNG: %v", err)
	}
	out := make([]uint64, 256)
	if err := UniformMod(p, 97, out); err != nil {
		t.Fatalf("UniformMod: %v", err)
	}
	for _, v := range out {
		if v >= 97 {
			t.Fatalf("value %d out of range [0,97)", v)
		}
	}
}
