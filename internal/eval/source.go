// Package eval implements the tree-walking evaluator: threading an
// environment through an ast.Expr and sampling from a seeded random source.
package eval

import (
	"crypto/rc4"
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// Source is a deterministic, ARC4-seeded random source: the same seed
// string always produces the same sequence of draws (spec.md §4.3, §6.4).
// It is not safe for concurrent use.
type Source struct {
	cipher *rc4.Cipher
}

// NewSource derives an RC4 key from an arbitrary-length UTF-8 seed by
// hashing it to a fixed-width digest, so any seed string is usable
// regardless of RC4's 1-256 byte key size limit.
func NewSource(seed string) *Source {
	h := blake3.New()
	h.Write([]byte(seed))
	key := h.Sum(nil)
	cipher, err := rc4.NewCipher(key)
	if err != nil {
		// key is a fixed 32-byte blake3 digest, always a valid RC4 key size.
		panic(err)
	}
	return &Source{cipher: cipher}
}

func (s *Source) nextUint32() uint32 {
	var buf [4]byte
	s.cipher.XORKeyStream(buf[:], buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

// Intn returns a uniform random int in [0, n) using rejection sampling so
// that the RC4 keystream's bytes don't introduce modulo bias.
func (s *Source) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	bound := (uint64(1) << 32) / uint64(n) * uint64(n)
	for {
		v := uint64(s.nextUint32())
		if v < bound {
			return int(v % uint64(n))
		}
	}
}
