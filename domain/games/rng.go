package games

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RNG draws uniformly distributed integers in [0, n)
type RNG interface {
	IntN(n int) int
}

// cryptoSource feeds math/rand/v2 from the operating system CSPRNG.
// It holds no state, so the Rand built on it is safe for concurrent use.
type cryptoSource struct{}

func (cryptoSource) Uint64() uint64 {
	var b [8]byte
	// crypto/rand.Read does not fail on supported platforms
	_, _ = cryptorand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// NewSecureRNG returns an RNG that cannot be predicted from previous draws
func NewSecureRNG() RNG {
	return rand.New(cryptoSource{})
}
