package generator

import (
	crand "crypto/rand"
	"math/big"
	"math/rand/v2"
	"sync"
)

// Source yields uniform integers in [0, n). *rand.Rand from math/rand/v2
// satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a non-cryptographic PCG source seeded from runtime entropy.
func NewSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededSource returns a reproducible source, mainly for tests.
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// CryptoSource draws from crypto/rand.
type CryptoSource struct{}

func (CryptoSource) IntN(n int) int {
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand.Reader does not return errors on supported platforms.
		panic("generator: crypto/rand failed: " + err.Error())
	}
	return int(v.Int64())
}

// lockedSource serializes access to a source that is not safe for concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	src Source
}

// Locked wraps src so it can be shared between goroutines.
func Locked(src Source) Source {
	if _, ok := src.(CryptoSource); ok {
		return src
	}
	return &lockedSource{src: src}
}

func (l *lockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

// SourceByName resolves the RANDOM_SOURCE setting: "crypto" or "math".
func SourceByName(name string) (Source, bool) {
	switch name {
	case "", "math":
		return NewSource(), true
	case "crypto":
		return CryptoSource{}, true
	}
	return nil, false
}
