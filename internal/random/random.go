// Package random provides the randomness used across the application.
//
// Dialogue timing and canned phrase selection draw from a [Source] so that tests can make them deterministic with
// [NewSeeded]. Identifiers that must be unguessable use [Letters] backed by crypto/rand.
package random

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand/v2"
	"sync"
)

var allowedLetters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

// Letters returns n cryptographically random ASCII letters.
func Letters(n uint) (string, error) {
	letters := make([]rune, n)
	for i := range letters {
		letterIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(allowedLetters))))
		if err != nil {
			return "", err
		}
		letters[i] = allowedLetters[letterIndex.Int64()]
	}
	return string(letters), nil
}

// Source is a pluggable pseudo-random source.
type Source interface {
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// lockedSource makes a math/rand generator safe for use from timer goroutines.
type lockedSource struct {
	mu  sync.Mutex
	rnd *mathrand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.IntN(n)
}

// NewSeeded returns a deterministic Source. Equal seeds produce equal sequences.
func NewSeeded(seed uint64) Source {
	return &lockedSource{rnd: mathrand.New(mathrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))} //nolint:gosec // not security sensitive
}

// NewSource returns a Source seeded from the runtime's random state.
func NewSource() Source {
	return NewSeeded(mathrand.Uint64()) //nolint:gosec // not security sensitive
}

// Pick returns a random element of items. It panics on an empty slice.
func Pick[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}
