package bingo

import (
	"crypto/rand"
	"math/big"
)

// Rand is the randomness source used for shuffling.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	// IntN returns a uniform value in [0, n). Panics if n <= 0.
	IntN(n int) int
}

// CryptoRand draws from crypto/rand.
type CryptoRand struct{}

// IntN implements Rand.
func (CryptoRand) IntN(n int) int {
	if n <= 0 {
		panic("bingo: IntN called with n <= 0")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}
	return int(v.Int64())
}

// Sample returns n entries of pool drawn uniformly without replacement.
// pool is copied, never modified. n larger than the pool is clamped.
func Sample(pool []string, n int, r Rand) []string {
	cp := append([]string(nil), pool...)
	if n > len(cp) {
		n = len(cp)
	}
	// Partial Fisher–Yates: only the first n slots need to be settled.
	for i := 0; i < n; i++ {
		j := i + r.IntN(len(cp)-i)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp[:n]
}
