// Package randx generates cryptographically strong random strings used as
// bearer credentials (session tokens, invite codes).
package randx

import (
	"crypto/rand"
	"math/big"
)

// Alphabet is the character set for generated tokens. Alphanumeric only, so
// tokens survive cookie values and URLs without escaping.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var alphabetLen = big.NewInt(int64(len(Alphabet)))

// MakeRandString returns a random string of length n drawn uniformly from
// Alphabet. It returns an error only if the system randomness source fails.
func MakeRandString(n int) (string, error) {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		b[i] = Alphabet[idx.Int64()]
	}
	return string(b), nil
}
