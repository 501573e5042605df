package utils

import (
	"crypto/rand"
	"math/big"
)

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GeneratePassword produces the throwaway initial password an admin hands to a
// freshly provisioned account, matching the ten lowercase-alphanumeric shape
// the admin screen always generated.
func GeneratePassword(length int) string {
	if length <= 0 {
		length = 10
	}

	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			out[i] = passwordAlphabet[0]
			continue
		}
		out[i] = passwordAlphabet[n.Int64()]
	}

	return string(out)
}
