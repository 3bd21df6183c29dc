package util

import (
	"math/rand/v2"
)

var keyRunes = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// RandomKey returns a short alphanumeric key. The photo service hands these
// out as metadata lookup keys.
func RandomKey(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = keyRunes[rand.IntN(len(keyRunes))]
	}
	return string(b)
}
