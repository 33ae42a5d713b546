// Package codes generates human-readable confirmation codes.
package codes

import "crypto/rand"

const (
	alphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength = 8
)

// Confirmation returns an 8-character code built from uppercase letters
// and digits, suitable for reading out over the phone.
func Confirmation() string {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}
