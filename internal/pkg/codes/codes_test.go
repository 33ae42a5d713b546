package codes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmation(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := Confirmation()
		assert.Len(t, code, 8)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q", r)
		}
		seen[code] = true
	}
	// collisions across 100 draws of a 36^8 space would point at a broken generator
	assert.Greater(t, len(seen), 95)
}
