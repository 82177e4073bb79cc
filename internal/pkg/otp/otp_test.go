package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SixDigits(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := Generate()
		require.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "non-digit in code %q", code)
		}
	}
}

func TestGenerate_NotConstant(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[Generate()] = true
	}
	// 50 draws from a million-code space colliding down to one value
	// would mean the source is broken.
	assert.Greater(t, len(seen), 1)
}
