package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	valid := []string{
		"+90 532 123 45 67",
		"+905321234567",
		"05321234567",
		"+15551234567",
		"+4915123456789",
		"+441234567890",
		"+966501234567",
	}
	for _, n := range valid {
		assert.True(t, Valid(n), "expected %q to be valid", n)
	}

	invalid := []string{
		"",
		"532 123 45 67",
		"+90532",
		"05321234567890123",
		"not-a-number",
		"+0123456789",
	}
	for _, n := range invalid {
		assert.False(t, Valid(n), "expected %q to be invalid", n)
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "+905321234567", Canonical("+90 532 123 45 67"))
	assert.Equal(t, "+905321234567", Canonical("05321234567"))
	assert.Equal(t, "+905321234567", Canonical("+905321234567"))
	assert.Equal(t, "+15551234567", Canonical("15551234567"))
}

func TestCanonical_Idempotent(t *testing.T) {
	for _, n := range []string{"+90 532 123 45 67", "05321234567", "+15551234567"} {
		c := Canonical(n)
		assert.Equal(t, c, Canonical(c))
	}
}

func TestLanguage(t *testing.T) {
	assert.Equal(t, "tr", Language("+905321234567"))
	assert.Equal(t, "tr", Language("05321234567"))
	assert.Equal(t, "en", Language("+15551234567"))
	assert.Equal(t, "ar", Language("+966501234567"))
	assert.Equal(t, "ar", Language("+971501234567"))
	assert.Equal(t, "ar", Language("+973331234567"))
	assert.Equal(t, "en", Language("+4915123456789"))
}
