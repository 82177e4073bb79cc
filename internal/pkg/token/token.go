package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewCardToken generates an opaque card token in the shape the mock payment
// gateway returns ("tok_" + 32 random hex chars). Real gateway tokens are
// substituted transparently when one is wired in.
func NewCardToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate card token: %w", err)
	}
	return "tok_" + hex.EncodeToString(b), nil
}
