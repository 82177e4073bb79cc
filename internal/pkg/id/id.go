// Package id mints the identifiers used across account, product, order and
// card records.
package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New returns a fresh ULID string. ULIDs sort by creation time, which keeps
// listing queries over DynamoDB partition keys in a useful order.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
