package domain

import "time"

// Channel identifies one verification table: which kind of account owns the
// identifier and whether the identifier is a phone number or an email address.
type Channel string

const (
	ChannelUserPhone   Channel = "user-phone"
	ChannelSellerPhone Channel = "seller-phone"
	ChannelUserEmail   Channel = "user-email"
	ChannelSellerEmail Channel = "seller-email"
)

// ParseChannel converts a URL segment into a Channel.
func ParseChannel(s string) (Channel, bool) {
	switch c := Channel(s); c {
	case ChannelUserPhone, ChannelSellerPhone, ChannelUserEmail, ChannelSellerEmail:
		return c, true
	}
	return "", false
}

func (c Channel) IsPhone() bool {
	return c == ChannelUserPhone || c == ChannelSellerPhone
}

func (c Channel) IsSeller() bool {
	return c == ChannelSellerPhone || c == ChannelSellerEmail
}

// VerificationStatus is the lifecycle state of a verification record.
// Transitions only move forward: pending -> verified, pending -> expired.
// A record never returns to pending; a new code request replaces it instead.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationExpired  VerificationStatus = "expired"
)

const (
	// VerificationCodeLength is the fixed length of a one-time code.
	VerificationCodeLength = 6
	// MaxVerificationAttempts caps wrong-code submissions per record.
	MaxVerificationAttempts = 3
	// VerificationTTL is how long a code stays valid after creation.
	VerificationTTL = 5 * time.Minute
)

// VerificationRecord is one one-time code issued for an identifier.
// PK: channel, SK: identifier — at most one live record per pair.
type VerificationRecord struct {
	Channel    Channel            `json:"channel" dynamodbav:"channel"`
	Identifier string             `json:"identifier" dynamodbav:"identifier"`
	Code       string             `json:"-" dynamodbav:"code"`
	Status     VerificationStatus `json:"status" dynamodbav:"status"`
	Attempts   int                `json:"attempts" dynamodbav:"attempts"`
	CreatedAt  time.Time          `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt  time.Time          `json:"expires_at" dynamodbav:"expires_at"`
}

// ExpiredBy reports whether the record's code has outlived its TTL at the
// given instant, regardless of the persisted status field.
func (r *VerificationRecord) ExpiredBy(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
