package dynamo

// DynamoDB attribute names used in update expressions across all repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldEnable        = "enable"
	fieldStatus        = "status"
	fieldAttempts      = "attempts"
	fieldPhoneVerified = "phone_verified"
	fieldEmailVerified = "email_verified"
	fieldUpdatedAt     = "updated_at"
)
