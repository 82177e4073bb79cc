package domain

import "time"

// VerifiedState is the verification status of an account's contact identifier.
// Mutated only by the account linker after a verification record turns verified.
type VerifiedState string

const (
	VerifiedStatePending  VerifiedState = "pending"
	VerifiedStateVerified VerifiedState = "verified"
)

type User struct {
	UserID        string        `json:"id" dynamodbav:"user_id"`
	NameSurname   string        `json:"name_surname" dynamodbav:"name_surname"`
	Email         string        `json:"email" dynamodbav:"email"`
	Phone         string        `json:"phone_number" dynamodbav:"phone"`
	PasswordHash  string        `json:"-" dynamodbav:"password_hash"`
	PhoneVerified VerifiedState `json:"phone_verified" dynamodbav:"phone_verified"`
	EmailVerified VerifiedState `json:"email_verified" dynamodbav:"email_verified"`
	Language      string        `json:"language,omitempty" dynamodbav:"language"`
	Enable        int           `json:"enable" dynamodbav:"enable"`
	CreatedAt     time.Time     `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" dynamodbav:"updated_at"`
}

type CreateUserRequest struct {
	NameSurname string `json:"name_surname" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone_number" validate:"required"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Language    string `json:"language"`
}

type UpdateUserRequest struct {
	NameSurname *string `json:"name_surname"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone_number"`
	Password    *string `json:"password" validate:"omitempty,min=8,max=72"`
	Language    *string `json:"language"`
}
