package domain

import "time"

// CreditCard stores a tokenized card. The PAN never touches the table:
// only the gateway token, brand and last four digits are persisted.
type CreditCard struct {
	CardID      string    `json:"id" dynamodbav:"card_id"`
	UserID      string    `json:"user_id" dynamodbav:"user_id"`
	Token       string    `json:"card_token" dynamodbav:"token"`
	Brand       string    `json:"card_brand" dynamodbav:"brand"`
	Last4       string    `json:"last4" dynamodbav:"last4"`
	HolderName  string    `json:"card_holder_name" dynamodbav:"holder_name"`
	ExpireMonth int       `json:"expiry_month" dynamodbav:"expire_month"`
	ExpireYear  int       `json:"expiry_year" dynamodbav:"expire_year"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
}

type TokenizeCardRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	CardNumber  string `json:"card_number" validate:"required"`
	HolderName  string `json:"card_holder_name" validate:"required"`
	ExpireMonth int    `json:"expire_month" validate:"required"`
	ExpireYear  int    `json:"expire_year" validate:"required"`
}

type TokenizeCardResponse struct {
	CardToken   string `json:"card_token"`
	CardBrand   string `json:"card_brand"`
	Last4       string `json:"last4"`
	ExpireMonth int    `json:"expiry_month"`
	ExpireYear  int    `json:"expiry_year"`
}

type ChargeRequest struct {
	UserID    string  `json:"user_id" validate:"required"`
	CardToken string  `json:"card_token" validate:"required"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	Currency  string  `json:"currency"`
	BasketID  string  `json:"basket_id"`
}

type ChargeResponse struct {
	Status       string `json:"status"`
	PaymentID    string `json:"payment_id,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}
