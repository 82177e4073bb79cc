package domain

import "time"

type Seller struct {
	SellerID         string        `json:"id" dynamodbav:"seller_id"`
	Name             string        `json:"name" dynamodbav:"name"`
	Email            string        `json:"email" dynamodbav:"email"`
	Phone            string        `json:"phone" dynamodbav:"phone"`
	PasswordHash     string        `json:"-" dynamodbav:"password_hash"`
	PhoneVerified    VerifiedState `json:"phone_verified" dynamodbav:"phone_verified"`
	EmailVerified    VerifiedState `json:"email_verified" dynamodbav:"email_verified"`
	StoreName        string        `json:"store_name" dynamodbav:"store_name"`
	StoreDescription string        `json:"store_description,omitempty" dynamodbav:"store_description"`
	StoreLogoURL     string        `json:"store_logo_url,omitempty" dynamodbav:"store_logo_url"`
	CargoCompany     string        `json:"cargo_company" dynamodbav:"cargo_company"`
	Enable           int           `json:"enable" dynamodbav:"enable"`
	CreatedAt        time.Time     `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" dynamodbav:"updated_at"`
}

type CreateSellerRequest struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"required"`
	Password         string `json:"password" validate:"required,min=8,max=72"`
	StoreName        string `json:"store_name" validate:"required"`
	StoreDescription string `json:"store_description"`
	CargoCompany     string `json:"cargo_company"`
	Language         string `json:"language"`
}

type UpdateSellerRequest struct {
	Name             *string `json:"name"`
	Email            *string `json:"email" validate:"omitempty,email"`
	Phone            *string `json:"phone"`
	Password         *string `json:"password" validate:"omitempty,min=8,max=72"`
	StoreName        *string `json:"store_name"`
	StoreDescription *string `json:"store_description"`
	StoreLogoURL     *string `json:"store_logo_url"`
	CargoCompany     *string `json:"cargo_company"`
}
