package domain

import "time"

// Address is a delivery address owned by a user account.
type Address struct {
	AddressID       string    `json:"id" dynamodbav:"address_id"`
	UserID          string    `json:"user_id" dynamodbav:"user_id"`
	AddressName     string    `json:"address_name" dynamodbav:"address_name"`
	City            string    `json:"city" dynamodbav:"city"`
	District        string    `json:"district" dynamodbav:"district"`
	Neighbourhood   string    `json:"neighbourhood" dynamodbav:"neighbourhood"`
	StreetName      string    `json:"street_name" dynamodbav:"street_name"`
	BuildingNumber  string    `json:"building_number" dynamodbav:"building_number"`
	ApartmentNumber string    `json:"apartment_number" dynamodbav:"apartment_number"`
	CreatedAt       time.Time `json:"created_at" dynamodbav:"created_at"`
}

type CreateAddressRequest struct {
	AddressName     string `json:"address_name" validate:"required"`
	City            string `json:"city" validate:"required"`
	District        string `json:"district" validate:"required"`
	Neighbourhood   string `json:"neighbourhood" validate:"required"`
	StreetName      string `json:"street_name" validate:"required"`
	BuildingNumber  string `json:"building_number" validate:"required"`
	ApartmentNumber string `json:"apartment_number"`
}

type UpdateAddressRequest struct {
	AddressName     *string `json:"address_name"`
	City            *string `json:"city"`
	District        *string `json:"district"`
	Neighbourhood   *string `json:"neighbourhood"`
	StreetName      *string `json:"street_name"`
	BuildingNumber  *string `json:"building_number"`
	ApartmentNumber *string `json:"apartment_number"`
}
