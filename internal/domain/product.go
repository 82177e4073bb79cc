package domain

import "time"

type Product struct {
	ProductID   string    `json:"id" dynamodbav:"product_id"`
	SellerID    string    `json:"seller_id" dynamodbav:"seller_id"`
	Name        string    `json:"product_name" dynamodbav:"name"`
	Price       float64   `json:"product_price" dynamodbav:"price"`
	Description string    `json:"product_description" dynamodbav:"description"`
	Category    string    `json:"product_category" dynamodbav:"category"`
	ImageURL    string    `json:"product_image_url,omitempty" dynamodbav:"image_url"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

type CreateProductRequest struct {
	SellerID    string  `json:"seller_id" validate:"required"`
	Name        string  `json:"product_name" validate:"required"`
	Price       float64 `json:"product_price" validate:"required,gt=0"`
	Description string  `json:"product_description"`
	Category    string  `json:"product_category"`
	ImageURL    string  `json:"product_image_url"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"product_name"`
	Price       *float64 `json:"product_price" validate:"omitempty,gt=0"`
	Description *string  `json:"product_description"`
	Category    *string  `json:"product_category"`
	ImageURL    *string  `json:"product_image_url"`
}
