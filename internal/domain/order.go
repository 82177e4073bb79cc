package domain

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	OrderID         string      `json:"id" dynamodbav:"order_id"`
	OrderNumber     string      `json:"order_number" dynamodbav:"order_number"`
	UserID          string      `json:"user_id" dynamodbav:"user_id"`
	SellerID        string      `json:"seller_id" dynamodbav:"seller_id"`
	ProductID       string      `json:"product_id" dynamodbav:"product_id"`
	Quantity        int         `json:"quantity" dynamodbav:"quantity"`
	TotalPrice      float64     `json:"total_price" dynamodbav:"total_price"`
	Status          OrderStatus `json:"status" dynamodbav:"status"`
	ShippingAddress string      `json:"shipping_address" dynamodbav:"shipping_address"`
	CreatedAt       time.Time   `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" dynamodbav:"updated_at"`
}

type CreateOrderRequest struct {
	UserID          string  `json:"user_id" validate:"required"`
	SellerID        string  `json:"seller_id" validate:"required"`
	ProductID       string  `json:"product_id" validate:"required"`
	Quantity        int     `json:"quantity" validate:"required,gt=0"`
	TotalPrice      float64 `json:"total_price" validate:"required,gt=0"`
	ShippingAddress string  `json:"shipping_address"`
}
