package domain

import "time"

// SellerReview is a buyer's rating of a product and the seller behind it.
// A user reviews a given product at most once.
type SellerReview struct {
	ReviewID  string    `json:"id" dynamodbav:"review_id"`
	ProductID string    `json:"product_id" dynamodbav:"product_id"`
	SellerID  string    `json:"seller_id" dynamodbav:"seller_id"`
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	Rating    int       `json:"rating" dynamodbav:"rating"`
	Comment   string    `json:"comment,omitempty" dynamodbav:"comment"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

type CreateReviewRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}
