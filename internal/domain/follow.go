package domain

import "time"

// Follow records that a user follows a seller's store. The (user, seller)
// pair is the table key, so following twice cannot create two rows.
type Follow struct {
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	SellerID  string    `json:"seller_id" dynamodbav:"seller_id"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// SellerStatistics aggregates a store's trading activity for its dashboard.
type SellerStatistics struct {
	TotalProducts      int     `json:"total_products"`
	TotalOrders        int     `json:"total_orders"`
	PendingOrders      int     `json:"pending_orders"`
	ConfirmedOrders    int     `json:"confirmed_orders"`
	ShippedOrders      int     `json:"shipped_orders"`
	DeliveredOrders    int     `json:"delivered_orders"`
	CancelledOrders    int     `json:"cancelled_orders"`
	TopCustomer        string  `json:"top_customer,omitempty"`
	TopCustomerOrders  int     `json:"top_customer_orders,omitempty"`
	BestSellingProduct string  `json:"best_selling_product,omitempty"`
	BestSellingCount   int     `json:"best_selling_count,omitempty"`
	AverageRating      float64 `json:"average_rating"`
	ReviewCount        int     `json:"review_count"`
	FollowersCount     int     `json:"followers_count"`
}
