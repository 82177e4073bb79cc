package stats

import (
	"context"
	"fmt"

	"github.com/ceptevar-api/internal/domain"
)

type Service interface {
	SellerStatistics(ctx context.Context, sellerID string) (*domain.SellerStatistics, error)
}

type productLister interface {
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
}

type orderLister interface {
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Order, error)
}

type reviewLister interface {
	ListBySeller(ctx context.Context, sellerID string) ([]domain.SellerReview, error)
}

type followCounter interface {
	CountBySeller(ctx context.Context, sellerID string) (int, error)
}

type userGetter interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	products productLister
	orders   orderLister
	reviews  reviewLister
	follows  followCounter
	users    userGetter
}

func NewService(products productLister, orders orderLister, reviews reviewLister, follows followCounter, users userGetter) Service {
	return &service{products: products, orders: orders, reviews: reviews, follows: follows, users: users}
}

// SellerStatistics aggregates the store's dashboard numbers: counts by order
// status, the top customer, the best-selling product, review averages and
// follower count.
func (s *service) SellerStatistics(ctx context.Context, sellerID string) (*domain.SellerStatistics, error) {
	products, err := s.products.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	orders, err := s.orders.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	out := &domain.SellerStatistics{
		TotalProducts: len(products),
		TotalOrders:   len(orders),
	}

	customerOrders := make(map[string]int)
	productSales := make(map[string]int)
	for _, o := range orders {
		switch o.Status {
		case domain.OrderPending:
			out.PendingOrders++
		case domain.OrderConfirmed:
			out.ConfirmedOrders++
		case domain.OrderShipped:
			out.ShippedOrders++
		case domain.OrderDelivered:
			out.DeliveredOrders++
		case domain.OrderCancelled:
			out.CancelledOrders++
		}
		customerOrders[o.UserID]++
		productSales[o.ProductID] += o.Quantity
	}

	if topUserID, n := maxEntry(customerOrders); n > 0 {
		out.TopCustomerOrders = n
		if u, err := s.users.Get(ctx, topUserID); err == nil {
			out.TopCustomer = u.NameSurname
		}
	}
	if topProductID, n := maxEntry(productSales); n > 0 {
		out.BestSellingCount = n
		for _, p := range products {
			if p.ProductID == topProductID {
				out.BestSellingProduct = p.Name
				break
			}
		}
	}

	reviews, err := s.reviews.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	out.ReviewCount = len(reviews)
	if len(reviews) > 0 {
		sum := 0
		for _, rev := range reviews {
			sum += rev.Rating
		}
		out.AverageRating = float64(sum) / float64(len(reviews))
	}

	followers, err := s.follows.CountBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	out.FollowersCount = followers

	return out, nil
}

func maxEntry(m map[string]int) (string, int) {
	var bestKey string
	best := 0
	for k, n := range m {
		if n > best || (n == best && k < bestKey) {
			bestKey, best = k, n
		}
	}
	return bestKey, best
}
