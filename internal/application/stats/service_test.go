package stats

import (
	"context"
	"fmt"
	"testing"

	"github.com/ceptevar-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProducts struct{ products []domain.Product }

func (s *stubProducts) ListBySeller(context.Context, string) ([]domain.Product, error) {
	return s.products, nil
}

type stubOrders struct{ orders []domain.Order }

func (s *stubOrders) ListBySeller(context.Context, string) ([]domain.Order, error) {
	return s.orders, nil
}

type stubReviews struct{ reviews []domain.SellerReview }

func (s *stubReviews) ListBySeller(context.Context, string) ([]domain.SellerReview, error) {
	return s.reviews, nil
}

type stubFollows struct{ count int }

func (s *stubFollows) CountBySeller(context.Context, string) (int, error) {
	return s.count, nil
}

type stubUsers struct{ users map[string]*domain.User }

func (s *stubUsers) Get(_ context.Context, userID string) (*domain.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	return u, nil
}

func TestSellerStatistics(t *testing.T) {
	products := &stubProducts{products: []domain.Product{
		{ProductID: "prod-1", Name: "Kulaklik"},
		{ProductID: "prod-2", Name: "Sarj Kablosu"},
	}}
	orders := &stubOrders{orders: []domain.Order{
		{UserID: "user-1", ProductID: "prod-1", Quantity: 2, Status: domain.OrderDelivered},
		{UserID: "user-1", ProductID: "prod-2", Quantity: 1, Status: domain.OrderPending},
		{UserID: "user-2", ProductID: "prod-1", Quantity: 1, Status: domain.OrderShipped},
	}}
	reviews := &stubReviews{reviews: []domain.SellerReview{
		{Rating: 5}, {Rating: 4},
	}}
	users := &stubUsers{users: map[string]*domain.User{
		"user-1": {UserID: "user-1", NameSurname: "Ali Veli"},
	}}

	svc := NewService(products, orders, reviews, &stubFollows{count: 7}, users)

	st, err := svc.SellerStatistics(context.Background(), "seller-1")
	require.NoError(t, err)

	assert.Equal(t, 2, st.TotalProducts)
	assert.Equal(t, 3, st.TotalOrders)
	assert.Equal(t, 1, st.PendingOrders)
	assert.Equal(t, 1, st.ShippedOrders)
	assert.Equal(t, 1, st.DeliveredOrders)
	assert.Equal(t, 0, st.CancelledOrders)

	assert.Equal(t, "Ali Veli", st.TopCustomer)
	assert.Equal(t, 2, st.TopCustomerOrders)
	assert.Equal(t, "Kulaklik", st.BestSellingProduct)
	assert.Equal(t, 3, st.BestSellingCount)

	assert.Equal(t, 2, st.ReviewCount)
	assert.InDelta(t, 4.5, st.AverageRating, 0.001)
	assert.Equal(t, 7, st.FollowersCount)
}

func TestSellerStatistics_EmptyStore(t *testing.T) {
	svc := NewService(&stubProducts{}, &stubOrders{}, &stubReviews{}, &stubFollows{}, &stubUsers{})

	st, err := svc.SellerStatistics(context.Background(), "seller-1")
	require.NoError(t, err)

	assert.Zero(t, st.TotalProducts)
	assert.Zero(t, st.TotalOrders)
	assert.Empty(t, st.TopCustomer)
	assert.Empty(t, st.BestSellingProduct)
	assert.Zero(t, st.AverageRating)
	assert.Zero(t, st.FollowersCount)
}
