package review

import (
	"context"
	"fmt"
	"testing"

	"github.com/ceptevar-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviewStore struct {
	reviews map[string]*domain.SellerReview
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: make(map[string]*domain.SellerReview)}
}

func (f *fakeReviewStore) Put(_ context.Context, rev *domain.SellerReview) error {
	cp := *rev
	f.reviews[rev.ReviewID] = &cp
	return nil
}

func (f *fakeReviewStore) Get(_ context.Context, reviewID string) (*domain.SellerReview, error) {
	rev, ok := f.reviews[reviewID]
	if !ok {
		return nil, fmt.Errorf("review: %w", domain.ErrNotFound)
	}
	cp := *rev
	return &cp, nil
}

func (f *fakeReviewStore) ListBySeller(_ context.Context, sellerID string) ([]domain.SellerReview, error) {
	var out []domain.SellerReview
	for _, rev := range f.reviews {
		if rev.SellerID == sellerID {
			out = append(out, *rev)
		}
	}
	return out, nil
}

func (f *fakeReviewStore) ListByProduct(_ context.Context, productID string) ([]domain.SellerReview, error) {
	var out []domain.SellerReview
	for _, rev := range f.reviews {
		if rev.ProductID == productID {
			out = append(out, *rev)
		}
	}
	return out, nil
}

func (f *fakeReviewStore) Update(_ context.Context, reviewID string, updates map[string]interface{}) error {
	rev, ok := f.reviews[reviewID]
	if !ok {
		return fmt.Errorf("review: %w", domain.ErrNotFound)
	}
	if v, ok := updates[fieldRating].(int); ok {
		rev.Rating = v
	}
	if v, ok := updates[fieldComment].(string); ok {
		rev.Comment = v
	}
	return nil
}

func (f *fakeReviewStore) Delete(_ context.Context, reviewID string) error {
	delete(f.reviews, reviewID)
	return nil
}

type stubProducts struct {
	products map[string]*domain.Product
}

func (s *stubProducts) Get(_ context.Context, productID string) (*domain.Product, error) {
	p, ok := s.products[productID]
	if !ok {
		return nil, fmt.Errorf("product: %w", domain.ErrNotFound)
	}
	return p, nil
}

func newTestService() (Service, *fakeReviewStore) {
	store := newFakeReviewStore()
	products := &stubProducts{products: map[string]*domain.Product{
		"prod-1": {ProductID: "prod-1", SellerID: "seller-1", Name: "Kulaklik"},
	}}
	return NewService(store, products), store
}

func TestCreate(t *testing.T) {
	svc, _ := newTestService()

	rev, err := svc.Create(context.Background(), "user-1", domain.CreateReviewRequest{
		ProductID: "prod-1",
		Rating:    5,
		Comment:   "Hizli kargo",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rev.ReviewID)
	assert.Equal(t, "seller-1", rev.SellerID)
	assert.Equal(t, 5, rev.Rating)
}

func TestCreate_RatingBounds(t *testing.T) {
	svc, _ := newTestService()

	for _, rating := range []int{0, 6} {
		_, err := svc.Create(context.Background(), "user-1", domain.CreateReviewRequest{
			ProductID: "prod-1",
			Rating:    rating,
		})
		assert.ErrorIs(t, err, domain.ErrBadRequest, "rating %d", rating)
	}
}

func TestCreate_UnknownProduct(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), "user-1", domain.CreateReviewRequest{
		ProductID: "missing",
		Rating:    4,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_OneReviewPerProduct(t *testing.T) {
	svc, _ := newTestService()
	req := domain.CreateReviewRequest{ProductID: "prod-1", Rating: 4}

	_, err := svc.Create(context.Background(), "user-1", req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// A different buyer can still review the same product.
	_, err = svc.Create(context.Background(), "user-2", req)
	assert.NoError(t, err)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	svc, _ := newTestService()

	rev, err := svc.Create(context.Background(), "user-1", domain.CreateReviewRequest{ProductID: "prod-1", Rating: 2})
	require.NoError(t, err)

	rating := 4
	updated, err := svc.Update(context.Background(), "user-1", rev.ReviewID, domain.UpdateReviewRequest{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)

	_, err = svc.Update(context.Background(), "user-2", rev.ReviewID, domain.UpdateReviewRequest{Rating: &rating})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDelete_OwnerOnly(t *testing.T) {
	svc, store := newTestService()

	rev, err := svc.Create(context.Background(), "user-1", domain.CreateReviewRequest{ProductID: "prod-1", Rating: 3})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "user-2", rev.ReviewID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), "user-1", rev.ReviewID))
	_, err = store.Get(context.Background(), rev.ReviewID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
