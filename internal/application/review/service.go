package review

import (
	"context"
	"fmt"
	"time"

	"github.com/ceptevar-api/internal/domain"
	"github.com/ceptevar-api/internal/pkg/id"
	"github.com/ceptevar-api/internal/pkg/validate"
)

const (
	fieldRating  = "rating"
	fieldComment = "comment"
)

type Service interface {
	Create(ctx context.Context, userID string, req domain.CreateReviewRequest) (*domain.SellerReview, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.SellerReview, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.SellerReview, error)
	Update(ctx context.Context, userID, reviewID string, req domain.UpdateReviewRequest) (*domain.SellerReview, error)
	Delete(ctx context.Context, userID, reviewID string) error
}

type reviewStore interface {
	Put(ctx context.Context, rev *domain.SellerReview) error
	Get(ctx context.Context, reviewID string) (*domain.SellerReview, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.SellerReview, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.SellerReview, error)
	Update(ctx context.Context, reviewID string, updates map[string]interface{}) error
	Delete(ctx context.Context, reviewID string) error
}

type productGetter interface {
	Get(ctx context.Context, productID string) (*domain.Product, error)
}

type service struct {
	store    reviewStore
	products productGetter
}

func NewService(store reviewStore, products productGetter) Service {
	return &service{store: store, products: products}
}

// Create records a buyer's rating of a product. The seller is derived from
// the product, and a user may review a given product only once.
func (s *service) Create(ctx context.Context, userID string, req domain.CreateReviewRequest) (*domain.SellerReview, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	p, err := s.products.Get(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product lookup: %w", err)
	}

	existing, err := s.store.ListByProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	for _, rev := range existing {
		if rev.UserID == userID {
			return nil, fmt.Errorf("product %s already reviewed: %w", req.ProductID, domain.ErrConflict)
		}
	}

	rev := &domain.SellerReview{
		ReviewID:  id.New(),
		ProductID: p.ProductID,
		SellerID:  p.SellerID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Put(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *service) ListBySeller(ctx context.Context, sellerID string) ([]domain.SellerReview, error) {
	return s.store.ListBySeller(ctx, sellerID)
}

func (s *service) ListByProduct(ctx context.Context, productID string) ([]domain.SellerReview, error) {
	return s.store.ListByProduct(ctx, productID)
}

func (s *service) Update(ctx context.Context, userID, reviewID string, req domain.UpdateReviewRequest) (*domain.SellerReview, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.owned(ctx, userID, reviewID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Rating != nil {
		updates[fieldRating] = *req.Rating
	}
	if req.Comment != nil {
		updates[fieldComment] = *req.Comment
	}
	if len(updates) > 0 {
		if err := s.store.Update(ctx, reviewID, updates); err != nil {
			return nil, err
		}
	}
	return s.store.Get(ctx, reviewID)
}

func (s *service) Delete(ctx context.Context, userID, reviewID string) error {
	if _, err := s.owned(ctx, userID, reviewID); err != nil {
		return err
	}
	return s.store.Delete(ctx, reviewID)
}

// owned fetches the review and checks the caller wrote it.
func (s *service) owned(ctx context.Context, userID, reviewID string) (*domain.SellerReview, error) {
	rev, err := s.store.Get(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rev.UserID != userID {
		return nil, fmt.Errorf("review %s: %w", reviewID, domain.ErrForbidden)
	}
	return rev, nil
}
