package follow

import (
	"context"
	"fmt"
	"time"

	"github.com/ceptevar-api/internal/domain"
)

type Service interface {
	Follow(ctx context.Context, userID, sellerID string) error
	Unfollow(ctx context.Context, userID, sellerID string) error
	FollowedSellers(ctx context.Context, userID string) ([]domain.Seller, error)
	FollowersCount(ctx context.Context, sellerID string) (int, error)
}

type followStore interface {
	Create(ctx context.Context, f *domain.Follow) error
	Delete(ctx context.Context, userID, sellerID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Follow, error)
	CountBySeller(ctx context.Context, sellerID string) (int, error)
}

type sellerGetter interface {
	Get(ctx context.Context, sellerID string) (*domain.Seller, error)
}

type service struct {
	store   followStore
	sellers sellerGetter
}

func NewService(store followStore, sellers sellerGetter) Service {
	return &service{store: store, sellers: sellers}
}

// Follow adds the seller to the user's followed stores. Following a store
// twice fails with a conflict from the store's conditional write.
func (s *service) Follow(ctx context.Context, userID, sellerID string) error {
	if _, err := s.sellers.Get(ctx, sellerID); err != nil {
		return fmt.Errorf("seller lookup: %w", err)
	}
	return s.store.Create(ctx, &domain.Follow{
		UserID:    userID,
		SellerID:  sellerID,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *service) Unfollow(ctx context.Context, userID, sellerID string) error {
	return s.store.Delete(ctx, userID, sellerID)
}

// FollowedSellers resolves the user's follows into seller profiles. Stores
// deleted since the follow was created are skipped.
func (s *service) FollowedSellers(ctx context.Context, userID string) ([]domain.Seller, error) {
	follows, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sellers := make([]domain.Seller, 0, len(follows))
	for _, f := range follows {
		sel, err := s.sellers.Get(ctx, f.SellerID)
		if err != nil {
			continue
		}
		sellers = append(sellers, *sel)
	}
	return sellers, nil
}

func (s *service) FollowersCount(ctx context.Context, sellerID string) (int, error) {
	if _, err := s.sellers.Get(ctx, sellerID); err != nil {
		return 0, fmt.Errorf("seller lookup: %w", err)
	}
	return s.store.CountBySeller(ctx, sellerID)
}
