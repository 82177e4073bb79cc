package follow

import (
	"context"
	"fmt"
	"testing"

	"github.com/ceptevar-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFollowStore struct {
	follows map[string]*domain.Follow
}

func newFakeFollowStore() *fakeFollowStore {
	return &fakeFollowStore{follows: make(map[string]*domain.Follow)}
}

func followKey(userID, sellerID string) string { return userID + "|" + sellerID }

func (f *fakeFollowStore) Create(_ context.Context, fl *domain.Follow) error {
	k := followKey(fl.UserID, fl.SellerID)
	if _, ok := f.follows[k]; ok {
		return fmt.Errorf("already following: %w", domain.ErrConflict)
	}
	cp := *fl
	f.follows[k] = &cp
	return nil
}

func (f *fakeFollowStore) Delete(_ context.Context, userID, sellerID string) error {
	k := followKey(userID, sellerID)
	if _, ok := f.follows[k]; !ok {
		return fmt.Errorf("not following: %w", domain.ErrNotFound)
	}
	delete(f.follows, k)
	return nil
}

func (f *fakeFollowStore) ListByUser(_ context.Context, userID string) ([]domain.Follow, error) {
	var out []domain.Follow
	for _, fl := range f.follows {
		if fl.UserID == userID {
			out = append(out, *fl)
		}
	}
	return out, nil
}

func (f *fakeFollowStore) CountBySeller(_ context.Context, sellerID string) (int, error) {
	n := 0
	for _, fl := range f.follows {
		if fl.SellerID == sellerID {
			n++
		}
	}
	return n, nil
}

type stubSellers struct {
	sellers map[string]*domain.Seller
}

func (s *stubSellers) Get(_ context.Context, sellerID string) (*domain.Seller, error) {
	sel, ok := s.sellers[sellerID]
	if !ok {
		return nil, fmt.Errorf("seller: %w", domain.ErrNotFound)
	}
	return sel, nil
}

func newTestService() (Service, *fakeFollowStore, *stubSellers) {
	store := newFakeFollowStore()
	sellers := &stubSellers{sellers: map[string]*domain.Seller{
		"seller-1": {SellerID: "seller-1", StoreName: "Teknosepet"},
	}}
	return NewService(store, sellers), store, sellers
}

func TestFollow(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "user-1", "seller-1"))

	count, err := svc.FollowersCount(ctx, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFollow_Twice(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "user-1", "seller-1"))
	err := svc.Follow(ctx, "user-1", "seller-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestFollow_UnknownSeller(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Follow(context.Background(), "user-1", "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUnfollow(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, "user-1", "seller-1"))
	require.NoError(t, svc.Unfollow(ctx, "user-1", "seller-1"))

	err := svc.Unfollow(ctx, "user-1", "seller-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFollowedSellers_SkipsDeletedStores(t *testing.T) {
	svc, _, sellers := newTestService()
	ctx := context.Background()
	sellers.sellers["seller-2"] = &domain.Seller{SellerID: "seller-2", StoreName: "Modacim"}

	require.NoError(t, svc.Follow(ctx, "user-1", "seller-1"))
	require.NoError(t, svc.Follow(ctx, "user-1", "seller-2"))
	delete(sellers.sellers, "seller-2")

	followed, err := svc.FollowedSellers(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, followed, 1)
	assert.Equal(t, "seller-1", followed[0].SellerID)
}
