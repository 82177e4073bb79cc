package address

import (
	"context"
	"fmt"
	"testing"

	"github.com/ceptevar-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAddressStore struct {
	addresses map[string]*domain.Address
}

func newFakeAddressStore() *fakeAddressStore {
	return &fakeAddressStore{addresses: make(map[string]*domain.Address)}
}

func (f *fakeAddressStore) Put(_ context.Context, a *domain.Address) error {
	cp := *a
	f.addresses[a.AddressID] = &cp
	return nil
}

func (f *fakeAddressStore) Get(_ context.Context, addressID string) (*domain.Address, error) {
	a, ok := f.addresses[addressID]
	if !ok {
		return nil, fmt.Errorf("address: %w", domain.ErrNotFound)
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAddressStore) ListByUser(_ context.Context, userID string) ([]domain.Address, error) {
	var out []domain.Address
	for _, a := range f.addresses {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAddressStore) Update(_ context.Context, addressID string, updates map[string]interface{}) error {
	a, ok := f.addresses[addressID]
	if !ok {
		return fmt.Errorf("address: %w", domain.ErrNotFound)
	}
	if v, ok := updates[fieldCity].(string); ok {
		a.City = v
	}
	if v, ok := updates[fieldAddressName].(string); ok {
		a.AddressName = v
	}
	return nil
}

func (f *fakeAddressStore) Delete(_ context.Context, addressID string) error {
	delete(f.addresses, addressID)
	return nil
}

func validAddress() domain.CreateAddressRequest {
	return domain.CreateAddressRequest{
		AddressName:    "Ev",
		City:           "Istanbul",
		District:       "Kadikoy",
		Neighbourhood:  "Moda",
		StreetName:     "Bahariye Cd.",
		BuildingNumber: "12",
	}
}

func TestCreate(t *testing.T) {
	store := newFakeAddressStore()
	svc := NewService(store)

	a, err := svc.Create(context.Background(), "user-1", validAddress())
	require.NoError(t, err)
	assert.NotEmpty(t, a.AddressID)
	assert.Equal(t, "user-1", a.UserID)
	assert.Equal(t, "Istanbul", a.City)
}

func TestCreate_MissingCity(t *testing.T) {
	svc := NewService(newFakeAddressStore())

	req := validAddress()
	req.City = ""
	_, err := svc.Create(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestList_OnlyOwnAddresses(t *testing.T) {
	store := newFakeAddressStore()
	svc := NewService(store)

	_, err := svc.Create(context.Background(), "user-1", validAddress())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "user-2", validAddress())
	require.NoError(t, err)

	mine, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	store := newFakeAddressStore()
	svc := NewService(store)

	a, err := svc.Create(context.Background(), "user-1", validAddress())
	require.NoError(t, err)

	city := "Ankara"
	updated, err := svc.Update(context.Background(), "user-1", a.AddressID, domain.UpdateAddressRequest{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Ankara", updated.City)

	_, err = svc.Update(context.Background(), "user-2", a.AddressID, domain.UpdateAddressRequest{City: &city})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDelete_OwnerOnly(t *testing.T) {
	store := newFakeAddressStore()
	svc := NewService(store)

	a, err := svc.Create(context.Background(), "user-1", validAddress())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "user-2", a.AddressID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), "user-1", a.AddressID))
	_, err = store.Get(context.Background(), a.AddressID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
