package address

import (
	"context"
	"fmt"
	"time"

	"github.com/ceptevar-api/internal/domain"
	"github.com/ceptevar-api/internal/pkg/id"
	"github.com/ceptevar-api/internal/pkg/validate"
)

const (
	fieldAddressName     = "address_name"
	fieldCity            = "city"
	fieldDistrict        = "district"
	fieldNeighbourhood   = "neighbourhood"
	fieldStreetName      = "street_name"
	fieldBuildingNumber  = "building_number"
	fieldApartmentNumber = "apartment_number"
)

type Service interface {
	Create(ctx context.Context, userID string, req domain.CreateAddressRequest) (*domain.Address, error)
	List(ctx context.Context, userID string) ([]domain.Address, error)
	Update(ctx context.Context, userID, addressID string, req domain.UpdateAddressRequest) (*domain.Address, error)
	Delete(ctx context.Context, userID, addressID string) error
}

type addressStore interface {
	Put(ctx context.Context, a *domain.Address) error
	Get(ctx context.Context, addressID string) (*domain.Address, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Address, error)
	Update(ctx context.Context, addressID string, updates map[string]interface{}) error
	Delete(ctx context.Context, addressID string) error
}

type service struct {
	store addressStore
}

func NewService(store addressStore) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateAddressRequest) (*domain.Address, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	a := &domain.Address{
		AddressID:       id.New(),
		UserID:          userID,
		AddressName:     req.AddressName,
		City:            req.City,
		District:        req.District,
		Neighbourhood:   req.Neighbourhood,
		StreetName:      req.StreetName,
		BuildingNumber:  req.BuildingNumber,
		ApartmentNumber: req.ApartmentNumber,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.store.Put(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.Address, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID, addressID string, req domain.UpdateAddressRequest) (*domain.Address, error) {
	if _, err := s.owned(ctx, userID, addressID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	set := func(field string, v *string) {
		if v != nil {
			updates[field] = *v
		}
	}
	set(fieldAddressName, req.AddressName)
	set(fieldCity, req.City)
	set(fieldDistrict, req.District)
	set(fieldNeighbourhood, req.Neighbourhood)
	set(fieldStreetName, req.StreetName)
	set(fieldBuildingNumber, req.BuildingNumber)
	set(fieldApartmentNumber, req.ApartmentNumber)

	if len(updates) > 0 {
		if err := s.store.Update(ctx, addressID, updates); err != nil {
			return nil, err
		}
	}
	return s.store.Get(ctx, addressID)
}

func (s *service) Delete(ctx context.Context, userID, addressID string) error {
	if _, err := s.owned(ctx, userID, addressID); err != nil {
		return err
	}
	return s.store.Delete(ctx, addressID)
}

// owned fetches the address and checks it belongs to the caller.
func (s *service) owned(ctx context.Context, userID, addressID string) (*domain.Address, error) {
	a, err := s.store.Get(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, fmt.Errorf("address %s: %w", addressID, domain.ErrForbidden)
	}
	return a, nil
}
