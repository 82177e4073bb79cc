package product

import (
	"context"
	"fmt"
	"time"

	"github.com/ceptevar-api/internal/domain"
	"github.com/ceptevar-api/internal/pkg/id"
	"github.com/ceptevar-api/internal/pkg/validate"
)

const (
	fieldName        = "name"
	fieldPrice       = "price"
	fieldDescription = "description"
	fieldCategory    = "category"
	fieldImageURL    = "image_url"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	Get(ctx context.Context, productID string) (*domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
	Update(ctx context.Context, sellerID, productID string, req domain.UpdateProductRequest) (*domain.Product, error)
	UploadImage(ctx context.Context, sellerID, productID, filename, b64Data string) (string, error)
	Delete(ctx context.Context, sellerID, productID string) error
}

type productStore interface {
	Put(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, productID string) (*domain.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, productID string, updates map[string]interface{}) error
	Delete(ctx context.Context, productID string) error
}

type sellerGetter interface {
	Get(ctx context.Context, sellerID string) (*domain.Seller, error)
}

type imageStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	store   productStore
	sellers sellerGetter
	images  imageStore
}

func NewService(store productStore, sellers sellerGetter, images imageStore) Service {
	return &service{store: store, sellers: sellers, images: images}
}

func (s *service) Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.sellers.Get(ctx, req.SellerID); err != nil {
		return nil, fmt.Errorf("seller lookup: %w", err)
	}

	now := time.Now().UTC()
	p := &domain.Product{
		ProductID:   id.New(),
		SellerID:    req.SellerID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, productID string) (*domain.Product, error) {
	return s.store.Get(ctx, productID)
}

func (s *service) ListAll(ctx context.Context) ([]domain.Product, error) {
	return s.store.ListAll(ctx)
}

func (s *service) ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error) {
	return s.store.ListBySeller(ctx, sellerID)
}

// Update applies a partial update. Only the owning seller may touch a product.
func (s *service) Update(ctx context.Context, sellerID, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	p, err := s.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Price != nil {
		updates[fieldPrice] = *req.Price
	}
	if req.Description != nil {
		updates[fieldDescription] = *req.Description
	}
	if req.Category != nil {
		updates[fieldCategory] = *req.Category
	}
	if req.ImageURL != nil {
		updates[fieldImageURL] = *req.ImageURL
	}
	if len(updates) == 0 {
		return p, nil
	}
	if err := s.store.Update(ctx, productID, updates); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, productID)
}

// UploadImage stores a product image in S3 and persists its URL.
func (s *service) UploadImage(ctx context.Context, sellerID, productID, filename, b64Data string) (string, error) {
	if _, err := s.ownedProduct(ctx, sellerID, productID); err != nil {
		return "", err
	}
	key := fmt.Sprintf("products/%s/%s", productID, filename)
	url, err := s.images.UploadBase64(ctx, key, b64Data)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if err := s.store.Update(ctx, productID, map[string]interface{}{fieldImageURL: url}); err != nil {
		return "", err
	}
	return url, nil
}

func (s *service) Delete(ctx context.Context, sellerID, productID string) error {
	if _, err := s.ownedProduct(ctx, sellerID, productID); err != nil {
		return err
	}
	return s.store.Delete(ctx, productID)
}

func (s *service) ownedProduct(ctx context.Context, sellerID, productID string) (*domain.Product, error) {
	p, err := s.store.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.SellerID != sellerID {
		return nil, fmt.Errorf("product belongs to another seller: %w", domain.ErrForbidden)
	}
	return p, nil
}
