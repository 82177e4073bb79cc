package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ceptevar-api/internal/domain"
	"github.com/ceptevar-api/internal/pkg/id"
	"github.com/ceptevar-api/internal/pkg/validate"
)

const (
	fieldStatus = "status"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, sellerID, orderID string, status domain.OrderStatus) (*domain.Order, error)
	Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error)
}

type orderStore interface {
	Put(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Order, error)
	Update(ctx context.Context, orderID string, updates map[string]interface{}) error
}

type productGetter interface {
	Get(ctx context.Context, productID string) (*domain.Product, error)
}

type userGetter interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type statusNotifier interface {
	SendOrderStatus(ctx context.Context, phoneNumber, orderNumber string, status domain.OrderStatus, lang string)
}

type service struct {
	store    orderStore
	products productGetter
	users    userGetter
	notifier statusNotifier
}

func NewService(store orderStore, products productGetter, users userGetter, notifier statusNotifier) Service {
	return &service{store: store, products: products, users: users, notifier: notifier}
}

// Create places an order. The product must exist and belong to the seller
// named in the request; the order starts out pending.
func (s *service) Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	p, err := s.products.Get(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product lookup: %w", err)
	}
	if p.SellerID != req.SellerID {
		return nil, fmt.Errorf("product belongs to another seller: %w", domain.ErrBadRequest)
	}
	if _, err := s.users.Get(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}

	now := time.Now().UTC()
	orderID := id.New()
	o := &domain.Order{
		OrderID:         orderID,
		OrderNumber:     orderNumber(orderID, now),
		UserID:          req.UserID,
		SellerID:        req.SellerID,
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		TotalPrice:      req.TotalPrice,
		Status:          domain.OrderPending,
		ShippingAddress: req.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Put(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.store.Get(ctx, orderID)
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *service) ListBySeller(ctx context.Context, sellerID string) ([]domain.Order, error) {
	return s.store.ListBySeller(ctx, sellerID)
}

// UpdateStatus moves an order to a new state and texts the buyer about it.
// Only the order's seller may change it; delivered and cancelled orders are
// final.
func (s *service) UpdateStatus(ctx context.Context, sellerID, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("status %q: %w", status, domain.ErrBadRequest)
	}
	o, err := s.store.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.SellerID != sellerID {
		return nil, fmt.Errorf("order belongs to another seller: %w", domain.ErrForbidden)
	}
	if o.Status == domain.OrderDelivered || o.Status == domain.OrderCancelled {
		return nil, fmt.Errorf("order already %s: %w", o.Status, domain.ErrConflict)
	}
	if err := s.store.Update(ctx, orderID, map[string]interface{}{fieldStatus: string(status)}); err != nil {
		return nil, err
	}
	o.Status = status

	s.notifyBuyer(o)
	return o, nil
}

// Cancel lets the buyer withdraw an order that has not shipped yet.
func (s *service) Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	o, err := s.store.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, fmt.Errorf("order belongs to another user: %w", domain.ErrForbidden)
	}
	if o.Status != domain.OrderPending && o.Status != domain.OrderConfirmed {
		return nil, fmt.Errorf("order already %s: %w", o.Status, domain.ErrConflict)
	}
	if err := s.store.Update(ctx, orderID, map[string]interface{}{fieldStatus: string(domain.OrderCancelled)}); err != nil {
		return nil, err
	}
	o.Status = domain.OrderCancelled

	s.notifyBuyer(o)
	return o, nil
}

func (s *service) notifyBuyer(o *domain.Order) {
	go func() {
		ctx := context.Background()
		u, err := s.users.Get(ctx, o.UserID)
		if err != nil {
			return
		}
		s.notifier.SendOrderStatus(ctx, u.Phone, o.OrderNumber, o.Status, u.Language)
	}()
}

// orderNumber builds a human-readable reference like "CV-20260831-1A2B3C".
func orderNumber(orderID string, now time.Time) string {
	suffix := orderID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return fmt.Sprintf("CV-%s-%s", now.Format("20060102"), strings.ToUpper(suffix))
}
