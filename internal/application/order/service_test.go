package order

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ceptevar-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]*domain.Order)}
}

func (f *fakeOrderStore) Put(_ context.Context, o *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *o
	f.orders[o.OrderID] = &cp
	return nil
}

func (f *fakeOrderStore) Get(_ context.Context, id string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, fmt.Errorf("order: %w", domain.ErrNotFound)
}

func (f *fakeOrderStore) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) ListBySeller(_ context.Context, sellerID string) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Order
	for _, o := range f.orders {
		if o.SellerID == sellerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) Update(_ context.Context, id string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return fmt.Errorf("order: %w", domain.ErrNotFound)
	}
	if v, ok := updates[fieldStatus].(string); ok {
		o.Status = domain.OrderStatus(v)
	}
	return nil
}

type stubProducts struct{ products map[string]*domain.Product }

func (s stubProducts) Get(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("product: %w", domain.ErrNotFound)
}

type stubUsers struct{ users map[string]*domain.User }

func (s stubUsers) Get(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
}

type captureNotifier struct {
	mu   sync.Mutex
	sent []string
	done chan struct{}
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{done: make(chan struct{}, 8)}
}

func (c *captureNotifier) SendOrderStatus(_ context.Context, phoneNumber, orderNumber string, status domain.OrderStatus, lang string) {
	c.mu.Lock()
	c.sent = append(c.sent, fmt.Sprintf("%s|%s|%s|%s", phoneNumber, orderNumber, status, lang))
	c.mu.Unlock()
	c.done <- struct{}{}
}

func (c *captureNotifier) wait(t *testing.T) string {
	t.Helper()
	select {
	case <-c.done:
	case <-time.After(2 * time.Second):
		t.Fatal("no notification arrived")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sent[len(c.sent)-1]
}

func newTestService() (Service, *fakeOrderStore, *captureNotifier) {
	store := newFakeOrderStore()
	notifier := newCaptureNotifier()
	products := stubProducts{products: map[string]*domain.Product{
		"p1": {ProductID: "p1", SellerID: "s1", Price: 100},
	}}
	users := stubUsers{users: map[string]*domain.User{
		"u1": {UserID: "u1", Phone: "+905551234567", Language: "tr"},
	}}
	return NewService(store, products, users, notifier), store, notifier
}

func validReq() domain.CreateOrderRequest {
	return domain.CreateOrderRequest{
		UserID:          "u1",
		SellerID:        "s1",
		ProductID:       "p1",
		Quantity:        2,
		TotalPrice:      200,
		ShippingAddress: "Kadıköy, İstanbul",
	}
}

func TestCreate(t *testing.T) {
	svc, _, _ := newTestService()

	o, err := svc.Create(context.Background(), validReq())
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, o.Status)
	assert.Regexp(t, `^CV-\d{8}-[0-9A-Z]{1,6}$`, o.OrderNumber)
}

func TestCreate_ProductSellerMismatch(t *testing.T) {
	svc, _, _ := newTestService()

	req := validReq()
	req.SellerID = "someone-else"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestCreate_UnknownProduct(t *testing.T) {
	svc, _, _ := newTestService()

	req := validReq()
	req.ProductID = "missing"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_NotifiesBuyer(t *testing.T) {
	svc, _, notifier := newTestService()
	o, err := svc.Create(context.Background(), validReq())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), "s1", o.OrderID, domain.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderShipped, updated.Status)

	msg := notifier.wait(t)
	assert.Equal(t, fmt.Sprintf("+905551234567|%s|shipped|tr", o.OrderNumber), msg)
}

func TestUpdateStatus_WrongSeller(t *testing.T) {
	svc, _, _ := newTestService()
	o, err := svc.Create(context.Background(), validReq())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "s2", o.OrderID, domain.OrderShipped)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateStatus_FinalStatesLocked(t *testing.T) {
	svc, _, notifier := newTestService()
	o, err := svc.Create(context.Background(), validReq())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "s1", o.OrderID, domain.OrderDelivered)
	require.NoError(t, err)
	notifier.wait(t)

	_, err = svc.UpdateStatus(context.Background(), "s1", o.OrderID, domain.OrderShipped)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCancel(t *testing.T) {
	svc, _, notifier := newTestService()
	o, err := svc.Create(context.Background(), validReq())
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), "u1", o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, cancelled.Status)
	notifier.wait(t)

	// A cancelled order cannot be cancelled again.
	_, err = svc.Cancel(context.Background(), "u1", o.OrderID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCancel_AfterShipment(t *testing.T) {
	svc, _, notifier := newTestService()
	o, err := svc.Create(context.Background(), validReq())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "s1", o.OrderID, domain.OrderShipped)
	require.NoError(t, err)
	notifier.wait(t)

	_, err = svc.Cancel(context.Background(), "u1", o.OrderID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
