package card

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ceptevar-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCardStore struct {
	cards map[string]*domain.CreditCard
}

func newFakeCardStore() *fakeCardStore {
	return &fakeCardStore{cards: make(map[string]*domain.CreditCard)}
}

func (f *fakeCardStore) Put(_ context.Context, c *domain.CreditCard) error {
	cp := *c
	f.cards[c.CardID] = &cp
	return nil
}

func (f *fakeCardStore) Get(_ context.Context, id string) (*domain.CreditCard, error) {
	if c, ok := f.cards[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, fmt.Errorf("card: %w", domain.ErrNotFound)
}

func (f *fakeCardStore) ListByUser(_ context.Context, userID string) ([]domain.CreditCard, error) {
	var out []domain.CreditCard
	for _, c := range f.cards {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCardStore) Delete(_ context.Context, id string) error {
	delete(f.cards, id)
	return nil
}

func futureYear() int { return time.Now().Year() + 2 }

func validReq() domain.TokenizeCardRequest {
	return domain.TokenizeCardRequest{
		UserID:      "u1",
		CardNumber:  "4111 1111 1111 1111",
		HolderName:  "Ali Veli",
		ExpireMonth: 12,
		ExpireYear:  futureYear(),
	}
}

func TestTokenize(t *testing.T) {
	svc := NewService(newFakeCardStore())

	resp, err := svc.Tokenize(context.Background(), validReq())
	require.NoError(t, err)
	assert.True(t, len(resp.CardToken) > 10)
	assert.Equal(t, "visa", resp.CardBrand)
	assert.Equal(t, "1111", resp.Last4)
}

func TestTokenize_StoresNoPAN(t *testing.T) {
	store := newFakeCardStore()
	svc := NewService(store)

	_, err := svc.Tokenize(context.Background(), validReq())
	require.NoError(t, err)

	for _, c := range store.cards {
		assert.NotContains(t, c.Token, "4111")
		assert.Equal(t, "1111", c.Last4)
	}
}

func TestTokenize_LuhnFailure(t *testing.T) {
	svc := NewService(newFakeCardStore())

	req := validReq()
	req.CardNumber = "4111111111111112"
	_, err := svc.Tokenize(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
}

func TestTokenize_ExpiredCard(t *testing.T) {
	svc := NewService(newFakeCardStore())

	req := validReq()
	req.ExpireYear = time.Now().Year() - 1
	_, err := svc.Tokenize(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestDetectBrand(t *testing.T) {
	cases := map[string]string{
		"4111111111111111": "visa",
		"5555555555554444": "mastercard",
		"378282246310005":  "amex",
		"6011111111111117": "discover",
		"3530111333300000": "unknown",
	}
	for pan, want := range cases {
		assert.Equal(t, want, detectBrand(pan), pan)
	}
}

func TestCardExpired(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	assert.False(t, cardExpired(8, 2026, now), "valid through the end of its month")
	assert.False(t, cardExpired(9, 2026, now))
	assert.True(t, cardExpired(7, 2026, now))
	assert.True(t, cardExpired(12, 2025, now))
	assert.True(t, cardExpired(13, 2030, now), "nonsense month")
}

func TestCharge(t *testing.T) {
	svc := NewService(newFakeCardStore())
	resp, err := svc.Tokenize(context.Background(), validReq())
	require.NoError(t, err)

	out, err := svc.Charge(context.Background(), domain.ChargeRequest{
		UserID:    "u1",
		CardToken: resp.CardToken,
		Price:     149.90,
	})
	require.NoError(t, err)
	assert.Equal(t, "success", out.Status)
	assert.NotEmpty(t, out.PaymentID)
}

func TestCharge_UnknownToken(t *testing.T) {
	svc := NewService(newFakeCardStore())

	out, err := svc.Charge(context.Background(), domain.ChargeRequest{
		UserID:    "u1",
		CardToken: "tok_deadbeef",
		Price:     10,
	})
	require.NoError(t, err)
	assert.Equal(t, "failure", out.Status)
	assert.Equal(t, "unknown card token", out.ErrorMessage)
}

func TestDelete_WrongUser(t *testing.T) {
	store := newFakeCardStore()
	svc := NewService(store)
	_, err := svc.Tokenize(context.Background(), validReq())
	require.NoError(t, err)

	var cardID string
	for id := range store.cards {
		cardID = id
	}
	err = svc.Delete(context.Background(), "someone-else", cardID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), "u1", cardID))
}
