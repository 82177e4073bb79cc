package card

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ceptevar-api/internal/domain"
	"github.com/ceptevar-api/internal/pkg/id"
	"github.com/ceptevar-api/internal/pkg/token"
	"github.com/ceptevar-api/internal/pkg/validate"
)

type Service interface {
	Tokenize(ctx context.Context, req domain.TokenizeCardRequest) (*domain.TokenizeCardResponse, error)
	List(ctx context.Context, userID string) ([]domain.CreditCard, error)
	Delete(ctx context.Context, userID, cardID string) error
	Charge(ctx context.Context, req domain.ChargeRequest) (*domain.ChargeResponse, error)
}

type cardStore interface {
	Put(ctx context.Context, c *domain.CreditCard) error
	Get(ctx context.Context, cardID string) (*domain.CreditCard, error)
	ListByUser(ctx context.Context, userID string) ([]domain.CreditCard, error)
	Delete(ctx context.Context, cardID string) error
}

type service struct {
	store cardStore
}

func NewService(store cardStore) Service {
	return &service{store: store}
}

// Tokenize validates the card, swaps the PAN for an opaque token and stores
// only the token plus display data. This is a stand-in gateway: tokens are
// generated locally instead of by a payment provider.
func (s *service) Tokenize(ctx context.Context, req domain.TokenizeCardRequest) (*domain.TokenizeCardResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	pan := strings.NewReplacer(" ", "", "-", "").Replace(req.CardNumber)
	if !luhnValid(pan) {
		return nil, fmt.Errorf("card number: %w", domain.ErrInvalidFormat)
	}
	if cardExpired(req.ExpireMonth, req.ExpireYear, time.Now()) {
		return nil, fmt.Errorf("card expired: %w", domain.ErrBadRequest)
	}

	cardToken, err := token.NewCardToken()
	if err != nil {
		return nil, err
	}

	c := &domain.CreditCard{
		CardID:      id.New(),
		UserID:      req.UserID,
		Token:       cardToken,
		Brand:       detectBrand(pan),
		Last4:       pan[len(pan)-4:],
		HolderName:  req.HolderName,
		ExpireMonth: req.ExpireMonth,
		ExpireYear:  req.ExpireYear,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.Put(ctx, c); err != nil {
		return nil, err
	}

	return &domain.TokenizeCardResponse{
		CardToken:   c.Token,
		CardBrand:   c.Brand,
		Last4:       c.Last4,
		ExpireMonth: c.ExpireMonth,
		ExpireYear:  c.ExpireYear,
	}, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.CreditCard, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID, cardID string) error {
	c, err := s.store.Get(ctx, cardID)
	if err != nil {
		return err
	}
	if c.UserID != userID {
		return fmt.Errorf("card belongs to another user: %w", domain.ErrForbidden)
	}
	return s.store.Delete(ctx, cardID)
}

// Charge runs a payment against a stored token. The gateway is simulated:
// a charge succeeds when the token belongs to the user and the card is not
// expired.
func (s *service) Charge(ctx context.Context, req domain.ChargeRequest) (*domain.ChargeResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}

	cards, err := s.store.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	var match *domain.CreditCard
	for i := range cards {
		if cards[i].Token == req.CardToken {
			match = &cards[i]
			break
		}
	}
	if match == nil {
		return &domain.ChargeResponse{
			Status:       "failure",
			ErrorMessage: "unknown card token",
		}, nil
	}
	if cardExpired(match.ExpireMonth, match.ExpireYear, time.Now()) {
		return &domain.ChargeResponse{
			Status:       "failure",
			ErrorMessage: "card expired",
		}, nil
	}

	return &domain.ChargeResponse{
		Status:    "success",
		PaymentID: id.New(),
	}, nil
}

// luhnValid runs the Luhn checksum over a digits-only PAN.
func luhnValid(pan string) bool {
	if len(pan) < 12 || len(pan) > 19 {
		return false
	}
	sum := 0
	double := false
	for i := len(pan) - 1; i >= 0; i-- {
		c := pan[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// cardExpired treats a card as valid through the end of its expiry month.
func cardExpired(month, year int, now time.Time) bool {
	if month < 1 || month > 12 || year < 2000 {
		return true
	}
	// First instant of the month after expiry.
	cutoff := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	return !now.Before(cutoff)
}

func detectBrand(pan string) string {
	switch {
	case strings.HasPrefix(pan, "4"):
		return "visa"
	case strings.HasPrefix(pan, "34"), strings.HasPrefix(pan, "37"):
		return "amex"
	case strings.HasPrefix(pan, "6011"), strings.HasPrefix(pan, "65"):
		return "discover"
	case pan[0] == '5' && pan[1] >= '1' && pan[1] <= '5':
		return "mastercard"
	default:
		return "unknown"
	}
}
