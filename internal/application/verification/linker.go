package verification

import (
	"context"
	"errors"
	"fmt"

	"github.com/ceptevar-api/internal/domain"
)

// userAccounts is the slice of the user repository the linker needs.
type userAccounts interface {
	GetByPhone(ctx context.Context, phoneNumber string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// sellerAccounts mirrors userAccounts for sellers.
type sellerAccounts interface {
	GetByPhone(ctx context.Context, phoneNumber string) (*domain.Seller, error)
	GetByEmail(ctx context.Context, email string) (*domain.Seller, error)
	Update(ctx context.Context, sellerID string, updates map[string]interface{}) error
}

// AccountLinker resolves identifiers to accounts and propagates verification
// outcomes onto them. Identifiers arrive already canonicalized.
type AccountLinker struct {
	users   userAccounts
	sellers sellerAccounts
}

func NewAccountLinker(users userAccounts, sellers sellerAccounts) *AccountLinker {
	return &AccountLinker{users: users, sellers: sellers}
}

// Registered reports whether the identifier already belongs to an account
// that has verified it. Accounts still pending on the identifier do not
// count, so they can re-request a code for it.
func (l *AccountLinker) Registered(ctx context.Context, ch domain.Channel, identifier string) (bool, error) {
	if ch.IsSeller() {
		seller, err := l.findSeller(ctx, ch, identifier)
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return sellerVerified(seller, ch), nil
	}

	user, err := l.findUser(ctx, ch, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return userVerified(user, ch), nil
}

// OnVerified flips the account's verified flag for the identifier's medium.
// No account yet is fine: pre-registration verifications leave the record
// behind for the signup gate to consume.
func (l *AccountLinker) OnVerified(ctx context.Context, ch domain.Channel, identifier string) error {
	field := fieldFor(ch)

	if ch.IsSeller() {
		seller, err := l.findSeller(ctx, ch, identifier)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := l.sellers.Update(ctx, seller.SellerID, map[string]interface{}{
			field: string(domain.VerifiedStateVerified),
		}); err != nil {
			return fmt.Errorf("mark seller %s: %w", field, err)
		}
		return nil
	}

	user, err := l.findUser(ctx, ch, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := l.users.Update(ctx, user.UserID, map[string]interface{}{
		field: string(domain.VerifiedStateVerified),
	}); err != nil {
		return fmt.Errorf("mark user %s: %w", field, err)
	}
	return nil
}

func (l *AccountLinker) findUser(ctx context.Context, ch domain.Channel, identifier string) (*domain.User, error) {
	if ch.IsPhone() {
		return l.users.GetByPhone(ctx, identifier)
	}
	return l.users.GetByEmail(ctx, identifier)
}

func (l *AccountLinker) findSeller(ctx context.Context, ch domain.Channel, identifier string) (*domain.Seller, error) {
	if ch.IsPhone() {
		return l.sellers.GetByPhone(ctx, identifier)
	}
	return l.sellers.GetByEmail(ctx, identifier)
}

func fieldFor(ch domain.Channel) string {
	if ch.IsPhone() {
		return "phone_verified"
	}
	return "email_verified"
}

func userVerified(u *domain.User, ch domain.Channel) bool {
	if ch.IsPhone() {
		return u.PhoneVerified == domain.VerifiedStateVerified
	}
	return u.EmailVerified == domain.VerifiedStateVerified
}

func sellerVerified(s *domain.Seller, ch domain.Channel) bool {
	if ch.IsPhone() {
		return s.PhoneVerified == domain.VerifiedStateVerified
	}
	return s.EmailVerified == domain.VerifiedStateVerified
}
