package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ceptevar-api/internal/application/notify"
	"github.com/ceptevar-api/internal/application/verification"
	"github.com/ceptevar-api/internal/domain"
	"github.com/ceptevar-api/internal/pkg/id"
	"github.com/ceptevar-api/internal/pkg/phone"
	"github.com/ceptevar-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldNameSurname   = "name_surname"
	fieldEmail         = "email"
	fieldPhone         = "phone"
	fieldLanguage      = "language"
	fieldPasswordHash  = "password_hash"
	fieldPhoneVerified = "phone_verified"
	fieldEmailVerified = "email_verified"
)

type Service interface {
	Register(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	Login(ctx context.Context, identifier, password string) (string, *domain.User, error)
	List(ctx context.Context, limit int, cursor string) ([]domain.User, string, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phoneNumber string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, userID string) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
}

type jwtSigner interface {
	Sign(accountID, accountType string) (string, error)
}

type welcomer interface {
	SendWelcome(ctx context.Context, phoneNumber, name, lang string)
}

type service struct {
	store    userStore
	verifier verification.Service
	jwt      jwtSigner
	notifier welcomer
}

// identifierRef names a verification record pending cleanup.
type identifierRef struct {
	channel    domain.Channel
	identifier string
}

func NewService(store userStore, verifier verification.Service, jwt jwtSigner, notifier welcomer) Service {
	return &service{store: store, verifier: verifier, jwt: jwt, notifier: notifier}
}

// Register creates a user account. Registration is phone-first: the phone
// number must carry a verified record before signup is allowed, so an
// account is never created around an unreachable number.
func (s *service) Register(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if !phone.Valid(req.Phone) {
		return nil, fmt.Errorf("phone %q: %w", req.Phone, domain.ErrInvalidFormat)
	}
	canonical := phone.Canonical(req.Phone)

	verified, err := s.verifier.IsVerified(ctx, domain.ChannelUserPhone, canonical)
	if err != nil {
		return nil, fmt.Errorf("check phone verification: %w", err)
	}
	if !verified {
		return nil, fmt.Errorf("phone not verified: %w", domain.ErrForbidden)
	}

	if _, err := s.store.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email taken: %w", domain.ErrAlreadyRegistered)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.store.GetByPhone(ctx, canonical); err == nil {
		return nil, fmt.Errorf("phone taken: %w", domain.ErrAlreadyRegistered)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:        id.New(),
		NameSurname:   req.NameSurname,
		Email:         req.Email,
		Phone:         canonical,
		PasswordHash:  string(hash),
		PhoneVerified: domain.VerifiedStateVerified,
		EmailVerified: domain.VerifiedStatePending,
		Language:      notify.ResolveLanguage(req.Language, canonical),
		Enable:        1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Put(ctx, u); err != nil {
		return nil, err
	}

	// Greeting is best effort and must not slow down the response.
	go s.notifier.SendWelcome(context.Background(), u.Phone, u.NameSurname, u.Language)

	return u, nil
}

// Login authenticates by email or phone number plus password and returns a
// bearer token.
func (s *service) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	var (
		u   *domain.User
		err error
	)
	if phone.Valid(identifier) {
		u, err = s.store.GetByPhone(ctx, phone.Canonical(identifier))
	} else {
		u, err = s.store.GetByEmail(ctx, identifier)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err != nil {
		return "", nil, err
	}
	if u.Enable == 0 {
		return "", nil, fmt.Errorf("account disabled: %w", domain.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	bearer, err := s.jwt.Sign(u.UserID, "user")
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return bearer, u, nil
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.User, string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.ScanPage(ctx, int32(limit), cursor)
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.Get(ctx, userID)
}

// Update applies a partial update. Changing the phone or email restarts
// verification for the new identifier: a code goes out first, and only if
// delivery succeeds is the new value persisted with its flag reset to
// pending. The old identifier's records are dropped.
func (s *service) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	current, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.NameSurname != nil {
		updates[fieldNameSurname] = *req.NameSurname
	}
	if req.Language != nil {
		updates[fieldLanguage] = notify.ResolveLanguage(*req.Language, current.Phone)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates[fieldPasswordHash] = string(hash)
	}

	// Identifier changes stage their cleanup: fresh codes go out first,
	// old records are only discarded once the account row has moved, and a
	// failed update drops the fresh records again.
	var oldIdentifiers, newIdentifiers []identifierRef

	if req.Phone != nil {
		if !phone.Valid(*req.Phone) {
			return nil, fmt.Errorf("phone %q: %w", *req.Phone, domain.ErrInvalidFormat)
		}
		newPhone := phone.Canonical(*req.Phone)
		if newPhone != current.Phone {
			if _, err := s.store.GetByPhone(ctx, newPhone); err == nil {
				return nil, fmt.Errorf("phone taken: %w", domain.ErrAlreadyRegistered)
			} else if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			// Code first: nothing on the account changes if delivery fails.
			if err := s.verifier.RequestCodeSync(ctx, domain.ChannelUserPhone, newPhone, current.Language); err != nil {
				return nil, err
			}
			oldIdentifiers = append(oldIdentifiers, identifierRef{domain.ChannelUserPhone, current.Phone})
			newIdentifiers = append(newIdentifiers, identifierRef{domain.ChannelUserPhone, newPhone})
			updates[fieldPhone] = newPhone
			updates[fieldPhoneVerified] = string(domain.VerifiedStatePending)
		}
	}

	if req.Email != nil && *req.Email != current.Email {
		if _, err := s.store.GetByEmail(ctx, *req.Email); err == nil {
			return nil, fmt.Errorf("email taken: %w", domain.ErrAlreadyRegistered)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if err := s.verifier.RequestCodeSync(ctx, domain.ChannelUserEmail, *req.Email, current.Language); err != nil {
			return nil, err
		}
		oldIdentifiers = append(oldIdentifiers, identifierRef{domain.ChannelUserEmail, current.Email})
		newIdentifiers = append(newIdentifiers, identifierRef{domain.ChannelUserEmail, *req.Email})
		updates[fieldEmail] = *req.Email
		updates[fieldEmailVerified] = string(domain.VerifiedStatePending)
	}

	if len(updates) == 0 {
		return current, nil
	}
	if err := s.store.Update(ctx, userID, updates); err != nil {
		for _, ref := range newIdentifiers {
			if derr := s.verifier.Discard(ctx, ref.channel, ref.identifier); derr != nil {
				slog.Warn("discard staged verification", "channel", ref.channel, "err", derr)
			}
		}
		return nil, err
	}
	for _, ref := range oldIdentifiers {
		if err := s.verifier.Discard(ctx, ref.channel, ref.identifier); err != nil {
			slog.Warn("discard stale verification", "channel", ref.channel, "err", err)
		}
	}
	return s.store.Get(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID string) error {
	if _, err := s.store.Get(ctx, userID); err != nil {
		return err
	}
	return s.store.SoftDelete(ctx, userID)
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)) != nil {
		return fmt.Errorf("wrong current password: %w", domain.ErrUnauthorized)
	}
	if len(newPassword) < 8 || len(newPassword) > 72 {
		return fmt.Errorf("password length: %w", domain.ErrBadRequest)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.Update(ctx, userID, map[string]interface{}{fieldPasswordHash: string(hash)})
}
