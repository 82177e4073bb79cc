package seller

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

const (
	fieldName             = "name"
	fieldEmail            = "email"
	fieldPhone            = "phone"
	fieldPasswordHash     = "password_hash"
	fieldPhoneVerified    = "phone_verified"
	fieldEmailVerified    = "email_verified"
	fieldStoreName        = "store_name"
	fieldStoreDescription = "store_description"
	fieldStoreLogoURL     = "store_logo_url"
	fieldCargoCompany     = "cargo_company"
)

type Service interface {
	Register(ctx context.Context, req domain.CreateSellerRequest) (*domain.Seller, error)
	Login(ctx context.Context, identifier, password string) (string, *domain.Seller, error)
	Get(ctx context.Context, sellerID string) (*domain.Seller, error)
	Update(ctx context.Context, sellerID string, req domain.UpdateSellerRequest) (*domain.Seller, error)
	UploadLogo(ctx context.Context, sellerID, filename, b64Data string) (string, error)
	Delete(ctx context.Context, sellerID string) error
}

type sellerStore interface {
	Put(ctx context.Context, s *domain.Seller) error
	Get(ctx context.Context, sellerID string) (*domain.Seller, error)
	GetByEmail(ctx context.Context, email string) (*domain.Seller, error)
	GetByPhone(ctx context.Context, phoneNumber string) (*domain.Seller, error)
	Update(ctx context.Context, sellerID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, sellerID string) error
}

type jwtSigner interface {
	Sign(accountID, accountType string) (string, error)
}

type imageStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
}

type service struct {
	store    sellerStore
	verifier verification.Service
	jwt      jwtSigner
	images   imageStore
}

// identifierRef names a verification record pending cleanup.
type identifierRef struct {
	channel    domain.Channel
	identifier string
}

func NewService(store sellerStore, verifier verification.Service, jwt jwtSigner, images imageStore) Service {
	return &service{store: store, verifier: verifier, jwt: jwt, images: images}
}

// Register creates a seller account. Like users, sellers are phone-first:
// the store's phone must hold a verified record before signup.
func (s *service) Register(ctx context.Context, req domain.CreateSellerRequest) (*domain.Seller, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if !phone.Valid(req.Phone) {
		return nil, fmt.Errorf("phone %q: %w", req.Phone, domain.ErrInvalidFormat)
	}
	canonical := phone.Canonical(req.Phone)

	verified, err := s.verifier.IsVerified(ctx, domain.ChannelSellerPhone, canonical)
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
	sl := &domain.Seller{
		SellerID:         id.New(),
		Name:             req.Name,
		Email:            req.Email,
		Phone:            canonical,
		PasswordHash:     string(hash),
		PhoneVerified:    domain.VerifiedStateVerified,
		EmailVerified:    domain.VerifiedStatePending,
		StoreName:        req.StoreName,
		StoreDescription: req.StoreDescription,
		CargoCompany:     req.CargoCompany,
		Enable:           1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.Put(ctx, sl); err != nil {
		return nil, err
	}
	return sl, nil
}

func (s *service) Login(ctx context.Context, identifier, password string) (string, *domain.Seller, error) {
	var (
		sl  *domain.Seller
		err error
	)
	if phone.Valid(identifier) {
		sl, err = s.store.GetByPhone(ctx, phone.Canonical(identifier))
	} else {
		sl, err = s.store.GetByEmail(ctx, identifier)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err != nil {
		return "", nil, err
	}
	if sl.Enable == 0 {
		return "", nil, fmt.Errorf("account disabled: %w", domain.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(sl.PasswordHash), []byte(password)) != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	bearer, err := s.jwt.Sign(sl.SellerID, "seller")
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return bearer, sl, nil
}

func (s *service) Get(ctx context.Context, sellerID string) (*domain.Seller, error) {
	return s.store.Get(ctx, sellerID)
}

// Update mirrors the user flow: identifier changes send a fresh code before
// anything is persisted, and the verified flag drops back to pending.
func (s *service) Update(ctx context.Context, sellerID string, req domain.UpdateSellerRequest) (*domain.Seller, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	current, err := s.store.Get(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.StoreName != nil {
		updates[fieldStoreName] = *req.StoreName
	}
	if req.StoreDescription != nil {
		updates[fieldStoreDescription] = *req.StoreDescription
	}
	if req.StoreLogoURL != nil {
		updates[fieldStoreLogoURL] = *req.StoreLogoURL
	}
	if req.CargoCompany != nil {
		updates[fieldCargoCompany] = *req.CargoCompany
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
			lang := notify.ResolveLanguage("", newPhone)
			if err := s.verifier.RequestCodeSync(ctx, domain.ChannelSellerPhone, newPhone, lang); err != nil {
				return nil, err
			}
			oldIdentifiers = append(oldIdentifiers, identifierRef{domain.ChannelSellerPhone, current.Phone})
			newIdentifiers = append(newIdentifiers, identifierRef{domain.ChannelSellerPhone, newPhone})
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
		lang := notify.ResolveLanguage("", current.Phone)
		if err := s.verifier.RequestCodeSync(ctx, domain.ChannelSellerEmail, *req.Email, lang); err != nil {
			return nil, err
		}
		oldIdentifiers = append(oldIdentifiers, identifierRef{domain.ChannelSellerEmail, current.Email})
		newIdentifiers = append(newIdentifiers, identifierRef{domain.ChannelSellerEmail, *req.Email})
		updates[fieldEmail] = *req.Email
		updates[fieldEmailVerified] = string(domain.VerifiedStatePending)
	}

	if len(updates) == 0 {
		return current, nil
	}
	if err := s.store.Update(ctx, sellerID, updates); err != nil {
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
	return s.store.Get(ctx, sellerID)
}

// UploadLogo stores the store logo in S3 and persists its URL.
func (s *service) UploadLogo(ctx context.Context, sellerID, filename, b64Data string) (string, error) {
	if _, err := s.store.Get(ctx, sellerID); err != nil {
		return "", err
	}
	key := fmt.Sprintf("sellers/%s/logo/%s", sellerID, filename)
	url, err := s.images.UploadBase64(ctx, key, b64Data)
	if err != nil {
		return "", fmt.Errorf("upload logo: %w", err)
	}
	if err := s.store.Update(ctx, sellerID, map[string]interface{}{fieldStoreLogoURL: url}); err != nil {
		return "", err
	}
	return url, nil
}

func (s *service) Delete(ctx context.Context, sellerID string) error {
	if _, err := s.store.Get(ctx, sellerID); err != nil {
		return err
	}
	return s.store.SoftDelete(ctx, sellerID)
}
