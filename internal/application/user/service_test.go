package user

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ceptevar-api/internal/application/verification"
	"github.com/ceptevar-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	updates   map[string]map[string]interface{}
	updateErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:   make(map[string]*domain.User),
		updates: make(map[string]map[string]interface{}),
	}
}

func (f *fakeUserStore) Put(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.users[u.UserID] = &cp
	return nil
}

func (f *fakeUserStore) Get(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
}

func (f *fakeUserStore) GetByPhone(_ context.Context, p string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Phone == p {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
}

func (f *fakeUserStore) Update(_ context.Context, id string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	f.updates[id] = updates
	if v, ok := updates[fieldPhone].(string); ok {
		u.Phone = v
	}
	if v, ok := updates[fieldEmail].(string); ok {
		u.Email = v
	}
	if v, ok := updates[fieldPhoneVerified].(string); ok {
		u.PhoneVerified = domain.VerifiedState(v)
	}
	if v, ok := updates[fieldEmailVerified].(string); ok {
		u.EmailVerified = domain.VerifiedState(v)
	}
	if v, ok := updates[fieldPasswordHash].(string); ok {
		u.PasswordHash = v
	}
	if v, ok := updates[fieldNameSurname].(string); ok {
		u.NameSurname = v
	}
	return nil
}

func (f *fakeUserStore) SoftDelete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.Enable = 0
		return nil
	}
	return fmt.Errorf("user: %w", domain.ErrNotFound)
}

func (f *fakeUserStore) ScanPage(_ context.Context, limit int32, _ string) ([]domain.User, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, "", nil
}

// stubVerifier answers IsVerified from a set and records code requests.
type stubVerifier struct {
	verified  map[string]bool
	requested []string
	discarded []string
	sendErr   error
}

func newStubVerifier() *stubVerifier {
	return &stubVerifier{verified: make(map[string]bool)}
}

func (v *stubVerifier) RequestCode(_ context.Context, ch domain.Channel, id, _ string) (int, error) {
	v.requested = append(v.requested, string(ch)+"|"+id)
	return verification.CodeTTLSeconds, nil
}

func (v *stubVerifier) RequestCodeSync(_ context.Context, ch domain.Channel, id, _ string) error {
	if v.sendErr != nil {
		return v.sendErr
	}
	v.requested = append(v.requested, string(ch)+"|"+id)
	return nil
}

func (v *stubVerifier) VerifyCode(context.Context, domain.Channel, string, string) error {
	return nil
}

func (v *stubVerifier) IsVerified(_ context.Context, ch domain.Channel, id string) (bool, error) {
	return v.verified[string(ch)+"|"+id], nil
}

func (v *stubVerifier) Discard(_ context.Context, ch domain.Channel, id string) error {
	v.discarded = append(v.discarded, string(ch)+"|"+id)
	return nil
}

type stubSigner struct{}

func (stubSigner) Sign(accountID, accountType string) (string, error) {
	return "bearer-" + accountType + "-" + accountID, nil
}

type stubWelcomer struct {
	mu   sync.Mutex
	sent []string
}

func (w *stubWelcomer) SendWelcome(_ context.Context, phoneNumber, _, _ string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sent = append(w.sent, phoneNumber)
}

func newTestService() (Service, *fakeUserStore, *stubVerifier) {
	store := newFakeUserStore()
	verifier := newStubVerifier()
	svc := NewService(store, verifier, stubSigner{}, &stubWelcomer{})
	return svc, store, verifier
}

func validReq() domain.CreateUserRequest {
	return domain.CreateUserRequest{
		NameSurname: "Ali Veli",
		Email:       "ali@example.com",
		Phone:       "+905551234567",
		Password:    "sup3rsecret",
	}
}

func TestRegister_RequiresVerifiedPhone(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), validReq())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegister_Success(t *testing.T) {
	svc, _, verifier := newTestService()
	verifier.verified["user-phone|+905551234567"] = true

	u, err := svc.Register(context.Background(), validReq())
	require.NoError(t, err)
	assert.NotEmpty(t, u.UserID)
	assert.Equal(t, "+905551234567", u.Phone)
	assert.Equal(t, domain.VerifiedStateVerified, u.PhoneVerified)
	assert.Equal(t, domain.VerifiedStatePending, u.EmailVerified)
	assert.Equal(t, "tr", u.Language)
	assert.Equal(t, 1, u.Enable)
	assert.NotEqual(t, "sup3rsecret", u.PasswordHash)
}

func TestRegister_CanonicalizesPhone(t *testing.T) {
	svc, _, verifier := newTestService()
	verifier.verified["user-phone|+905551234567"] = true

	req := validReq()
	req.Phone = "05551234567"
	u, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "+905551234567", u.Phone)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, verifier := newTestService()
	verifier.verified["user-phone|+905551234567"] = true
	verifier.verified["user-phone|+905559876543"] = true

	_, err := svc.Register(context.Background(), validReq())
	require.NoError(t, err)

	req := validReq()
	req.Phone = "+905559876543"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
}

func TestLogin(t *testing.T) {
	svc, _, verifier := newTestService()
	verifier.verified["user-phone|+905551234567"] = true
	u, err := svc.Register(context.Background(), validReq())
	require.NoError(t, err)

	bearer, got, err := svc.Login(context.Background(), "ali@example.com", "sup3rsecret")
	require.NoError(t, err)
	assert.Equal(t, "bearer-user-"+u.UserID, bearer)
	assert.Equal(t, u.UserID, got.UserID)

	// Phone spelling variants authenticate too.
	_, _, err = svc.Login(context.Background(), "05551234567", "sup3rsecret")
	assert.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "ali@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, store, verifier := newTestService()
	verifier.verified["user-phone|+905551234567"] = true
	u, err := svc.Register(context.Background(), validReq())
	require.NoError(t, err)
	require.NoError(t, store.SoftDelete(context.Background(), u.UserID))

	_, _, err = svc.Login(context.Background(), "ali@example.com", "sup3rsecret")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdate_PhoneChangeRestartsVerification(t *testing.T) {
	svc, _, verifier := newTestService()
	verifier.verified["user-phone|+905551234567"] = true
	u, err := svc.Register(context.Background(), validReq())
	require.NoError(t, err)

	newPhone := "+905559876543"
	updated, err := svc.Update(context.Background(), u.UserID, domain.UpdateUserRequest{Phone: &newPhone})
	require.NoError(t, err)

	assert.Equal(t, newPhone, updated.Phone)
	assert.Equal(t, domain.VerifiedStatePending, updated.PhoneVerified)
	assert.Contains(t, verifier.requested, "user-phone|+905559876543")
	assert.Contains(t, verifier.discarded, "user-phone|+905551234567")

	// Same number again is a no-op.
	_, err = svc.Update(context.Background(), u.UserID, domain.UpdateUserRequest{Phone: &newPhone})
	require.NoError(t, err)
	assert.Len(t, verifier.requested, 1)
}

func TestUpdate_StorageFailureDropsStagedCode(t *testing.T) {
	svc, store, verifier := newTestService()
	verifier.verified["user-phone|+905551234567"] = true
	u, err := svc.Register(context.Background(), validReq())
	require.NoError(t, err)

	store.updateErr = errors.New("dynamo write throttled")
	newPhone := "+905559876543"
	_, err = svc.Update(context.Background(), u.UserID, domain.UpdateUserRequest{Phone: &newPhone})
	require.Error(t, err)

	// The staged record for the new number is dropped; the old number's
	// records stay, since the account still holds it.
	assert.Contains(t, verifier.discarded, "user-phone|+905559876543")
	assert.NotContains(t, verifier.discarded, "user-phone|+905551234567")
}

func TestUpdate_PhoneChangeAbortsWhenDeliveryFails(t *testing.T) {
	svc, store, verifier := newTestService()
	verifier.verified["user-phone|+905551234567"] = true
	u, err := svc.Register(context.Background(), validReq())
	require.NoError(t, err)

	verifier.sendErr = errors.New("gateway down")
	newPhone := "+905559876543"
	_, err = svc.Update(context.Background(), u.UserID, domain.UpdateUserRequest{Phone: &newPhone})
	require.Error(t, err)

	unchanged, err := store.Get(context.Background(), u.UserID)
	require.NoError(t, err)
	assert.Equal(t, "+905551234567", unchanged.Phone)
	assert.Equal(t, domain.VerifiedStateVerified, unchanged.PhoneVerified)
}

func TestChangePassword(t *testing.T) {
	svc, store, verifier := newTestService()
	verifier.verified["user-phone|+905551234567"] = true
	u, err := svc.Register(context.Background(), validReq())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), u.UserID, "wrong", "newpassword1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, svc.ChangePassword(context.Background(), u.UserID, "sup3rsecret", "newpassword1"))

	got, err := store.Get(context.Background(), u.UserID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("newpassword1")))
}
