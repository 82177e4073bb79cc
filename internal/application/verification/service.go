package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/ceptevar-api/internal/domain"
	"github.com/ceptevar-api/internal/pkg/otp"
	"github.com/ceptevar-api/internal/pkg/phone"
)

// codeStore is the slice of the verification repository this service needs.
type codeStore interface {
	Purge(ctx context.Context, ch domain.Channel, identifier string) error
	Create(ctx context.Context, rec *domain.VerificationRecord) error
	Find(ctx context.Context, ch domain.Channel, identifier string) (*domain.VerificationRecord, error)
	MarkVerified(ctx context.Context, ch domain.Channel, identifier string) error
	MarkExpired(ctx context.Context, ch domain.Channel, identifier string) error
	IncrementAttempts(ctx context.Context, ch domain.Channel, identifier string, current int) error
}

// codeSender delivers a generated code to its identifier.
type codeSender interface {
	SendCode(ctx context.Context, ch domain.Channel, identifier, code, lang string) error
}

// accountLinker connects verification outcomes to account state.
type accountLinker interface {
	Registered(ctx context.Context, ch domain.Channel, identifier string) (bool, error)
	OnVerified(ctx context.Context, ch domain.Channel, identifier string) error
}

// CodeTTLSeconds is reported to clients as the lifetime of a fresh code.
const CodeTTLSeconds = int(domain.VerificationTTL / time.Second)

type Service interface {
	// RequestCode issues a code and dispatches it in the background.
	// Returns the code lifetime in seconds.
	RequestCode(ctx context.Context, ch domain.Channel, identifier, lang string) (int, error)
	// RequestCodeSync issues a code and waits for delivery; a failed send
	// removes the record again. Used by identifier-change flows that must
	// roll back when the new identifier is unreachable.
	RequestCodeSync(ctx context.Context, ch domain.Channel, identifier, lang string) error
	VerifyCode(ctx context.Context, ch domain.Channel, identifier, code string) error
	IsVerified(ctx context.Context, ch domain.Channel, identifier string) (bool, error)
	Discard(ctx context.Context, ch domain.Channel, identifier string) error
}

type service struct {
	store  codeStore
	sender codeSender
	linker accountLinker
	locks  *keyLock
	now    func() time.Time
}

func NewService(store codeStore, sender codeSender, linker accountLinker) Service {
	return &service{
		store:  store,
		sender: sender,
		linker: linker,
		locks:  newKeyLock(),
		now:    time.Now,
	}
}

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// normalize validates the raw identifier for the channel's medium and
// returns its canonical form. Phones collapse to compact international
// notation and emails fold to lower case, so one identifier never lives
// under two spellings.
func normalize(ch domain.Channel, raw string) (string, error) {
	if ch.IsPhone() {
		if !phone.Valid(raw) {
			return "", fmt.Errorf("phone %q: %w", raw, domain.ErrInvalidFormat)
		}
		return phone.Canonical(raw), nil
	}
	if !emailRx.MatchString(raw) {
		return "", fmt.Errorf("email %q: %w", raw, domain.ErrInvalidFormat)
	}
	return strings.ToLower(raw), nil
}

// issue replaces any earlier record for the pair with a fresh pending one,
// so at most one code is ever live. It refuses identifiers that already
// belong to an account or already carry a verified record.
func (s *service) issue(ctx context.Context, ch domain.Channel, identifier string) (string, error) {
	registered, err := s.linker.Registered(ctx, ch, identifier)
	if err != nil {
		return "", fmt.Errorf("check registration: %w", err)
	}
	if registered {
		return "", fmt.Errorf("%s %s: %w", ch, identifier, domain.ErrAlreadyRegistered)
	}

	e := s.locks.lock(lockKey(ch, identifier))
	defer s.locks.unlock(e)

	prev, err := s.store.Find(ctx, ch, identifier)
	switch {
	case err == nil:
		if prev.Status == domain.VerificationVerified {
			return "", fmt.Errorf("%s %s: %w", ch, identifier, domain.ErrAlreadyVerified)
		}
	case errors.Is(err, domain.ErrNotFound):
	default:
		return "", fmt.Errorf("%v: %w", err, domain.ErrStorage)
	}

	code := otp.Generate()
	now := s.now().UTC()
	rec := &domain.VerificationRecord{
		Channel:    ch,
		Identifier: identifier,
		Code:       code,
		Status:     domain.VerificationPending,
		Attempts:   0,
		CreatedAt:  now,
		ExpiresAt:  now.Add(domain.VerificationTTL),
	}

	if err := s.store.Purge(ctx, ch, identifier); err != nil {
		return "", fmt.Errorf("%v: %w", err, domain.ErrStorage)
	}
	if err := s.store.Create(ctx, rec); err != nil {
		// Conflict here means a concurrent request won the race between our
		// purge and put. Either way no code was issued by this call.
		return "", fmt.Errorf("%v: %w", err, domain.ErrStorage)
	}
	return code, nil
}

// RequestCode issues a fresh code and hands it to the sender in the
// background. Delivery is best effort: a failed send is logged and the
// record stays live, so the caller's success does not hinge on the
// provider being up.
func (s *service) RequestCode(ctx context.Context, ch domain.Channel, identifier, lang string) (int, error) {
	identifier, err := normalize(ch, identifier)
	if err != nil {
		return 0, err
	}
	code, err := s.issue(ctx, ch, identifier)
	if err != nil {
		return 0, err
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := s.sender.SendCode(sendCtx, ch, identifier, code, lang); err != nil {
			slog.Warn("code delivery failed", "channel", ch, "err", err)
		}
	}()

	slog.Info("verification code issued", "channel", ch)
	return CodeTTLSeconds, nil
}

// RequestCodeSync issues a fresh code and waits for delivery. If the send
// fails the new record is purged again, restoring "no active code", and the
// failure propagates. Identifier-change flows use this so an unreachable new
// phone or email never strands the account.
func (s *service) RequestCodeSync(ctx context.Context, ch domain.Channel, identifier, lang string) error {
	identifier, err := normalize(ch, identifier)
	if err != nil {
		return err
	}
	code, err := s.issue(ctx, ch, identifier)
	if err != nil {
		return err
	}

	if err := s.sender.SendCode(ctx, ch, identifier, code, lang); err != nil {
		if purgeErr := s.store.Purge(ctx, ch, identifier); purgeErr != nil {
			slog.Error("rollback after failed delivery", "channel", ch, "err", purgeErr)
		}
		return fmt.Errorf("deliver code: %w", err)
	}

	slog.Info("verification code issued", "channel", ch)
	return nil
}

// VerifyCode checks a submitted code against the live record.
func (s *service) VerifyCode(ctx context.Context, ch domain.Channel, identifier, code string) error {
	identifier, err := normalize(ch, identifier)
	if err != nil {
		return err
	}

	e := s.locks.lock(lockKey(ch, identifier))
	defer s.locks.unlock(e)

	rec, err := s.store.Find(ctx, ch, identifier)
	if err != nil {
		return err
	}

	switch rec.Status {
	case domain.VerificationVerified:
		return fmt.Errorf("%s %s: %w", ch, identifier, domain.ErrAlreadyVerified)
	case domain.VerificationExpired:
		return fmt.Errorf("%s %s: %w", ch, identifier, domain.ErrCodeExpired)
	}

	// Expiry is decided lazily at read time and persisted so later reads
	// see a consistent state.
	if rec.ExpiredBy(s.now()) {
		if err := s.store.MarkExpired(ctx, ch, identifier); err != nil && !errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("%v: %w", err, domain.ErrStorage)
		}
		return fmt.Errorf("%s %s: %w", ch, identifier, domain.ErrCodeExpired)
	}

	// The cap is checked before counting this submission, so a record with
	// three failures rejects even a correct code.
	if rec.Attempts >= domain.MaxVerificationAttempts {
		return fmt.Errorf("%s %s: %w", ch, identifier, domain.ErrTooManyAttempts)
	}

	if code != rec.Code {
		if err := s.store.IncrementAttempts(ctx, ch, identifier, rec.Attempts); err != nil && !errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("%v: %w", err, domain.ErrStorage)
		}
		remaining := domain.MaxVerificationAttempts - (rec.Attempts + 1)
		return &domain.CodeMismatchError{Remaining: remaining}
	}

	if err := s.store.MarkVerified(ctx, ch, identifier); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost a race against another transition; report the record as
			// no longer verifiable.
			return fmt.Errorf("%s %s: %w", ch, identifier, domain.ErrCodeExpired)
		}
		return fmt.Errorf("%v: %w", err, domain.ErrStorage)
	}

	if err := s.linker.OnVerified(ctx, ch, identifier); err != nil {
		return fmt.Errorf("link verified identifier: %w", err)
	}

	slog.Info("identifier verified", "channel", ch)
	return nil
}

// IsVerified reports whether the identifier holds a verified record. Used as
// the registration gate: signup requires the phone to be verified first.
func (s *service) IsVerified(ctx context.Context, ch domain.Channel, identifier string) (bool, error) {
	identifier, err := normalize(ch, identifier)
	if err != nil {
		return false, err
	}
	rec, err := s.store.Find(ctx, ch, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return rec.Status == domain.VerificationVerified, nil
}

// Discard drops any record for the identifier. Called when an account
// abandons an identifier, for instance after a phone number change.
func (s *service) Discard(ctx context.Context, ch domain.Channel, identifier string) error {
	identifier, err := normalize(ch, identifier)
	if err != nil {
		return err
	}
	return s.store.Purge(ctx, ch, identifier)
}

func lockKey(ch domain.Channel, identifier string) string {
	return string(ch) + "|" + identifier
}
