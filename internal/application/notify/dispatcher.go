package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ceptevar-api/internal/domain"
	"github.com/ceptevar-api/internal/infrastructure/smtp"
	"github.com/ceptevar-api/internal/infrastructure/sns"
)

// Dispatcher routes outbound messages to SMS or email by channel.
type Dispatcher struct {
	sms     sns.SMSSender
	mailer  smtp.Mailer
	brand   string
	timeout time.Duration
}

func NewDispatcher(sms sns.SMSSender, mailer smtp.Mailer, brand string, timeout time.Duration) *Dispatcher {
	return &Dispatcher{sms: sms, mailer: mailer, brand: brand, timeout: timeout}
}

// SendCode delivers a verification code over the channel's medium. Phone
// channels go out as SMS, email channels as mail. Delivery is synchronous:
// a failed send is reported to the caller so it can roll back. Without an
// explicit language the recipient's country prefix decides.
func (d *Dispatcher) SendCode(ctx context.Context, ch domain.Channel, identifier, code, lang string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if ch.IsPhone() {
		lang = ResolveLanguage(lang, identifier)
		if err := d.sms.SendSMS(ctx, identifier, CodeSMS(d.brand, code, lang)); err != nil {
			return fmt.Errorf("send code sms: %w", err)
		}
		return nil
	}

	lang = ResolveLanguage(lang, "")
	subject, body := CodeEmail(d.brand, code, lang)
	if err := d.mailer.SendEmail(identifier, subject, body); err != nil {
		return fmt.Errorf("send code email: %w", err)
	}
	return nil
}

// SendWelcome sends the post-registration greeting. Best effort: failures
// are logged, never surfaced.
func (d *Dispatcher) SendWelcome(ctx context.Context, phoneNumber, name, lang string) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.sms.SendSMS(ctx, phoneNumber, WelcomeSMS(d.brand, name, lang)); err != nil {
		slog.Warn("welcome sms failed", "err", err)
	}
}

// SendOrderStatus notifies the buyer that an order changed state. Best effort.
func (d *Dispatcher) SendOrderStatus(ctx context.Context, phoneNumber, orderNumber string, status domain.OrderStatus, lang string) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.sms.SendSMS(ctx, phoneNumber, OrderStatusSMS(d.brand, orderNumber, status, lang)); err != nil {
		slog.Warn("order status sms failed", "order", orderNumber, "err", err)
	}
}

// SendPromo fans a promotional message out to the given phone numbers.
// Returns how many sends succeeded.
func (d *Dispatcher) SendPromo(ctx context.Context, phoneNumbers []string, message string) int {
	sent := 0
	body := PromoSMS(d.brand, message)
	for _, to := range phoneNumbers {
		sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
		err := d.sms.SendSMS(sendCtx, to, body)
		cancel()
		if err != nil {
			slog.Warn("promo sms failed", "to", to, "err", err)
			continue
		}
		sent++
	}
	return sent
}
