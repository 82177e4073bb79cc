package notify

import (
	"testing"

	"github.com/ceptevar-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolveLanguage_ExplicitWins(t *testing.T) {
	assert.Equal(t, "ar", ResolveLanguage("ar", "+905551234567"))
	assert.Equal(t, "en", ResolveLanguage("en", "+905551234567"))
}

func TestResolveLanguage_FromPhone(t *testing.T) {
	assert.Equal(t, "tr", ResolveLanguage("", "+905551234567"))
	assert.Equal(t, "tr", ResolveLanguage("", "05551234567"))
	assert.Equal(t, "en", ResolveLanguage("", "+12025550123"))
	assert.Equal(t, "ar", ResolveLanguage("", "+966501234567"))
	assert.Equal(t, "ar", ResolveLanguage("", "+971501234567"))
}

func TestResolveLanguage_Default(t *testing.T) {
	assert.Equal(t, "tr", ResolveLanguage("", ""))
	assert.Equal(t, "tr", ResolveLanguage("de", ""))
}

func TestCodeSMS(t *testing.T) {
	assert.Equal(t, "CepteVar doğrulama kodunuz: 123456", CodeSMS("CepteVar", "123456", "tr"))
	assert.Equal(t, "Your CepteVar verification code is: 123456", CodeSMS("CepteVar", "123456", "en"))
	assert.Contains(t, CodeSMS("CepteVar", "123456", "ar"), "123456")
}

func TestCodeEmail(t *testing.T) {
	subject, body := CodeEmail("CepteVar", "654321", "tr")
	assert.Equal(t, "CepteVar Doğrulama Kodu", subject)
	assert.Contains(t, body, "654321")
	assert.Contains(t, body, "5 dakika")

	subject, body = CodeEmail("CepteVar", "654321", "en")
	assert.Equal(t, "CepteVar Verification Code", subject)
	assert.Contains(t, body, "5 minutes")
}

func TestOrderStatusSMS(t *testing.T) {
	msg := OrderStatusSMS("CepteVar", "ORD-1001", domain.OrderShipped, "tr")
	assert.Equal(t, "CepteVar: ORD-1001 numaralı siparişiniz kargoya verildi.", msg)

	msg = OrderStatusSMS("CepteVar", "ORD-1001", domain.OrderDelivered, "en")
	assert.Equal(t, "CepteVar: your order ORD-1001 is now delivered.", msg)
}

func TestWelcomeSMS(t *testing.T) {
	assert.Equal(t, "CepteVar ailesine hoş geldin Ali! Hesabın hazır.", WelcomeSMS("CepteVar", "Ali", "tr"))
	assert.Equal(t, "Welcome to CepteVar, Ali! Your account is ready.", WelcomeSMS("CepteVar", "Ali", "en"))
}
